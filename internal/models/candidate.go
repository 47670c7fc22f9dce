package models

import "time"

// Candidate represents an applicant attached to a single position.
type Candidate struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PositionID    uint      `gorm:"not null;index" json:"position_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255" json:"email"`
	ResumeContent []byte    `gorm:"type:bytes" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Position      Position  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// HasResume reports whether a resume document was uploaded for the candidate.
func (c Candidate) HasResume() bool {
	return len(c.ResumeContent) > 0
}
