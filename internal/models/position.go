package models

import "time"

// PositionStatus enumerates hiring states for a position.
const (
	PositionStatusOpen   = "open"
	PositionStatusPaused = "paused"
	PositionStatusClosed = "closed"
)

// Position represents an open role candidates interview for.
type Position struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Requirements     string    `gorm:"type:text" json:"requirements"`
	Responsibilities string    `gorm:"type:text" json:"responsibilities"`
	Quantity         int       `gorm:"default:1" json:"quantity"`
	Status           string    `gorm:"size:32;not null;default:open" json:"status"`
	Recruiter        string    `gorm:"size:255" json:"recruiter"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
