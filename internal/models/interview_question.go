package models

import "time"

// InterviewQuestion is one generated question with its scoring rubric.
// Answer fields are written exactly once by answer ingestion, grade fields
// exactly once by the grader.
type InterviewQuestion struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	InterviewID  uint       `gorm:"not null;index" json:"interview_id"`
	Question     string     `gorm:"type:text;not null" json:"question"`
	Rubric       string     `gorm:"type:text" json:"rubric"`
	AnswerText   string     `gorm:"type:text" json:"answer_text"`
	AnswerAudio  []byte     `gorm:"type:bytes" json:"-"`
	AnsweredAt   *time.Time `json:"answered_at"`
	AIScore      *int       `json:"ai_score"`
	AIEvaluation string     `gorm:"type:text" json:"ai_evaluation"`
	GradeFailed  bool       `gorm:"default:false" json:"grade_failed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Interview    Interview  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Answered reports whether the candidate has submitted an answer.
func (q InterviewQuestion) Answered() bool {
	return q.AnsweredAt != nil
}

// Graded reports whether the grader has persisted a result for the answer.
func (q InterviewQuestion) Graded() bool {
	return q.AIScore != nil
}
