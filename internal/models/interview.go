package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interview lifecycle states. The status only moves forward; code 2 is
// reserved and never persisted.
const (
	InterviewStatusCreated        = 0
	InterviewStatusQuestionsReady = 1
	InterviewStatusCompleted      = 3
	InterviewStatusReportReady    = 4
)

// Interview tracks one candidate's interview session through the pipeline.
// The token is the capability credential handed to the candidate; no other
// authentication exists on the candidate-facing surface.
type Interview struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	CandidateID      uint                `gorm:"not null;index" json:"candidate_id"`
	Interviewer      string              `gorm:"size:255" json:"interviewer"`
	StartTime        *time.Time          `json:"start_time"`
	Status           int                 `gorm:"not null;default:0;index" json:"status"`
	IsPassed         bool                `gorm:"default:false" json:"is_passed"`
	Token            string              `gorm:"size:64;uniqueIndex;not null" json:"token"`
	QuestionCount    int                 `gorm:"default:0" json:"question_count"`
	VoiceReading     bool                `gorm:"default:false" json:"voice_reading"`
	ReportContent    []byte              `gorm:"type:bytes" json:"-"`
	ReportPath       string              `gorm:"size:512" json:"report_path"`
	ReportEvaluation datatypes.JSONMap   `json:"report_evaluation,omitempty"`
	ReportDegraded   bool                `gorm:"default:false" json:"report_degraded"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Candidate        Candidate           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Questions        []InterviewQuestion `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// ReportArtifact bundles the synthesis output persisted onto an interview in
// one update. Degraded marks reports produced from the placeholder evaluation
// after the whole model chain failed.
type ReportArtifact struct {
	Content    []byte
	Path       string
	Evaluation map[string]interface{}
	Degraded   bool
}

// HasReport reports whether a report artifact has been produced.
func (i Interview) HasReport() bool {
	return i.Status == InterviewStatusReportReady && (len(i.ReportContent) > 0 || i.ReportPath != "")
}
