package dto

import (
	"time"

	"github.com/voxhire/voxhire-api/internal/models"
)

// InterviewCreateRequest describes the payload for scheduling an interview.
type InterviewCreateRequest struct {
	CandidateID uint   `json:"candidate_id" validate:"required,min=1"`
	Interviewer string `json:"interviewer" validate:"omitempty,max=120"`
	StartTime   string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// InterviewUpdateRequest captures partial update payloads for interviews.
type InterviewUpdateRequest struct {
	Interviewer *string `json:"interviewer" validate:"omitempty,max=120"`
	StartTime   *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsPassed    *bool   `json:"is_passed"`
}

// InterviewResponse is the serialized representation returned to admins.
type InterviewResponse struct {
	ID             uint       `json:"id"`
	CandidateID    uint       `json:"candidate_id"`
	CandidateName  string     `json:"candidate_name,omitempty"`
	PositionName   string     `json:"position_name,omitempty"`
	Interviewer    string     `json:"interviewer"`
	StartTime      *time.Time `json:"start_time"`
	Status         int        `json:"status"`
	IsPassed       bool       `json:"is_passed"`
	Token          string     `json:"token"`
	QuestionCount  int        `json:"question_count"`
	VoiceReading   bool       `json:"voice_reading"`
	ReportPath     string     `json:"report_path,omitempty"`
	ReportDegraded bool       `json:"report_degraded"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewInterviewResponse converts an interview model into a DTO.
func NewInterviewResponse(interview models.Interview) InterviewResponse {
	resp := InterviewResponse{
		ID:             interview.ID,
		CandidateID:    interview.CandidateID,
		Interviewer:    interview.Interviewer,
		StartTime:      interview.StartTime,
		Status:         interview.Status,
		IsPassed:       interview.IsPassed,
		Token:          interview.Token,
		QuestionCount:  interview.QuestionCount,
		VoiceReading:   interview.VoiceReading,
		ReportPath:     interview.ReportPath,
		ReportDegraded: interview.ReportDegraded,
		CreatedAt:      interview.CreatedAt,
		UpdatedAt:      interview.UpdatedAt,
	}
	if interview.Candidate.ID != 0 {
		resp.CandidateName = interview.Candidate.Name
		if interview.Candidate.Position.ID != 0 {
			resp.PositionName = interview.Candidate.Position.Name
		}
	}
	return resp
}

// NewInterviewListResponse converts a slice of interview models.
func NewInterviewListResponse(interviews []models.Interview) []InterviewResponse {
	items := make([]InterviewResponse, 0, len(interviews))
	for _, interview := range interviews {
		items = append(items, NewInterviewResponse(interview))
	}
	return items
}

// InterviewInfoResponse is the candidate-facing session snapshot keyed by token.
type InterviewInfoResponse struct {
	InterviewID   uint       `json:"interview_id"`
	CandidateName string     `json:"candidate_name"`
	PositionName  string     `json:"position_name"`
	Interviewer   string     `json:"interviewer"`
	StartTime     *time.Time `json:"start_time"`
	Status        int        `json:"status"`
	QuestionCount int        `json:"question_count"`
	VoiceReading  bool       `json:"voice_reading"`
}

// NewInterviewInfoResponse builds the candidate-facing snapshot.
func NewInterviewInfoResponse(interview models.Interview) InterviewInfoResponse {
	resp := InterviewInfoResponse{
		InterviewID:   interview.ID,
		Interviewer:   interview.Interviewer,
		StartTime:     interview.StartTime,
		Status:        interview.Status,
		QuestionCount: interview.QuestionCount,
		VoiceReading:  interview.VoiceReading,
	}
	if interview.Candidate.ID != 0 {
		resp.CandidateName = interview.Candidate.Name
		if interview.Candidate.Position.ID != 0 {
			resp.PositionName = interview.Candidate.Position.Name
		}
	}
	return resp
}

// NextQuestionResponse carries one question to the candidate. An ID of zero
// with the completion text signals that no questions remain.
type NextQuestionResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// SubmitAnswerResponse acknowledges an answer upload and carries the next
// question to ask, or the terminal sentinel when none remains.
type SubmitAnswerResponse struct {
	QuestionID   uint                 `json:"question_id"`
	Transcript   string               `json:"transcript"`
	Completed    bool                 `json:"completed"`
	NextQuestion NextQuestionResponse `json:"next_question"`
}

// ToggleVoiceReadingRequest flips the voice reading preference for a session.
type ToggleVoiceReadingRequest struct {
	Enabled bool `json:"enabled"`
}
