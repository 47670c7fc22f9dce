package dto

import (
	"time"

	"github.com/voxhire/voxhire-api/internal/models"
)

// CandidateCreateRequest describes the multipart payload for registering a
// candidate. The resume file, when present, arrives as a separate form part.
type CandidateCreateRequest struct {
	Name       string `form:"name" json:"name" validate:"required,min=2,max=120"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	PositionID uint   `form:"position_id" json:"position_id" validate:"required,min=1"`
}

// CandidateUpdateRequest captures partial update payloads for candidates.
type CandidateUpdateRequest struct {
	Name       *string `form:"name" json:"name" validate:"omitempty,min=2,max=120"`
	Email      *string `form:"email" json:"email" validate:"omitempty,email"`
	PositionID *uint   `form:"position_id" json:"position_id" validate:"omitempty,min=1"`
}

// CandidateResponse is the serialized representation of a candidate.
type CandidateResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PositionID   uint      `json:"position_id"`
	PositionName string    `json:"position_name,omitempty"`
	HasResume    bool      `json:"has_resume"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCandidateResponse converts a candidate model into a DTO.
func NewCandidateResponse(candidate models.Candidate) CandidateResponse {
	resp := CandidateResponse{
		ID:         candidate.ID,
		Name:       candidate.Name,
		Email:      candidate.Email,
		PositionID: candidate.PositionID,
		HasResume:  candidate.HasResume(),
		CreatedAt:  candidate.CreatedAt,
		UpdatedAt:  candidate.UpdatedAt,
	}
	if candidate.Position.ID != 0 {
		resp.PositionName = candidate.Position.Name
	}
	return resp
}

// NewCandidateListResponse converts a slice of candidate models.
func NewCandidateListResponse(candidates []models.Candidate) []CandidateResponse {
	items := make([]CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, NewCandidateResponse(candidate))
	}
	return items
}
