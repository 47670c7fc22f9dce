package dto

import (
	"time"

	"github.com/voxhire/voxhire-api/internal/models"
)

// PositionCreateRequest describes the payload for opening a new position.
type PositionCreateRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=120"`
	Requirements     string `json:"requirements" validate:"required,min=10"`
	Responsibilities string `json:"responsibilities" validate:"omitempty,max=8000"`
	Quantity         int    `json:"quantity" validate:"omitempty,min=1"`
	Recruiter        string `json:"recruiter" validate:"omitempty,max=120"`
}

// PositionUpdateRequest describes the payload for partially updating a position.
type PositionUpdateRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=2,max=120"`
	Requirements     *string `json:"requirements" validate:"omitempty,min=10"`
	Responsibilities *string `json:"responsibilities" validate:"omitempty,max=8000"`
	Quantity         *int    `json:"quantity" validate:"omitempty,min=1"`
	Status           *string `json:"status" validate:"omitempty,oneof=open paused closed"`
	Recruiter        *string `json:"recruiter" validate:"omitempty,max=120"`
}

// PositionResponse is the serialized representation of a position.
type PositionResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Requirements     string    `json:"requirements"`
	Responsibilities string    `json:"responsibilities"`
	Quantity         int       `json:"quantity"`
	Status           string    `json:"status"`
	Recruiter        string    `json:"recruiter"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewPositionResponse converts a position model into a DTO.
func NewPositionResponse(position models.Position) PositionResponse {
	return PositionResponse{
		ID:               position.ID,
		Name:             position.Name,
		Requirements:     position.Requirements,
		Responsibilities: position.Responsibilities,
		Quantity:         position.Quantity,
		Status:           position.Status,
		Recruiter:        position.Recruiter,
		CreatedAt:        position.CreatedAt,
		UpdatedAt:        position.UpdatedAt,
	}
}

// NewPositionListResponse converts a slice of position models.
func NewPositionListResponse(positions []models.Position) []PositionResponse {
	items := make([]PositionResponse, 0, len(positions))
	for _, position := range positions {
		items = append(items, NewPositionResponse(position))
	}
	return items
}
