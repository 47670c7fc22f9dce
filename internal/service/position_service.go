package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
)

// ErrPositionNotFound indicates the position id resolves to no record.
var ErrPositionNotFound = errors.New("position not found")

// PositionService manages job positions for the admin surface.
type PositionService interface {
	Create(ctx context.Context, payload dto.PositionCreateRequest) (dto.PositionResponse, error)
	Update(ctx context.Context, id uint, payload dto.PositionUpdateRequest) (dto.PositionResponse, error)
	GetByID(ctx context.Context, id uint) (dto.PositionResponse, error)
	List(ctx context.Context) ([]dto.PositionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type positionService struct {
	repo      repository.PositionRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPositionService constructs the position service.
func NewPositionService(repo repository.PositionRepository, validator *validator.Validate, logger zerolog.Logger) PositionService {
	return &positionService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "position_service").Logger(),
	}
}

func (s *positionService) Create(ctx context.Context, payload dto.PositionCreateRequest) (dto.PositionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PositionResponse{}, err
	}

	quantity := payload.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	position := models.Position{
		Name:             payload.Name,
		Requirements:     payload.Requirements,
		Responsibilities: payload.Responsibilities,
		Quantity:         quantity,
		Status:           models.PositionStatusOpen,
		Recruiter:        payload.Recruiter,
	}
	if err := s.repo.Create(ctx, &position); err != nil {
		return dto.PositionResponse{}, err
	}

	s.logger.Info().Uint("position_id", position.ID).Str("name", position.Name).Msg("position created")
	return dto.NewPositionResponse(position), nil
}

func (s *positionService) Update(ctx context.Context, id uint, payload dto.PositionUpdateRequest) (dto.PositionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PositionResponse{}, err
	}

	position, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PositionResponse{}, ErrPositionNotFound
		}
		return dto.PositionResponse{}, err
	}

	if payload.Name != nil {
		position.Name = *payload.Name
	}
	if payload.Requirements != nil {
		position.Requirements = *payload.Requirements
	}
	if payload.Responsibilities != nil {
		position.Responsibilities = *payload.Responsibilities
	}
	if payload.Quantity != nil {
		position.Quantity = *payload.Quantity
	}
	if payload.Status != nil {
		position.Status = *payload.Status
	}
	if payload.Recruiter != nil {
		position.Recruiter = *payload.Recruiter
	}

	if err := s.repo.Update(ctx, &position); err != nil {
		return dto.PositionResponse{}, err
	}
	return dto.NewPositionResponse(position), nil
}

func (s *positionService) GetByID(ctx context.Context, id uint) (dto.PositionResponse, error) {
	position, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PositionResponse{}, ErrPositionNotFound
		}
		return dto.PositionResponse{}, err
	}
	return dto.NewPositionResponse(position), nil
}

func (s *positionService) List(ctx context.Context) ([]dto.PositionResponse, error) {
	positions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPositionListResponse(positions), nil
}

func (s *positionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
