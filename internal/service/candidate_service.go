package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
)

// ErrCandidateNotFound indicates the candidate id resolves to no record.
var ErrCandidateNotFound = errors.New("candidate not found")

// ErrResumeNotFound indicates the candidate has no uploaded resume.
var ErrResumeNotFound = errors.New("resume not found")

// ErrUnsupportedResumeType indicates the uploaded resume is neither a PDF nor
// plain text.
var ErrUnsupportedResumeType = errors.New("unsupported resume file type")

// CandidateService manages candidate records and their resume documents.
type CandidateService interface {
	Create(ctx context.Context, payload dto.CandidateCreateRequest, resume []byte) (dto.CandidateResponse, error)
	Update(ctx context.Context, id uint, payload dto.CandidateUpdateRequest, resume []byte) (dto.CandidateResponse, error)
	GetByID(ctx context.Context, id uint) (dto.CandidateResponse, error)
	// GetResume returns the raw resume bytes and their detected MIME type.
	GetResume(ctx context.Context, id uint) ([]byte, string, error)
	List(ctx context.Context, positionID uint) ([]dto.CandidateResponse, error)
	Delete(ctx context.Context, id uint) error
}

type candidateService struct {
	candidates repository.CandidateRepository
	positions  repository.PositionRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewCandidateService constructs the candidate service.
func NewCandidateService(candidates repository.CandidateRepository, positions repository.PositionRepository, validator *validator.Validate, logger zerolog.Logger) CandidateService {
	return &candidateService{
		candidates: candidates,
		positions:  positions,
		validator:  validator,
		logger:     logger.With().Str("component", "candidate_service").Logger(),
	}
}

func (s *candidateService) Create(ctx context.Context, payload dto.CandidateCreateRequest, resume []byte) (dto.CandidateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CandidateResponse{}, err
	}
	if err := validateResumeType(resume); err != nil {
		return dto.CandidateResponse{}, err
	}

	if _, err := s.positions.GetByID(ctx, payload.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CandidateResponse{}, ErrPositionNotFound
		}
		return dto.CandidateResponse{}, err
	}

	candidate := models.Candidate{
		PositionID:    payload.PositionID,
		Name:          payload.Name,
		Email:         payload.Email,
		ResumeContent: resume,
	}
	if err := s.candidates.Create(ctx, &candidate); err != nil {
		return dto.CandidateResponse{}, err
	}

	s.logger.Info().
		Uint("candidate_id", candidate.ID).
		Bool("has_resume", candidate.HasResume()).
		Msg("candidate registered")

	return s.GetByID(ctx, candidate.ID)
}

func (s *candidateService) Update(ctx context.Context, id uint, payload dto.CandidateUpdateRequest, resume []byte) (dto.CandidateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CandidateResponse{}, err
	}
	if err := validateResumeType(resume); err != nil {
		return dto.CandidateResponse{}, err
	}

	if _, err := s.candidates.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CandidateResponse{}, ErrCandidateNotFound
		}
		return dto.CandidateResponse{}, err
	}

	fields := map[string]interface{}{}
	if payload.Name != nil {
		fields["name"] = *payload.Name
	}
	if payload.Email != nil {
		fields["email"] = *payload.Email
	}
	if payload.PositionID != nil {
		if _, err := s.positions.GetByID(ctx, *payload.PositionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CandidateResponse{}, ErrPositionNotFound
			}
			return dto.CandidateResponse{}, err
		}
		fields["position_id"] = *payload.PositionID
	}
	if len(resume) > 0 {
		fields["resume_content"] = resume
	}

	if err := s.candidates.UpdateFields(ctx, id, fields); err != nil {
		return dto.CandidateResponse{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *candidateService) GetByID(ctx context.Context, id uint) (dto.CandidateResponse, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CandidateResponse{}, ErrCandidateNotFound
		}
		return dto.CandidateResponse{}, err
	}
	return dto.NewCandidateResponse(candidate), nil
}

func (s *candidateService) GetResume(ctx context.Context, id uint) ([]byte, string, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCandidateNotFound
		}
		return nil, "", err
	}
	if !candidate.HasResume() {
		return nil, "", ErrResumeNotFound
	}
	return candidate.ResumeContent, mimetype.Detect(candidate.ResumeContent).String(), nil
}

func (s *candidateService) List(ctx context.Context, positionID uint) ([]dto.CandidateResponse, error) {
	candidates, err := s.candidates.List(ctx, positionID)
	if err != nil {
		return nil, err
	}
	return dto.NewCandidateListResponse(candidates), nil
}

func (s *candidateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.candidates.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}
	return s.candidates.Delete(ctx, id)
}

// validateResumeType accepts an absent resume, PDFs and plain-text documents.
func validateResumeType(resume []byte) error {
	if len(resume) == 0 {
		return nil
	}

	mime := mimetype.Detect(resume)
	for _, allowed := range []string{"application/pdf", "text/plain"} {
		if mime.Is(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedResumeType, mime.String())
}
