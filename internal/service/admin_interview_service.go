package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/internal/utils"
)

// ErrReportNotReady indicates the interview has not produced a report yet.
var ErrReportNotReady = errors.New("interview report not ready")

// AdminInterviewService manages interview records for the admin surface.
type AdminInterviewService interface {
	Create(ctx context.Context, payload dto.InterviewCreateRequest) (dto.InterviewResponse, error)
	Update(ctx context.Context, id uint, payload dto.InterviewUpdateRequest) (dto.InterviewResponse, error)
	GetByID(ctx context.Context, id uint) (dto.InterviewResponse, error)
	List(ctx context.Context) ([]dto.InterviewResponse, error)
	Delete(ctx context.Context, id uint) error
	// GetReport returns the stored report artifact and its filesystem path.
	GetReport(ctx context.Context, id uint) ([]byte, string, error)
}

type adminInterviewService struct {
	interviews repository.InterviewRepository
	candidates repository.CandidateRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewAdminInterviewService constructs the admin interview service.
func NewAdminInterviewService(interviews repository.InterviewRepository, candidates repository.CandidateRepository, validator *validator.Validate, logger zerolog.Logger) AdminInterviewService {
	return &adminInterviewService{
		interviews: interviews,
		candidates: candidates,
		validator:  validator,
		logger:     logger.With().Str("component", "admin_interview_service").Logger(),
	}
}

func (s *adminInterviewService) Create(ctx context.Context, payload dto.InterviewCreateRequest) (dto.InterviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewResponse{}, err
	}

	if _, err := s.candidates.GetByID(ctx, payload.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrCandidateNotFound
		}
		return dto.InterviewResponse{}, err
	}

	startTime, err := parseStartTime(payload.StartTime)
	if err != nil {
		return dto.InterviewResponse{}, err
	}

	interview := models.Interview{
		CandidateID: payload.CandidateID,
		Interviewer: payload.Interviewer,
		StartTime:   startTime,
		Status:      models.InterviewStatusCreated,
		Token:       utils.NewAccessToken(),
	}
	if err := s.interviews.Create(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Uint("candidate_id", interview.CandidateID).
		Msg("interview scheduled")

	return s.GetByID(ctx, interview.ID)
}

func (s *adminInterviewService) Update(ctx context.Context, id uint, payload dto.InterviewUpdateRequest) (dto.InterviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewResponse{}, err
	}

	if _, err := s.interviews.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewResponse{}, err
	}

	// Patch only the edited columns. Status belongs to the pipeline workers
	// and must never ride along on an admin edit.
	fields := map[string]interface{}{}
	if payload.Interviewer != nil {
		fields["interviewer"] = *payload.Interviewer
	}
	if payload.StartTime != nil {
		startTime, err := parseStartTime(*payload.StartTime)
		if err != nil {
			return dto.InterviewResponse{}, err
		}
		fields["start_time"] = startTime
	}
	if payload.IsPassed != nil {
		fields["is_passed"] = *payload.IsPassed
	}

	if err := s.interviews.UpdateFields(ctx, id, fields); err != nil {
		return dto.InterviewResponse{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *adminInterviewService) GetByID(ctx context.Context, id uint) (dto.InterviewResponse, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewResponse{}, err
	}
	return dto.NewInterviewResponse(interview), nil
}

func (s *adminInterviewService) List(ctx context.Context) ([]dto.InterviewResponse, error) {
	interviews, err := s.interviews.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewInterviewListResponse(interviews), nil
}

// Delete removes the interview and its questions in one transaction.
func (s *adminInterviewService) Delete(ctx context.Context, id uint) error {
	if _, err := s.interviews.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInterviewNotFound
		}
		return err
	}
	return s.interviews.Delete(ctx, id)
}

func (s *adminInterviewService) GetReport(ctx context.Context, id uint) ([]byte, string, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInterviewNotFound
		}
		return nil, "", err
	}
	if !interview.HasReport() {
		return nil, "", ErrReportNotReady
	}
	return interview.ReportContent, interview.ReportPath, nil
}

func parseStartTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	return &parsed, nil
}
