package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/pkg/ai"
)

// gradeFailedComment is persisted when grading gives up, alongside the
// grade_failed marker that separates a failed evaluation from a real zero.
const gradeFailedComment = "evaluation failed"

// GradingService scores one answered question against its rubric.
type GradingService interface {
	// GradeQuestion evaluates a single answer. It no-ops on unanswered or
	// missing questions and returns an error on transient failure so the
	// caller can retry.
	GradeQuestion(ctx context.Context, questionID uint) error
	// MarkFailed persists the failure result once retries are exhausted.
	MarkFailed(ctx context.Context, questionID uint) error
}

type gradingService struct {
	questions repository.QuestionRepository
	client    ai.Client
	model     string
	timeout   time.Duration
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewGradingService constructs the per-answer grader.
func NewGradingService(questions repository.QuestionRepository, client ai.Client, model string, timeout time.Duration, logger zerolog.Logger) GradingService {
	return &gradingService{
		questions: questions,
		client:    client,
		model:     model,
		timeout:   timeout,
		tracer:    otel.Tracer("github.com/voxhire/voxhire-api/internal/service/grading"),
		logger:    logger.With().Str("component", "grading_service").Logger(),
	}
}

func (s *gradingService) GradeQuestion(ctx context.Context, questionID uint) error {
	ctx, span := s.tracer.Start(ctx, "grading.question")
	span.SetAttributes(attribute.Int64("grading.question_id", int64(questionID)))
	defer span.End()

	question, err := s.questions.GetForGrading(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Uint("question_id", questionID).Msg("question vanished before grading")
			return nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "question_lookup_failed")
		return err
	}

	if strings.TrimSpace(question.AnswerText) == "" {
		span.SetAttributes(attribute.Bool("grading.empty_answer", true))
		return nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	positionName := question.Interview.Candidate.Position.Name
	messages := []ai.Message{{
		Role: ai.RoleUser,
		Content: fmt.Sprintf(
			"Evaluate this interview answer for the position: %s\n\n"+
				"Question: %s\nRubric: %s\nAnswer: %s\n\n"+
				`Return JSON: {"score": (0-100), "comments": "evaluation text"}`,
			positionName, question.Question, question.Rubric, question.AnswerText,
		),
	}}

	raw, err := s.client.Complete(ctx, s.model, messages, true)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model_call_failed")
		return fmt.Errorf("grade question %d: %w", questionID, err)
	}

	var result struct {
		Score    int    `json:"score"`
		Comments string `json:"comments"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_decode_failed")
		return fmt.Errorf("decode grading result for question %d: %w", questionID, err)
	}

	score := clampScore(result.Score)
	if err := s.questions.SaveGrade(ctx, questionID, score, result.Comments, false); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_persist_failed")
		return err
	}

	span.SetAttributes(attribute.Int("grading.score", score))
	s.logger.Info().Uint("question_id", questionID).Int("score", score).Msg("question graded")
	return nil
}

// MarkFailed records the zero score with the failure marker so the report
// worker and reviewers can tell a failed evaluation from a poor answer.
func (s *gradingService) MarkFailed(ctx context.Context, questionID uint) error {
	if err := s.questions.SaveGrade(ctx, questionID, 0, gradeFailedComment, true); err != nil {
		return err
	}
	s.logger.Error().Uint("question_id", questionID).Msg("grading abandoned after retries")
	return nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
