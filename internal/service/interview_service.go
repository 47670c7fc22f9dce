package service

import (
	"context"
	"errors"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/events"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/pkg/speech"
)

// ErrInterviewNotFound indicates the token or id resolves to no interview.
var ErrInterviewNotFound = errors.New("interview not found")

// ErrQuestionNotFound indicates the question does not belong to the interview.
var ErrQuestionNotFound = errors.New("question not found for interview")

// ErrMissingAnswer indicates the submission lacked a question id or audio payload.
var ErrMissingAnswer = errors.New("question id and audio answer are required")

// terminalQuestionText is returned once no unanswered question remains.
const terminalQuestionText = "interview complete"

// InterviewSessionService is the candidate-facing surface, addressed entirely
// by the opaque access token.
type InterviewSessionService interface {
	GetInfo(ctx context.Context, token string) (dto.InterviewInfoResponse, error)
	NextQuestion(ctx context.Context, token string, currentID uint) (dto.NextQuestionResponse, error)
	SubmitAnswer(ctx context.Context, token string, questionID uint, audio []byte) (dto.SubmitAnswerResponse, error)
	SetVoiceReading(ctx context.Context, token string, enabled bool) error
}

type interviewSessionService struct {
	interviews  repository.InterviewRepository
	questions   repository.QuestionRepository
	transcriber speech.Transcriber
	dispatcher  GradingDispatcher
	publisher   *events.Publisher
	cache       *SnapshotCache
	logger      zerolog.Logger
	now         func() time.Time
}

// NewInterviewSessionService constructs the candidate session service. The
// snapshot cache may be nil, which disables caching.
func NewInterviewSessionService(
	interviews repository.InterviewRepository,
	questions repository.QuestionRepository,
	transcriber speech.Transcriber,
	dispatcher GradingDispatcher,
	publisher *events.Publisher,
	cache *SnapshotCache,
	logger zerolog.Logger,
) InterviewSessionService {
	return &interviewSessionService{
		interviews:  interviews,
		questions:   questions,
		transcriber: transcriber,
		dispatcher:  dispatcher,
		publisher:   publisher,
		cache:       cache,
		logger:      logger.With().Str("component", "interview_session").Logger(),
		now:         time.Now,
	}
}

func (s *interviewSessionService) GetInfo(ctx context.Context, token string) (dto.InterviewInfoResponse, error) {
	if snapshot, ok := s.cache.Get(ctx, token); ok {
		return snapshot, nil
	}

	interview, err := s.interviews.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewInfoResponse{}, ErrInterviewNotFound
		}
		return dto.InterviewInfoResponse{}, err
	}

	snapshot := dto.NewInterviewInfoResponse(interview)
	s.cache.Put(ctx, token, snapshot)
	return snapshot, nil
}

// NextQuestion returns the question with the smallest id greater than
// currentID; currentID 0 asks for the first question. The terminal sentinel
// carries id 0 once no question remains.
func (s *interviewSessionService) NextQuestion(ctx context.Context, token string, currentID uint) (dto.NextQuestionResponse, error) {
	interview, err := s.interviews.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NextQuestionResponse{}, ErrInterviewNotFound
		}
		return dto.NextQuestionResponse{}, err
	}

	question, err := s.questions.NextAfter(ctx, interview.ID, currentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NextQuestionResponse{ID: 0, Text: terminalQuestionText}, nil
		}
		return dto.NextQuestionResponse{}, err
	}

	return dto.NextQuestionResponse{ID: question.ID, Text: question.Question}, nil
}

// SubmitAnswer transcribes and persists one answer, dispatches grading for it
// and reports the next question. When the last question is answered the
// interview advances to completed.
func (s *interviewSessionService) SubmitAnswer(ctx context.Context, token string, questionID uint, audio []byte) (dto.SubmitAnswerResponse, error) {
	if questionID == 0 || len(audio) == 0 {
		return dto.SubmitAnswerResponse{}, ErrMissingAnswer
	}

	interview, err := s.interviews.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmitAnswerResponse{}, ErrInterviewNotFound
		}
		return dto.SubmitAnswerResponse{}, err
	}

	s.logger.Debug().
		Uint("question_id", questionID).
		Str("mime", mimetype.Detect(audio).String()).
		Int("bytes", len(audio)).
		Msg("answer audio received")

	transcript := s.transcriber.Transcribe(ctx, audio)

	saved, err := s.questions.SaveAnswer(ctx, questionID, interview.ID, transcript, audio, s.now())
	if err != nil {
		return dto.SubmitAnswerResponse{}, err
	}
	if !saved {
		return dto.SubmitAnswerResponse{}, ErrQuestionNotFound
	}

	if !s.dispatcher.Enqueue(questionID) {
		s.logger.Warn().
			Uint("question_id", questionID).
			Msg("grading queue full, answer will not be graded")
	}

	next := dto.NextQuestionResponse{ID: 0, Text: terminalQuestionText}
	completed := false

	question, err := s.questions.NextAfter(ctx, interview.ID, questionID)
	switch {
	case err == nil:
		next = dto.NextQuestionResponse{ID: question.ID, Text: question.Question}
	case errors.Is(err, gorm.ErrRecordNotFound):
		completed, err = s.finishIfComplete(ctx, interview)
		if err != nil {
			return dto.SubmitAnswerResponse{}, err
		}
	default:
		return dto.SubmitAnswerResponse{}, err
	}

	return dto.SubmitAnswerResponse{
		QuestionID:   questionID,
		Transcript:   transcript,
		Completed:    completed,
		NextQuestion: next,
	}, nil
}

// finishIfComplete advances the interview once every question is answered.
// The conditional status update keeps the transition single-shot when answers
// land concurrently.
func (s *interviewSessionService) finishIfComplete(ctx context.Context, interview models.Interview) (bool, error) {
	counts, err := s.questions.Counts(ctx, interview.ID)
	if err != nil {
		return false, err
	}
	if !counts.Complete() {
		return false, nil
	}

	claimed, err := s.interviews.AdvanceStatus(ctx, interview.ID, models.InterviewStatusQuestionsReady, models.InterviewStatusCompleted)
	if err != nil {
		return true, err
	}
	if claimed {
		s.cache.Invalidate(ctx, interview.Token)
		s.publisher.Publish(events.EventCompleted, events.InterviewEvent{
			InterviewID: interview.ID,
			Token:       interview.Token,
			Status:      models.InterviewStatusCompleted,
		})
		s.logger.Info().Uint("interview_id", interview.ID).Msg("interview completed")
	}
	return true, nil
}

func (s *interviewSessionService) SetVoiceReading(ctx context.Context, token string, enabled bool) error {
	updated, err := s.interviews.SetVoiceReading(ctx, token, enabled)
	if err != nil {
		return err
	}
	if !updated {
		return ErrInterviewNotFound
	}
	s.cache.Invalidate(ctx, token)
	return nil
}
