package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/voxhire/voxhire-api/internal/events"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/pkg/ai"
	"github.com/voxhire/voxhire-api/pkg/resume"
)

// questionSetSchema validates the shape of a generated question set before it
// is persisted. Rubrics may come back as plain text or as a structured object.
const questionSetSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["question"],
		"properties": {
			"question": {"type": "string", "minLength": 1},
			"score_standard": {"type": ["string", "object"]}
		}
	}
}`

var compiledQuestionSetSchema = jsonschema.MustCompileString("question_set.json", questionSetSchema)

// QuestionGenerationService prepares interviews that are still waiting for
// their question set.
type QuestionGenerationService interface {
	// RunOnce processes every interview awaiting questions and returns how
	// many interviews it advanced.
	RunOnce(ctx context.Context) (int, error)
}

type questionGenerationService struct {
	interviews repository.InterviewRepository
	questions  repository.QuestionRepository
	client     ai.Client
	model      string
	count      int
	timeout    time.Duration
	publisher  *events.Publisher
	cache      *SnapshotCache
	logger     zerolog.Logger
}

// NewQuestionGenerationService constructs the question generation worker body.
func NewQuestionGenerationService(
	interviews repository.InterviewRepository,
	questions repository.QuestionRepository,
	client ai.Client,
	model string,
	count int,
	timeout time.Duration,
	publisher *events.Publisher,
	cache *SnapshotCache,
	logger zerolog.Logger,
) QuestionGenerationService {
	return &questionGenerationService{
		interviews: interviews,
		questions:  questions,
		client:     client,
		model:      model,
		count:      count,
		timeout:    timeout,
		publisher:  publisher,
		cache:      cache,
		logger:     logger.With().Str("component", "question_generation").Logger(),
	}
}

func (s *questionGenerationService) RunOnce(ctx context.Context) (int, error) {
	pending, err := s.interviews.ListByStatus(ctx, models.InterviewStatusCreated)
	if err != nil {
		return 0, fmt.Errorf("list pending interviews: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	s.logger.Info().Int("pending", len(pending)).Msg("generating questions for pending interviews")

	processed := 0
	for _, interview := range pending {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if s.processInterview(ctx, interview) {
			processed++
		}
	}
	return processed, nil
}

// processInterview generates and persists questions for one interview.
// Generation failures fall back to a fixed question set so an interview never
// stalls in the created state; persistence failures leave the interview
// untouched for the next cycle.
func (s *questionGenerationService) processInterview(ctx context.Context, interview models.Interview) bool {
	resumeText := resume.Extract(interview.Candidate.ResumeContent)
	position := interview.Candidate.Position

	generated, err := s.generate(ctx, position, resumeText)
	if err != nil {
		s.logger.Warn().Err(err).
			Uint("interview_id", interview.ID).
			Msg("question generation failed, using fallback question set")
		generated = fallbackQuestions()
	}

	questions := make([]models.InterviewQuestion, 0, len(generated))
	for _, q := range generated {
		questions = append(questions, models.InterviewQuestion{
			Question: q.Question,
			Rubric:   q.Rubric,
		})
	}

	claimed, err := s.questions.CreateBatchAndAdvance(ctx, interview.ID, questions)
	if err != nil {
		s.logger.Error().Err(err).
			Uint("interview_id", interview.ID).
			Msg("failed to persist generated questions")
		return false
	}
	if !claimed {
		s.logger.Debug().
			Uint("interview_id", interview.ID).
			Msg("interview already claimed by another worker")
		return false
	}

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Int("questions", len(questions)).
		Msg("interview questions ready")

	s.cache.Invalidate(ctx, interview.Token)
	s.publisher.Publish(events.EventQuestionsReady, events.InterviewEvent{
		InterviewID: interview.ID,
		Token:       interview.Token,
		Status:      models.InterviewStatusQuestionsReady,
	})
	return true
}

type generatedQuestion struct {
	Question string
	Rubric   string
}

func (s *questionGenerationService) generate(ctx context.Context, position models.Position, resumeText string) ([]generatedQuestion, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messages := []ai.Message{
		{
			Role: ai.RoleSystem,
			Content: "You are a professional technical interviewer. Generate targeted interview " +
				"questions from the position requirements and the candidate's resume, each with a " +
				"scoring rubric, and respond with valid JSON only.",
		},
		{
			Role: ai.RoleUser,
			Content: fmt.Sprintf(
				"Position: %s\nRequirements: %s\nResponsibilities: %s\nCandidate resume: %s\n\n"+
					"Generate %d interview questions with scoring rubrics. Respond as a JSON array of "+
					`objects shaped like {"question": "...", "score_standard": "..."}.`,
				position.Name, position.Requirements, position.Responsibilities, resumeText, s.count,
			),
		},
	}

	raw, err := s.client.Complete(ctx, s.model, messages, true)
	if err != nil {
		return nil, err
	}
	return parseQuestionSet(raw)
}

// parseQuestionSet accepts either a raw JSON array or an object wrapping the
// array under a "questions" key. Structured rubrics are re-serialized to text.
func parseQuestionSet(raw string) ([]generatedQuestion, error) {
	payload := []byte(strings.TrimSpace(raw))

	var wrapper struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(payload, &wrapper); err == nil && len(wrapper.Questions) > 0 {
		payload = wrapper.Questions
	}

	var value interface{}
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	if err := compiledQuestionSetSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("question set failed schema validation: %w", err)
	}

	var items []struct {
		Question string          `json:"question"`
		Rubric   json.RawMessage `json:"score_standard"`
	}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode question items: %w", err)
	}

	questions := make([]generatedQuestion, 0, len(items))
	for _, item := range items {
		questions = append(questions, generatedQuestion{
			Question: item.Question,
			Rubric:   rubricText(item.Rubric),
		})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	return questions, nil
}

func rubricText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

// fallbackQuestions is the fixed set persisted when generation fails, so the
// interview still becomes answerable.
func fallbackQuestions() []generatedQuestion {
	return []generatedQuestion{
		{
			Question: "Please introduce your professional background and core skills.",
			Rubric:   "clarity 5, relevance 5, depth 5",
		},
		{
			Question: "Why do you consider yourself a good fit for this position?",
			Rubric:   "role fit 5, self-awareness 5, articulation 5",
		},
		{
			Question: "Describe a difficult technical challenge you solved.",
			Rubric:   "complexity 5, approach 5, outcome 5",
		},
	}
}
