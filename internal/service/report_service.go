package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/events"
	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/pkg/ai"
	"github.com/voxhire/voxhire-api/pkg/report"
)

// ReportSynthesisService turns completed interviews into evaluation reports.
type ReportSynthesisService interface {
	// RunOnce processes every completed interview awaiting a report and
	// returns how many reports it produced.
	RunOnce(ctx context.Context) (int, error)
}

type reportSynthesisService struct {
	interviews repository.InterviewRepository
	questions  repository.QuestionRepository
	client     ai.Client
	modelChain []string
	renderer   report.Renderer
	reportDir  string
	timeout    time.Duration
	publisher  *events.Publisher
	cache      *SnapshotCache
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReportSynthesisService constructs the report synthesis worker body.
func NewReportSynthesisService(
	interviews repository.InterviewRepository,
	questions repository.QuestionRepository,
	client ai.Client,
	modelChain []string,
	renderer report.Renderer,
	reportDir string,
	timeout time.Duration,
	publisher *events.Publisher,
	cache *SnapshotCache,
	logger zerolog.Logger,
) ReportSynthesisService {
	return &reportSynthesisService{
		interviews: interviews,
		questions:  questions,
		client:     client,
		modelChain: modelChain,
		renderer:   renderer,
		reportDir:  reportDir,
		timeout:    timeout,
		publisher:  publisher,
		cache:      cache,
		logger:     logger.With().Str("component", "report_synthesis").Logger(),
		now:        time.Now,
	}
}

func (s *reportSynthesisService) RunOnce(ctx context.Context) (int, error) {
	completed, err := s.interviews.ListByStatus(ctx, models.InterviewStatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("list completed interviews: %w", err)
	}
	if len(completed) == 0 {
		return 0, nil
	}

	s.logger.Info().Int("completed", len(completed)).Msg("synthesizing reports for completed interviews")

	processed := 0
	for _, interview := range completed {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if s.processInterview(ctx, interview) {
			processed++
		}
	}
	return processed, nil
}

func (s *reportSynthesisService) processInterview(ctx context.Context, interview models.Interview) bool {
	questions, err := s.questions.ListByInterview(ctx, interview.ID)
	if err != nil {
		s.logger.Error().Err(err).Uint("interview_id", interview.ID).Msg("failed to load interview questions")
		return false
	}

	evaluation, degraded := s.evaluate(ctx, interview, questions)

	now := s.now()
	data := report.Data{
		CandidateName: interview.Candidate.Name,
		Position:      interview.Candidate.Position.Name,
		Interviewer:   interview.Interviewer,
		InterviewDate: now.Format("2006-01-02"),
		InterviewID:   interview.ID,
		Evaluation:    evaluation,
	}

	content, err := s.renderer.Render(ctx, data)
	if err != nil {
		s.logger.Error().Err(err).Uint("interview_id", interview.ID).Msg("report rendering failed")
		return false
	}

	path := s.writeArtifact(interview, content, now)

	artifact := models.ReportArtifact{
		Content:    content,
		Path:       path,
		Evaluation: evaluationMap(evaluation),
		Degraded:   degraded,
	}

	claimed, err := s.interviews.SaveReport(ctx, interview.ID, artifact, models.InterviewStatusCompleted, models.InterviewStatusReportReady)
	if err != nil {
		s.logger.Error().Err(err).Uint("interview_id", interview.ID).Msg("failed to persist report")
		return false
	}
	if !claimed {
		s.logger.Debug().Uint("interview_id", interview.ID).Msg("interview already claimed by another worker")
		return false
	}

	s.logger.Info().
		Uint("interview_id", interview.ID).
		Str("path", path).
		Bool("degraded", degraded).
		Msg("interview report ready")

	s.cache.Invalidate(ctx, interview.Token)
	s.publisher.Publish(events.EventReportReady, events.InterviewEvent{
		InterviewID: interview.ID,
		Token:       interview.Token,
		Status:      models.InterviewStatusReportReady,
	})
	return true
}

// evaluate produces the structured verdict. When every question already
// carries a grade, only an aggregate summary is requested from the model;
// otherwise the whole interview is evaluated in one shot. Exhausting the
// model chain yields the placeholder verdict with the degraded marker set.
func (s *reportSynthesisService) evaluate(ctx context.Context, interview models.Interview, questions []models.InterviewQuestion) (report.Evaluation, bool) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	preGraded := len(questions) > 0
	for _, q := range questions {
		if !q.Graded() {
			preGraded = false
			break
		}
	}

	var (
		raw string
		err error
	)
	precomputed := precomputedEvaluations(questions)
	if preGraded {
		raw, err = s.summarize(ctx, interview, precomputed)
	} else {
		raw, err = s.fullEvaluation(ctx, interview, questions)
	}
	if err != nil {
		s.logger.Error().Err(err).Uint("interview_id", interview.ID).Msg("all models failed, using placeholder evaluation")
		return placeholderEvaluation(precomputed), true
	}

	var evaluation report.Evaluation
	if err := json.Unmarshal([]byte(raw), &evaluation); err != nil {
		s.logger.Error().Err(err).Uint("interview_id", interview.ID).Msg("evaluation decode failed, using placeholder evaluation")
		return placeholderEvaluation(precomputed), true
	}

	if preGraded {
		evaluation.QuestionEvaluations = precomputed
	}
	return evaluation, false
}

func (s *reportSynthesisService) summarize(ctx context.Context, interview models.Interview, precomputed []report.QuestionEvaluation) (string, error) {
	evals, err := json.Marshal(precomputed)
	if err != nil {
		return "", err
	}

	messages := []ai.Message{{
		Role: ai.RoleUser,
		Content: fmt.Sprintf(
			"Generate a comprehensive interview report summary for:\nCandidate: %s\nPosition: %s\n\n"+
				"Based on the following question evaluations:\n%s\n\n"+
				"Provide a professional, detailed evaluation with no blank fields. Return JSON shaped like:\n"+
				`{"technical_score": (0-100), "technical_evaluation": "...", "communication_score": (0-100), `+
				`"communication_evaluation": "...", "overall_score": (0-100), "overall_evaluation": "...", `+
				`"strengths": ["..."], "weaknesses": ["..."], `+
				`"recommendation": "Strongly Hire / Hire / Weak Hire / No Hire", "recommendation_reason": "..."}`,
			interview.Candidate.Name, interview.Candidate.Position.Name, evals,
		),
	}}

	return ai.CompleteWithFallback(ctx, s.client, s.modelChain, messages, true, s.logger)
}

func (s *reportSynthesisService) fullEvaluation(ctx context.Context, interview models.Interview, questions []models.InterviewQuestion) (string, error) {
	prompt := fmt.Sprintf(
		"You are a senior interview assessor. Evaluate the performance of candidate %q "+
			"interviewing for the %q position. Interviewer: %s\n\n"+
			"Interview transcript:\n",
		interview.Candidate.Name, interview.Candidate.Position.Name, interview.Interviewer,
	)
	for i, q := range questions {
		answer := q.AnswerText
		if answer == "" {
			answer = "no answer provided"
		}
		prompt += fmt.Sprintf("Question %d: %s\nRubric: %s\nAnswer: %s\n\n", i+1, q.Question, q.Rubric, answer)
	}
	prompt += "Return JSON with all of the following fields populated:\n" +
		`{"question_evaluations": [{"id": 1, "question": "...", "rubric": "...", "answer": "...", "score": (0-100), "comments": "..."}], ` +
		`"technical_score": (0-100), "technical_evaluation": "...", "communication_score": (0-100), ` +
		`"communication_evaluation": "...", "overall_score": (0-100), "overall_evaluation": "...", ` +
		`"strengths": ["..."], "weaknesses": ["..."], ` +
		`"recommendation": "Strongly Hire / Hire / Weak Hire / No Hire", "recommendation_reason": "..."}`

	messages := []ai.Message{
		{
			Role: ai.RoleSystem,
			Content: "You are a professional recruiting interviewer. Your assessment feeds the final " +
				"hiring decision, so be objective, professional and thorough.",
		},
		{Role: ai.RoleUser, Content: prompt},
	}

	return ai.CompleteWithFallback(ctx, s.client, s.modelChain, messages, true, s.logger)
}

func (s *reportSynthesisService) writeArtifact(interview models.Interview, content []byte, now time.Time) string {
	path := report.ArtifactPath(s.reportDir, interview.ID, interview.Candidate.Name, now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to create report directory")
		return ""
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to write report file")
		return ""
	}
	return path
}

func precomputedEvaluations(questions []models.InterviewQuestion) []report.QuestionEvaluation {
	evals := make([]report.QuestionEvaluation, 0, len(questions))
	for i, q := range questions {
		if !q.Graded() {
			continue
		}
		evals = append(evals, report.QuestionEvaluation{
			ID:       i + 1,
			Question: q.Question,
			Rubric:   q.Rubric,
			Answer:   q.AnswerText,
			Score:    *q.AIScore,
			Comments: q.AIEvaluation,
		})
	}
	return evals
}

// placeholderEvaluation is the terminal fallback once the whole model chain
// has failed: zero scores and a pending recommendation, so the report is
// recognizably degraded rather than silently plausible.
func placeholderEvaluation(precomputed []report.QuestionEvaluation) report.Evaluation {
	return report.Evaluation{
		TechnicalScore:          0,
		TechnicalEvaluation:     "Evaluation unavailable.",
		CommunicationScore:      0,
		CommunicationEvaluation: "Evaluation unavailable.",
		OverallScore:            0,
		OverallEvaluation:       "Evaluation unavailable.",
		Strengths:               []string{},
		Weaknesses:              []string{},
		Recommendation:          "Pending",
		RecommendationReason:    "Automatic evaluation failed; manual review required.",
		QuestionEvaluations:     precomputed,
	}
}

func evaluationMap(evaluation report.Evaluation) map[string]interface{} {
	data, err := json.Marshal(evaluation)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
