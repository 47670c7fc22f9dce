package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/internal/repository"
	"github.com/voxhire/voxhire-api/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// fakeInterviewRepo is an in-memory InterviewRepository.
type fakeInterviewRepo struct {
	interviews map[uint]*models.Interview
	nextID     uint

	advanceCalls    int
	saveReportCalls int
	lastArtifact    models.ReportArtifact
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: map[uint]*models.Interview{}, nextID: 1}
}

func (f *fakeInterviewRepo) add(interview models.Interview) models.Interview {
	if interview.ID == 0 {
		interview.ID = f.nextID
		f.nextID++
	}
	stored := interview
	f.interviews[interview.ID] = &stored
	return stored
}

func (f *fakeInterviewRepo) Create(ctx context.Context, interview *models.Interview) error {
	*interview = f.add(*interview)
	return nil
}

func (f *fakeInterviewRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	interview, ok := f.interviews[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "interviewer":
			interview.Interviewer = value.(string)
		case "start_time":
			interview.StartTime = value.(*time.Time)
		case "is_passed":
			interview.IsPassed = value.(bool)
		}
	}
	return nil
}

func (f *fakeInterviewRepo) GetByID(ctx context.Context, id uint) (models.Interview, error) {
	if interview, ok := f.interviews[id]; ok {
		return *interview, nil
	}
	return models.Interview{}, gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) GetByToken(ctx context.Context, token string) (models.Interview, error) {
	for _, interview := range f.interviews {
		if interview.Token == token {
			return *interview, nil
		}
	}
	return models.Interview{}, gorm.ErrRecordNotFound
}

func (f *fakeInterviewRepo) List(ctx context.Context) ([]models.Interview, error) {
	return f.listWhere(func(models.Interview) bool { return true }), nil
}

func (f *fakeInterviewRepo) ListByStatus(ctx context.Context, status int) ([]models.Interview, error) {
	return f.listWhere(func(i models.Interview) bool { return i.Status == status }), nil
}

func (f *fakeInterviewRepo) listWhere(match func(models.Interview) bool) []models.Interview {
	out := make([]models.Interview, 0, len(f.interviews))
	for _, interview := range f.interviews {
		if match(*interview) {
			out = append(out, *interview)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeInterviewRepo) AdvanceStatus(ctx context.Context, id uint, from, to int) (bool, error) {
	f.advanceCalls++
	interview, ok := f.interviews[id]
	if !ok || interview.Status != from {
		return false, nil
	}
	interview.Status = to
	return true, nil
}

func (f *fakeInterviewRepo) SetVoiceReading(ctx context.Context, token string, enabled bool) (bool, error) {
	for _, interview := range f.interviews {
		if interview.Token == token {
			interview.VoiceReading = enabled
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInterviewRepo) SaveReport(ctx context.Context, id uint, report models.ReportArtifact, from, to int) (bool, error) {
	f.saveReportCalls++
	interview, ok := f.interviews[id]
	if !ok || interview.Status != from {
		return false, nil
	}
	interview.Status = to
	interview.ReportContent = report.Content
	interview.ReportPath = report.Path
	interview.ReportDegraded = report.Degraded
	f.lastArtifact = report
	return true, nil
}

func (f *fakeInterviewRepo) Delete(ctx context.Context, id uint) error {
	delete(f.interviews, id)
	return nil
}

var _ repository.InterviewRepository = (*fakeInterviewRepo)(nil)

// fakeQuestionRepo is an in-memory QuestionRepository.
type fakeQuestionRepo struct {
	questions map[uint]*models.InterviewQuestion
	nextID    uint
	owner     *fakeInterviewRepo

	batchCalls int
	claimBatch bool
	gradeCalls int
}

func newFakeQuestionRepo(owner *fakeInterviewRepo) *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions:  map[uint]*models.InterviewQuestion{},
		nextID:     1,
		owner:      owner,
		claimBatch: true,
	}
}

func (f *fakeQuestionRepo) add(question models.InterviewQuestion) models.InterviewQuestion {
	if question.ID == 0 {
		question.ID = f.nextID
		f.nextID++
	}
	stored := question
	f.questions[question.ID] = &stored
	return stored
}

func (f *fakeQuestionRepo) CreateBatchAndAdvance(ctx context.Context, interviewID uint, questions []models.InterviewQuestion) (bool, error) {
	f.batchCalls++
	if !f.claimBatch {
		return false, nil
	}
	for _, q := range questions {
		q.InterviewID = interviewID
		f.add(q)
	}
	if f.owner != nil {
		if interview, ok := f.owner.interviews[interviewID]; ok {
			interview.Status = models.InterviewStatusQuestionsReady
			interview.QuestionCount = len(questions)
		}
	}
	return true, nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, id uint) (models.InterviewQuestion, error) {
	if q, ok := f.questions[id]; ok {
		return *q, nil
	}
	return models.InterviewQuestion{}, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) GetForGrading(ctx context.Context, id uint) (models.InterviewQuestion, error) {
	q, err := f.GetByID(ctx, id)
	if err != nil {
		return models.InterviewQuestion{}, err
	}
	if f.owner != nil {
		if interview, ok := f.owner.interviews[q.InterviewID]; ok {
			q.Interview = *interview
		}
	}
	return q, nil
}

func (f *fakeQuestionRepo) ListByInterview(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error) {
	out := make([]models.InterviewQuestion, 0)
	for _, q := range f.questions {
		if q.InterviewID == interviewID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeQuestionRepo) NextAfter(ctx context.Context, interviewID uint, currentID uint) (models.InterviewQuestion, error) {
	all, _ := f.ListByInterview(ctx, interviewID)
	for _, q := range all {
		if q.ID > currentID {
			return q, nil
		}
	}
	return models.InterviewQuestion{}, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) Counts(ctx context.Context, interviewID uint) (repository.AnswerCounts, error) {
	var counts repository.AnswerCounts
	all, _ := f.ListByInterview(ctx, interviewID)
	for _, q := range all {
		counts.Total++
		if q.Answered() {
			counts.Answered++
		}
	}
	return counts, nil
}

func (f *fakeQuestionRepo) SaveAnswer(ctx context.Context, questionID, interviewID uint, transcript string, audio []byte, answeredAt time.Time) (bool, error) {
	q, ok := f.questions[questionID]
	if !ok || q.InterviewID != interviewID {
		return false, nil
	}
	q.AnswerText = transcript
	q.AnswerAudio = audio
	at := answeredAt
	q.AnsweredAt = &at
	return true, nil
}

func (f *fakeQuestionRepo) SaveGrade(ctx context.Context, questionID uint, score int, evaluation string, failed bool) error {
	f.gradeCalls++
	q, ok := f.questions[questionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s := score
	q.AIScore = &s
	q.AIEvaluation = evaluation
	q.GradeFailed = failed
	return nil
}

var _ repository.QuestionRepository = (*fakeQuestionRepo)(nil)

// fakeAIClient returns scripted results per model.
type fakeAIClient struct {
	results map[string]string
	errs    map[string]error
	calls   []string

	lastPrompt string
}

func (c *fakeAIClient) Complete(ctx context.Context, model string, messages []ai.Message, jsonObject bool) (string, error) {
	c.calls = append(c.calls, model)
	if len(messages) > 0 {
		c.lastPrompt = messages[len(messages)-1].Content
	}
	if err := c.errs[model]; err != nil {
		return "", err
	}
	if result, ok := c.results[model]; ok {
		return result, nil
	}
	return "", errors.New("no scripted completion for model " + model)
}

// fakeTranscriber returns a fixed transcript.
type fakeTranscriber struct {
	text  string
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) string {
	f.calls++
	return f.text
}

// fakeDispatcher records enqueued question ids.
type fakeDispatcher struct {
	enqueued []uint
	full     bool
}

func (f *fakeDispatcher) Enqueue(questionID uint) bool {
	if f.full {
		return false
	}
	f.enqueued = append(f.enqueued, questionID)
	return true
}
