package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/models"
)

func seedQuestions(t *testing.T, questions QuestionRepository, interviewID uint, count int) []models.InterviewQuestion {
	t.Helper()

	batch := make([]models.InterviewQuestion, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, models.InterviewQuestion{
			Question: "Question",
			Rubric:   "Rubric",
		})
	}
	claimed, err := questions.CreateBatchAndAdvance(context.Background(), interviewID, batch)
	require.NoError(t, err)
	require.True(t, claimed)

	created, err := questions.ListByInterview(context.Background(), interviewID)
	require.NoError(t, err)
	require.Len(t, created, count)
	return created
}

func TestCreateBatchAndAdvanceSetsCountAndStatus(t *testing.T) {
	db := testDB(t)
	interviews := NewInterviewRepository(db)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)

	seedQuestions(t, questions, interview.ID, 3)

	stored, err := interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusQuestionsReady, stored.Status)
	require.Equal(t, 3, stored.QuestionCount)
}

func TestCreateBatchAndAdvanceSecondClaimWritesNothing(t *testing.T) {
	db := testDB(t)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	ctx := context.Background()

	seedQuestions(t, questions, interview.ID, 2)

	claimed, err := questions.CreateBatchAndAdvance(ctx, interview.ID, []models.InterviewQuestion{
		{Question: "duplicate", Rubric: "duplicate"},
	})
	require.NoError(t, err)
	require.False(t, claimed)

	remaining, err := questions.ListByInterview(ctx, interview.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
}

func TestNextAfterOrdering(t *testing.T) {
	db := testDB(t)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	created := seedQuestions(t, questions, interview.ID, 3)
	ctx := context.Background()

	// current_id 0 asks for the first question overall.
	first, err := questions.NextAfter(ctx, interview.ID, 0)
	require.NoError(t, err)
	require.Equal(t, created[0].ID, first.ID)

	second, err := questions.NextAfter(ctx, interview.ID, created[0].ID)
	require.NoError(t, err)
	require.Equal(t, created[1].ID, second.ID)

	_, err = questions.NextAfter(ctx, interview.ID, created[2].ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSaveAnswerScopedToInterview(t *testing.T) {
	db := testDB(t)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	created := seedQuestions(t, questions, interview.ID, 1)
	ctx := context.Background()

	saved, err := questions.SaveAnswer(ctx, created[0].ID, interview.ID+99, "transcript", []byte("audio"), time.Now())
	require.NoError(t, err)
	require.False(t, saved, "a question must not be mutated through a foreign interview")

	saved, err = questions.SaveAnswer(ctx, created[0].ID, interview.ID, "transcript", []byte("audio"), time.Now())
	require.NoError(t, err)
	require.True(t, saved)

	stored, err := questions.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	require.Equal(t, "transcript", stored.AnswerText)
	require.True(t, stored.Answered())
}

func TestCounts(t *testing.T) {
	db := testDB(t)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	created := seedQuestions(t, questions, interview.ID, 3)
	ctx := context.Background()

	counts, err := questions.Counts(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), counts.Total)
	require.Equal(t, int64(0), counts.Answered)
	require.False(t, counts.Complete())

	for _, q := range created {
		_, err := questions.SaveAnswer(ctx, q.ID, interview.ID, "answered", nil, time.Now())
		require.NoError(t, err)
	}

	counts, err = questions.Counts(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), counts.Answered)
	require.True(t, counts.Complete())
}

func TestSaveGradePersistsFailureMarker(t *testing.T) {
	db := testDB(t)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	created := seedQuestions(t, questions, interview.ID, 1)
	ctx := context.Background()

	require.NoError(t, questions.SaveGrade(ctx, created[0].ID, 0, "evaluation failed", true))

	stored, err := questions.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	require.True(t, stored.Graded())
	require.Equal(t, 0, *stored.AIScore)
	require.True(t, stored.GradeFailed)
}

func TestGetForGradingJoinsPosition(t *testing.T) {
	db := testDB(t)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	created := seedQuestions(t, questions, interview.ID, 1)

	question, err := questions.GetForGrading(context.Background(), created[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Backend Engineer", question.Interview.Candidate.Position.Name)
}
