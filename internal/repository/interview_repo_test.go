package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxhire/voxhire-api/internal/models"
)

func TestAdvanceStatusClaimsOnce(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusQuestionsReady)
	ctx := context.Background()

	claimed, err := repo.AdvanceStatus(ctx, interview.ID, models.InterviewStatusQuestionsReady, models.InterviewStatusCompleted)
	require.NoError(t, err)
	require.True(t, claimed)

	// A second attempt from the old status must not claim again.
	claimed, err = repo.AdvanceStatus(ctx, interview.ID, models.InterviewStatusQuestionsReady, models.InterviewStatusCompleted)
	require.NoError(t, err)
	require.False(t, claimed)

	stored, err := repo.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusCompleted, stored.Status)
}

func TestAdvanceStatusWrongFromState(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	ctx := context.Background()

	claimed, err := repo.AdvanceStatus(ctx, interview.ID, models.InterviewStatusQuestionsReady, models.InterviewStatusCompleted)
	require.NoError(t, err)
	require.False(t, claimed)

	stored, err := repo.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusCreated, stored.Status)
}

func TestSaveReportAdvancesAndPersistsArtifact(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCompleted)
	ctx := context.Background()

	artifact := models.ReportArtifact{
		Content:    []byte("report body"),
		Path:       "reports/2026-08-29/1_Ada_report.pdf",
		Evaluation: map[string]interface{}{"overall_score": float64(85)},
		Degraded:   false,
	}

	claimed, err := repo.SaveReport(ctx, interview.ID, artifact, models.InterviewStatusCompleted, models.InterviewStatusReportReady)
	require.NoError(t, err)
	require.True(t, claimed)

	stored, err := repo.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusReportReady, stored.Status)
	require.Equal(t, []byte("report body"), stored.ReportContent)
	require.Equal(t, artifact.Path, stored.ReportPath)
	require.False(t, stored.ReportDegraded)
	require.True(t, stored.HasReport())

	// The claim is single-shot: re-saving from the old status is a no-op.
	claimed, err = repo.SaveReport(ctx, interview.ID, artifact, models.InterviewStatusCompleted, models.InterviewStatusReportReady)
	require.NoError(t, err)
	require.False(t, claimed)
}

func TestSetVoiceReadingByToken(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusQuestionsReady)
	ctx := context.Background()

	updated, err := repo.SetVoiceReading(ctx, interview.Token, true)
	require.NoError(t, err)
	require.True(t, updated)

	stored, err := repo.GetByToken(ctx, interview.Token)
	require.NoError(t, err)
	require.True(t, stored.VoiceReading)

	updated, err = repo.SetVoiceReading(ctx, "unknown-token", true)
	require.NoError(t, err)
	require.False(t, updated)
}

func TestListByStatusPreloadsCandidateAndPosition(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	seedInterview(t, db, models.InterviewStatusCreated)

	interviews, err := repo.ListByStatus(context.Background(), models.InterviewStatusCreated)
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	require.Equal(t, "Ada Lovelace", interviews[0].Candidate.Name)
	require.Equal(t, "Backend Engineer", interviews[0].Candidate.Position.Name)
}

func TestDeleteRemovesQuestions(t *testing.T) {
	db := testDB(t)
	interviews := NewInterviewRepository(db)
	questions := NewQuestionRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	ctx := context.Background()

	claimed, err := questions.CreateBatchAndAdvance(ctx, interview.ID, []models.InterviewQuestion{
		{Question: "Q1", Rubric: "R1"},
		{Question: "Q2", Rubric: "R2"},
	})
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, interviews.Delete(ctx, interview.ID))

	remaining, err := questions.ListByInterview(ctx, interview.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

// An admin edit that raced with a worker claim must not drag the status
// back to what the admin read before the claim landed.
func TestUpdateFieldsPreservesClaimedStatus(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	ctx := context.Background()

	claimed, err := repo.AdvanceStatus(ctx, interview.ID, models.InterviewStatusCreated, models.InterviewStatusQuestionsReady)
	require.NoError(t, err)
	require.True(t, claimed)

	// The edit was composed against the pre-claim read of the row.
	err = repo.UpdateFields(ctx, interview.ID, map[string]interface{}{
		"interviewer": "Barbara Liskov",
		"is_passed":   true,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusQuestionsReady, stored.Status)
	require.Equal(t, "Barbara Liskov", stored.Interviewer)
	require.True(t, stored.IsPassed)
}

func TestUpdateFieldsEmptyPatchIsNoOp(t *testing.T) {
	db := testDB(t)
	repo := NewInterviewRepository(db)
	interview := seedInterview(t, db, models.InterviewStatusCreated)
	ctx := context.Background()

	require.NoError(t, repo.UpdateFields(ctx, interview.ID, map[string]interface{}{}))

	stored, err := repo.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, "Grace Hopper", stored.Interviewer)
}
