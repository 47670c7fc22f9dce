package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxhire/voxhire-api/internal/models"
	"github.com/voxhire/voxhire-api/pkg/speech"
)

func seedSession(t *testing.T) (*fakeInterviewRepo, *fakeQuestionRepo, models.Interview, []models.InterviewQuestion) {
	t.Helper()

	interviews := newFakeInterviewRepo()
	questions := newFakeQuestionRepo(interviews)
	interview := interviews.add(models.Interview{
		Status:        models.InterviewStatusQuestionsReady,
		Token:         "tok-session",
		QuestionCount: 3,
		Candidate: models.Candidate{
			ID:   1,
			Name: "Ada Lovelace",
			Position: models.Position{
				ID:   1,
				Name: "Backend Engineer",
			},
		},
	})

	created := make([]models.InterviewQuestion, 0, 3)
	for _, text := range []string{"Q1", "Q2", "Q3"} {
		created = append(created, questions.add(models.InterviewQuestion{
			InterviewID: interview.ID,
			Question:    text,
			Rubric:      "rubric",
		}))
	}
	return interviews, questions, interview, created
}

func newSessionService(interviews *fakeInterviewRepo, questions *fakeQuestionRepo, transcriber *fakeTranscriber, dispatcher *fakeDispatcher) InterviewSessionService {
	return NewInterviewSessionService(interviews, questions, transcriber, dispatcher, testPublisher(), nil, testLogger())
}

func TestGetInfoUnknownToken(t *testing.T) {
	interviews, questions, _, _ := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{}, &fakeDispatcher{})

	_, err := svc.GetInfo(context.Background(), "missing")
	require.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestGetInfoSnapshot(t *testing.T) {
	interviews, questions, interview, _ := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{}, &fakeDispatcher{})

	snapshot, err := svc.GetInfo(context.Background(), interview.Token)
	require.NoError(t, err)
	require.Equal(t, interview.ID, snapshot.InterviewID)
	require.Equal(t, "Ada Lovelace", snapshot.CandidateName)
	require.Equal(t, "Backend Engineer", snapshot.PositionName)
	require.Equal(t, 3, snapshot.QuestionCount)
}

func TestNextQuestionFirstAndOrdering(t *testing.T) {
	interviews, questions, interview, created := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{}, &fakeDispatcher{})
	ctx := context.Background()

	first, err := svc.NextQuestion(ctx, interview.Token, 0)
	require.NoError(t, err)
	require.Equal(t, created[0].ID, first.ID)
	require.Equal(t, "Q1", first.Text)

	second, err := svc.NextQuestion(ctx, interview.Token, created[0].ID)
	require.NoError(t, err)
	require.Equal(t, created[1].ID, second.ID)

	terminal, err := svc.NextQuestion(ctx, interview.Token, created[2].ID)
	require.NoError(t, err)
	require.Zero(t, terminal.ID)
	require.Equal(t, terminalQuestionText, terminal.Text)
}

// Answering all questions in order walks through the set, then the terminal
// sentinel arrives together with the completion transition.
func TestSubmitAnswerFullInterviewFlow(t *testing.T) {
	interviews, questions, interview, created := seedSession(t)
	transcriber := &fakeTranscriber{text: "my answer"}
	dispatcher := &fakeDispatcher{}
	svc := newSessionService(interviews, questions, transcriber, dispatcher)
	ctx := context.Background()

	first, err := svc.SubmitAnswer(ctx, interview.Token, created[0].ID, []byte("audio-1"))
	require.NoError(t, err)
	require.Equal(t, created[1].ID, first.NextQuestion.ID)
	require.False(t, first.Completed)
	require.Equal(t, "my answer", first.Transcript)

	second, err := svc.SubmitAnswer(ctx, interview.Token, created[1].ID, []byte("audio-2"))
	require.NoError(t, err)
	require.Equal(t, created[2].ID, second.NextQuestion.ID)

	last, err := svc.SubmitAnswer(ctx, interview.Token, created[2].ID, []byte("audio-3"))
	require.NoError(t, err)
	require.Zero(t, last.NextQuestion.ID)
	require.Equal(t, terminalQuestionText, last.NextQuestion.Text)
	require.True(t, last.Completed)

	stored, err := interviews.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusCompleted, stored.Status)

	// Every answer was handed to the grading dispatcher.
	require.Equal(t, []uint{created[0].ID, created[1].ID, created[2].ID}, dispatcher.enqueued)
}

// A transcription failure still persists the answer with the sentinel text.
func TestSubmitAnswerTranscriptionSentinel(t *testing.T) {
	interviews, questions, interview, created := seedSession(t)
	transcriber := &fakeTranscriber{text: speech.Sentinel}
	svc := newSessionService(interviews, questions, transcriber, &fakeDispatcher{})

	result, err := svc.SubmitAnswer(context.Background(), interview.Token, created[0].ID, []byte("garbage"))
	require.NoError(t, err)
	require.Equal(t, speech.Sentinel, result.Transcript)

	stored, err := questions.GetByID(context.Background(), created[0].ID)
	require.NoError(t, err)
	require.Equal(t, speech.Sentinel, stored.AnswerText)
	require.True(t, stored.Answered())
}

func TestSubmitAnswerValidation(t *testing.T) {
	interviews, questions, interview, created := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{}, &fakeDispatcher{})
	ctx := context.Background()

	_, err := svc.SubmitAnswer(ctx, interview.Token, 0, []byte("audio"))
	require.ErrorIs(t, err, ErrMissingAnswer)

	_, err = svc.SubmitAnswer(ctx, interview.Token, created[0].ID, nil)
	require.ErrorIs(t, err, ErrMissingAnswer)

	_, err = svc.SubmitAnswer(ctx, "missing", created[0].ID, []byte("audio"))
	require.ErrorIs(t, err, ErrInterviewNotFound)
}

// A question id belonging to another interview must not be mutated.
func TestSubmitAnswerForeignQuestion(t *testing.T) {
	interviews, questions, interview, _ := seedSession(t)
	other := interviews.add(models.Interview{Status: models.InterviewStatusQuestionsReady, Token: "tok-other"})
	foreign := questions.add(models.InterviewQuestion{InterviewID: other.ID, Question: "foreign"})

	svc := newSessionService(interviews, questions, &fakeTranscriber{}, &fakeDispatcher{})

	_, err := svc.SubmitAnswer(context.Background(), interview.Token, foreign.ID, []byte("audio"))
	require.ErrorIs(t, err, ErrQuestionNotFound)

	stored, err := questions.GetByID(context.Background(), foreign.ID)
	require.NoError(t, err)
	require.False(t, stored.Answered())
}

// A full grading queue must not fail the submission.
func TestSubmitAnswerQueueFull(t *testing.T) {
	interviews, questions, interview, created := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{text: "answer"}, &fakeDispatcher{full: true})

	result, err := svc.SubmitAnswer(context.Background(), interview.Token, created[0].ID, []byte("audio"))
	require.NoError(t, err)
	require.Equal(t, created[1].ID, result.NextQuestion.ID)
}

// Completion is claimed exactly once even when the last answer is replayed.
func TestSubmitAnswerCompletionIdempotent(t *testing.T) {
	interviews, questions, interview, created := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{text: "answer"}, &fakeDispatcher{})
	ctx := context.Background()

	for _, q := range created {
		_, err := svc.SubmitAnswer(ctx, interview.Token, q.ID, []byte("audio"))
		require.NoError(t, err)
	}
	advances := interviews.advanceCalls

	// Replaying the last answer finds no next question and re-checks
	// completion, but the status claim does not fire twice.
	_, err := svc.SubmitAnswer(ctx, interview.Token, created[2].ID, []byte("audio"))
	require.NoError(t, err)
	require.Equal(t, advances+1, interviews.advanceCalls)

	stored, err := interviews.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusCompleted, stored.Status)
}

func TestSetVoiceReading(t *testing.T) {
	interviews, questions, interview, _ := seedSession(t)
	svc := newSessionService(interviews, questions, &fakeTranscriber{}, &fakeDispatcher{})
	ctx := context.Background()

	require.NoError(t, svc.SetVoiceReading(ctx, interview.Token, true))

	stored, err := interviews.GetByToken(ctx, interview.Token)
	require.NoError(t, err)
	require.True(t, stored.VoiceReading)

	require.ErrorIs(t, svc.SetVoiceReading(ctx, "missing", true), ErrInterviewNotFound)
}
