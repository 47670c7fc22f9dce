package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleData() Data {
	return Data{
		CandidateName: "Ada Lovelace",
		Position:      "Backend Engineer",
		Interviewer:   "Grace Hopper",
		InterviewDate: "2026-08-29",
		InterviewID:   42,
		Evaluation: Evaluation{
			TechnicalScore:          88,
			TechnicalEvaluation:     "Strong systems knowledge.",
			CommunicationScore:      80,
			CommunicationEvaluation: "Clear and structured.",
			OverallScore:            85,
			OverallEvaluation:       "Solid performance overall.",
			Strengths:               []string{"Concurrency", "Databases"},
			Weaknesses:              []string{"Frontend exposure"},
			Recommendation:          "Hire",
			RecommendationReason:    "Matches the role requirements.",
			QuestionEvaluations: []QuestionEvaluation{
				{ID: 1, Question: "Explain goroutine scheduling.", Rubric: "depth 5", Answer: "...", Score: 90, Comments: "Thorough."},
			},
		},
	}
}

func TestHTMLRendererIncludesEvaluation(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	content, err := renderer.Render(context.Background(), sampleData())
	require.NoError(t, err)

	html := string(content)
	require.Contains(t, html, "Ada Lovelace")
	require.Contains(t, html, "Backend Engineer")
	require.Contains(t, html, "Hire")
	require.Contains(t, html, "Explain goroutine scheduling.")
}

func TestArtifactPathLayout(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	path := ArtifactPath("reports", 7, "Ada Lovelace", now)
	require.Equal(t, "reports/2026-08-29/7_Ada Lovelace_report.pdf", path)
}

func TestArtifactPathSanitizesName(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	path := ArtifactPath("reports", 7, "../../etc/passwd", now)
	require.NotContains(t, path, "..")
	require.NotContains(t, path, "/etc")
}
