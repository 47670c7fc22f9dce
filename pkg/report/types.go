// Package report renders the final interview evaluation into a document
// artifact.
package report

import "context"

// QuestionEvaluation is the per-question section of an evaluation.
type QuestionEvaluation struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Rubric   string `json:"rubric"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Comments string `json:"comments"`
}

// Evaluation is the structured verdict produced by the synthesis step.
type Evaluation struct {
	TechnicalScore          int                  `json:"technical_score"`
	TechnicalEvaluation     string               `json:"technical_evaluation"`
	CommunicationScore      int                  `json:"communication_score"`
	CommunicationEvaluation string               `json:"communication_evaluation"`
	OverallScore            int                  `json:"overall_score"`
	OverallEvaluation       string               `json:"overall_evaluation"`
	Strengths               []string             `json:"strengths"`
	Weaknesses              []string             `json:"weaknesses"`
	Recommendation          string               `json:"recommendation"`
	RecommendationReason    string               `json:"recommendation_reason"`
	QuestionEvaluations     []QuestionEvaluation `json:"question_evaluations"`
}

// Data feeds the report template.
type Data struct {
	CandidateName string
	Position      string
	Interviewer   string
	InterviewDate string
	InterviewID   uint
	Evaluation    Evaluation
}

// Renderer produces a document artifact from evaluation data.
type Renderer interface {
	Render(ctx context.Context, data Data) ([]byte, error)
}
