package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Interview Evaluation Report</title>
<style>
  @page { margin: 20mm; size: A4; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #333; line-height: 1.6; font-size: 14px; }
  .header { border-bottom: 2px solid #2c3e50; padding-bottom: 15px; margin-bottom: 30px; }
  .header h1 { margin: 0; color: #2c3e50; font-size: 24px; }
  .meta { color: #7f8c8d; font-size: 12px; }
  .section { margin-bottom: 30px; }
  .section-title { background-color: #f8f9fa; border-left: 5px solid #3498db; padding: 8px 15px;
    margin-bottom: 15px; color: #2c3e50; font-size: 16px; font-weight: bold; text-transform: uppercase; }
  .info-label { font-weight: bold; color: #7f8c8d; display: inline-block; width: 110px; }
  .score-table { width: 100%; border-spacing: 10px; border-collapse: separate; }
  .score-table td { background: #f8f9fa; padding: 15px; text-align: center; border-radius: 8px; width: 33%; }
  .score-val { font-size: 28px; font-weight: bold; color: #3498db; display: block; padding: 10px; }
  .score-val.overall { color: #e74c3c; font-size: 36px; }
  .score-label { font-size: 12px; color: #95a5a6; text-transform: uppercase; }
  .recommendation { background: #eef2f5; padding: 15px; border-radius: 5px; margin-top: 15px; }
  .question-item { border: 1px solid #eee; border-radius: 5px; padding: 15px; margin-bottom: 15px; page-break-inside: avoid; }
  .q-header { display: flex; justify-content: space-between; border-bottom: 1px dashed #eee; padding-bottom: 8px; margin-bottom: 10px; }
  .q-id { font-weight: bold; color: #2c3e50; }
  .q-score { font-weight: bold; color: #fff; background: #3498db; padding: 2px 8px; border-radius: 4px; font-size: 12px; }
  .q-answer { background: #f9f9f9; padding: 10px; border-left: 3px solid #ddd; margin-bottom: 10px; font-size: 13px; color: #555; }
  .q-comment { font-size: 13px; color: #27ae60; }
  .bullet-list { margin: 0; padding-left: 20px; }
  .footer { margin-top: 40px; text-align: center; font-size: 10px; color: #bdc3c7; border-top: 1px solid #eee; padding-top: 10px; }
</style>
</head>
<body>
  <div class="header">
    <h1>Interview Evaluation Report</h1>
    <div class="meta">CONFIDENTIAL &middot; {{.InterviewDate}} &middot; ID #{{.InterviewID}}</div>
  </div>

  <div class="section">
    <div class="section-title">Candidate</div>
    <div><span class="info-label">Candidate:</span> {{.CandidateName}}</div>
    <div><span class="info-label">Position:</span> {{.Position}}</div>
    <div><span class="info-label">Interviewer:</span> {{.Interviewer}}</div>
    <div><span class="info-label">Date:</span> {{.InterviewDate}}</div>
  </div>

  <div class="section">
    <div class="section-title">Score Overview</div>
    <table class="score-table">
      <tr>
        <td><span class="score-val overall">{{.Evaluation.OverallScore}}</span><div class="score-label">Overall</div></td>
        <td><span class="score-val">{{.Evaluation.TechnicalScore}}</span><div class="score-label">Technical</div></td>
        <td><span class="score-val">{{.Evaluation.CommunicationScore}}</span><div class="score-label">Communication</div></td>
      </tr>
    </table>
    <div class="recommendation">
      <div><strong>Recommendation:</strong> {{.Evaluation.Recommendation}}</div>
      <div>{{.Evaluation.RecommendationReason}}</div>
    </div>
  </div>

  <div class="section">
    <div class="section-title">Assessment</div>
    <p>{{.Evaluation.OverallEvaluation}}</p>
    <p><strong>Technical:</strong> {{.Evaluation.TechnicalEvaluation}}</p>
    <p><strong>Communication:</strong> {{.Evaluation.CommunicationEvaluation}}</p>
  </div>

  <div class="section">
    <div class="section-title">Strengths &amp; Areas for Improvement</div>
    <ul class="bullet-list">
      {{range .Evaluation.Strengths}}<li>{{.}}</li>{{end}}
    </ul>
    <ul class="bullet-list">
      {{range .Evaluation.Weaknesses}}<li>{{.}}</li>{{end}}
    </ul>
  </div>

  <div class="section">
    <div class="section-title">Question Detail</div>
    {{range .Evaluation.QuestionEvaluations}}
    <div class="question-item">
      <div class="q-header">
        <span class="q-id">Q{{.ID}}</span>
        <span class="q-score">{{.Score}}</span>
      </div>
      <div>{{.Question}}</div>
      <div class="meta">Rubric: {{.Rubric}}</div>
      <div class="q-answer"><strong>Answer:</strong> {{.Answer}}</div>
      <div class="q-comment"><strong>AI Comments:</strong> {{.Comments}}</div>
    </div>
    {{end}}
  </div>

  <div class="footer">Generated by Voxhire &middot; {{.InterviewDate}}</div>
</body>
</html>
`

// HTMLRenderer renders the evaluation into a standalone HTML document.
type HTMLRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer parses the embedded report template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{tpl: tpl}, nil
}

// Render executes the template against the provided data.
func (r *HTMLRenderer) Render(_ context.Context, data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
