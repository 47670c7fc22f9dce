// Package events publishes interview lifecycle events so the candidate-facing
// frontend can react to pipeline progress without polling.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Lifecycle event names.
const (
	EventQuestionsReady = "questions_ready"
	EventCompleted      = "completed"
	EventReportReady    = "report_ready"
)

// InterviewEvent is the payload published for every lifecycle transition.
type InterviewEvent struct {
	InterviewID uint      `json:"interview_id"`
	Token       string    `json:"token"`
	Status      int       `json:"status"`
	SentAt      time.Time `json:"sent_at"`
}

// Publisher emits lifecycle events over NATS. A nil connection disables
// publishing; delivery is best effort and never blocks the pipeline.
type Publisher struct {
	conn        *nats.Conn
	subjectBase string
	logger      zerolog.Logger
}

// NewPublisher constructs a publisher on the given subject base
// (e.g. "voxhire.interview").
func NewPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) *Publisher {
	if subjectBase == "" {
		subjectBase = "voxhire.interview"
	}
	return &Publisher{
		conn:        conn,
		subjectBase: subjectBase,
		logger:      logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Publish emits one lifecycle event. Failures are logged and dropped.
func (p *Publisher) Publish(event string, payload InterviewEvent) {
	if p == nil || p.conn == nil {
		return
	}

	payload.SentAt = time.Now().UTC()
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("event", event).Msg("failed to marshal lifecycle event")
		return
	}

	subject := p.subjectBase + "." + event
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish lifecycle event")
	}
}
