// Package worker hosts the background machinery of the interview pipeline:
// the bounded grading pool and the polling scheduler.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/service"
)

const (
	gradeMaxAttempts  = 3
	gradeRetryBackoff = 2 * time.Second
)

// GraderPool fans answered questions out to a fixed number of grading
// workers over a bounded queue, capping concurrent model calls and giving
// answer ingestion backpressure instead of unbounded goroutines.
type GraderPool struct {
	grader  service.GradingService
	queue   chan uint
	workers int
	backoff time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewGraderPool constructs a pool with the given worker count and queue size.
func NewGraderPool(grader service.GradingService, workers, queueSize int, logger zerolog.Logger) *GraderPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &GraderPool{
		grader:  grader,
		queue:   make(chan uint, queueSize),
		workers: workers,
		backoff: gradeRetryBackoff,
		logger:  logger.With().Str("component", "grader_pool").Logger(),
	}
}

// Start launches the workers. They drain the queue until ctx is cancelled.
func (p *GraderPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx)
		}()
	}
	p.logger.Info().Int("workers", p.workers).Int("queue_size", cap(p.queue)).Msg("grader pool started")
}

// Enqueue hands a question to the pool without blocking. It returns false
// when the queue is full; the caller decides how to report the drop.
func (p *GraderPool) Enqueue(questionID uint) bool {
	select {
	case p.queue <- questionID:
		return true
	default:
		return false
	}
}

// Stop waits for in-flight grading to finish. Callers cancel the context
// passed to Start first.
func (p *GraderPool) Stop() {
	p.wg.Wait()
	p.logger.Info().Msg("grader pool stopped")
}

func (p *GraderPool) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case questionID := <-p.queue:
			p.grade(ctx, questionID)
		}
	}
}

// grade retries transient failures a bounded number of times, then records
// the dead-letter outcome so the question never stays ungraded silently.
func (p *GraderPool) grade(ctx context.Context, questionID uint) {
	var lastErr error
	for attempt := 1; attempt <= gradeMaxAttempts; attempt++ {
		lastErr = p.grader.GradeQuestion(ctx, questionID)
		if lastErr == nil {
			return
		}
		p.logger.Warn().Err(lastErr).
			Uint("question_id", questionID).
			Int("attempt", attempt).
			Msg("grading attempt failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.backoff * time.Duration(attempt)):
		}
	}

	p.logger.Error().Err(lastErr).
		Uint("question_id", questionID).
		Msg("grading retries exhausted, recording failure")
	if err := p.grader.MarkFailed(ctx, questionID); err != nil {
		p.logger.Error().Err(err).Uint("question_id", questionID).Msg("failed to record grading failure")
	}
}
