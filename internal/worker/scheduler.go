package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/observability"
)

// Job is one polling worker body. Run reports how many items it processed.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// Scheduler runs each registered job once immediately and then on a fixed
// interval, until its context is cancelled. Jobs re-select work by status,
// so a failed cycle is simply retried on the next tick.
type Scheduler struct {
	interval time.Duration
	jobs     []Job
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// NewScheduler constructs a scheduler ticking at the given interval.
func NewScheduler(interval time.Duration, jobs []Job, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		jobs:     jobs,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start launches one loop per job.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		job := job
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, job)
		}()
	}
	s.logger.Info().
		Int("jobs", len(s.jobs)).
		Dur("interval", s.interval).
		Msg("scheduler started")
}

// Stop waits for all job loops to exit after the context is cancelled.
func (s *Scheduler) Stop() {
	s.wg.Wait()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	s.runJob(ctx, job)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	start := time.Now()
	processed, err := job.Run(ctx)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		s.logger.Error().Err(err).Str("job", job.Name).Msg("worker cycle failed")
	} else if processed > 0 {
		s.logger.Info().
			Str("job", job.Name).
			Int("processed", processed).
			Dur("elapsed", elapsed).
			Msg("worker cycle finished")
	}

	observability.WorkerCycles().WithLabelValues(job.Name, outcome).Inc()
	observability.WorkerCycleDuration().WithLabelValues(job.Name).Observe(elapsed.Seconds())
}
