// Package jobs provides the delayed-job primitive behind the reader
// comment workflow: run a named job with JSON arguments after an
// optional delay. Jobs are fire-and-forget - no cancellation, no retry.
// A job failure is logged and otherwise invisible; the expected comment
// simply never appears.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain/services"
)

// InProcessScheduler runs jobs on timers inside the server process.
// Pending timers do not survive a restart; the delay is a minimum bound
// only.
type InProcessScheduler struct {
	registry *Registry
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewInProcessScheduler creates a scheduler backed by the given handler
// registry.
func NewInProcessScheduler(registry *Registry, logger *slog.Logger) *InProcessScheduler {
	return &InProcessScheduler{
		registry: registry,
		logger:   logger,
	}
}

var _ services.Scheduler = (*InProcessScheduler)(nil)

// Schedule enqueues the job to run after delay. The args are marshaled
// immediately so a later mutation of the caller's value cannot leak into
// the job. Unknown job names fail fast at schedule time.
func (s *InProcessScheduler) Schedule(ctx context.Context, job string, args interface{}, delay time.Duration) (string, error) {
	if _, ok := s.registry.Handler(job); !ok {
		return "", fmt.Errorf("unknown job '%s'", job)
	}

	payload, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal job args: %w", err)
	}

	jobID := uuid.NewString()

	s.logger.Debug("job scheduled",
		"job", job,
		"job_id", jobID,
		"delay", delay.String(),
	)

	s.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.run(job, jobID, payload)
	})

	return jobID, nil
}

// run executes one job with a fresh context: jobs outlive the request
// that scheduled them.
func (s *InProcessScheduler) run(job, jobID string, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", "job", job, "job_id", jobID, "panic", r)
		}
	}()

	handler, ok := s.registry.Handler(job)
	if !ok {
		s.logger.Error("job handler disappeared", "job", job, "job_id", jobID)
		return
	}

	start := time.Now()
	if err := handler(context.Background(), payload); err != nil {
		s.logger.Error("job failed",
			"job", job,
			"job_id", jobID,
			"error", err,
			"duration", time.Since(start).String(),
		)
		return
	}

	s.logger.Info("job completed",
		"job", job,
		"job_id", jobID,
		"duration", time.Since(start).String(),
	)
}

// Wait blocks until every scheduled job has run. Intended for tests and
// graceful shutdown; new Schedule calls during Wait are not prevented.
func (s *InProcessScheduler) Wait() {
	s.wg.Wait()
}
