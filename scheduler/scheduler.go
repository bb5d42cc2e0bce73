// Package scheduler runs the generation pipeline on a cron expression,
// refreshing exported metadata whenever calendar or keyword inputs change.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a single pipeline run. Implementations are expected to be safe
// to call repeatedly; the scheduler already prevents overlapping runs.
type Job interface {
	Name() string
	RunOnce(ctx context.Context) error
}

// Scheduler executes a Job on a cron schedule until its context is
// cancelled.
type Scheduler struct {
	job    Job
	spec   string
	logger *zap.Logger
	cron   *cron.Cron

	mu       sync.Mutex
	lastRun  time.Time
	lastErr  error
	runCount int
}

// New builds a scheduler for the given cron spec. Overlapping runs are
// skipped rather than queued.
func New(spec string, job Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		job:    job,
		spec:   spec,
		logger: logger,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start registers the job and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("scheduled run failed",
				zap.String("job", s.job.Name()),
				zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.spec, err)
	}

	s.logger.Info("scheduler started",
		zap.String("job", s.job.Name()),
		zap.String("spec", s.spec))
	s.cron.Start()

	<-ctx.Done()
	s.logger.Info("scheduler stopping", zap.String("job", s.job.Name()))
	stopCtx := s.cron.Stop()
	// Let an in-flight run finish before returning.
	<-stopCtx.Done()
	return ctx.Err()
}

// RunOnce executes the job immediately and records the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()
	err := s.job.RunOnce(ctx)

	s.mu.Lock()
	s.lastRun = start
	s.lastErr = err
	s.runCount++
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.logger.Info("run complete",
		zap.String("job", s.job.Name()),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// LastRun reports when the job last ran and how it ended.
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

// RunCount reports how many runs have completed.
func (s *Scheduler) RunCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCount
}
