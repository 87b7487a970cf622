// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ammerola/medstock-be/internal/core/ports"
	"github.com/ammerola/medstock-be/internal/pkg/config"
)

// Scheduler modes
const (
	ModeInProcess = "inprocess"
	ModeAsynq     = "asynq"
	ModeDisabled  = "disabled"
)

// Scheduler runs the bulk expiry pass once at start and then on a cron
// schedule. Passes run on the Run goroutine, so two never overlap.
type Scheduler struct {
	runner       ports.ExpiryReconciler
	clock        ports.Clock
	schedule     cron.Schedule
	location     *time.Location
	startupDelay time.Duration
	runTimeout   time.Duration
	logger       *slog.Logger
}

// New parses the cron spec and timezone in cfg
func New(runner ports.ExpiryReconciler, clock ports.Clock, cfg config.SchedulerConfig, logger *slog.Logger) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	schedule, err := cron.ParseStandard(cfg.CronSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cfg.CronSpec, err)
	}

	return &Scheduler{
		runner:       runner,
		clock:        clock,
		schedule:     schedule,
		location:     loc,
		startupDelay: cfg.StartupDelay,
		runTimeout:   cfg.RunTimeout,
		logger:       logger.With(slog.String("component", "scheduler")),
	}, nil
}

// Next returns the first scheduled pass strictly after t
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// Run blocks until ctx is cancelled. A failed pass is logged and the
// schedule continues.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.InfoContext(ctx, "scheduler started",
		slog.String("timezone", s.location.String()),
		slog.Duration("startup_delay", s.startupDelay))

	if s.startupDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(s.startupDelay):
		}
	}

	for {
		s.runOnce(ctx)

		now := s.clock.Now()
		next := s.Next(now)
		s.logger.DebugContext(ctx, "next expiry pass scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "scheduler stopped")
			return
		case <-s.clock.After(next.Sub(now)):
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	runCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	// the cutoff is today's date where the schedule fires, not on the host
	result, err := s.runner.ReconcileAll(runCtx, s.clock.Now().In(s.location))
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled expiry pass failed", slog.String("error", err.Error()))
		return
	}

	s.logger.InfoContext(ctx, "scheduled expiry pass finished",
		slog.Int64("matched", result.MatchedCount),
		slog.Int64("modified", result.ModifiedCount))
}
