package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron"

	"career-backend/internal/shared/lock"
	"career-backend/internal/shared/telemetry"
)

const sweepLockKey = "insights:sweep"

// Sweeper runs one sweep.
type Sweeper interface {
	Sweep(ctx context.Context) (SweepReport, error)
}

// Scheduler triggers sweeps on a cron schedule. With a shared Locker only one
// replica sweeps per tick.
type Scheduler struct {
	sweeper Sweeper
	locker  lock.Locker
	cron    *cron.Cron
	lockTTL time.Duration
	timeout time.Duration
}

// NewScheduler parses a standard five-field spec or a descriptor such as "@weekly".
func NewScheduler(spec string, sweeper Sweeper, locker lock.Locker) (*Scheduler, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "@weekly"
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", spec, err)
	}
	if locker == nil {
		locker = lock.Local{}
	}
	s := &Scheduler{
		sweeper: sweeper,
		locker:  locker,
		cron:    cron.NewWithLocation(time.UTC),
		lockTTL: 30 * time.Minute,
		timeout: 25 * time.Minute,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.tick))
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	telemetry.Info("insights.scheduler.started", nil)
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	telemetry.Info("insights.scheduler.stopped", nil)
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce sweeps if the lease is available. It reports whether a sweep ran.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	acquired, release, err := s.locker.Acquire(ctx, sweepLockKey, s.lockTTL)
	if err != nil {
		telemetry.Error("insights.scheduler.lock_failed", map[string]any{"error": err.Error()})
		return false
	}
	if !acquired {
		telemetry.Info("insights.scheduler.skipped", map[string]any{"reason": "lock held"})
		return false
	}
	defer release()

	if _, err := s.sweeper.Sweep(ctx); err != nil {
		telemetry.Error("insights.scheduler.sweep_failed", map[string]any{"error": err.Error()})
	}
	return true
}
