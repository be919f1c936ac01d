// Command worker runs only the weekly insight sweep schedule. Deploy it when the
// API replicas run with INSIGHT_SWEEP_SCHEDULE=off.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
)

const defaultShutdownTimeout = 30 * time.Second

type schedule interface {
	Start()
	Stop()
}

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.Env)
	defer telemetry.Sync()

	if !cfg.SchedulerEnabled() || strings.TrimSpace(cfg.SweepSchedule) == "" {
		cfg.SweepSchedule = "@weekly"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolOpts := db.DefaultCLIOptions()
	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{DBOptions: &poolOpts})
	if err != nil {
		telemetry.Error("worker.bootstrap_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	telemetry.Info("worker.started", map[string]any{"schedule": cfg.SweepSchedule})
	run(ctx, app.Scheduler, defaultShutdownTimeout)
}

// run starts s and blocks until ctx is done, then waits up to timeout for Stop.
func run(ctx context.Context, s schedule, timeout time.Duration) {
	s.Start()
	<-ctx.Done()

	telemetry.Info("worker.shutdown", map[string]any{"timeout": timeout.String()})
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		telemetry.Warn("worker.shutdown_timeout", nil)
	}
}
