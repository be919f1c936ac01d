package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker
//
// Attach it to an EventBridge schedule such as cron(0 3 ? * MON *).

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

type sweepRunner interface {
	RunOnce(ctx context.Context) bool
}

// Result is returned to the Lambda runtime for the invocation log.
type Result struct {
	Ran bool `json:"ran"`
}

func initApp() {
	cfg := config.Load()
	telemetry.Init(cfg.Env)
	// A schedule is needed for the lock-guarded runner; it is never started here.
	cfg.SweepSchedule = "@weekly"

	poolOpts := db.DefaultLambdaOptions()
	built, err := bootstrap.Build(context.Background(), cfg, bootstrap.Options{DBOptions: &poolOpts, SkipMigrations: true})
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context, event events.CloudWatchEvent) (Result, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": initErr.Error()})
		return Result{}, initErr
	}
	return sweep(ctx, app.Scheduler, event)
}

func sweep(ctx context.Context, runner sweepRunner, event events.CloudWatchEvent) (Result, error) {
	if runner == nil {
		return Result{}, errors.New("sweep runner not configured")
	}
	telemetry.Info("lambda.sweep_triggered", map[string]any{
		"event_id": event.ID,
		"source":   event.Source,
	})
	return Result{Ran: runner.RunOnce(ctx)}, nil
}

func main() {
	lambda.Start(handler)
}
