// Package llm defines the generative-text provider boundary and helpers for its JSON output.
package llm

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/util"
)

// Provider turns a prompt into free text.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder provider.
var ErrNotConfigured = errors.New("generative provider not configured")

// Placeholder is used when no provider credentials are configured.
type Placeholder struct{}

// Generate returns ErrNotConfigured.
func (Placeholder) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// Instrumented records latency and failures of every call made through Next.
type Instrumented struct {
	Next Provider
	Name string
}

func (p Instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := telemetry.Tracer("llm").Start(ctx, "llm.generate", trace.WithAttributes(
		attribute.String("llm.provider", p.Name),
		attribute.Int("llm.prompt_chars", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	out, err := p.Next.Generate(ctx, prompt)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveLLMCall(elapsed, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
	}
	fields := map[string]any{
		"provider":     p.Name,
		"duration_ms":  elapsed,
		"prompt_chars": len(prompt),
		"prompt_sha":   util.Fingerprint(prompt),
	}
	if err != nil {
		fields["error"] = err.Error()
		telemetry.Warn("llm.generate_failed", fields)
		return "", err
	}
	fields["output_chars"] = len(out)
	telemetry.Debug("llm.generate", fields)
	return out, nil
}
