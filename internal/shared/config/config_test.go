package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("INSIGHT_SWEEP_SCHEDULE", "")
	t.Setenv("INSIGHT_SWEEP_CONCURRENCY", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("JWT_TTL_HOURS", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected gemini provider, got %q", cfg.LLMProvider)
	}
	if cfg.SweepSchedule != "@weekly" {
		t.Fatalf("expected @weekly schedule, got %q", cfg.SweepSchedule)
	}
	if cfg.SweepConcurrency != 1 {
		t.Fatalf("expected sweep concurrency 1, got %d", cfg.SweepConcurrency)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if !cfg.IsDevLike() {
		t.Fatalf("expected dev config to be dev-like")
	}
	if !cfg.SchedulerEnabled() {
		t.Fatalf("expected scheduler enabled by default")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
}

func TestSchedulerCanBeDisabled(t *testing.T) {
	t.Setenv("INSIGHT_SWEEP_SCHEDULE", "OFF")
	if Load().SchedulerEnabled() {
		t.Fatalf("expected scheduler disabled")
	}
}

func TestLoadNormalizesValues(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("INSIGHT_SWEEP_CONCURRENCY", "not-a-number")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.IsDevLike() {
		t.Fatalf("production must not be dev-like")
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected openai, got %q", cfg.LLMProvider)
	}
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, want) {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.SweepConcurrency != 1 {
		t.Fatalf("expected fallback concurrency 1, got %d", cfg.SweepConcurrency)
	}
}

func TestObjectStoreSettings(t *testing.T) {
	t.Setenv("OBJECT_STORE", "")
	if got := Load().ObjectStore; got != "none" {
		t.Fatalf("expected archive disabled by default, got %q", got)
	}

	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("S3_BUCKET", "career-uploads")
	t.Setenv("AWS_REGION", "")
	cfg := Load()
	if cfg.ObjectStore != "s3" || cfg.S3Bucket != "career-uploads" {
		t.Fatalf("unexpected s3 settings: %q %q", cfg.ObjectStore, cfg.S3Bucket)
	}
	if cfg.AWSRegion != "us-east-1" {
		t.Fatalf("expected default region, got %q", cfg.AWSRegion)
	}

	t.Setenv("OBJECT_STORE", "gs")
	if got := Load().ObjectStore; got != "gcs" {
		t.Fatalf("expected gcs, got %q", got)
	}
}

func TestTracingSettings(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "on")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg := Load()
	if !cfg.TracingEnabled || cfg.OTLPEndpoint != "collector:4318" || cfg.TraceSampleRatio != 0.5 {
		t.Fatalf("unexpected tracing settings: %v %q %v", cfg.TracingEnabled, cfg.OTLPEndpoint, cfg.TraceSampleRatio)
	}

	t.Setenv("OTEL_SAMPLER_RATIO", "half")
	if got := Load().TraceSampleRatio; got != 0.1 {
		t.Fatalf("expected fallback ratio, got %v", got)
	}
}
