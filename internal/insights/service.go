package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"career-backend/internal/llm"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// ProfileLookup resolves a caller's profile.
type ProfileLookup interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type Service struct {
	Repo     Repo
	Profiles ProfileLookup
	Provider llm.Provider
	// SweepConcurrency bounds how many industries a sweep regenerates at once.
	SweepConcurrency int

	now func() time.Time
}

func NewService(repo Repo, profiles ProfileLookup, provider llm.Provider) *Service {
	return &Service{
		Repo:             repo,
		Profiles:         profiles,
		Provider:         provider,
		SweepConcurrency: 1,
		now:              time.Now,
	}
}

func (s *Service) clock() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().UTC().Truncate(time.Microsecond)
}

// GetForUser serves the snapshot for the caller's industry. A fresh snapshot is
// returned untouched (cached=true); otherwise it is regenerated and stored.
func (s *Service) GetForUser(ctx context.Context, userID string) (Insight, bool, error) {
	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return Insight{}, false, ErrNoIndustry
		}
		return Insight{}, false, err
	}
	industry := strings.TrimSpace(profile.Industry)
	if industry == "" {
		return Insight{}, false, ErrNoIndustry
	}

	fresh, err := s.Repo.FindFresh(ctx, industry, s.clock())
	if err == nil {
		metrics.IncInsightCacheHit()
		return fresh, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Insight{}, false, err
	}

	regenerated, err := s.Regenerate(ctx, industry)
	if err != nil {
		return Insight{}, false, err
	}
	return regenerated, false, nil
}

// Ensure regenerates the snapshot for industry unless a fresh one exists.
func (s *Service) Ensure(ctx context.Context, industry string) error {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return ErrNoIndustry
	}
	_, err := s.Repo.FindFresh(ctx, industry, s.clock())
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err = s.Regenerate(ctx, industry)
	return err
}

// Regenerate asks the provider for a new snapshot and upserts it. Nothing is
// written when the provider fails or its output does not match the schema.
func (s *Service) Regenerate(ctx context.Context, industry string) (Insight, error) {
	text, err := s.Provider.Generate(ctx, buildPrompt(industry))
	if err != nil {
		metrics.IncInsightRegenerationFailed()
		return Insight{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	var gen generatedInsight
	if err := llm.DecodeJSON(text, insightSchema, &gen); err != nil {
		metrics.IncInsightRegenerationFailed()
		return Insight{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	now := s.clock()
	saved, err := s.Repo.Upsert(ctx, Insight{
		ID:                uuid.NewString(),
		Industry:          industry,
		SalaryRanges:      gen.SalaryRanges,
		GrowthRate:        gen.GrowthRate,
		DemandLevel:       gen.DemandLevel,
		TopSkills:         gen.TopSkills,
		MarketOutlook:     gen.MarketOutlook,
		KeyTrends:         gen.KeyTrends,
		RecommendedSkills: gen.RecommendedSkills,
		UpdatedAt:         now,
		NextUpdate:        now.Add(RefreshInterval),
	})
	if err != nil {
		return Insight{}, fmt.Errorf("store insight: %w", err)
	}
	metrics.IncInsightRegenerated()
	telemetry.Info("insights.regenerated", map[string]any{
		"industry":    industry,
		"next_update": saved.NextUpdate.Format(time.RFC3339),
	})
	return saved, nil
}

// Sweep regenerates every stored industry. A failing industry is recorded in the
// report and does not stop the others.
func (s *Service) Sweep(ctx context.Context) (SweepReport, error) {
	ctx, span := telemetry.Tracer("insights").Start(ctx, "insights.sweep")
	defer span.End()

	report := SweepReport{StartedAt: s.clock(), Failed: []SweepFailure{}}
	industries, err := s.Repo.ListIndustries(ctx)
	if err != nil {
		span.RecordError(err)
		return report, fmt.Errorf("list industries: %w", err)
	}
	report.Industries = len(industries)
	telemetry.Info("insights.sweep.start", map[string]any{"industries": len(industries)})

	limit := s.SweepConcurrency
	if limit <= 0 {
		limit = 1
	}
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(limit)
	for _, industry := range industries {
		industry := industry
		g.Go(func() error {
			_, err := s.Regenerate(ctx, industry)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, SweepFailure{Industry: industry, Error: err.Error()})
				telemetry.Error("insights.sweep.industry_failed", map[string]any{
					"industry": industry,
					"error":    err.Error(),
				})
				return nil
			}
			report.Refreshed++
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = s.clock()
	span.SetAttributes(
		attribute.Int("insights.industries", report.Industries),
		attribute.Int("insights.refreshed", report.Refreshed),
		attribute.Int("insights.failed", len(report.Failed)),
	)
	metrics.IncInsightSweep()
	telemetry.Info("insights.sweep.done", map[string]any{
		"industries":  report.Industries,
		"refreshed":   report.Refreshed,
		"failed":      len(report.Failed),
		"duration_ms": report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	})
	return report, nil
}
