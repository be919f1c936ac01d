package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/validate"
)

// InsightWarmer makes sure a snapshot exists for an industry.
type InsightWarmer interface {
	Ensure(ctx context.Context, industry string) error
}

type Service struct {
	Repo   Repo
	Warmer InsightWarmer
}

func NewService(repo Repo, warmer InsightWarmer) *Service {
	return &Service{Repo: repo, Warmer: warmer}
}

// CompleteOnboarding validates input and upserts the caller's profile. A snapshot
// for the chosen industry is warmed afterwards; a warm failure is only logged.
func (s *Service) CompleteOnboarding(ctx context.Context, userID string, in OnboardingInput) (Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Industry = strings.TrimSpace(in.Industry)
	in.Skills = cleanSkills(in.Skills)
	if err := validate.Struct(in); err != nil {
		return Profile{}, err
	}

	saved, err := s.Repo.Upsert(ctx, Profile{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       in.Name,
		ImageURL:   strings.TrimSpace(in.ImageURL),
		Industry:   in.Industry,
		Skills:     in.Skills,
		Experience: *in.Experience,
		Bio:        strings.TrimSpace(in.Bio),
	})
	if err != nil {
		return Profile{}, err
	}

	if s.Warmer != nil {
		if err := s.Warmer.Ensure(ctx, saved.Industry); err != nil {
			telemetry.Warn("profiles.insight_warm_failed", map[string]any{
				"user_id":  userID,
				"industry": saved.Industry,
				"error":    err.Error(),
			})
		}
	}
	return saved, nil
}

// OnboardingStatus reports whether the caller has chosen an industry.
func (s *Service) OnboardingStatus(ctx context.Context, userID string) (Status, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{}, nil
		}
		return Status{}, err
	}
	return Status{IsOnboarded: p.Industry != "", Profile: &p}, nil
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.Repo.GetByUserID(ctx, userID)
}

// cleanSkills trims entries and drops blanks and case-insensitive duplicates.
func cleanSkills(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
