package coverletters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/llm"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/validate"
)

type ProfileLookup interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type Service struct {
	Repo     Repo
	Profiles ProfileLookup
	Provider llm.Provider
}

func NewService(repo Repo, profiles ProfileLookup, provider llm.Provider) *Service {
	return &Service{Repo: repo, Profiles: profiles, Provider: provider}
}

// Generate writes a letter from the caller's profile and stores it as completed.
func (s *Service) Generate(ctx context.Context, userID string, in GenerateInput) (CoverLetter, error) {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.JobDescription = plainText(in.JobDescription)
	if err := validate.Struct(in); err != nil {
		return CoverLetter{}, err
	}
	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return CoverLetter{}, ErrProfileMissing
		}
		return CoverLetter{}, err
	}

	text, err := s.Provider.Generate(ctx, buildPrompt(p, in))
	if err != nil {
		return CoverLetter{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if strings.TrimSpace(text) == "" {
		return CoverLetter{}, fmt.Errorf("%w: empty response", ErrUpstream)
	}
	return s.Repo.Create(ctx, CoverLetter{
		ID:             uuid.NewString(),
		UserID:         userID,
		Content:        text,
		JobTitle:       in.JobTitle,
		CompanyName:    in.CompanyName,
		JobDescription: in.JobDescription,
		Status:         StatusCompleted,
	})
}

func (s *Service) List(ctx context.Context, userID string) ([]CoverLetter, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (CoverLetter, error) {
	if !validID(id) {
		return CoverLetter{}, ErrNotFound
	}
	return s.Repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}

func (s *Service) UpdateStatus(ctx context.Context, userID, id string, in StatusInput) (CoverLetter, error) {
	if err := validate.Struct(in); err != nil {
		return CoverLetter{}, err
	}
	if !validID(id) {
		return CoverLetter{}, ErrNotFound
	}
	return s.Repo.UpdateStatus(ctx, userID, id, in.Status)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
