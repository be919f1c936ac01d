package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/extract"
	"career-backend/internal/llm"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/validate"
)

type ProfileLookup interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

type Service struct {
	Repo     Repo
	Profiles ProfileLookup
	Provider llm.Provider
	// Archive keeps imported files. Nil disables archiving.
	Archive object.Store
	// OCR is optional; it reads scanned PDFs that carry no text layer.
	OCR extract.OCR
}

func NewService(repo Repo, profiles ProfileLookup, provider llm.Provider) *Service {
	return &Service{Repo: repo, Profiles: profiles, Provider: provider}
}

func (s *Service) profile(ctx context.Context, userID string) (profiles.Profile, error) {
	p, err := s.Profiles.Get(ctx, userID)
	if errors.Is(err, profiles.ErrNotFound) {
		return profiles.Profile{}, ErrProfileMissing
	}
	return p, err
}

// Save stores content as the caller's only resume and resets its ATS review.
// A previously archived source file stays referenced.
func (s *Service) Save(ctx context.Context, userID, content string) (Resume, error) {
	return s.save(ctx, userID, content, "")
}

func (s *Service) save(ctx context.Context, userID, content, sourceKey string) (Resume, error) {
	if _, err := s.profile(ctx, userID); err != nil {
		return Resume{}, err
	}
	in := SaveInput{Content: strings.TrimSpace(content)}
	if err := validate.Struct(in); err != nil {
		return Resume{}, err
	}
	return s.Repo.Upsert(ctx, Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		Content:       in.Content,
		ATSScore:      0,
		Feedback:      []string{PendingFeedback},
		SourceFileKey: sourceKey,
	})
}

// Get returns nil when the caller has not saved a resume yet.
func (s *Service) Get(ctx context.Context, userID string) (*Resume, error) {
	if _, err := s.profile(ctx, userID); err != nil {
		return nil, err
	}
	resume, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resume, nil
}

// Improve rewrites one resume section. Nothing is stored.
func (s *Service) Improve(ctx context.Context, userID string, in ImproveInput) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", err
	}
	p, err := s.profile(ctx, userID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(p.Industry) == "" {
		return "", ErrNoIndustry
	}
	text, err := s.Provider.Generate(ctx, improvePrompt(p.Industry, in.Type, in.Current))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	return text, nil
}

// GenerateATSFeedback saves content, asks the provider for a review and stores the score.
// Only the content is written before the provider call, so a failed review keeps the
// previous score and feedback.
func (s *Service) GenerateATSFeedback(ctx context.Context, userID, content string) (ATSFeedback, error) {
	p, err := s.profile(ctx, userID)
	if err != nil {
		return ATSFeedback{}, err
	}
	in := SaveInput{Content: strings.TrimSpace(content)}
	if err := validate.Struct(in); err != nil {
		return ATSFeedback{}, err
	}
	saved, err := s.Repo.UpsertContent(ctx, Resume{
		ID:       uuid.NewString(),
		UserID:   userID,
		Content:  in.Content,
		Feedback: []string{PendingFeedback},
	})
	if err != nil {
		return ATSFeedback{}, err
	}

	text, err := s.Provider.Generate(ctx, atsPrompt(p.Industry, saved.Content))
	if err != nil {
		return ATSFeedback{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	var fb ATSFeedback
	if err := llm.DecodeJSON(text, atsSchema, &fb); err != nil {
		return ATSFeedback{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if fb.Feedback == nil {
		fb.Feedback = []string{}
	}
	saved.ATSScore = fb.ATSScore
	saved.Feedback = fb.Feedback
	if _, err := s.Repo.Upsert(ctx, saved); err != nil {
		return ATSFeedback{}, err
	}
	return fb, nil
}

// ImportFile extracts text from an uploaded PDF or DOCX and saves it as the resume.
// The original file is archived first when an Archive is configured; an archive
// failure is logged and the import continues without a source key.
func (s *Service) ImportFile(ctx context.Context, userID string, data []byte, mimeType, fileName string) (Resume, error) {
	text, err := extract.TextWithOCR(ctx, s.OCR, data, mimeType, fileName)
	if errors.Is(err, extract.ErrOCR) {
		return Resume{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if err != nil {
		return Resume{}, err
	}
	if _, err := s.profile(ctx, userID); err != nil {
		return Resume{}, err
	}
	if err := validate.Struct(SaveInput{Content: strings.TrimSpace(text)}); err != nil {
		return Resume{}, err
	}
	return s.save(ctx, userID, text, s.archive(ctx, userID, data, mimeType, fileName))
}

func (s *Service) archive(ctx context.Context, userID string, data []byte, mimeType, fileName string) string {
	if s.Archive == nil {
		return ""
	}
	key, err := object.UploadKey("resumes", userID, fileName)
	if err == nil {
		_, err = s.Archive.Put(ctx, key, mimeType, bytes.NewReader(data))
	}
	if err != nil {
		telemetry.Warn("resumes.archive_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return ""
	}
	return key
}
