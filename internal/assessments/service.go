package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/llm"
	"career-backend/internal/profiles"
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
}

func NewService(repo Repo, profiles ProfileLookup, provider llm.Provider) *Service {
	return &Service{Repo: repo, Profiles: profiles, Provider: provider}
}

// GenerateQuiz asks the provider for a quiz tailored to the caller's profile. Nothing is stored.
func (s *Service) GenerateQuiz(ctx context.Context, userID string) ([]Question, error) {
	p, err := s.Profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, profiles.ErrNotFound) {
		return nil, err
	}
	if strings.TrimSpace(p.Industry) == "" {
		return nil, ErrNoIndustry
	}
	text, err := s.Provider.Generate(ctx, quizPrompt(p.Industry, p.Skills))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	var quiz generatedQuiz
	if err := llm.DecodeJSON(text, quizSchema, &quiz); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return quiz.Questions, nil
}

// Grade pairs each question with the answer at the same index. Missing answers are wrong.
func Grade(questions []Question, answers []string) []QuestionResult {
	out := make([]QuestionResult, len(questions))
	for i, q := range questions {
		var given string
		if i < len(answers) {
			given = answers[i]
		}
		out[i] = QuestionResult{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.CorrectAnswer,
			UserAnswer:  given,
			IsCorrect:   given == q.CorrectAnswer,
			Explanation: q.Explanation,
		}
	}
	return out
}

// SaveResult grades the answers and appends one assessment. The improvement tip
// is best-effort and left nil when generation fails.
func (s *Service) SaveResult(ctx context.Context, userID string, in SaveInput) (Assessment, error) {
	if err := validate.Struct(in); err != nil {
		return Assessment{}, err
	}
	results := Grade(in.Questions, in.Answers)

	var tip *string
	if wrong := incorrect(results); len(wrong) > 0 {
		text, err := s.generateTip(ctx, userID, wrong)
		if err != nil {
			telemetry.Warn("assessments.tip_failed", map[string]any{
				"user_id": userID,
				"wrong":   len(wrong),
				"error":   err.Error(),
			})
		} else {
			tip = &text
		}
	}

	return s.Repo.Create(ctx, Assessment{
		ID:             uuid.NewString(),
		UserID:         userID,
		QuizScore:      *in.Score,
		Questions:      results,
		Category:       CategoryTechnical,
		ImprovementTip: tip,
	})
}

func (s *Service) generateTip(ctx context.Context, userID string, wrong []QuestionResult) (string, error) {
	var industry string
	p, err := s.Profiles.Get(ctx, userID)
	switch {
	case err == nil:
		industry = p.Industry
	case !errors.Is(err, profiles.ErrNotFound):
		return "", err
	}
	text, err := s.Provider.Generate(ctx, tipPrompt(industry, wrong))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty tip")
	}
	return text, nil
}

// List returns the caller's assessments oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]Assessment, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func incorrect(results []QuestionResult) []QuestionResult {
	var out []QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			out = append(out, r)
		}
	}
	return out
}
