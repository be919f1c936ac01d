package coverletters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/internal/llm"
	"career-backend/internal/llm/llmtest"
	"career-backend/internal/profiles"
	"career-backend/internal/shared/validate"
)

func newTestService(t *testing.T, provider llm.Provider) (*Service, *MemoryRepo) {
	t.Helper()
	profileRepo := profiles.NewMemoryRepo()
	for _, id := range []string{"user-1", "user-2"} {
		_, err := profileRepo.Upsert(context.Background(), profiles.Profile{
			ID: "p-" + id, UserID: id, Name: "Ada", Industry: "Technology",
			Skills: []string{"Go", "Postgres"}, Experience: 7, Bio: "Backend engineer",
		})
		require.NoError(t, err)
	}
	repo := NewMemoryRepo()
	return NewService(repo, profiles.NewService(profileRepo, nil), provider), repo
}

func TestGenerateStoresCompletedLetter(t *testing.T) {
	provider := llmtest.Text("Dear Hiring Manager,\n\nI am excited...\n")
	svc, repo := newTestService(t, provider)

	letter, err := svc.Generate(context.Background(), "user-1", GenerateInput{
		JobTitle: "Staff Engineer", CompanyName: "Acme", JobDescription: "Build APIs",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, letter.Status)
	assert.Equal(t, "Dear Hiring Manager,\n\nI am excited...\n", letter.Content)
	assert.Equal(t, 1, repo.Count())

	prompt := provider.Prompts[0]
	assert.Contains(t, prompt, "Staff Engineer position at Acme")
	assert.Contains(t, prompt, "Industry: Technology")
	assert.Contains(t, prompt, "Years of Experience: 7")
	assert.Contains(t, prompt, "Skills: Go, Postgres")
	assert.Contains(t, prompt, "Build APIs")
}

func TestGenerateFlattensHTMLDescription(t *testing.T) {
	provider := llmtest.Text("letter")
	svc, _ := newTestService(t, provider)

	letter, err := svc.Generate(context.Background(), "user-1", GenerateInput{
		JobTitle: "Dev", CompanyName: "Acme", JobDescription: "<p>Ship <em>fast</em></p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ship fast", letter.JobDescription)
	assert.NotContains(t, provider.Prompts[0], "<p>")
}

func TestGenerateValidationAndFailures(t *testing.T) {
	svc, repo := newTestService(t, llmtest.Text("letter"))
	_, err := svc.Generate(context.Background(), "user-1", GenerateInput{JobTitle: "  "})
	require.Error(t, err)
	fields := validate.Details(err)
	require.NotNil(t, fields)

	_, err = svc.Generate(context.Background(), "stranger", GenerateInput{JobTitle: "Dev", CompanyName: "Acme"})
	assert.ErrorIs(t, err, ErrProfileMissing)

	svc, repo = newTestService(t, llmtest.Failing(errors.New("quota")))
	_, err = svc.Generate(context.Background(), "user-1", GenerateInput{JobTitle: "Dev", CompanyName: "Acme"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Zero(t, repo.Count())
}

func TestListNewestFirst(t *testing.T) {
	svc, repo := newTestService(t, llmtest.Text("x"))
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(context.Background(), CoverLetter{
			ID: uuid.NewString(), UserID: "user-1", JobTitle: title, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(context.Background(), CoverLetter{ID: uuid.NewString(), UserID: "user-2", JobTitle: "other"})
	require.NoError(t, err)

	got, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].JobTitle)
	assert.Equal(t, "first", got[2].JobTitle)
}

func TestOwnershipRules(t *testing.T) {
	svc, repo := newTestService(t, llmtest.Text("Dear team"))
	ctx := context.Background()
	letter, err := svc.Generate(ctx, "user-1", GenerateInput{JobTitle: "Dev", CompanyName: "Acme"})
	require.NoError(t, err)

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		_, err := svc.Get(ctx, "user-1", id)
		assert.ErrorIs(t, err, ErrNotFound, id)
	}

	_, err = svc.Get(ctx, "user-2", letter.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "user-2", letter.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", "not-a-uuid"), ErrNotFound)
	assert.Equal(t, 1, repo.Count())

	_, err = svc.UpdateStatus(ctx, "user-2", letter.ID, StatusInput{Status: StatusArchived})
	assert.ErrorIs(t, err, ErrNotFound)

	archived, err := svc.UpdateStatus(ctx, "user-1", letter.ID, StatusInput{Status: StatusArchived})
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, archived.Status)

	_, err = svc.UpdateStatus(ctx, "user-1", letter.ID, StatusInput{Status: "published"})
	assert.NotNil(t, validate.Details(err))

	require.NoError(t, svc.Delete(ctx, "user-1", letter.ID))
	assert.Zero(t, repo.Count())
}
