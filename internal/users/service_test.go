package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"career-backend/internal/shared/auth"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", "dev", time.Hour)
	require.NoError(t, err)
	repo := NewMemoryRepo()
	return NewService(repo, auth.NewPasswords(bcrypt.MinCost), tokens), repo
}

func TestSignUpNormalizesEmailAndHashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpInput{Username: "ada", Email: "Ada@Example.COM", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	stored, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestSignUpRejectsMissingAndDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Username: "ada", Email: "", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.SignUp(ctx, SignUpInput{Username: "ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, SignUpInput{Username: "ada", Email: "other@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.SignUp(ctx, SignUpInput{Username: "grace", Email: "ADA@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateByEmailOrUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.SignUp(ctx, SignUpInput{Username: "ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	for _, identifier := range []string{"ada", "ADA@example.com"} {
		session, err := svc.Authenticate(ctx, identifier, "pw")
		require.NoError(t, err, identifier)
		assert.Equal(t, created.ID, session.User.ID)

		identity, err := svc.Tokens.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, identity.UserID)
		assert.Equal(t, "ada", identity.Username)
	}

	_, err = svc.Authenticate(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Authenticate(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpsertFromOAuthKeepsIDForKnownEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.UpsertFromOAuth(ctx, User{Email: "Grace@Example.com", FullName: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", first.Username)

	second, err := svc.UpsertFromOAuth(ctx, User{Email: "grace@example.com", FullName: "Grace Hopper"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Grace Hopper", second.FullName)

	_, err = svc.Authenticate(ctx, "grace@example.com", "")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestUpsertFromOAuthSuffixesTakenUsername(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, User{ID: "u-local", Username: "grace@example.com", Email: "grace.h@example.org"}))

	user, err := svc.UpsertFromOAuth(ctx, User{ID: "6f1c2a9e-0000-4000-8000-000000000000", Email: "grace@example.com", FullName: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com-6f1c2a9e", user.Username)
	assert.Equal(t, "grace@example.com", user.Email)

	again, err := svc.UpsertFromOAuth(ctx, User{Email: "grace@example.com", FullName: "Grace Hopper"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}
