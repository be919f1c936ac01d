package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"career-backend/internal/shared/auth"
)

type Service struct {
	Repo      Repo
	Passwords auth.Passwords
	Tokens    *auth.Tokens
}

func NewService(repo Repo, passwords auth.Passwords, tokens *auth.Tokens) *Service {
	return &Service{Repo: repo, Passwords: passwords, Tokens: tokens}
}

// SignUp registers a password user. Username is checked before email.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return User{}, ErrMissingFields
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate resolves identifier as email or username and checks the password.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, ErrNotFound) {
		user, err = s.Repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return Session{}, err
	}
	if user.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := s.Passwords.Compare(user.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}

// UpsertFromOAuth stores a federated identity keyed by email and returns the persisted user.
func (s *Service) UpsertFromOAuth(ctx context.Context, user User) (User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return User{}, errors.New("oauth user email is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Username != "" {
		return s.Repo.UpsertByEmail(ctx, user)
	}
	user.Username = user.Email
	stored, err := s.Repo.UpsertByEmail(ctx, user)
	if !errors.Is(err, ErrUsernameTaken) {
		return stored, err
	}
	// Someone signed up with this email as their username; suffix the id.
	suffix := strings.ReplaceAll(user.ID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	user.Username = user.Email + "-" + suffix
	return s.Repo.UpsertByEmail(ctx, user)
}

// IssueToken signs a session token for user.
func (s *Service) IssueToken(user User) (string, error) {
	if s.Tokens == nil {
		return "", errors.New("token issuer not configured")
	}
	token, err := s.Tokens.Sign(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.FullName,
		Picture:  user.PictureURL,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}
