package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	tokens, err := NewTokens("secret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	raw, err := tokens.Sign(Identity{UserID: "user-1", Username: "ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	id, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "user-1" || id.Username != "ada" || id.Email != "ada@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	tokens, _ := NewTokens("secret", "dev", time.Minute)
	raw, err := tokens.Sign(Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := tokens.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	other, _ := NewTokens("other-secret", "dev", time.Minute)
	if _, err := other.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected foreign token to be rejected, got %v", err)
	}
	if _, err := other.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected malformed token to be rejected, got %v", err)
	}
}

func TestStateTokensAreSeparateFromSessions(t *testing.T) {
	tokens, _ := NewTokens("secret", "dev", time.Hour)
	state, err := tokens.SignState(5 * time.Minute)
	if err != nil {
		t.Fatalf("SignState: %v", err)
	}
	if err := tokens.VerifyState(state); err != nil {
		t.Fatalf("VerifyState: %v", err)
	}
	if _, err := tokens.Verify(state); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("state must not authenticate a session, got %v", err)
	}

	session, _ := tokens.Sign(Identity{UserID: "user-1"})
	if err := tokens.VerifyState(session); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("session must not pass as state, got %v", err)
	}

	tokens.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	if err := tokens.VerifyState(state); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired state to be rejected, got %v", err)
	}
}

func TestNewTokensRequiresSecretInProduction(t *testing.T) {
	if _, err := NewTokens("", "production", 0); err == nil {
		t.Fatalf("expected error without secret in production")
	}
	if _, err := NewTokens("", "dev", 0); err != nil {
		t.Fatalf("dev should fall back to a default secret: %v", err)
	}
}

func TestPasswordsHashAndCompare(t *testing.T) {
	p := NewPasswords(4)
	hash, err := p.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("hash must not equal plaintext")
	}
	if err := p.Compare(hash, "hunter22"); err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if err := p.Compare(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}
