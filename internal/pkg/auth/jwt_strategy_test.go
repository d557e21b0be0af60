package auth

import (
	"testing"
	"time"
)

func TestJWTStrategyIssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("top-secret", Options{TTL: time.Hour})

	token, expires, err := strategy.IssueToken(42, "user@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if time.Until(expires) < 55*time.Minute {
		t.Fatalf("expected expiry near one hour, got %v", expires)
	}

	claims, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestJWTStrategyRejectsGarbage(t *testing.T) {
	strategy := NewJWTStrategy("top-secret", Options{})
	if _, err := strategy.ParseToken("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategyRejectsWrongSecret(t *testing.T) {
	issuerStrategy := NewJWTStrategy("secret-a", Options{})
	token, _, err := issuerStrategy.IssueToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	verifier := NewJWTStrategy("secret-b", Options{})
	if _, err := verifier.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestJWTStrategyRejectsExpired(t *testing.T) {
	strategy := NewJWTStrategy("top-secret", Options{TTL: -time.Minute})
	token, _, err := strategy.IssueToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
