package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewHMACService("secret", time.Minute)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "r@example.com", "Recruiter")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.UserID != id || c.Role != RoleRecruiter || c.Email != "r@example.com" {
		t.Fatalf("unexpected claims %+v", c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	t.Parallel()

	s := NewHMACService("secret", time.Minute)
	past := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return past }
	tok, err := s.GenerateAccessToken(uuid.New(), "", RoleCandidate)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	s.now = time.Now
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewHMACService("one", time.Minute).GenerateAccessToken(uuid.New(), "", RoleCandidate)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewHMACService("two", time.Minute).ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	if _, err := NewHMACService("secret", time.Minute).GenerateAccessToken(uuid.New(), "", "admin"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
