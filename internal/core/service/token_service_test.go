package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", "expensetracker", time.Hour)

	token, err := svc.Issue("alice@example.com", domain.RoleUser, time.Now())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", claims.Role)
	}

	if svc.IsExpired(token) {
		t.Fatalf("fresh token reported expired")
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", "expensetracker", time.Hour)

	token, err := svc.Issue("alice@example.com", domain.RoleUser, time.Now())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token parts, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if !svc.IsExpired(tampered) {
		t.Fatalf("tampered token must count as expired")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuing := NewTokenService("secret-a", "expensetracker", time.Hour)
	verifying := NewTokenService("secret-b", "expensetracker", time.Hour)

	token, err := issuing.Issue("alice@example.com", domain.RoleUser, time.Now())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifying.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_IssuerMismatch(t *testing.T) {
	issuing := NewTokenService("secret", "someone-else", time.Hour)
	verifying := NewTokenService("secret", "expensetracker", time.Hour)

	token, err := issuing.Issue("alice@example.com", domain.RoleUser, time.Now())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifying.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if !verifying.IsExpired(token) {
		t.Fatalf("unverifiable token must count as expired")
	}
}

func TestTokenService_ExpiredTokenStillVerifies(t *testing.T) {
	svc := NewTokenService("secret", "expensetracker", time.Hour)

	// Issued two hours ago with a one-hour lifetime: past expiry but
	// correctly signed.
	token, err := svc.Issue("alice@example.com", domain.RoleUser, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify must not reject on expiry alone: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}

	if !svc.IsExpired(token) {
		t.Fatalf("expected IsExpired to report true")
	}
}

func TestTokenService_GarbageToken(t *testing.T) {
	svc := NewTokenService("secret", "expensetracker", time.Hour)

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if !svc.IsExpired("not-a-token") {
		t.Fatalf("garbage token must count as expired")
	}
}
