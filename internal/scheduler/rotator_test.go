package scheduler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/service"
)

func TestTokenRotatorRunOnce(t *testing.T) {
	tokens := service.NewTokenService("secret", "expensetracker", time.Hour)
	path := filepath.Join(t.TempDir(), "prometheus", "token")
	r := NewTokenRotator(tokens, "prometheus@local", path, time.Hour, zerolog.Nop())

	if err := r.RunOnce(); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}

	claims, err := tokens.Verify(string(raw))
	if err != nil {
		t.Fatalf("written token does not verify: %v", err)
	}
	if claims.Email != "prometheus@local" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if tokens.IsExpired(string(raw)) {
		t.Fatal("fresh scraper token reported expired")
	}

	// Rotation replaces the file in place.
	first := string(raw)
	time.Sleep(1100 * time.Millisecond)
	if err := r.RunOnce(); err != nil {
		t.Fatalf("second rotation failed: %v", err)
	}
	raw, _ = os.ReadFile(path)
	if string(raw) == first {
		t.Fatal("expected a different token after rotation")
	}
}
