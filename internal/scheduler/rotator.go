package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/RafaelMelo23/expensetracker/internal/api/metrics"
	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// TokenRotator periodically issues a fresh admin token for the metrics
// scraper identity and writes it to a file Prometheus reads its bearer token
// from. Rotation keeps /metrics role-protected without a credential that
// never expires.
type TokenRotator struct {
	tokens   ports.TokenService
	email    string
	path     string
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewTokenRotator(tokens ports.TokenService, email, path string, interval time.Duration, log zerolog.Logger) *TokenRotator {
	return &TokenRotator{
		tokens:   tokens,
		email:    email,
		path:     path,
		interval: interval,
		now:      time.Now,
		log:      log,
	}
}

// Start rotates once immediately, then on every interval tick until ctx is
// cancelled.
func (r *TokenRotator) Start(ctx context.Context) {
	go func() {
		if err := r.RunOnce(); err != nil {
			r.log.Error().Err(err).Msg("initial scraper token rotation failed")
		}

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.RunOnce(); err != nil {
					r.log.Error().Err(err).Msg("scraper token rotation failed")
				}
			}
		}
	}()
}

// RunOnce issues a new token and replaces the token file.
func (r *TokenRotator) RunOnce() error {
	token, err := r.tokens.Issue(r.email, domain.RoleAdmin, r.now())
	if err != nil {
		metrics.TokenRotationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("issue scraper token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		metrics.TokenRotationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(r.path, []byte(token), 0o644); err != nil {
		metrics.TokenRotationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("write scraper token: %w", err)
	}

	metrics.TokenRotationsTotal.WithLabelValues("ok").Inc()
	r.log.Info().Str("path", r.path).Msg("rotated metrics scraper token")
	return nil
}
