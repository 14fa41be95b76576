package ports

import (
	"context"
	"time"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// TokenService creates and verifies the signed claim-bearing tokens used for
// stateless authentication.
type TokenService interface {
	// Issue signs a token for the subject, expiring after the configured
	// lifetime counted from now.
	Issue(email, role string, now time.Time) (string, error)
	// Verify checks signature and issuer and returns the embedded claims.
	// Every failure mode collapses to domain.ErrTokenInvalid; expiry is not
	// checked here.
	Verify(token string) (domain.Claims, error)
	// IsExpired reports whether the token is past its expiry. A token that
	// cannot be verified counts as expired.
	IsExpired(token string) bool
	// Lifetime is the configured validity window for issued tokens.
	Lifetime() time.Duration
}

// PrincipalResolver turns verified claims into the identity attached to a
// request.
type PrincipalResolver interface {
	// Resolve returns the principal and its canonical authority string, or
	// domain.ErrTokenInvalid when the claims reference no known identity.
	Resolve(ctx context.Context, claims domain.Claims) (*domain.Principal, string, error)
}
