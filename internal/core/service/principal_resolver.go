package service

import (
	"context"
	"errors"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// PrincipalResolver maps verified token claims to the identity a request runs
// as: a stored user, or the configured metrics-scraper identity, which is
// synthetic and never looked up in the user store.
type PrincipalResolver struct {
	users        ports.UserRepository
	scraperEmail string
}

func NewPrincipalResolver(users ports.UserRepository, scraperEmail string) *PrincipalResolver {
	return &PrincipalResolver{users: users, scraperEmail: scraperEmail}
}

// Resolve returns the principal and its canonical authority. A claims email
// that matches no stored user fails closed with domain.ErrTokenInvalid, so a
// token outliving its account cannot authenticate.
func (r *PrincipalResolver) Resolve(ctx context.Context, claims domain.Claims) (*domain.Principal, string, error) {
	if r.scraperEmail != "" && claims.Email == r.scraperEmail {
		// The scraper identity is always administrative regardless of the
		// role baked into its token.
		return domain.NewServicePrincipal(claims.Email), domain.RoleAdmin, nil
	}

	user, err := r.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrTokenInvalid
		}
		return nil, "", err
	}

	return domain.NewUserPrincipal(user), domain.NormalizeRole(claims.Role), nil
}
