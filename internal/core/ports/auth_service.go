package ports

import (
	"context"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
