package ports

import (
	"context"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// UserRepository defines the persistence interface for registered users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail matches case-insensitively and returns
	// domain.ErrUserNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkFirstLoginDone(ctx context.Context, userID string) error
}
