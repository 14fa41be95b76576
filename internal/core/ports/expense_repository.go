package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// ExpenseRepository persists individual expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	CreateMany(ctx context.Context, expenses []domain.Expense) error
	// FindBetween lists the user's expenses dated in [from, to).
	FindBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Expense, error)
	// FindRecurringAmounts returns the amounts of every expense flagged
	// recurrent for the user.
	FindRecurringAmounts(ctx context.Context, userID string) ([]decimal.Decimal, error)
	Delete(ctx context.Context, userID, expenseID string) error
}
