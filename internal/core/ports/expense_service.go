package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// ExpenseInput carries the fields a caller supplies when recording an
// expense. Name, category and description are optional.
type ExpenseInput struct {
	Name        string
	Category    domain.ExpenseCategory
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Recurrent   bool
}

type ExpenseService interface {
	// Persist records the expense, debits the owner's balance and returns the
	// balance after the debit.
	Persist(ctx context.Context, userID string, input ExpenseInput) (decimal.Decimal, error)
	YearExpenses(ctx context.Context, userID string, year int) ([]domain.Expense, error)
	MonthExpenses(ctx context.Context, userID string, year int, month time.Month) ([]domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID string) error
}
