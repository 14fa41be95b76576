package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// FirstRegistryInput is the one-time financial setup a user completes after
// their first login: salary schedule, starting balance and any expenses they
// already know about.
type FirstRegistryInput struct {
	SalaryDay      int
	MonthlySalary  decimal.Decimal
	CurrentBalance decimal.Decimal
	Expenses       []ExpenseInput
}

type AccountingService interface {
	FirstRegistry(ctx context.Context, userID string, input FirstRegistryInput) error
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Salary(ctx context.Context, userID string) (decimal.Decimal, error)
	// MonthlySpentPercent is (salary - balance) / salary rounded half-up to
	// two places and clamped to [0, 1]. Zero salary yields zero.
	MonthlySpentPercent(ctx context.Context, userID string) (decimal.Decimal, error)
	UpdateSalaryAmount(ctx context.Context, userID string, salary decimal.Decimal) error
	UpdateSalaryDay(ctx context.Context, userID string, day int) error
	AddToBalance(ctx context.Context, userID string, amount decimal.Decimal, description string) (decimal.Decimal, error)
	YearAdditions(ctx context.Context, userID string, year int) ([]domain.AdditionEntry, error)
}
