package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// AccountingRepository persists per-user financial state.
type AccountingRepository interface {
	Create(ctx context.Context, rec *domain.AccountingRecord) (*domain.AccountingRecord, error)
	FindByUserID(ctx context.Context, userID string) (*domain.AccountingRecord, error)

	// AddToBalance applies a signed delta to the stored balance.
	AddToBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	// OverwriteBalance replaces the stored balance outright. Used only by the
	// daily reconciliation.
	OverwriteBalance(ctx context.Context, userID string, balance decimal.Decimal) error

	UpdateSalaryAmount(ctx context.Context, userID string, salary decimal.Decimal) error
	UpdateSalaryDay(ctx context.Context, userID string, day int) error

	// FindAccountsDueOn lists every account whose salary-credit day equals the
	// given day of the month.
	FindAccountsDueOn(ctx context.Context, dayOfMonth int) ([]domain.SalaryDue, error)

	AppendAddition(ctx context.Context, entry *domain.AdditionEntry) (*domain.AdditionEntry, error)
	// FindAdditionsBetween lists the user's additions logged in [from, to).
	FindAdditionsBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AdditionEntry, error)
}
