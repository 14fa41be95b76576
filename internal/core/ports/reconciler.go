package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Reconciler recomputes an account's balance from its monthly salary and
// accumulated recurring expenses.
type Reconciler interface {
	Reconcile(ctx context.Context, userID string, monthlySalary decimal.Decimal) error
}

// RunLocker serializes the daily reconciliation batch across process
// instances.
type RunLocker interface {
	// TryAcquire claims the run lock for the given key. It returns false when
	// another holder already owns it.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
