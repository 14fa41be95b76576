package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// BalanceReconciler recomputes an account's balance on its salary day:
// monthly salary minus the sum of every recurring expense. The result
// overwrites the stored balance outright, which makes re-running the same day
// converge to the same value instead of double-crediting.
type BalanceReconciler struct {
	expenses   ports.ExpenseRepository
	accounting ports.AccountingRepository
}

func NewBalanceReconciler(expenses ports.ExpenseRepository, accounting ports.AccountingRepository) *BalanceReconciler {
	return &BalanceReconciler{expenses: expenses, accounting: accounting}
}

func (r *BalanceReconciler) Reconcile(ctx context.Context, userID string, monthlySalary decimal.Decimal) error {
	amounts, err := r.expenses.FindRecurringAmounts(ctx, userID)
	if err != nil {
		return fmt.Errorf("load recurring expenses: %w", err)
	}

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}

	newBalance := monthlySalary.Sub(total)
	if err := r.accounting.OverwriteBalance(ctx, userID, newBalance); err != nil {
		return fmt.Errorf("overwrite balance: %w", err)
	}
	return nil
}
