package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// ExpenseService records expenses and keeps the owning balance in step.
type ExpenseService struct {
	expenses   ports.ExpenseRepository
	accounting ports.AccountingRepository
}

func NewExpenseService(expenses ports.ExpenseRepository, accounting ports.AccountingRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, accounting: accounting}
}

// Persist stores the expense, debits the owner's balance by its amount and
// returns the balance after the debit.
func (s *ExpenseService) Persist(ctx context.Context, userID string, input ports.ExpenseInput) (decimal.Decimal, error) {
	expense := &domain.Expense{
		UserID:      userID,
		Name:        input.Name,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		Recurrent:   input.Recurrent,
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}

	if _, err := s.expenses.Create(ctx, expense); err != nil {
		return decimal.Zero, err
	}

	if err := s.accounting.AddToBalance(ctx, userID, input.Amount.Neg()); err != nil {
		return decimal.Zero, err
	}

	rec, err := s.accounting.FindByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.Balance, nil
}

func (s *ExpenseService) YearExpenses(ctx context.Context, userID string, year int) ([]domain.Expense, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.expenses.FindBetween(ctx, userID, from, from.AddDate(1, 0, 0))
}

func (s *ExpenseService) MonthExpenses(ctx context.Context, userID string, year int, month time.Month) ([]domain.Expense, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.expenses.FindBetween(ctx, userID, from, from.AddDate(0, 1, 0))
}

func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	return s.expenses.Delete(ctx, userID, expenseID)
}
