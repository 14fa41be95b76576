package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// AccountingService manages balances, salaries and addition logs.
type AccountingService struct {
	accounting ports.AccountingRepository
	expenses   ports.ExpenseRepository
	users      ports.UserRepository
}

func NewAccountingService(accounting ports.AccountingRepository, expenses ports.ExpenseRepository, users ports.UserRepository) *AccountingService {
	return &AccountingService{accounting: accounting, expenses: expenses, users: users}
}

// FirstRegistry creates the accounting record after a user's first login and
// stores any expenses they declared up front.
func (s *AccountingService) FirstRegistry(ctx context.Context, userID string, input ports.FirstRegistryInput) error {
	if input.SalaryDay < 1 || input.SalaryDay > 31 {
		return domain.ErrInvalidSalaryDay
	}

	now := time.Now().UTC()
	rec := &domain.AccountingRecord{
		UserID:        userID,
		SalaryDay:     input.SalaryDay,
		MonthlySalary: input.MonthlySalary,
		Balance:       input.CurrentBalance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.accounting.Create(ctx, rec); err != nil {
		return err
	}

	if len(input.Expenses) > 0 {
		expenses := make([]domain.Expense, 0, len(input.Expenses))
		for _, in := range input.Expenses {
			expenses = append(expenses, domain.Expense{
				UserID:      userID,
				Name:        in.Name,
				Category:    in.Category,
				Amount:      in.Amount,
				Date:        in.Date,
				Description: in.Description,
				Recurrent:   in.Recurrent,
			})
		}
		if err := s.expenses.CreateMany(ctx, expenses); err != nil {
			return err
		}
	}

	return s.users.MarkFirstLoginDone(ctx, userID)
}

func (s *AccountingService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	rec, err := s.accounting.FindByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.Balance, nil
}

func (s *AccountingService) Salary(ctx context.Context, userID string) (decimal.Decimal, error) {
	rec, err := s.accounting.FindByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return rec.MonthlySalary, nil
}

// MonthlySpentPercent reports how much of the salary is already spent, as a
// fraction rounded half-up to two places and clamped to [0, 1].
func (s *AccountingService) MonthlySpentPercent(ctx context.Context, userID string) (decimal.Decimal, error) {
	rec, err := s.accounting.FindByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if rec.MonthlySalary.IsZero() {
		return decimal.Zero, nil
	}

	spent := rec.MonthlySalary.Sub(rec.Balance)
	pct := spent.DivRound(rec.MonthlySalary, 2)
	if pct.LessThan(decimal.Zero) {
		return decimal.Zero, nil
	}
	one := decimal.NewFromInt(1)
	if pct.GreaterThan(one) {
		return one, nil
	}
	return pct, nil
}

func (s *AccountingService) UpdateSalaryAmount(ctx context.Context, userID string, salary decimal.Decimal) error {
	return s.accounting.UpdateSalaryAmount(ctx, userID, salary)
}

func (s *AccountingService) UpdateSalaryDay(ctx context.Context, userID string, day int) error {
	if day < 1 || day > 31 {
		return domain.ErrInvalidSalaryDay
	}
	return s.accounting.UpdateSalaryDay(ctx, userID, day)
}

// AddToBalance credits the amount, logs the addition and returns the balance
// after the credit.
func (s *AccountingService) AddToBalance(ctx context.Context, userID string, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if err := s.accounting.AddToBalance(ctx, userID, amount); err != nil {
		return decimal.Zero, err
	}

	entry := &domain.AdditionEntry{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.accounting.AppendAddition(ctx, entry); err != nil {
		return decimal.Zero, err
	}

	return s.Balance(ctx, userID)
}

func (s *AccountingService) YearAdditions(ctx context.Context, userID string, year int) ([]domain.AdditionEntry, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.accounting.FindAdditionsBetween(ctx, userID, from, from.AddDate(1, 0, 0))
}
