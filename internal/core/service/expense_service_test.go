package service

import (
	"context"
	"testing"
	"time"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

func (r *stubExpenseRepo) Create(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	clone := *expense
	clone.ID = "e1"
	r.created = append(r.created, clone)
	return &clone, nil
}

func TestExpenseService_PersistDebitsBalance(t *testing.T) {
	accounting := newStubAccountingRepo()
	accounting.records["u1"] = &domain.AccountingRecord{UserID: "u1"}
	accounting.balances["u1"] = dec("500.00")
	expenses := &stubExpenseRepo{}
	svc := NewExpenseService(expenses, accounting)

	got, err := svc.Persist(context.Background(), "u1", ports.ExpenseInput{
		Name:     "Groceries",
		Category: domain.CategoryFood,
		Amount:   dec("75.25"),
	})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if !got.Equal(dec("424.75")) {
		t.Fatalf("expected balance 424.75 after debit, got %s", got)
	}
	if len(expenses.created) != 1 {
		t.Fatalf("expected one stored expense, got %d", len(expenses.created))
	}
	stored := expenses.created[0]
	if stored.UserID != "u1" || stored.Date.IsZero() {
		t.Fatalf("unexpected stored expense: %+v", stored)
	}
}

func TestExpenseService_PeriodBoundsAreHalfOpen(t *testing.T) {
	expenses := &stubExpenseRepo{created: []domain.Expense{
		{
			ID:     "last-instant",
			UserID: "u1",
			Amount: dec("10.00"),
			Date:   time.Date(2025, time.December, 31, 23, 59, 59, 999_999_999, time.UTC),
		},
		{
			ID:     "next-year",
			UserID: "u1",
			Amount: dec("20.00"),
			Date:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewExpenseService(expenses, newStubAccountingRepo())

	year, err := svc.YearExpenses(context.Background(), "u1", 2025)
	if err != nil {
		t.Fatalf("YearExpenses returned error: %v", err)
	}
	if len(year) != 1 || year[0].ID != "last-instant" {
		t.Fatalf("expected only the final-second expense of 2025, got %+v", year)
	}

	month, err := svc.MonthExpenses(context.Background(), "u1", 2025, time.December)
	if err != nil {
		t.Fatalf("MonthExpenses returned error: %v", err)
	}
	if len(month) != 1 || month[0].ID != "last-instant" {
		t.Fatalf("expected only the final-second expense of December, got %+v", month)
	}
}

func TestExpenseService_PersistUnknownAccount(t *testing.T) {
	svc := NewExpenseService(&stubExpenseRepo{}, newStubAccountingRepo())

	if _, err := svc.Persist(context.Background(), "ghost", ports.ExpenseInput{Amount: dec("10.00")}); err == nil {
		t.Fatal("expected error for missing accounting record")
	}
}
