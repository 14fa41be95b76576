package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// stubExpenseRepo embeds the interface so each test only implements what it
// touches; any other call panics and flags the test.
type stubExpenseRepo struct {
	ports.ExpenseRepository
	recurring map[string][]decimal.Decimal
	created   []domain.Expense
	err       error
}

func (r *stubExpenseRepo) FindRecurringAmounts(_ context.Context, userID string) ([]decimal.Decimal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.recurring[userID], nil
}

func (r *stubExpenseRepo) CreateMany(_ context.Context, expenses []domain.Expense) error {
	r.created = append(r.created, expenses...)
	return nil
}

func (r *stubExpenseRepo) FindBetween(_ context.Context, userID string, from, to time.Time) ([]domain.Expense, error) {
	var out []domain.Expense
	for _, e := range r.created {
		if e.UserID == userID && !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubAccountingRepo struct {
	ports.AccountingRepository

	mu        sync.Mutex
	records   map[string]*domain.AccountingRecord
	balances  map[string]decimal.Decimal
	additions []domain.AdditionEntry
	writes    int
	writeErr  error
}

func newStubAccountingRepo() *stubAccountingRepo {
	return &stubAccountingRepo{
		records:  make(map[string]*domain.AccountingRecord),
		balances: make(map[string]decimal.Decimal),
	}
}

func (r *stubAccountingRepo) Create(_ context.Context, rec *domain.AccountingRecord) (*domain.AccountingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *rec
	clone.ID = rec.UserID
	r.records[rec.UserID] = &clone
	r.balances[rec.UserID] = rec.Balance
	return &clone, nil
}

func (r *stubAccountingRepo) FindByUserID(_ context.Context, userID string) (*domain.AccountingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		return nil, domain.ErrAccountingNotFound
	}
	clone := *rec
	clone.Balance = r.balances[userID]
	return &clone, nil
}

func (r *stubAccountingRepo) AddToBalance(_ context.Context, userID string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[userID]; !ok {
		return domain.ErrAccountingNotFound
	}
	r.balances[userID] = r.balances[userID].Add(amount)
	return nil
}

func (r *stubAccountingRepo) OverwriteBalance(_ context.Context, userID string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.balances[userID] = balance
	r.writes++
	return nil
}

func (r *stubAccountingRepo) UpdateSalaryAmount(_ context.Context, userID string, salary decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		return domain.ErrAccountingNotFound
	}
	rec.MonthlySalary = salary
	return nil
}

func (r *stubAccountingRepo) UpdateSalaryDay(_ context.Context, userID string, day int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		return domain.ErrAccountingNotFound
	}
	rec.SalaryDay = day
	return nil
}

func (r *stubAccountingRepo) AppendAddition(_ context.Context, entry *domain.AdditionEntry) (*domain.AdditionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *entry
	clone.ID = "a1"
	r.additions = append(r.additions, clone)
	return &clone, nil
}

func (r *stubAccountingRepo) FindAdditionsBetween(_ context.Context, userID string, from, to time.Time) ([]domain.AdditionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AdditionEntry
	for _, a := range r.additions {
		if a.UserID == userID && !a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAccountingRepo) balance(userID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[userID]
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBalanceReconciler_SalaryMinusRecurring(t *testing.T) {
	expenses := &stubExpenseRepo{recurring: map[string][]decimal.Decimal{
		"u1": {dec("100.00"), dec("200.00"), dec("300.00")},
	}}
	accounting := newStubAccountingRepo()
	accounting.records["u1"] = &domain.AccountingRecord{UserID: "u1"}

	r := NewBalanceReconciler(expenses, accounting)
	if err := r.Reconcile(context.Background(), "u1", dec("5000.00")); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if got := accounting.balance("u1"); !got.Equal(dec("4400.00")) {
		t.Fatalf("expected balance 4400.00, got %s", got)
	}
}

func TestBalanceReconciler_NoRecurringExpenses(t *testing.T) {
	expenses := &stubExpenseRepo{recurring: map[string][]decimal.Decimal{}}
	accounting := newStubAccountingRepo()
	accounting.records["u1"] = &domain.AccountingRecord{UserID: "u1"}

	r := NewBalanceReconciler(expenses, accounting)
	if err := r.Reconcile(context.Background(), "u1", dec("5000.00")); err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}

	if got := accounting.balance("u1"); !got.Equal(dec("5000.00")) {
		t.Fatalf("expected balance to equal salary, got %s", got)
	}
}

func TestBalanceReconciler_Idempotent(t *testing.T) {
	expenses := &stubExpenseRepo{recurring: map[string][]decimal.Decimal{
		"u1": {dec("150.50")},
	}}
	accounting := newStubAccountingRepo()
	accounting.records["u1"] = &domain.AccountingRecord{UserID: "u1"}

	r := NewBalanceReconciler(expenses, accounting)
	for i := 0; i < 3; i++ {
		if err := r.Reconcile(context.Background(), "u1", dec("2000.00")); err != nil {
			t.Fatalf("run %d returned error: %v", i, err)
		}
	}

	// The overwrite makes repeated same-day runs converge, never compound.
	if got := accounting.balance("u1"); !got.Equal(dec("1849.50")) {
		t.Fatalf("expected balance 1849.50 after repeated runs, got %s", got)
	}
}

func TestBalanceReconciler_ExpenseLookupError(t *testing.T) {
	wantErr := errors.New("boom")
	expenses := &stubExpenseRepo{err: wantErr}
	accounting := newStubAccountingRepo()

	r := NewBalanceReconciler(expenses, accounting)
	if err := r.Reconcile(context.Background(), "u1", dec("1000.00")); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
	if accounting.writes != 0 {
		t.Fatalf("no balance write expected on lookup failure")
	}
}
