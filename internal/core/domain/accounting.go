package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrAccountingNotFound = errors.New("accounting record not found")
var ErrAccountingExists = errors.New("accounting record already exists")
var ErrInvalidSalaryDay = errors.New("salary day must be between 1 and 31")

// AccountingRecord holds the per-user financial state: the monthly salary,
// the day of the month it is credited, and the running balance. The balance
// is overwritten by the daily reconciliation and adjusted incrementally by
// expenses and additions in between.
type AccountingRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	SalaryDay     int             `json:"salary_day"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SalaryDue pairs an account owner with the salary to credit on a
// reconciliation day.
type SalaryDue struct {
	UserID        string
	MonthlySalary decimal.Decimal
}

// AdditionEntry logs a manual balance top-up.
type AdditionEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
