package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies what an expense was spent on.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryHealth        ExpenseCategory = "health"
	CategoryEducation     ExpenseCategory = "education"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryHousing       ExpenseCategory = "housing"
	CategoryPersonalCare  ExpenseCategory = "personal_care"
	CategoryInsurance     ExpenseCategory = "insurance"
	CategorySavings       ExpenseCategory = "savings"
	CategoryOther         ExpenseCategory = "other"
)

var ErrExpenseNotFound = errors.New("expense not found")

// Expense is a single spend against a user's balance. Recurring expenses are
// charged again on every reconciliation cycle until removed.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name,omitempty"`
	Category    ExpenseCategory `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Recurrent   bool            `json:"is_recurrent"`
}
