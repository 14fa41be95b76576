package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

type expenseRequest struct {
	Name        string          `json:"name" validate:"max=60"`
	Category    string          `json:"category" validate:"omitempty,oneof=food transport health education entertainment utilities housing personal_care insurance savings other"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description" validate:"max=150"`
	Recurrent   bool            `json:"is_recurrent"`
}

func (r expenseRequest) toInput() ports.ExpenseInput {
	return ports.ExpenseInput{
		Name:        r.Name,
		Category:    domain.ExpenseCategory(r.Category),
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		Recurrent:   r.Recurrent,
	}
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Recurrent   bool            `json:"is_recurrent"`
}

func toExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Name:        e.Name,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
		Recurrent:   e.Recurrent,
	}
}

func toExpenseResponses(expenses []domain.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}
