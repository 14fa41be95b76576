package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

type firstRegistryRequest struct {
	SalaryDay      int              `json:"salary_day" validate:"required,gte=1,lte=31"`
	MonthlySalary  decimal.Decimal  `json:"monthly_salary" validate:"required"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	Expenses       []expenseRequest `json:"expenses" validate:"dive"`
}

func (r firstRegistryRequest) toInput() ports.FirstRegistryInput {
	input := ports.FirstRegistryInput{
		SalaryDay:      r.SalaryDay,
		MonthlySalary:  r.MonthlySalary,
		CurrentBalance: r.CurrentBalance,
	}
	for _, e := range r.Expenses {
		input.Expenses = append(input.Expenses, e.toInput())
	}
	return input
}

type updateSalaryRequest struct {
	Salary decimal.Decimal `json:"salary" validate:"required"`
}

type updateSalaryDayRequest struct {
	Day int `json:"day" validate:"required,gte=1,lte=31"`
}

type additionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"max=150"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type additionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toAdditionResponse(e domain.AdditionEntry) additionResponse {
	return additionResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
