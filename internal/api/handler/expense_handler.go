package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

type ExpenseHandler struct {
	expenseService ports.ExpenseService
}

func NewExpenseHandler(expenseService ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Persist records an expense and returns the balance after the debit.
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      expenseRequest  true  "Expense details"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/expense/persist [post]
func (h *ExpenseHandler) Persist(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.expenseService.Persist(c.Request().Context(), user.ID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

// All lists the authenticated user's expenses for the current year.
//
// @Summary      List current-year expenses
// @Tags         expenses
// @Produce      json
// @Success      200  {array}  expenseResponse
// @Router       /api/expense/get/all [get]
func (h *ExpenseHandler) All(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.YearExpenses(c.Request().Context(), user.ID, time.Now().UTC().Year())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponses(expenses))
}

// Monthly lists expenses for one month of the current year.
//
// @Summary      List monthly expenses
// @Tags         expenses
// @Produce      json
// @Param        month  query    int  true  "Month number (1-12)"
// @Success      200    {array}  expenseResponse
// @Router       /api/expense/get/monthly [get]
func (h *ExpenseHandler) Monthly(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be between 1 and 12")
	}

	expenses, err := h.expenseService.MonthExpenses(c.Request().Context(), user.ID, time.Now().UTC().Year(), time.Month(month))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseResponses(expenses))
}

// Delete removes one of the authenticated user's expenses.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Param        id  path  string  true  "Expense ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/expense/delete/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
