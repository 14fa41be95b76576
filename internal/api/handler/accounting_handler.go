package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

type AccountingHandler struct {
	accountingService ports.AccountingService
}

func NewAccountingHandler(accountingService ports.AccountingService) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

// FirstRegistry completes the one-time financial setup for a fresh account.
//
// @Summary      First financial registry
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        body  body      firstRegistryRequest  true  "Salary schedule, starting balance and initial expenses"
// @Success      201
// @Failure      400   {object}  map[string]string
// @Router       /api/user/first/registry [post]
func (h *AccountingHandler) FirstRegistry(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req firstRegistryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountingService.FirstRegistry(c.Request().Context(), user.ID, req.toInput()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Balance returns the authenticated user's current balance.
//
// @Summary      Current balance
// @Tags         accounting
// @Produce      json
// @Success      200  {object}  balanceResponse
// @Router       /api/user/get/balance [get]
func (h *AccountingHandler) Balance(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	balance, err := h.accountingService.Balance(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

// Salary returns the authenticated user's monthly salary.
//
// @Summary      Monthly salary
// @Tags         accounting
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/user/get/salary [get]
func (h *AccountingHandler) Salary(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	salary, err := h.accountingService.Salary(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"salary": salary})
}

// SpentPercent returns the fraction of the salary already spent this month.
//
// @Summary      Monthly spent percentage
// @Tags         accounting
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/user/get/salary/spent [get]
func (h *AccountingHandler) SpentPercent(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	pct, err := h.accountingService.MonthlySpentPercent(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"spent_percent": pct})
}

// UpdateSalary replaces the monthly salary amount.
//
// @Summary      Update salary amount
// @Tags         accounting
// @Accept       json
// @Success      204
// @Router       /api/user/update/salary [put]
func (h *AccountingHandler) UpdateSalary(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateSalaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountingService.UpdateSalaryAmount(c.Request().Context(), user.ID, req.Salary); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateSalaryDay replaces the day of the month the salary is credited.
//
// @Summary      Update salary credit day
// @Tags         accounting
// @Accept       json
// @Success      204
// @Router       /api/user/update/salary/date [put]
func (h *AccountingHandler) UpdateSalaryDay(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateSalaryDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountingService.UpdateSalaryDay(c.Request().Context(), user.ID, req.Day); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddToBalance credits an amount and logs the addition.
//
// @Summary      Add to balance
// @Tags         additions
// @Accept       json
// @Produce      json
// @Param        body  body      additionRequest  true  "Amount and optional description"
// @Success      200   {object}  balanceResponse
// @Router       /api/additions/add [post]
func (h *AccountingHandler) AddToBalance(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req additionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.accountingService.AddToBalance(c.Request().Context(), user.ID, req.Amount, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

// YearAdditions lists every logged addition for a year.
//
// @Summary      Yearly additions
// @Tags         additions
// @Produce      json
// @Param        year  query     int  false  "Year, defaults to the current one"
// @Success      200   {array}   additionResponse
// @Router       /api/additions/get/yearly [get]
func (h *AccountingHandler) YearAdditions(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
		}
		year = parsed
	}

	additions, err := h.accountingService.YearAdditions(c.Request().Context(), user.ID, year)
	if err != nil {
		return err
	}

	out := make([]additionResponse, 0, len(additions))
	for _, a := range additions {
		out = append(out, toAdditionResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}
