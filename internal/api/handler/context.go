package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RafaelMelo23/expensetracker/internal/api/middleware"
	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
)

// ctxUser extracts the authenticated user installed by the Auth middleware
// and fast-fails before any service call:
//   - a missing principal means the route was wired without RequireAuth or
//     the middleware did not run — reject with 401.
//   - the service scraper identity carries no user record, so endpoints
//     serving per-user data reject it with 403.
func ctxUser(c echo.Context) (*domain.User, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if p.Kind != domain.PrincipalUser || p.User == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "service identity has no account data")
	}
	return p.User, nil
}
