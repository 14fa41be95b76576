package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/RafaelMelo23/expensetracker/docs"
	"github.com/RafaelMelo23/expensetracker/internal/api/handler"
	"github.com/RafaelMelo23/expensetracker/internal/api/middleware"
	"github.com/RafaelMelo23/expensetracker/internal/core/domain"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
	healthhandlers "github.com/RafaelMelo23/expensetracker/internal/infrastructure/http/handlers"
)

// Dependencies carries the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService       ports.AuthService
	TokenService      ports.TokenService
	PrincipalResolver ports.PrincipalResolver
	AccountingService ports.AccountingService
	ExpenseService    ports.ExpenseService

	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("expensetracker"))
	e.Use(middleware.Auth(deps.TokenService, deps.PrincipalResolver))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.TokenService)
	accountingHandler := handler.NewAccountingHandler(deps.AccountingService)
	expenseHandler := handler.NewExpenseHandler(deps.ExpenseService)

	// --- Public auth routes ---
	e.POST("/api/user/register", authHandler.Register)
	e.POST("/api/user/login", authHandler.Login)

	// --- Authenticated user/accounting routes ---
	user := e.Group("/api/user", middleware.RequireAuth())
	user.POST("/first/registry", accountingHandler.FirstRegistry)
	user.GET("/get/balance", accountingHandler.Balance)
	user.GET("/get/salary", accountingHandler.Salary)
	user.GET("/get/salary/spent", accountingHandler.SpentPercent)
	user.PUT("/update/salary", accountingHandler.UpdateSalary)
	user.PUT("/update/salary/date", accountingHandler.UpdateSalaryDay)

	// --- Authenticated expense routes ---
	expense := e.Group("/api/expense", middleware.RequireAuth())
	expense.POST("/persist", expenseHandler.Persist)
	expense.GET("/get/all", expenseHandler.All)
	expense.GET("/get/monthly", expenseHandler.Monthly)
	expense.DELETE("/delete/:id", expenseHandler.Delete)

	// --- Authenticated additions routes ---
	additions := e.Group("/api/additions", middleware.RequireAuth())
	additions.POST("/add", accountingHandler.AddToBalance)
	additions.GET("/get/yearly", accountingHandler.YearAdditions)

	// --- Metrics (admin only, scraped with the rotated service token) ---
	e.GET("/metrics", echoprometheus.NewHandler(),
		middleware.RequireAuth(), middleware.RBAC(domain.RoleAdmin))

	// --- API docs ---
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
