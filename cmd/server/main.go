package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RafaelMelo23/expensetracker/internal/api"
	"github.com/RafaelMelo23/expensetracker/internal/core/service"
	"github.com/RafaelMelo23/expensetracker/internal/infrastructure/config"
	mongodb "github.com/RafaelMelo23/expensetracker/internal/infrastructure/db/mongo"
	redisdb "github.com/RafaelMelo23/expensetracker/internal/infrastructure/db/redis"
	"github.com/RafaelMelo23/expensetracker/internal/scheduler"
	"github.com/RafaelMelo23/expensetracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	accountingRepo := mongodb.NewAccountingRepository(db)
	expenseRepo := mongodb.NewExpenseRepository(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := accountingRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("accounting index creation failed")
	}
	if err := expenseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("expense index creation failed")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Lifetime)
	resolver := service.NewPrincipalResolver(users, cfg.Scraper.Email)
	authService := service.NewAuthService(users, tokens)
	accountingService := service.NewAccountingService(accountingRepo, expenseRepo, users)
	expenseService := service.NewExpenseService(expenseRepo, accountingRepo)
	reconciler := service.NewBalanceReconciler(expenseRepo, accountingRepo)

	// --- Background jobs ---
	loc, err := time.LoadLocation(cfg.Reconcile.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Reconcile.Timezone).Msg("invalid timezone, falling back to UTC")
		loc = time.UTC
	}

	dispatcher := scheduler.NewDispatcher(cfg.Reconcile.Workers, reconciler, log)
	dispatcher.Start(ctx)

	sched := scheduler.NewScheduler(accountingRepo, dispatcher, redisdb.NewRunLock(rdb), scheduler.Options{
		Hour:     cfg.Reconcile.Hour,
		Location: loc,
	}, log)
	sched.Start(ctx)

	rotator := scheduler.NewTokenRotator(tokens, cfg.Scraper.Email, cfg.Scraper.TokenFile, cfg.Scraper.RotateEvery, log)
	rotator.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService:       authService,
		TokenService:      tokens,
		PrincipalResolver: resolver,
		AccountingService: accountingService,
		ExpenseService:    expenseService,
		Mongo:             db,
		Redis:             rdb,
		Logger:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("expense tracker started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
