package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

const summaryCacheSize = 10_000

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.MustLoadConfig(logger)

	ctx, stop := cli.ShutdownContext(logger)
	defer stop()

	be, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := be.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	summaries, err := cache.NewRistretto[core.DashboardSummary](summaryCacheSize, cfg.CacheTTL)
	if err != nil {
		logger.Error("Failed to create summary cache", log.FieldError, err)
		os.Exit(1)
	}
	defer summaries.Close()

	// A nil *amqp.Client must not become a non-nil interface.
	var publisher services.EventPublisher
	if be.Events != nil {
		publisher = be.Events
	}

	clock := core.SystemClock{Location: cfg.Location()}
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	st := be.Store

	srv := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + cfg.Port,
		Logger:             logger,
		Tokens:             tokens,
		Clock:              clock,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Ready:              st.Ping,
	}, apphttp.Services{
		Users:         services.NewUserService(st, tokens, clock),
		Transactions:  services.NewTransactionService(st, publisher, summaries, clock),
		Budgets:       services.NewBudgetService(st, st, clock),
		Bills:         services.NewBillService(st, clock),
		Categories:    services.NewCategoryService(st, clock),
		Notifications: services.NewNotificationService(st),
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	}()

	logger.Info("Starting fintrack server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"timezone", clock.Location.String(),
		"events", be.Events != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
