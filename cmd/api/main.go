package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loyalty-platform/config"
	httpHandler "loyalty-platform/internal/adapter/http/handler"
	pgStorage "loyalty-platform/internal/adapter/storage/postgres"
	redisStorage "loyalty-platform/internal/adapter/storage/redis"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/internal/service"
	"loyalty-platform/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Loyalty Platform")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	workerRepo := pgStorage.NewWorkerRepo(pool)
	branchRepo := pgStorage.NewBranchRepo(pool)
	customerRepo := pgStorage.NewCustomerRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	settingsRepo := pgStorage.NewSettingsRepo(pool)
	adminRepo := pgStorage.NewAdminRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	authSvc := service.NewAuthService(merchantRepo, workerRepo, adminRepo, hashSvc, tokenSvc, log)
	settingsSvc := service.NewSettingsService(settingsRepo, merchantRepo)
	walletSvc := service.NewWalletService(customerRepo, txRepo, settingsSvc, transactor, log)
	customerSvc := service.NewCustomerService(customerRepo, branchRepo, workerRepo, settingsSvc, log)
	staffSvc := service.NewStaffService(workerRepo, branchRepo, hashSvc, log)
	adminSvc := service.NewAdminService(merchantRepo, txRepo, log)
	reportingSvc := service.NewReportingService(txRepo)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:         authSvc,
		WalletSvc:       walletSvc,
		SettingsSvc:     settingsSvc,
		CustomerSvc:     customerSvc,
		StaffSvc:        staffSvc,
		AdminSvc:        adminSvc,
		ReportingSvc:    reportingSvc,
		TokenSvc:        tokenSvc,
		CustomerRepo:    customerRepo,
		TransactionRepo: txRepo,
		MerchantRepo:    merchantRepo,
		WorkerRepo:      workerRepo,
		AdminRepo:       adminRepo,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
