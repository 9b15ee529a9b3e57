package handler

import (
	"loyalty-platform/internal/adapter/http/middleware"
	redisStore "loyalty-platform/internal/adapter/storage/redis"
	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc         ports.AuthService
	WalletSvc       ports.WalletService
	SettingsSvc     ports.SettingsService
	CustomerSvc     ports.CustomerService
	StaffSvc        ports.StaffService
	AdminSvc        ports.AdminService
	ReportingSvc    ports.ReportingService
	TokenSvc        ports.TokenService
	CustomerRepo    ports.CustomerRepository
	TransactionRepo ports.TransactionRepository
	MerchantRepo    ports.MerchantRepository
	WorkerRepo      ports.WorkerRepository
	AdminRepo       ports.AdminRepository
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check verifies PostgreSQL and Redis
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.MerchantRepo, deps.WorkerRepo, deps.AdminRepo)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.GET("/me", jwtAuth, authHandler.Me)
	}

	// --- Worker routes (wallet engine callers) ---
	workerHandler := NewWorkerHandler(deps.WalletSvc, deps.ReportingSvc, deps.CustomerRepo)
	workers := v1.Group("/workers", jwtAuth, middleware.RequireRole(domain.RoleWorker))
	{
		workers.GET("/customers", rl("management"), workerHandler.ListCustomers)
		workers.GET("/customers/:id", rl("management"), workerHandler.GetCustomer)
		workers.POST("/customers/:id/topup", rl("wallet_ops"), workerHandler.Topup)
		workers.POST("/customers/:id/redeem", rl("wallet_ops"), workerHandler.Redeem)
		workers.GET("/customers/:id/transactions", rl("management"), workerHandler.ListCustomerTransactions)
	}

	// --- Merchant routes ---
	merchantHandler := NewMerchantHandler(deps.StaffSvc, deps.CustomerSvc, deps.SettingsSvc,
		deps.ReportingSvc, deps.CustomerRepo, deps.WorkerRepo, deps.TransactionRepo)
	merchants := v1.Group("/merchants", jwtAuth, middleware.RequireRole(domain.RoleMerchant), rl("management"))
	{
		merchants.GET("/workers", merchantHandler.ListWorkers)
		merchants.POST("/workers", merchantHandler.CreateWorker)
		merchants.GET("/workers/:id", merchantHandler.GetWorker)
		merchants.PATCH("/workers/:id", merchantHandler.UpdateWorker)

		merchants.GET("/branches", merchantHandler.ListBranches)
		merchants.POST("/branches", merchantHandler.CreateBranch)
		merchants.PATCH("/branches/:id", merchantHandler.UpdateBranch)

		merchants.GET("/customers", merchantHandler.ListCustomers)
		merchants.POST("/customers", merchantHandler.RegisterCustomer)
		merchants.GET("/customers/:id", merchantHandler.GetCustomer)
		merchants.PATCH("/customers/:id/status", merchantHandler.UpdateCustomerStatus)

		merchants.GET("/transactions", merchantHandler.ListTransactions)
		merchants.GET("/transactions/:id", merchantHandler.GetTransaction)

		merchants.GET("/settings/points", merchantHandler.GetSettings)
		merchants.PUT("/settings/points", merchantHandler.UpdateSettings)

		merchants.GET("/stats", merchantHandler.GetStats)
	}

	// --- Admin routes ---
	adminHandler := NewAdminHandler(deps.AdminSvc, deps.MerchantRepo, deps.ReportingSvc)
	admin := v1.Group("/admin", jwtAuth, middleware.RequireRole(domain.RoleAdmin), rl("management"))
	{
		admin.GET("/merchants", adminHandler.ListMerchants)
		admin.GET("/merchants/:id", adminHandler.GetMerchant)
		admin.POST("/merchants/:id/approve", adminHandler.ApproveMerchant)
		admin.POST("/merchants/:id/reject", adminHandler.RejectMerchant)
		admin.PUT("/merchants/:id/commission", adminHandler.SetCommission)

		admin.GET("/transactions", adminHandler.ListTransactions)
		admin.PATCH("/transactions/:id/pay-status", adminHandler.UpdatePayStatus)
	}

	return r
}
