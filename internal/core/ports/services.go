package ports

import (
	"context"
	"time"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations for authenticated principals.
type TokenService interface {
	Generate(principal domain.Principal) (string, time.Time, error)
	Validate(tokenString string) (*domain.Principal, error)
}

// --- Service Ports (Business Logic) ---

// WalletService is the wallet transaction engine. Apply validates a credit
// or debit against the merchant's policy and atomically mutates the
// customer's balance while appending a ledger entry.
type WalletService interface {
	Apply(ctx context.Context, req WalletTransactionRequest) (*WalletTransactionResult, error)
}

// WalletTransactionRequest holds validated input for a wallet mutation.
type WalletTransactionRequest struct {
	CustomerID uuid.UUID
	WorkerID   uuid.UUID
	Type       domain.TransactionType
	Points     int64
	CashValue  decimal.Decimal
}

// WalletTransactionResult is the engine's success output.
type WalletTransactionResult struct {
	Transaction *domain.Transaction
	NewBalance  int64
}

// SettingsService resolves and updates per-merchant loyalty limits.
type SettingsService interface {
	// Get returns the merchant's settings, creating defaults when absent.
	// Resolution never fails for a missing row.
	Get(ctx context.Context, merchantID uuid.UUID) (*domain.MerchantSettings, error)
	Update(ctx context.Context, merchantID uuid.UUID, update SettingsUpdate) (*domain.MerchantSettings, error)
	// PolicyFor assembles the limits view the engine validates against,
	// fresh per operation.
	PolicyFor(ctx context.Context, merchantID uuid.UUID) (domain.WalletPolicy, error)
}

// SettingsUpdate holds a partial settings change; nil fields keep their value.
type SettingsUpdate struct {
	PointToCurrencyRate *decimal.Decimal
	MaxWalletBalance    *int64
	MaxDailyRedemption  *int64
	MaxCustomersLimit   *int64
}

// AuthService defines authentication business logic for all roles.
type AuthService interface {
	RegisterMerchant(ctx context.Context, req RegisterMerchantRequest) (*domain.Merchant, error)
	Login(ctx context.Context, email, password string, role domain.Role) (*LoginResult, error)
}

// RegisterMerchantRequest holds input for merchant self-registration.
type RegisterMerchantRequest struct {
	BusinessName    string
	BusinessAddress string
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Password        string
}

// LoginResult holds the issued token and resolved principal.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.Principal
}

// CustomerService defines customer lifecycle operations outside the engine.
type CustomerService interface {
	Register(ctx context.Context, req RegisterCustomerRequest) (*domain.Customer, error)
	UpdateStatus(ctx context.Context, merchantID, customerID uuid.UUID, status domain.CustomerStatus) (*domain.Customer, error)
}

// RegisterCustomerRequest holds input for customer registration.
type RegisterCustomerRequest struct {
	MerchantID       uuid.UUID
	BranchID         uuid.UUID
	AssignedWorkerID *uuid.UUID
	FullName         string
	Email            *string
	PhoneNumber      string
}

// ReportingService defines ledger listing and aggregation.
type ReportingService interface {
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetPointsStats(ctx context.Context, merchantID uuid.UUID, period string) (*PointsStats, error)
}

// StaffService defines the merchant's management of its workers and branches.
type StaffService interface {
	CreateWorker(ctx context.Context, merchantID uuid.UUID, req CreateWorkerRequest) (*domain.Worker, error)
	UpdateWorker(ctx context.Context, merchantID, workerID uuid.UUID, req UpdateWorkerRequest) (*domain.Worker, error)
	ListWorkers(ctx context.Context, merchantID uuid.UUID, status *domain.WorkerStatus, page, pageSize int) ([]domain.Worker, int64, error)
	CreateBranch(ctx context.Context, merchantID uuid.UUID, req CreateBranchRequest) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, merchantID, branchID uuid.UUID, req UpdateBranchRequest) (*domain.Branch, error)
	ListBranches(ctx context.Context, merchantID uuid.UUID, page, pageSize int) ([]domain.Branch, int64, error)
}

// CreateWorkerRequest holds input for creating a worker account.
type CreateWorkerRequest struct {
	BranchID    *uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

// UpdateWorkerRequest holds a partial worker change; nil fields keep their value.
type UpdateWorkerRequest struct {
	BranchID    *uuid.UUID
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Status      *domain.WorkerStatus
}

// CreateBranchRequest holds input for creating a branch.
type CreateBranchRequest struct {
	Name    string
	City    string
	Address string
}

// UpdateBranchRequest holds a partial branch change; nil fields keep their value.
type UpdateBranchRequest struct {
	Name    *string
	City    *string
	Address *string
	Status  *domain.BranchStatus
}

// AdminService defines platform-operator actions over merchants and the ledger.
type AdminService interface {
	ListMerchants(ctx context.Context, status *domain.MerchantStatus, page, pageSize int) ([]domain.Merchant, int64, error)
	ReviewMerchant(ctx context.Context, merchantID uuid.UUID, approve bool) (*domain.Merchant, error)
	SetCommission(ctx context.Context, merchantID uuid.UUID, percent decimal.Decimal) (*domain.Merchant, error)
	UpdatePayStatus(ctx context.Context, transactionID uuid.UUID, status domain.PayStatus) (*domain.Transaction, error)
}
