package ports

import (
	"context"
	"time"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines persistence operations for customers.
// Methods accepting pgx.Tx run inside transaction blocks for pessimistic locking.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Customer, error)
	// GetAssignedForUpdate fetches an active customer assigned to the given
	// worker with a row lock. Returns nil when the customer is missing,
	// unassigned or inactive; the caller must not distinguish those cases.
	GetAssignedForUpdate(ctx context.Context, tx pgx.Tx, id, workerID uuid.UUID) (*domain.Customer, error)
	// ApplyBalance writes the engine-computed balance and transaction
	// timestamps within the locking transaction. setFirst also stamps the
	// first-transaction date if it is still unset.
	ApplyBalance(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, newBalance int64, at time.Time, setFirst bool) error
	UpdateStatus(ctx context.Context, id, merchantID uuid.UUID, status domain.CustomerStatus) error
	List(ctx context.Context, params CustomerListParams) ([]domain.Customer, int64, error)
	CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error)
}

// CustomerListParams holds filter + pagination for listing customers.
type CustomerListParams struct {
	MerchantID *uuid.UUID
	WorkerID   *uuid.UUID
	BranchID   *uuid.UUID
	Status     *domain.CustomerStatus
	Page       int
	PageSize   int
}

// TransactionRepository defines persistence for the append-only ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Transaction, error)
	// SumDebitPoints totals debited points for a customer in [from, to).
	// Runs inside the caller's locking transaction so the observed value
	// includes every committed debit of the current day.
	SumDebitPoints(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, from, to time.Time) (int64, error)
	UpdatePayStatus(ctx context.Context, id uuid.UUID, status domain.PayStatus) error
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetPointsStats(ctx context.Context, merchantID uuid.UUID, periodStart *time.Time) (*PointsStats, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
// MerchantID is nil only for platform-admin listings.
type TransactionListParams struct {
	MerchantID *uuid.UUID
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID
	WorkerID   *uuid.UUID
	Type       *domain.TransactionType
	PayStatus  *domain.PayStatus
	Page       int
	PageSize   int
}

// PointsStats holds aggregated ledger statistics for a merchant.
type PointsStats struct {
	TotalTransactions int64
	PointsCredited    int64
	PointsRedeemed    int64
	CashVolume        decimal.Decimal
	CommissionAccrued decimal.Decimal
}

// SettingsRepository defines persistence for merchant settings.
type SettingsRepository interface {
	// GetOrCreate returns the merchant's settings row, inserting defaults
	// atomically when absent. Concurrent first-reads converge on one row.
	GetOrCreate(ctx context.Context, defaults *domain.MerchantSettings) (*domain.MerchantSettings, error)
	Update(ctx context.Context, settings *domain.MerchantSettings) error
}

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Merchant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MerchantStatus) error
	UpdateCommission(ctx context.Context, id uuid.UUID, percent decimal.Decimal) error
	List(ctx context.Context, status *domain.MerchantStatus, page, pageSize int) ([]domain.Merchant, int64, error)
}

// WorkerRepository defines persistence operations for workers.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error)
	GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Worker, error)
	GetByEmail(ctx context.Context, email string) (*domain.Worker, error)
	Update(ctx context.Context, worker *domain.Worker) error
	List(ctx context.Context, merchantID uuid.UUID, status *domain.WorkerStatus, page, pageSize int) ([]domain.Worker, int64, error)
}

// BranchRepository defines persistence operations for branches.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Branch, error)
	Update(ctx context.Context, branch *domain.Branch) error
	List(ctx context.Context, merchantID uuid.UUID, page, pageSize int) ([]domain.Branch, int64, error)
}

// AdminRepository defines persistence operations for platform admins.
type AdminRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
