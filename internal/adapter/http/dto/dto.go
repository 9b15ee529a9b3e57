package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterMerchantRequest is the request body for merchant self-registration.
type RegisterMerchantRequest struct {
	BusinessName    string `json:"business_name" binding:"required,min=1,max=100"`
	BusinessAddress string `json:"business_address" binding:"required,max=255"`
	FirstName       string `json:"first_name" binding:"required,max=50"`
	LastName        string `json:"last_name" binding:"required,max=50"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number" binding:"required,max=20"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for login. Role selects which account
// table the credentials are checked against.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,account_role"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
	Role      string `json:"role"`
	AccountID string `json:"account_id"`
}

// WalletTransactionRequest is the request body for topup and redeem.
// CashValue is the cash-equivalent amount of the purchase or redemption;
// the engine validates both values are positive.
type WalletTransactionRequest struct {
	Points    int64           `json:"points" binding:"required,gt=0"`
	CashValue decimal.Decimal `json:"cash_value" binding:"required"`
}

// WalletTransactionResponse is the 201 body for a successful topup or redeem.
type WalletTransactionResponse struct {
	Transaction      TransactionResponse `json:"transaction"`
	NewWalletBalance int64               `json:"new_wallet_balance"`
}

// RegisterCustomerRequest is the request body for customer registration.
type RegisterCustomerRequest struct {
	BranchID         uuid.UUID  `json:"branch_id" binding:"required"`
	AssignedWorkerID *uuid.UUID `json:"assigned_worker_id,omitempty"`
	FullName         string     `json:"full_name" binding:"required,min=1,max=100"`
	Email            *string    `json:"email,omitempty" binding:"omitempty,email"`
	PhoneNumber      string     `json:"phone_number" binding:"required,max=20"`
}

// UpdateCustomerStatusRequest flips a customer between active and inactive.
type UpdateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// CreateWorkerRequest is the request body for creating a worker account.
type CreateWorkerRequest struct {
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	FirstName   string     `json:"first_name" binding:"required,max=50"`
	LastName    string     `json:"last_name" binding:"required,max=50"`
	Email       string     `json:"email" binding:"required,email"`
	PhoneNumber string     `json:"phone_number" binding:"required,max=20"`
	Password    string     `json:"password" binding:"required,min=8,max=128"`
}

// UpdateWorkerRequest is a partial worker change; omitted fields keep their value.
type UpdateWorkerRequest struct {
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// CreateBranchRequest is the request body for creating a branch.
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	City    string `json:"city" binding:"required,max=100"`
	Address string `json:"address" binding:"required,max=255"`
}

// UpdateBranchRequest is a partial branch change; omitted fields keep their value.
type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	City    *string `json:"city,omitempty"`
	Address *string `json:"address,omitempty"`
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// UpdateSettingsRequest is a partial change to the merchant's loyalty limits.
type UpdateSettingsRequest struct {
	PointToCurrencyRate *decimal.Decimal `json:"point_to_currency_rate,omitempty"`
	MaxWalletBalance    *int64           `json:"max_wallet_balance,omitempty"`
	MaxDailyRedemption  *int64           `json:"max_daily_redemption,omitempty"`
	MaxCustomersLimit   *int64           `json:"max_customers_limit,omitempty"`
}

// SetCommissionRequest sets a merchant's commission percent (admin only).
type SetCommissionRequest struct {
	CommissionPercent decimal.Decimal `json:"commission_percent" binding:"required"`
}

// UpdatePayStatusRequest patches the settlement flag on a transaction.
type UpdatePayStatusRequest struct {
	PayStatus string `json:"pay_status" binding:"required,oneof=paid unpaid"`
}

// TransactionResponse is the wire shape of a ledger entry.
type TransactionResponse struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	MerchantID      string          `json:"merchant_id"`
	BranchID        string          `json:"branch_id"`
	WorkerID        string          `json:"worker_id"`
	Type            string          `json:"type"`
	Points          int64           `json:"points"`
	CashValue       decimal.Decimal `json:"cash_value"`
	Commission      decimal.Decimal `json:"commission"`
	BalanceAfter    int64           `json:"balance_after"`
	PayStatus       string          `json:"pay_status"`
	TransactionDate string          `json:"transaction_date"`
}

// CustomerResponse is the wire shape of a customer.
type CustomerResponse struct {
	ID                   string  `json:"id"`
	BranchID             string  `json:"branch_id"`
	AssignedWorkerID     *string `json:"assigned_worker_id,omitempty"`
	FullName             string  `json:"full_name"`
	Email                *string `json:"email,omitempty"`
	PhoneNumber          string  `json:"phone_number"`
	WalletBalance        int64   `json:"wallet_balance"`
	Status               string  `json:"status"`
	RegistrationDate     string  `json:"registration_date"`
	FirstTransactionDate *string `json:"first_transaction_date,omitempty"`
	LastTransactionDate  *string `json:"last_transaction_date,omitempty"`
}

// WorkerResponse is the wire shape of a worker account.
type WorkerResponse struct {
	ID          string  `json:"id"`
	BranchID    *string `json:"branch_id,omitempty"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// BranchResponse is the wire shape of a branch.
type BranchResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// MerchantResponse is the wire shape of a merchant account.
type MerchantResponse struct {
	ID                string          `json:"id"`
	BusinessName      string          `json:"business_name"`
	BusinessAddress   string          `json:"business_address"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Email             string          `json:"email"`
	PhoneNumber       string          `json:"phone_number"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	Status            string          `json:"status"`
	CreatedAt         string          `json:"created_at"`
}

// SettingsResponse is the wire shape of the merchant's loyalty limits.
type SettingsResponse struct {
	PointToCurrencyRate decimal.Decimal `json:"point_to_currency_rate"`
	MaxWalletBalance    int64           `json:"max_wallet_balance"`
	MaxDailyRedemption  int64           `json:"max_daily_redemption"`
	MaxCustomersLimit   int64           `json:"max_customers_limit"`
	UpdatedAt           string          `json:"updated_at"`
}

// PointsStatsResponse is the response for merchant points statistics.
type PointsStatsResponse struct {
	TotalTransactions int64           `json:"total_transactions"`
	PointsCredited    int64           `json:"points_credited"`
	PointsRedeemed    int64           `json:"points_redeemed"`
	CashVolume        decimal.Decimal `json:"cash_volume"`
	CommissionAccrued decimal.Decimal `json:"commission_accrued"`
	Period            string          `json:"period"`
}

// MeResponse describes the authenticated principal.
type MeResponse struct {
	ID      string      `json:"id"`
	Role    string      `json:"role"`
	Account interface{} `json:"account"`
}
