package domain

import (
	"time"

	"github.com/google/uuid"
)

// CustomerStatus represents the lifecycle state of a customer account.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is an end user holding a points wallet with one merchant.
// WalletBalance is mutated only by the wallet engine under a row lock.
type Customer struct {
	ID                   uuid.UUID      `json:"id"`
	MerchantID           uuid.UUID      `json:"merchant_id"`
	BranchID             uuid.UUID      `json:"branch_id"`
	AssignedWorkerID     *uuid.UUID     `json:"assigned_worker_id,omitempty"`
	FullName             string         `json:"full_name"`
	Email                *string        `json:"email,omitempty"`
	PhoneNumber          string         `json:"phone_number"`
	WalletBalance        int64          `json:"wallet_balance"`
	Status               CustomerStatus `json:"status"`
	RegistrationDate     time.Time      `json:"registration_date"`
	FirstTransactionDate *time.Time     `json:"first_transaction_date,omitempty"`
	LastTransactionDate  *time.Time     `json:"last_transaction_date,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// IsActive reports whether the customer can transact.
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
