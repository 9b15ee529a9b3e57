package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkerStatus represents the state of a worker account.
type WorkerStatus string

const (
	WorkerStatusActive   WorkerStatus = "active"
	WorkerStatusInactive WorkerStatus = "inactive"
)

// Worker is a merchant employee who credits and redeems customer wallets.
type Worker struct {
	ID           uuid.UUID    `json:"id"`
	MerchantID   uuid.UUID    `json:"merchant_id"`
	BranchID     *uuid.UUID   `json:"branch_id,omitempty"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number"`
	PasswordHash string       `json:"-"` // Never expose
	Status       WorkerStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsActive returns true if the worker account is active.
func (w *Worker) IsActive() bool {
	return w.Status == WorkerStatusActive
}
