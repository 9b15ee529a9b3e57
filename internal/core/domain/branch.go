package domain

import (
	"time"

	"github.com/google/uuid"
)

// BranchStatus represents the state of a branch.
type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "active"
	BranchStatusInactive BranchStatus = "inactive"
)

// Branch is a merchant location customers and workers are attached to.
type Branch struct {
	ID         uuid.UUID    `json:"id"`
	MerchantID uuid.UUID    `json:"merchant_id"`
	Name       string       `json:"name"`
	City       string       `json:"city"`
	Address    string       `json:"address"`
	Status     BranchStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
