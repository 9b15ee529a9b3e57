package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusPending   MerchantStatus = "pending"
	MerchantStatusApproved  MerchantStatus = "approved"
	MerchantStatusRejected  MerchantStatus = "rejected"
	MerchantStatusSuspended MerchantStatus = "suspended"
)

// Merchant represents a registered merchant in the platform.
// CommissionPercent is the platform's cut of each transaction's cash value,
// set by admins; the settings resolver folds it into the wallet policy.
type Merchant struct {
	ID                uuid.UUID       `json:"id"`
	BusinessName      string          `json:"business_name"`
	BusinessAddress   string          `json:"business_address"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Email             string          `json:"email"`
	PhoneNumber       string          `json:"phone_number"`
	PasswordHash      string          `json:"-"` // Never expose
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	Status            MerchantStatus  `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CanLogin returns true if the merchant account has been approved.
func (m *Merchant) CanLogin() bool {
	return m.Status == MerchantStatusApproved
}
