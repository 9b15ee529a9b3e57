package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default limits applied when a merchant has no settings row yet.
const (
	DefaultMaxWalletBalance   int64 = 10000
	DefaultMaxDailyRedemption int64 = 1000
	DefaultMaxCustomersLimit  int64 = 1000
)

// DefaultPointToCurrencyRate returns the default 1:1 conversion rate.
func DefaultPointToCurrencyRate() decimal.Decimal {
	return decimal.NewFromInt(1)
}

// MerchantSettings holds the per-merchant loyalty limits. One row per
// merchant, created lazily with defaults on first read.
type MerchantSettings struct {
	ID                  uuid.UUID       `json:"id"`
	MerchantID          uuid.UUID       `json:"merchant_id"`
	PointToCurrencyRate decimal.Decimal `json:"point_to_currency_rate"`
	MaxWalletBalance    int64           `json:"max_wallet_balance"`
	MaxDailyRedemption  int64           `json:"max_daily_redemption"`
	MaxCustomersLimit   int64           `json:"max_customers_limit"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewDefaultSettings builds a settings row with documented defaults.
func NewDefaultSettings(merchantID uuid.UUID) *MerchantSettings {
	now := time.Now().UTC()
	return &MerchantSettings{
		ID:                  uuid.New(),
		MerchantID:          merchantID,
		PointToCurrencyRate: DefaultPointToCurrencyRate(),
		MaxWalletBalance:    DefaultMaxWalletBalance,
		MaxDailyRedemption:  DefaultMaxDailyRedemption,
		MaxCustomersLimit:   DefaultMaxCustomersLimit,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// WalletPolicy is the limits view the wallet engine validates against.
// It combines the merchant's settings row with the commission percent kept
// on the merchant record. Assembled fresh per operation, never cached.
type WalletPolicy struct {
	PointToCurrencyRate decimal.Decimal
	MaxWalletBalance    int64
	MaxDailyRedemption  int64
	MaxCustomersLimit   int64
	CommissionPercent   decimal.Decimal
}

// CommissionOn computes the platform commission for a cash-equivalent value.
func (p WalletPolicy) CommissionOn(cashValue decimal.Decimal) decimal.Decimal {
	return cashValue.Mul(p.CommissionPercent).Div(decimal.NewFromInt(100))
}
