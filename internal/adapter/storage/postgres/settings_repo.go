package postgres

import (
	"context"
	"fmt"

	"loyalty-platform/internal/core/domain"
)

const settingsColumns = `id, merchant_id, point_to_currency_rate, max_wallet_balance,
	max_daily_redemption, max_customers_limit, created_at, updated_at`

// SettingsRepo implements ports.SettingsRepository.
type SettingsRepo struct {
	pool Pool
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(pool Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// GetOrCreate returns the merchant's settings row, inserting the defaults
// when absent. ON CONFLICT DO NOTHING keeps the insert idempotent under
// concurrent first-reads; the follow-up select returns whichever row won.
func (r *SettingsRepo) GetOrCreate(ctx context.Context, defaults *domain.MerchantSettings) (*domain.MerchantSettings, error) {
	insert := `INSERT INTO merchant_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (merchant_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, insert,
		defaults.ID, defaults.MerchantID, defaults.PointToCurrencyRate,
		defaults.MaxWalletBalance, defaults.MaxDailyRedemption, defaults.MaxCustomersLimit,
		defaults.CreatedAt, defaults.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert default settings: %w", err)
	}

	query := `SELECT ` + settingsColumns + ` FROM merchant_settings WHERE merchant_id = $1`

	s := &domain.MerchantSettings{}
	err = r.pool.QueryRow(ctx, query, defaults.MerchantID).Scan(
		&s.ID, &s.MerchantID, &s.PointToCurrencyRate,
		&s.MaxWalletBalance, &s.MaxDailyRedemption, &s.MaxCustomersLimit,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// Update overwrites the merchant's settings row.
func (r *SettingsRepo) Update(ctx context.Context, s *domain.MerchantSettings) error {
	query := `UPDATE merchant_settings SET point_to_currency_rate = $1, max_wallet_balance = $2,
		max_daily_redemption = $3, max_customers_limit = $4, updated_at = $5
		WHERE merchant_id = $6`

	tag, err := r.pool.Exec(ctx, query,
		s.PointToCurrencyRate, s.MaxWalletBalance, s.MaxDailyRedemption,
		s.MaxCustomersLimit, s.UpdatedAt, s.MerchantID,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("settings not found for merchant: %s", s.MerchantID)
	}
	return nil
}
