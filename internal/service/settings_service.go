package service

import (
	"context"
	"fmt"
	"time"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"

	"github.com/google/uuid"
)

// SettingsServiceImpl implements ports.SettingsService.
type SettingsServiceImpl struct {
	settingsRepo ports.SettingsRepository
	merchantRepo ports.MerchantRepository
}

// NewSettingsService creates a new SettingsServiceImpl.
func NewSettingsService(settingsRepo ports.SettingsRepository, merchantRepo ports.MerchantRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		merchantRepo: merchantRepo,
	}
}

// Get returns the merchant's settings row, lazily creating defaults.
// Concurrent first-reads converge on a single row; the storage upsert
// resolves the race, not this layer.
func (s *SettingsServiceImpl) Get(ctx context.Context, merchantID uuid.UUID) (*domain.MerchantSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, domain.NewDefaultSettings(merchantID))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get or create settings: %w", err))
	}
	return settings, nil
}

// Update applies a partial settings change. Nil fields keep their value.
func (s *SettingsServiceImpl) Update(ctx context.Context, merchantID uuid.UUID, update ports.SettingsUpdate) (*domain.MerchantSettings, error) {
	settings, err := s.Get(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if update.PointToCurrencyRate != nil {
		if !update.PointToCurrencyRate.IsPositive() {
			return nil, apperror.Validation("point to currency rate must be positive")
		}
		settings.PointToCurrencyRate = *update.PointToCurrencyRate
	}
	if update.MaxWalletBalance != nil {
		if *update.MaxWalletBalance < 0 {
			return nil, apperror.Validation("max wallet balance cannot be negative")
		}
		settings.MaxWalletBalance = *update.MaxWalletBalance
	}
	if update.MaxDailyRedemption != nil {
		if *update.MaxDailyRedemption < 0 {
			return nil, apperror.Validation("max daily redemption cannot be negative")
		}
		settings.MaxDailyRedemption = *update.MaxDailyRedemption
	}
	if update.MaxCustomersLimit != nil {
		if *update.MaxCustomersLimit < 1 {
			return nil, apperror.Validation("max customers limit must be at least 1")
		}
		settings.MaxCustomersLimit = *update.MaxCustomersLimit
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update settings: %w", err))
	}
	return settings, nil
}

// PolicyFor assembles the limits view the wallet engine validates against:
// the settings row plus the commission percent kept on the merchant record.
func (s *SettingsServiceImpl) PolicyFor(ctx context.Context, merchantID uuid.UUID) (domain.WalletPolicy, error) {
	settings, err := s.Get(ctx, merchantID)
	if err != nil {
		return domain.WalletPolicy{}, err
	}

	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return domain.WalletPolicy{}, apperror.InternalError(fmt.Errorf("get merchant: %w", err))
	}
	if merchant == nil {
		return domain.WalletPolicy{}, apperror.ErrNotFound("Merchant")
	}

	return domain.WalletPolicy{
		PointToCurrencyRate: settings.PointToCurrencyRate,
		MaxWalletBalance:    settings.MaxWalletBalance,
		MaxDailyRedemption:  settings.MaxDailyRedemption,
		MaxCustomersLimit:   settings.MaxCustomersLimit,
		CommissionPercent:   merchant.CommissionPercent,
	}, nil
}
