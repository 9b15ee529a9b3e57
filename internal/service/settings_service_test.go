package service

import (
	"context"
	"testing"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type settingsTestDeps struct {
	svc          *SettingsServiceImpl
	settingsRepo *mocks.MockSettingsRepository
	merchantRepo *mocks.MockMerchantRepository
	ctrl         *gomock.Controller
}

func setupSettingsService(t *testing.T) *settingsTestDeps {
	ctrl := gomock.NewController(t)
	d := &settingsTestDeps{
		settingsRepo: mocks.NewMockSettingsRepository(ctrl),
		merchantRepo: mocks.NewMockMerchantRepository(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewSettingsService(d.settingsRepo, d.merchantRepo)
	return d
}

func TestSettingsService_Get_CreatesDefaults(t *testing.T) {
	d := setupSettingsService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	d.settingsRepo.EXPECT().GetOrCreate(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, defaults *domain.MerchantSettings) (*domain.MerchantSettings, error) {
			assert.Equal(t, merchantID, defaults.MerchantID)
			assert.Equal(t, domain.DefaultMaxWalletBalance, defaults.MaxWalletBalance)
			assert.Equal(t, domain.DefaultMaxDailyRedemption, defaults.MaxDailyRedemption)
			assert.Equal(t, domain.DefaultMaxCustomersLimit, defaults.MaxCustomersLimit)
			assert.True(t, defaults.PointToCurrencyRate.Equal(decimal.NewFromInt(1)))
			return defaults, nil
		})

	settings, err := d.svc.Get(ctx, merchantID)
	require.NoError(t, err)
	assert.Equal(t, merchantID, settings.MerchantID)
}

func TestSettingsService_Update_Partial(t *testing.T) {
	d := setupSettingsService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	existing := domain.NewDefaultSettings(merchantID)

	d.settingsRepo.EXPECT().GetOrCreate(ctx, gomock.Any()).Return(existing, nil)

	var saved *domain.MerchantSettings
	d.settingsRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.MerchantSettings) error {
			saved = s
			return nil
		})

	newMax := int64(20000)
	updated, err := d.svc.Update(ctx, merchantID, ports.SettingsUpdate{MaxWalletBalance: &newMax})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), updated.MaxWalletBalance)
	// Untouched fields keep their defaults.
	assert.Equal(t, domain.DefaultMaxDailyRedemption, updated.MaxDailyRedemption)
	assert.Equal(t, domain.DefaultMaxCustomersLimit, updated.MaxCustomersLimit)
	require.NotNil(t, saved)
	assert.Equal(t, int64(20000), saved.MaxWalletBalance)
}

func TestSettingsService_Update_RejectsInvalidValues(t *testing.T) {
	d := setupSettingsService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	negBalance := int64(-1)
	zeroCustomers := int64(0)
	negRate := decimal.NewFromInt(-2)

	cases := []struct {
		name   string
		update ports.SettingsUpdate
	}{
		{"negative max wallet balance", ports.SettingsUpdate{MaxWalletBalance: &negBalance}},
		{"zero max customers", ports.SettingsUpdate{MaxCustomersLimit: &zeroCustomers}},
		{"negative rate", ports.SettingsUpdate{PointToCurrencyRate: &negRate}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d.settingsRepo.EXPECT().GetOrCreate(ctx, gomock.Any()).Return(domain.NewDefaultSettings(merchantID), nil)
			_, err := d.svc.Update(ctx, merchantID, tc.update)
			require.Error(t, err)
		})
	}
}

func TestSettingsService_PolicyFor_IncludesCommission(t *testing.T) {
	d := setupSettingsService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	settings := domain.NewDefaultSettings(merchantID)
	merchant := &domain.Merchant{
		ID:                merchantID,
		Status:            domain.MerchantStatusApproved,
		CommissionPercent: decimal.NewFromInt(5),
	}

	d.settingsRepo.EXPECT().GetOrCreate(ctx, gomock.Any()).Return(settings, nil)
	d.merchantRepo.EXPECT().GetByID(ctx, merchantID).Return(merchant, nil)

	policy, err := d.svc.PolicyFor(ctx, merchantID)
	require.NoError(t, err)

	assert.Equal(t, settings.MaxWalletBalance, policy.MaxWalletBalance)
	assert.True(t, policy.CommissionPercent.Equal(decimal.NewFromInt(5)))
	assert.True(t, policy.CommissionOn(decimal.NewFromInt(500)).Equal(decimal.NewFromInt(25)))
}

func TestSettingsService_PolicyFor_MerchantMissing(t *testing.T) {
	d := setupSettingsService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	d.settingsRepo.EXPECT().GetOrCreate(ctx, gomock.Any()).Return(domain.NewDefaultSettings(merchantID), nil)
	d.merchantRepo.EXPECT().GetByID(ctx, merchantID).Return(nil, nil)

	_, err := d.svc.PolicyFor(ctx, merchantID)
	require.Error(t, err)
}
