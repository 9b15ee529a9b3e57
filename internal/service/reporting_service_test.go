package service

import (
	"context"
	"testing"
	"time"

	"loyalty-platform/internal/core/ports"
	"loyalty-platform/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportingService_GetPointsStats_Periods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	svc := NewReportingService(txRepo)
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	merchantID := uuid.New()
	stats := &ports.PointsStats{
		TotalTransactions: 12,
		PointsCredited:    900,
		PointsRedeemed:    400,
		CashVolume:        decimal.NewFromInt(1300),
		CommissionAccrued: decimal.NewFromInt(65),
	}

	t.Run("day starts at midnight", func(t *testing.T) {
		txRepo.EXPECT().GetPointsStats(ctx, merchantID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, periodStart *time.Time) (*ports.PointsStats, error) {
				require.NotNil(t, periodStart)
				assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *periodStart)
				return stats, nil
			})

		got, err := svc.GetPointsStats(ctx, merchantID, "day")
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.TotalTransactions)
	})

	t.Run("all spans the whole ledger", func(t *testing.T) {
		txRepo.EXPECT().GetPointsStats(ctx, merchantID, nil).Return(stats, nil)

		_, err := svc.GetPointsStats(ctx, merchantID, "all")
		require.NoError(t, err)
	})

	t.Run("empty period means all", func(t *testing.T) {
		txRepo.EXPECT().GetPointsStats(ctx, merchantID, nil).Return(stats, nil)

		_, err := svc.GetPointsStats(ctx, merchantID, "")
		require.NoError(t, err)
	})

	t.Run("unknown period rejected", func(t *testing.T) {
		_, err := svc.GetPointsStats(ctx, merchantID, "fortnight")
		require.Error(t, err)
	})
}

func TestReportingService_ListTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txRepo := mocks.NewMockTransactionRepository(ctrl)
	svc := NewReportingService(txRepo)

	ctx := context.Background()
	merchantID := uuid.New()
	params := ports.TransactionListParams{MerchantID: &merchantID, Page: 1, PageSize: 20}

	txRepo.EXPECT().List(ctx, params).Return(nil, int64(0), nil)

	_, total, err := svc.ListTransactions(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
