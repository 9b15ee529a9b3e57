package service

import (
	"context"
	"testing"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type adminTestDeps struct {
	svc          *AdminServiceImpl
	merchantRepo *mocks.MockMerchantRepository
	txRepo       *mocks.MockTransactionRepository
	ctrl         *gomock.Controller
}

func setupAdminService(t *testing.T) *adminTestDeps {
	ctrl := gomock.NewController(t)
	d := &adminTestDeps{
		merchantRepo: mocks.NewMockMerchantRepository(ctrl),
		txRepo:       mocks.NewMockTransactionRepository(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewAdminService(d.merchantRepo, d.txRepo, zerolog.Nop())
	return d
}

func TestAdminService_ReviewMerchant_Approve(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchant := &domain.Merchant{ID: uuid.New(), Status: domain.MerchantStatusPending}

	d.merchantRepo.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.merchantRepo.EXPECT().UpdateStatus(ctx, merchant.ID, domain.MerchantStatusApproved).Return(nil)

	result, err := d.svc.ReviewMerchant(ctx, merchant.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.MerchantStatusApproved, result.Status)
}

func TestAdminService_ReviewMerchant_Reject(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchant := &domain.Merchant{ID: uuid.New(), Status: domain.MerchantStatusPending}

	d.merchantRepo.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.merchantRepo.EXPECT().UpdateStatus(ctx, merchant.ID, domain.MerchantStatusRejected).Return(nil)

	result, err := d.svc.ReviewMerchant(ctx, merchant.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.MerchantStatusRejected, result.Status)
}

func TestAdminService_ReviewMerchant_AlreadyReviewed(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchant := &domain.Merchant{ID: uuid.New(), Status: domain.MerchantStatusApproved}

	d.merchantRepo.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)

	_, err := d.svc.ReviewMerchant(ctx, merchant.ID, true)
	require.Error(t, err)
}

func TestAdminService_SetCommission(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchant := &domain.Merchant{ID: uuid.New(), Status: domain.MerchantStatusApproved}
	pct := decimal.RequireFromString("7.5")

	d.merchantRepo.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.merchantRepo.EXPECT().UpdateCommission(ctx, merchant.ID, pct).Return(nil)

	result, err := d.svc.SetCommission(ctx, merchant.ID, pct)
	require.NoError(t, err)
	assert.True(t, result.CommissionPercent.Equal(pct))
}

func TestAdminService_SetCommission_OutOfRange(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	_, err := d.svc.SetCommission(ctx, uuid.New(), decimal.NewFromInt(-1))
	require.Error(t, err)

	_, err = d.svc.SetCommission(ctx, uuid.New(), decimal.NewFromInt(101))
	require.Error(t, err)
}

func TestAdminService_UpdatePayStatus(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := &domain.Transaction{ID: uuid.New(), PayStatus: domain.PayStatusUnpaid}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.txRepo.EXPECT().UpdatePayStatus(ctx, txn.ID, domain.PayStatusPaid).Return(nil)

	result, err := d.svc.UpdatePayStatus(ctx, txn.ID, domain.PayStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PayStatusPaid, result.PayStatus)
}

func TestAdminService_UpdatePayStatus_NotFound(t *testing.T) {
	d := setupAdminService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txID := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, txID).Return(nil, nil)

	_, err := d.svc.UpdatePayStatus(ctx, txID, domain.PayStatusPaid)
	assert.Equal(t, "RES_001", appCode(t, err))
}
