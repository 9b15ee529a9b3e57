package service

import (
	"context"
	"testing"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type customerTestDeps struct {
	svc          *CustomerServiceImpl
	customerRepo *mocks.MockCustomerRepository
	branchRepo   *mocks.MockBranchRepository
	workerRepo   *mocks.MockWorkerRepository
	settingsSvc  *mocks.MockSettingsService
	ctrl         *gomock.Controller
}

func setupCustomerService(t *testing.T) *customerTestDeps {
	ctrl := gomock.NewController(t)
	d := &customerTestDeps{
		customerRepo: mocks.NewMockCustomerRepository(ctrl),
		branchRepo:   mocks.NewMockBranchRepository(ctrl),
		workerRepo:   mocks.NewMockWorkerRepository(ctrl),
		settingsSvc:  mocks.NewMockSettingsService(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewCustomerService(d.customerRepo, d.branchRepo, d.workerRepo, d.settingsSvc, zerolog.Nop())
	return d
}

func TestCustomerService_Register_Success(t *testing.T) {
	d := setupCustomerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	branchID := uuid.New()
	workerID := uuid.New()

	d.settingsSvc.EXPECT().PolicyFor(ctx, merchantID).Return(defaultPolicy(), nil)
	d.customerRepo.EXPECT().CountByMerchant(ctx, merchantID).Return(int64(10), nil)
	d.branchRepo.EXPECT().GetByIDForMerchant(ctx, branchID, merchantID).Return(&domain.Branch{ID: branchID}, nil)
	d.workerRepo.EXPECT().GetByIDForMerchant(ctx, workerID, merchantID).Return(&domain.Worker{ID: workerID}, nil)
	d.customerRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	customer, err := d.svc.Register(ctx, ports.RegisterCustomerRequest{
		MerchantID:       merchantID,
		BranchID:         branchID,
		AssignedWorkerID: &workerID,
		FullName:         "Omar Nasser",
		PhoneNumber:      "+96171234567",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), customer.WalletBalance)
	assert.Equal(t, domain.CustomerStatusActive, customer.Status)
	assert.Nil(t, customer.FirstTransactionDate)
}

func TestCustomerService_Register_LimitReached(t *testing.T) {
	d := setupCustomerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	d.settingsSvc.EXPECT().PolicyFor(ctx, merchantID).Return(defaultPolicy(), nil)
	d.customerRepo.EXPECT().CountByMerchant(ctx, merchantID).Return(domain.DefaultMaxCustomersLimit, nil)

	_, err := d.svc.Register(ctx, ports.RegisterCustomerRequest{
		MerchantID:  merchantID,
		BranchID:    uuid.New(),
		FullName:    "Omar Nasser",
		PhoneNumber: "+96171234567",
	})
	assert.Equal(t, "WLT_006", appCode(t, err))
}

func TestCustomerService_Register_BranchNotOwned(t *testing.T) {
	d := setupCustomerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	branchID := uuid.New()

	d.settingsSvc.EXPECT().PolicyFor(ctx, merchantID).Return(defaultPolicy(), nil)
	d.customerRepo.EXPECT().CountByMerchant(ctx, merchantID).Return(int64(0), nil)
	d.branchRepo.EXPECT().GetByIDForMerchant(ctx, branchID, merchantID).Return(nil, nil)

	_, err := d.svc.Register(ctx, ports.RegisterCustomerRequest{
		MerchantID:  merchantID,
		BranchID:    branchID,
		FullName:    "Omar Nasser",
		PhoneNumber: "+96171234567",
	})
	assert.Equal(t, "RES_001", appCode(t, err))
}

func TestCustomerService_UpdateStatus(t *testing.T) {
	d := setupCustomerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	customerID := uuid.New()
	existing := &domain.Customer{ID: customerID, MerchantID: merchantID, Status: domain.CustomerStatusActive}

	d.customerRepo.EXPECT().GetByIDForMerchant(ctx, customerID, merchantID).Return(existing, nil)
	d.customerRepo.EXPECT().UpdateStatus(ctx, customerID, merchantID, domain.CustomerStatusInactive).Return(nil)

	customer, err := d.svc.UpdateStatus(ctx, merchantID, customerID, domain.CustomerStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusInactive, customer.Status)
}

func TestCustomerService_UpdateStatus_NotFound(t *testing.T) {
	d := setupCustomerService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	customerID := uuid.New()

	d.customerRepo.EXPECT().GetByIDForMerchant(ctx, customerID, merchantID).Return(nil, nil)

	_, err := d.svc.UpdateStatus(ctx, merchantID, customerID, domain.CustomerStatusInactive)
	assert.Equal(t, "RES_001", appCode(t, err))
}
