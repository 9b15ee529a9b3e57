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

type staffTestDeps struct {
	svc        *StaffServiceImpl
	workerRepo *mocks.MockWorkerRepository
	branchRepo *mocks.MockBranchRepository
	hashSvc    *mocks.MockHashService
	ctrl       *gomock.Controller
}

func setupStaffService(t *testing.T) *staffTestDeps {
	ctrl := gomock.NewController(t)
	d := &staffTestDeps{
		workerRepo: mocks.NewMockWorkerRepository(ctrl),
		branchRepo: mocks.NewMockBranchRepository(ctrl),
		hashSvc:    mocks.NewMockHashService(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewStaffService(d.workerRepo, d.branchRepo, d.hashSvc, zerolog.Nop())
	return d
}

func TestStaffService_CreateWorker_Success(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	branchID := uuid.New()

	d.workerRepo.EXPECT().GetByEmail(ctx, "lara@shop.test").Return(nil, nil)
	d.branchRepo.EXPECT().GetByIDForMerchant(ctx, branchID, merchantID).Return(&domain.Branch{ID: branchID}, nil)
	d.hashSvc.EXPECT().Hash("StrongPass123!").Return("hashed", nil)
	d.workerRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, w *domain.Worker) error {
		assert.Equal(t, merchantID, w.MerchantID)
		assert.Equal(t, "hashed", w.PasswordHash)
		assert.Equal(t, domain.WorkerStatusActive, w.Status)
		return nil
	})

	worker, err := d.svc.CreateWorker(ctx, merchantID, ports.CreateWorkerRequest{
		BranchID:    &branchID,
		FirstName:   "Lara",
		LastName:    "Haddad",
		Email:       "lara@shop.test",
		PhoneNumber: "+96170111222",
		Password:    "StrongPass123!",
	})
	require.NoError(t, err)
	assert.Equal(t, "lara@shop.test", worker.Email)
}

func TestStaffService_CreateWorker_DuplicateEmail(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.workerRepo.EXPECT().GetByEmail(ctx, "lara@shop.test").Return(&domain.Worker{ID: uuid.New()}, nil)

	_, err := d.svc.CreateWorker(ctx, uuid.New(), ports.CreateWorkerRequest{
		FirstName:   "Lara",
		LastName:    "Haddad",
		Email:       "lara@shop.test",
		PhoneNumber: "+96170111222",
		Password:    "StrongPass123!",
	})
	assert.Equal(t, "AUTH_002", appCode(t, err))
}

func TestStaffService_CreateWorker_BranchNotOwned(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	branchID := uuid.New()

	d.workerRepo.EXPECT().GetByEmail(ctx, "lara@shop.test").Return(nil, nil)
	d.branchRepo.EXPECT().GetByIDForMerchant(ctx, branchID, merchantID).Return(nil, nil)

	_, err := d.svc.CreateWorker(ctx, merchantID, ports.CreateWorkerRequest{
		BranchID:    &branchID,
		FirstName:   "Lara",
		LastName:    "Haddad",
		Email:       "lara@shop.test",
		PhoneNumber: "+96170111222",
		Password:    "StrongPass123!",
	})
	assert.Equal(t, "RES_001", appCode(t, err))
}

func TestStaffService_UpdateWorker_PartialChange(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()
	workerID := uuid.New()
	inactive := domain.WorkerStatusInactive

	d.workerRepo.EXPECT().GetByIDForMerchant(ctx, workerID, merchantID).Return(&domain.Worker{
		ID:          workerID,
		MerchantID:  merchantID,
		FirstName:   "Lara",
		PhoneNumber: "+96170111222",
		Status:      domain.WorkerStatusActive,
	}, nil)
	d.workerRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	worker, err := d.svc.UpdateWorker(ctx, merchantID, workerID, ports.UpdateWorkerRequest{
		Status: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.WorkerStatusInactive, worker.Status)
	// Untouched fields keep their values.
	assert.Equal(t, "Lara", worker.FirstName)
	assert.Equal(t, "+96170111222", worker.PhoneNumber)
}

func TestStaffService_UpdateWorker_NotFound(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.workerRepo.EXPECT().GetByIDForMerchant(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

	name := "New"
	_, err := d.svc.UpdateWorker(ctx, uuid.New(), uuid.New(), ports.UpdateWorkerRequest{FirstName: &name})
	assert.Equal(t, "RES_001", appCode(t, err))
}

func TestStaffService_CreateBranch_Success(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	d.branchRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, b *domain.Branch) error {
		assert.Equal(t, merchantID, b.MerchantID)
		assert.Equal(t, domain.BranchStatusActive, b.Status)
		return nil
	})

	branch, err := d.svc.CreateBranch(ctx, merchantID, ports.CreateBranchRequest{
		Name:    "Riverside",
		City:    "Beirut",
		Address: "3 Quay Ln",
	})
	require.NoError(t, err)
	assert.Equal(t, "Riverside", branch.Name)
}

func TestStaffService_UpdateBranch_OwnershipEnforced(t *testing.T) {
	d := setupStaffService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.branchRepo.EXPECT().GetByIDForMerchant(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

	name := "Renamed"
	_, err := d.svc.UpdateBranch(ctx, uuid.New(), uuid.New(), ports.UpdateBranchRequest{Name: &name})
	assert.Equal(t, "RES_001", appCode(t, err))
}
