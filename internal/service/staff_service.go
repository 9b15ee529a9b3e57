package service

import (
	"context"
	"fmt"
	"time"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StaffServiceImpl implements ports.StaffService.
type StaffServiceImpl struct {
	workerRepo ports.WorkerRepository
	branchRepo ports.BranchRepository
	hashSvc    ports.HashService
	log        zerolog.Logger
}

// NewStaffService creates a new StaffServiceImpl.
func NewStaffService(
	workerRepo ports.WorkerRepository,
	branchRepo ports.BranchRepository,
	hashSvc ports.HashService,
	log zerolog.Logger,
) *StaffServiceImpl {
	return &StaffServiceImpl{
		workerRepo: workerRepo,
		branchRepo: branchRepo,
		hashSvc:    hashSvc,
		log:        log,
	}
}

// CreateWorker creates an active worker account under the merchant.
func (s *StaffServiceImpl) CreateWorker(ctx context.Context, merchantID uuid.UUID, req ports.CreateWorkerRequest) (*domain.Worker, error) {
	existing, err := s.workerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing worker: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	if req.BranchID != nil {
		branch, err := s.branchRepo.GetByIDForMerchant(ctx, *req.BranchID, merchantID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get branch: %w", err))
		}
		if branch == nil {
			return nil, apperror.ErrNotFound("Branch")
		}
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	worker := &domain.Worker{
		ID:           uuid.New(),
		MerchantID:   merchantID,
		BranchID:     req.BranchID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: passwordHash,
		Status:       domain.WorkerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create worker: %w", err))
	}

	s.log.Info().
		Str("worker_id", worker.ID.String()).
		Str("merchant_id", merchantID.String()).
		Msg("worker created")

	return worker, nil
}

// UpdateWorker applies a partial change to a worker. Nil fields keep their value.
func (s *StaffServiceImpl) UpdateWorker(ctx context.Context, merchantID, workerID uuid.UUID, req ports.UpdateWorkerRequest) (*domain.Worker, error) {
	worker, err := s.workerRepo.GetByIDForMerchant(ctx, workerID, merchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get worker: %w", err))
	}
	if worker == nil {
		return nil, apperror.ErrNotFound("Worker")
	}

	if req.BranchID != nil {
		branch, err := s.branchRepo.GetByIDForMerchant(ctx, *req.BranchID, merchantID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get branch: %w", err))
		}
		if branch == nil {
			return nil, apperror.ErrNotFound("Branch")
		}
		worker.BranchID = req.BranchID
	}
	if req.FirstName != nil {
		worker.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		worker.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		worker.PhoneNumber = *req.PhoneNumber
	}
	if req.Status != nil {
		if *req.Status != domain.WorkerStatusActive && *req.Status != domain.WorkerStatusInactive {
			return nil, apperror.Validation("invalid worker status")
		}
		worker.Status = *req.Status
	}

	worker.UpdatedAt = time.Now().UTC()
	if err := s.workerRepo.Update(ctx, worker); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update worker: %w", err))
	}
	return worker, nil
}

// ListWorkers returns the merchant's workers, optionally filtered by status.
func (s *StaffServiceImpl) ListWorkers(ctx context.Context, merchantID uuid.UUID, status *domain.WorkerStatus, page, pageSize int) ([]domain.Worker, int64, error) {
	workers, total, err := s.workerRepo.List(ctx, merchantID, status, page, pageSize)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list workers: %w", err))
	}
	return workers, total, nil
}

// CreateBranch creates an active branch under the merchant.
func (s *StaffServiceImpl) CreateBranch(ctx context.Context, merchantID uuid.UUID, req ports.CreateBranchRequest) (*domain.Branch, error) {
	now := time.Now().UTC()
	branch := &domain.Branch{
		ID:         uuid.New(),
		MerchantID: merchantID,
		Name:       req.Name,
		City:       req.City,
		Address:    req.Address,
		Status:     domain.BranchStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create branch: %w", err))
	}

	s.log.Info().
		Str("branch_id", branch.ID.String()).
		Str("merchant_id", merchantID.String()).
		Msg("branch created")

	return branch, nil
}

// UpdateBranch applies a partial change to a branch. Nil fields keep their value.
func (s *StaffServiceImpl) UpdateBranch(ctx context.Context, merchantID, branchID uuid.UUID, req ports.UpdateBranchRequest) (*domain.Branch, error) {
	branch, err := s.branchRepo.GetByIDForMerchant(ctx, branchID, merchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get branch: %w", err))
	}
	if branch == nil {
		return nil, apperror.ErrNotFound("Branch")
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Status != nil {
		if *req.Status != domain.BranchStatusActive && *req.Status != domain.BranchStatusInactive {
			return nil, apperror.Validation("invalid branch status")
		}
		branch.Status = *req.Status
	}

	branch.UpdatedAt = time.Now().UTC()
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update branch: %w", err))
	}
	return branch, nil
}

// ListBranches returns the merchant's branches.
func (s *StaffServiceImpl) ListBranches(ctx context.Context, merchantID uuid.UUID, page, pageSize int) ([]domain.Branch, int64, error) {
	branches, total, err := s.branchRepo.List(ctx, merchantID, page, pageSize)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list branches: %w", err))
	}
	return branches, total, nil
}
