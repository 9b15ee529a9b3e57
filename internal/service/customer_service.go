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

// CustomerServiceImpl implements ports.CustomerService. Status updates here
// never touch wallet balances; those belong to the wallet engine.
type CustomerServiceImpl struct {
	customerRepo ports.CustomerRepository
	branchRepo   ports.BranchRepository
	workerRepo   ports.WorkerRepository
	settingsSvc  ports.SettingsService
	log          zerolog.Logger
}

// NewCustomerService creates a new CustomerServiceImpl.
func NewCustomerService(
	customerRepo ports.CustomerRepository,
	branchRepo ports.BranchRepository,
	workerRepo ports.WorkerRepository,
	settingsSvc ports.SettingsService,
	log zerolog.Logger,
) *CustomerServiceImpl {
	return &CustomerServiceImpl{
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		workerRepo:   workerRepo,
		settingsSvc:  settingsSvc,
		log:          log,
	}
}

// Register creates a customer under the merchant, enforcing the configured
// max-customers limit and branch/worker ownership.
func (s *CustomerServiceImpl) Register(ctx context.Context, req ports.RegisterCustomerRequest) (*domain.Customer, error) {
	policy, err := s.settingsSvc.PolicyFor(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}

	count, err := s.customerRepo.CountByMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count customers: %w", err))
	}
	if count >= policy.MaxCustomersLimit {
		return nil, apperror.ErrCustomerLimitReached(policy.MaxCustomersLimit)
	}

	branch, err := s.branchRepo.GetByIDForMerchant(ctx, req.BranchID, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get branch: %w", err))
	}
	if branch == nil {
		return nil, apperror.ErrNotFound("Branch")
	}

	if req.AssignedWorkerID != nil {
		worker, err := s.workerRepo.GetByIDForMerchant(ctx, *req.AssignedWorkerID, req.MerchantID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get worker: %w", err))
		}
		if worker == nil {
			return nil, apperror.ErrNotFound("Worker")
		}
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:               uuid.New(),
		MerchantID:       req.MerchantID,
		BranchID:         req.BranchID,
		AssignedWorkerID: req.AssignedWorkerID,
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		WalletBalance:    0,
		Status:           domain.CustomerStatusActive,
		RegistrationDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create customer: %w", err))
	}

	s.log.Info().
		Str("customer_id", customer.ID.String()).
		Str("merchant_id", req.MerchantID.String()).
		Msg("customer registered")

	return customer, nil
}

// UpdateStatus flips a customer between active and inactive.
func (s *CustomerServiceImpl) UpdateStatus(ctx context.Context, merchantID, customerID uuid.UUID, status domain.CustomerStatus) (*domain.Customer, error) {
	if status != domain.CustomerStatusActive && status != domain.CustomerStatusInactive {
		return nil, apperror.Validation("invalid status")
	}

	customer, err := s.customerRepo.GetByIDForMerchant(ctx, customerID, merchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get customer: %w", err))
	}
	if customer == nil {
		return nil, apperror.ErrNotFound("Customer")
	}

	if err := s.customerRepo.UpdateStatus(ctx, customerID, merchantID, status); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update customer status: %w", err))
	}
	customer.Status = status

	s.log.Info().
		Str("customer_id", customerID.String()).
		Str("status", string(status)).
		Msg("customer status updated")

	return customer, nil
}
