package service

import (
	"context"
	"fmt"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AdminServiceImpl implements ports.AdminService.
type AdminServiceImpl struct {
	merchantRepo ports.MerchantRepository
	txRepo       ports.TransactionRepository
	log          zerolog.Logger
}

// NewAdminService creates a new AdminServiceImpl.
func NewAdminService(merchantRepo ports.MerchantRepository, txRepo ports.TransactionRepository, log zerolog.Logger) *AdminServiceImpl {
	return &AdminServiceImpl{
		merchantRepo: merchantRepo,
		txRepo:       txRepo,
		log:          log,
	}
}

// ListMerchants returns merchants, optionally filtered by status.
func (s *AdminServiceImpl) ListMerchants(ctx context.Context, status *domain.MerchantStatus, page, pageSize int) ([]domain.Merchant, int64, error) {
	merchants, total, err := s.merchantRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list merchants: %w", err))
	}
	return merchants, total, nil
}

// ReviewMerchant approves or rejects a pending merchant application.
func (s *AdminServiceImpl) ReviewMerchant(ctx context.Context, merchantID uuid.UUID, approve bool) (*domain.Merchant, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("Merchant")
	}
	if merchant.Status != domain.MerchantStatusPending {
		return nil, apperror.Validation(fmt.Sprintf("merchant is already %s", merchant.Status))
	}

	status := domain.MerchantStatusRejected
	if approve {
		status = domain.MerchantStatusApproved
	}
	if err := s.merchantRepo.UpdateStatus(ctx, merchantID, status); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update merchant status: %w", err))
	}
	merchant.Status = status

	s.log.Info().
		Str("merchant_id", merchantID.String()).
		Str("status", string(status)).
		Msg("merchant reviewed")

	return merchant, nil
}

// SetCommission updates the platform's commission percent for a merchant.
func (s *AdminServiceImpl) SetCommission(ctx context.Context, merchantID uuid.UUID, percent decimal.Decimal) (*domain.Merchant, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.Validation("commission percent must be between 0 and 100")
	}

	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("Merchant")
	}

	if err := s.merchantRepo.UpdateCommission(ctx, merchantID, percent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update commission: %w", err))
	}
	merchant.CommissionPercent = percent

	s.log.Info().
		Str("merchant_id", merchantID.String()).
		Str("commission_percent", percent.String()).
		Msg("merchant commission updated")

	return merchant, nil
}

// UpdatePayStatus marks a ledger entry as paid or unpaid for commission
// settlement. The entry itself is never otherwise mutated.
func (s *AdminServiceImpl) UpdatePayStatus(ctx context.Context, transactionID uuid.UUID, status domain.PayStatus) (*domain.Transaction, error) {
	if status != domain.PayStatusPaid && status != domain.PayStatusUnpaid {
		return nil, apperror.Validation("invalid pay status")
	}

	txn, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}

	if err := s.txRepo.UpdatePayStatus(ctx, transactionID, status); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update pay status: %w", err))
	}
	txn.PayStatus = status

	return txn, nil
}
