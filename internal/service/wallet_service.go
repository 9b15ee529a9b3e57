package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// maxConflictRetries bounds transparent retries on lock conflicts before
// the operation surfaces as transient failure.
const maxConflictRetries = 3

// WalletServiceImpl implements ports.WalletService, the wallet transaction
// engine. All balance mutations for a customer flow through Apply, which
// serializes them with a row lock held for the whole read-validate-write
// scope.
type WalletServiceImpl struct {
	customerRepo ports.CustomerRepository
	txRepo       ports.TransactionRepository
	settingsSvc  ports.SettingsService
	transactor   ports.DBTransactor
	now          func() time.Time
	log          zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	customerRepo ports.CustomerRepository,
	txRepo ports.TransactionRepository,
	settingsSvc ports.SettingsService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		customerRepo: customerRepo,
		txRepo:       txRepo,
		settingsSvc:  settingsSvc,
		transactor:   transactor,
		now:          time.Now,
		log:          log,
	}
}

// Apply validates and commits one wallet movement. Business rejections are
// detected before any write; only lock conflicts are retried, transparently
// and bounded.
func (s *WalletServiceImpl) Apply(ctx context.Context, req ports.WalletTransactionRequest) (*ports.WalletTransactionResult, error) {
	if req.Points <= 0 || !req.CashValue.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Type != domain.TransactionTypeCredit && req.Type != domain.TransactionTypeDebit {
		return nil, apperror.Validation(fmt.Sprintf("unknown transaction type %q", req.Type))
	}

	var lastErr error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		result, err := s.applyOnce(ctx, req)
		if err == nil || !isRetryableConflict(err) {
			return result, err
		}
		lastErr = err
		s.log.Warn().
			Err(err).
			Str("customer_id", req.CustomerID.String()).
			Int("attempt", attempt).
			Msg("wallet transaction conflict, retrying")
	}
	return nil, apperror.ErrConcurrencyConflict(lastErr)
}

func (s *WalletServiceImpl) applyOnce(ctx context.Context, req ports.WalletTransactionRequest) (*ports.WalletTransactionResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock the customer row for the whole validate+write scope. Missing,
	// unassigned and inactive all come back nil.
	customer, err := s.customerRepo.GetAssignedForUpdate(ctx, dbTx, req.CustomerID, req.WorkerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock customer: %w", err))
	}
	if customer == nil {
		return nil, apperror.ErrCustomerNotAccessible()
	}

	// Limits are resolved fresh per operation; resolution creates defaults
	// when the merchant has no settings row and never fails for absence.
	policy, err := s.settingsSvc.PolicyFor(ctx, customer.MerchantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var newBalance int64

	switch req.Type {
	case domain.TransactionTypeCredit:
		if customer.WalletBalance+req.Points > policy.MaxWalletBalance {
			return nil, apperror.ErrWalletLimitExceeded(policy.MaxWalletBalance)
		}
		newBalance = customer.WalletBalance + req.Points

	case domain.TransactionTypeDebit:
		if customer.WalletBalance < req.Points {
			return nil, apperror.ErrInsufficientBalance()
		}
		dayStart, dayEnd := calendarDay(now)
		redeemedToday, err := s.txRepo.SumDebitPoints(ctx, dbTx, customer.ID, dayStart, dayEnd)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("sum daily redemptions: %w", err))
		}
		if redeemedToday+req.Points > policy.MaxDailyRedemption {
			return nil, apperror.ErrDailyLimitExceeded(policy.MaxDailyRedemption)
		}
		newBalance = customer.WalletBalance - req.Points
	}

	txn := &domain.Transaction{
		ID:              uuid.New(),
		CustomerID:      customer.ID,
		MerchantID:      customer.MerchantID,
		BranchID:        customer.BranchID,
		WorkerID:        req.WorkerID,
		Type:            req.Type,
		Points:          req.Points,
		CashValue:       req.CashValue,
		Commission:      policy.CommissionOn(req.CashValue),
		BalanceAfter:    newBalance,
		PayStatus:       domain.PayStatusUnpaid,
		TransactionDate: now,
		CreatedAt:       now,
	}

	// Persist: append ledger entry
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	// Persist: balance + transaction timestamps. First-transaction date is
	// stamped on a customer's first credit only.
	setFirst := req.Type == domain.TransactionTypeCredit && customer.FirstTransactionDate == nil
	if err := s.customerRepo.ApplyBalance(ctx, dbTx, customer.ID, newBalance, now, setFirst); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("apply balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("customer_id", customer.ID.String()).
		Str("type", string(req.Type)).
		Int64("points", req.Points).
		Int64("new_balance", newBalance).
		Msg("wallet transaction applied")

	return &ports.WalletTransactionResult{Transaction: txn, NewBalance: newBalance}, nil
}

// calendarDay returns [midnight, next midnight) around t in t's location.
// A redemption at 23:59:59.999 and one at 00:00:00.000 belong to
// different days.
func calendarDay(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// isRetryableConflict reports whether err is a serialization failure (40001)
// or deadlock (40P01), the two SQLSTATEs worth a transparent retry.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
