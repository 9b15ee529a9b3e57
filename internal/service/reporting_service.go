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

// ReportingServiceImpl implements ports.ReportingService. Aggregates are
// computed from the ledger on read; nothing is precomputed or cached.
type ReportingServiceImpl struct {
	txRepo ports.TransactionRepository
	now    func() time.Time
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(txRepo ports.TransactionRepository) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		txRepo: txRepo,
		now:    time.Now,
	}
}

// ListTransactions returns a filtered page of ledger entries.
func (s *ReportingServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	transactions, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return transactions, total, nil
}

// GetPointsStats aggregates ledger totals for the merchant over the given
// period: "day", "week", "month" or "all".
func (s *ReportingServiceImpl) GetPointsStats(ctx context.Context, merchantID uuid.UUID, period string) (*ports.PointsStats, error) {
	var periodStart *time.Time
	now := s.now()

	switch period {
	case "day":
		start, _ := calendarDay(now)
		periodStart = &start
	case "week":
		start := now.AddDate(0, 0, -7)
		periodStart = &start
	case "month":
		start := now.AddDate(0, -1, 0)
		periodStart = &start
	case "", "all":
		// Whole ledger.
	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown period %q", period))
	}

	stats, err := s.txRepo.GetPointsStats(ctx, merchantID, periodStart)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get points stats: %w", err))
	}
	return stats, nil
}
