package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, customer_id, merchant_id, branch_id, worker_id, type, points,
	cash_value, commission, balance_after, pay_status, transaction_date, created_at`

// TransactionRepo implements ports.TransactionRepository over the append-only
// ledger. Entries are never updated except for the administrative pay_status
// flag.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within the caller's database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.CustomerID, t.MerchantID, t.BranchID, t.WorkerID,
		t.Type, t.Points, t.CashValue, t.Commission,
		t.BalanceAfter, t.PayStatus, t.TransactionDate, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForMerchant fetches a transaction scoped to its merchant.
func (r *TransactionRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND merchant_id = $2`
	return scanTransaction(r.pool.QueryRow(ctx, query, id, merchantID))
}

// SumDebitPoints totals debited points for a customer in [from, to). Runs on
// the caller's transaction so the sum is consistent with the held row lock.
func (r *TransactionRepo) SumDebitPoints(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, from, to time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(points), 0) FROM transactions
		WHERE customer_id = $1 AND type = 'debit' AND transaction_date >= $2 AND transaction_date < $3`

	var sum int64
	if err := tx.QueryRow(ctx, query, customerID, from, to).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum debit points: %w", err)
	}
	return sum, nil
}

// UpdatePayStatus flips the administrative settlement flag on an entry.
func (r *TransactionRepo) UpdatePayStatus(ctx context.Context, id uuid.UUID, status domain.PayStatus) error {
	query := `UPDATE transactions SET pay_status = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update pay status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// List fetches ledger entries with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.MerchantID != nil {
		conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", argIdx))
		args = append(args, *params.MerchantID)
		argIdx++
	}
	if params.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argIdx))
		args = append(args, *params.CustomerID)
		argIdx++
	}
	if params.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argIdx))
		args = append(args, *params.BranchID)
		argIdx++
	}
	if params.WorkerID != nil {
		conditions = append(conditions, fmt.Sprintf("worker_id = $%d", argIdx))
		args = append(args, *params.WorkerID)
		argIdx++
	}
	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *params.Type)
		argIdx++
	}
	if params.PayStatus != nil {
		conditions = append(conditions, fmt.Sprintf("pay_status = $%d", argIdx))
		args = append(args, *params.PayStatus)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT `+transactionColumns+` FROM transactions %s
		ORDER BY transaction_date DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.CustomerID, &t.MerchantID, &t.BranchID, &t.WorkerID,
			&t.Type, &t.Points, &t.CashValue, &t.Commission,
			&t.BalanceAfter, &t.PayStatus, &t.TransactionDate, &t.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// GetPointsStats aggregates ledger totals for a merchant, optionally from a
// period start.
func (r *TransactionRepo) GetPointsStats(ctx context.Context, merchantID uuid.UUID, periodStart *time.Time) (*ports.PointsStats, error) {
	var args []any
	argIdx := 1

	condition := fmt.Sprintf("merchant_id = $%d", argIdx)
	args = append(args, merchantID)
	argIdx++

	if periodStart != nil {
		condition += fmt.Sprintf(" AND transaction_date >= $%d", argIdx)
		args = append(args, *periodStart)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COALESCE(SUM(points) FILTER (WHERE type = 'credit'), 0) AS credited,
		COALESCE(SUM(points) FILTER (WHERE type = 'debit'), 0) AS redeemed,
		COALESCE(SUM(cash_value), 0) AS cash_volume,
		COALESCE(SUM(commission), 0) AS commission_accrued
		FROM transactions WHERE %s`, condition)

	stats := &ports.PointsStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.PointsCredited, &stats.PointsRedeemed,
		&stats.CashVolume, &stats.CommissionAccrued,
	)
	if err != nil {
		return nil, fmt.Errorf("get points stats: %w", err)
	}
	return stats, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.CustomerID, &t.MerchantID, &t.BranchID, &t.WorkerID,
		&t.Type, &t.Points, &t.CashValue, &t.Commission,
		&t.BalanceAfter, &t.PayStatus, &t.TransactionDate, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
