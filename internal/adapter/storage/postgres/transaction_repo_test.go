package postgres

import (
	"context"
	"testing"
	"time"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedgerEntry(customerID uuid.UUID) *domain.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Transaction{
		ID:              uuid.New(),
		CustomerID:      customerID,
		MerchantID:      uuid.New(),
		BranchID:        uuid.New(),
		WorkerID:        uuid.New(),
		Type:            domain.TransactionTypeCredit,
		Points:          100,
		CashValue:       decimal.NewFromInt(500),
		Commission:      decimal.NewFromInt(25),
		BalanceAfter:    100,
		PayStatus:       domain.PayStatusUnpaid,
		TransactionDate: now,
		CreatedAt:       now,
	}
}

func ledgerColumns() []string {
	return []string{"id", "customer_id", "merchant_id", "branch_id", "worker_id", "type", "points",
		"cash_value", "commission", "balance_after", "pay_status", "transaction_date", "created_at"}
}

func ledgerRow(t *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(ledgerColumns()).AddRow(
		t.ID, t.CustomerID, t.MerchantID, t.BranchID, t.WorkerID,
		t.Type, t.Points, t.CashValue, t.Commission,
		t.BalanceAfter, t.PayStatus, t.TransactionDate, t.CreatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestLedgerEntry(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(
			txn.ID, txn.CustomerID, txn.MerchantID, txn.BranchID, txn.WorkerID,
			txn.Type, txn.Points, txn.CashValue, txn.Commission,
			txn.BalanceAfter, txn.PayStatus, txn.TransactionDate, txn.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(ledgerColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_SumDebitPoints(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	customerID := uuid.New()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(points\), 0\) FROM transactions`).
		WithArgs(customerID, from, to).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(400)))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	sum, err := repo.SumDebitPoints(context.Background(), dbTx, customerID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(400), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdatePayStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txID := uuid.New()

	mock.ExpectExec("UPDATE transactions SET pay_status").
		WithArgs(domain.PayStatusPaid, txID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdatePayStatus(context.Background(), txID, domain.PayStatusPaid)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetPointsStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	merchantID := uuid.New()

	mock.ExpectQuery("SELECT").
		WithArgs(merchantID).
		WillReturnRows(pgxmock.NewRows(
			[]string{"total", "credited", "redeemed", "cash_volume", "commission_accrued"}).
			AddRow(int64(12), int64(900), int64(400), decimal.NewFromInt(1300), decimal.NewFromInt(65)))

	stats, err := repo.GetPointsStats(context.Background(), merchantID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalTransactions)
	assert.Equal(t, int64(900), stats.PointsCredited)
	assert.Equal(t, int64(400), stats.PointsRedeemed)
	assert.True(t, stats.CashVolume.Equal(decimal.NewFromInt(1300)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
