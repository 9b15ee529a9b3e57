package postgres

import (
	"context"
	"testing"
	"time"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(merchantID, branchID, workerID uuid.UUID) *domain.Customer {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Customer{
		ID:               uuid.New(),
		MerchantID:       merchantID,
		BranchID:         branchID,
		AssignedWorkerID: &workerID,
		FullName:         "Lina Haddad",
		PhoneNumber:      "+96170123456",
		WalletBalance:    250,
		Status:           domain.CustomerStatusActive,
		RegistrationDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func customerTestColumns() []string {
	return []string{"id", "merchant_id", "branch_id", "assigned_worker_id", "full_name", "email",
		"phone_number", "wallet_balance", "status", "registration_date", "first_transaction_date",
		"last_transaction_date", "created_at", "updated_at"}
}

func customerRow(c *domain.Customer) *pgxmock.Rows {
	return pgxmock.NewRows(customerTestColumns()).AddRow(
		c.ID, c.MerchantID, c.BranchID, c.AssignedWorkerID,
		c.FullName, c.Email, c.PhoneNumber,
		c.WalletBalance, c.Status, c.RegistrationDate,
		c.FirstTransactionDate, c.LastTransactionDate, c.CreatedAt, c.UpdatedAt,
	)
}

func TestCustomerRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	c := newTestCustomer(uuid.New(), uuid.New(), uuid.New())

	mock.ExpectExec("INSERT INTO customers").
		WithArgs(
			c.ID, c.MerchantID, c.BranchID, c.AssignedWorkerID,
			c.FullName, c.Email, c.PhoneNumber,
			c.WalletBalance, c.Status, c.RegistrationDate,
			c.FirstTransactionDate, c.LastTransactionDate, c.CreatedAt, c.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_GetAssignedForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	workerID := uuid.New()
	c := newTestCustomer(uuid.New(), uuid.New(), workerID)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM customers WHERE id .+ AND assigned_worker_id .+ FOR UPDATE").
		WithArgs(c.ID, workerID).
		WillReturnRows(customerRow(c))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetAssignedForUpdate(context.Background(), dbTx, c.ID, workerID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	assert.Equal(t, int64(250), result.WalletBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_GetAssignedForUpdate_NotAccessible(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM customers WHERE id .+ AND assigned_worker_id .+ FOR UPDATE").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(customerTestColumns()))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetAssignedForUpdate(context.Background(), dbTx, uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_ApplyBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	customerID := uuid.New()
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE customers SET wallet_balance").
		WithArgs(int64(350), at, true, customerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.ApplyBalance(context.Background(), dbTx, customerID, 350, at, true)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_ApplyBalance_MissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE customers SET wallet_balance").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.ApplyBalance(context.Background(), dbTx, uuid.New(), 100, time.Now(), false)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_CountByMerchant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	merchantID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(merchantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := repo.CountByMerchant(context.Background(), merchantID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
