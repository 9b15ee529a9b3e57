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

func newTestMerchant() *domain.Merchant {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Merchant{
		ID:                uuid.New(),
		BusinessName:      "Cafe Beirut",
		BusinessAddress:   "Hamra Street 12",
		FirstName:         "Rami",
		LastName:          "Khoury",
		Email:             "owner@cafe.example",
		PhoneNumber:       "+9611700000",
		PasswordHash:      "$argon2id$hash",
		CommissionPercent: decimal.NewFromInt(5),
		Status:            domain.MerchantStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func merchantTestColumns() []string {
	return []string{"id", "business_name", "business_address", "first_name", "last_name", "email",
		"phone_number", "password_hash", "commission_percent", "status", "created_at", "updated_at"}
}

func merchantRow(m *domain.Merchant) *pgxmock.Rows {
	return pgxmock.NewRows(merchantTestColumns()).AddRow(
		m.ID, m.BusinessName, m.BusinessAddress, m.FirstName, m.LastName,
		m.Email, m.PhoneNumber, m.PasswordHash, m.CommissionPercent,
		m.Status, m.CreatedAt, m.UpdatedAt,
	)
}

func TestMerchantRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectExec("INSERT INTO merchants").
		WithArgs(
			m.ID, m.BusinessName, m.BusinessAddress, m.FirstName, m.LastName,
			m.Email, m.PhoneNumber, m.PasswordHash, m.CommissionPercent,
			m.Status, m.CreatedAt, m.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), m)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	m := newTestMerchant()

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE email").
		WithArgs(m.Email).
		WillReturnRows(merchantRow(m))

	result, err := repo.GetByEmail(context.Background(), m.Email)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, m.ID, result.ID)
	assert.True(t, result.CommissionPercent.Equal(decimal.NewFromInt(5)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_GetByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM merchants WHERE email").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(merchantTestColumns()))

	result, err := repo.GetByEmail(context.Background(), "missing@example.com")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_UpdateCommission(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)
	id := uuid.New()
	pct := decimal.RequireFromString("7.5")

	mock.ExpectExec("UPDATE merchants SET commission_percent").
		WithArgs(pct, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateCommission(context.Background(), id, pct)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMerchantRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMerchantRepo(mock)

	mock.ExpectExec("UPDATE merchants SET status").
		WithArgs(domain.MerchantStatusApproved, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateStatus(context.Background(), uuid.New(), domain.MerchantStatusApproved)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
