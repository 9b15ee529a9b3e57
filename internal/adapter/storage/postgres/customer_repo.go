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

const customerColumns = `id, merchant_id, branch_id, assigned_worker_id, full_name, email, phone_number,
	wallet_balance, status, registration_date, first_transaction_date, last_transaction_date, created_at, updated_at`

// CustomerRepo implements ports.CustomerRepository.
type CustomerRepo struct {
	pool Pool
}

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(pool Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create inserts a new customer into the database.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.MerchantID, c.BranchID, c.AssignedWorkerID,
		c.FullName, c.Email, c.PhoneNumber,
		c.WalletBalance, c.Status, c.RegistrationDate,
		c.FirstTransactionDate, c.LastTransactionDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer by UUID (without locking).
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForMerchant fetches a customer scoped to its merchant.
func (r *CustomerRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND merchant_id = $2`
	return scanCustomer(r.pool.QueryRow(ctx, query, id, merchantID))
}

// GetAssignedForUpdate fetches an active customer assigned to the worker with
// a row lock. MUST be called within a transaction. Missing, unassigned and
// inactive all come back as nil so callers cannot tell the cases apart.
func (r *CustomerRepo) GetAssignedForUpdate(ctx context.Context, tx pgx.Tx, id, workerID uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE id = $1 AND assigned_worker_id = $2 AND status = 'active' FOR UPDATE`
	return scanCustomer(tx.QueryRow(ctx, query, id, workerID))
}

// ApplyBalance writes the engine-computed balance and transaction timestamps
// within the locking transaction.
func (r *CustomerRepo) ApplyBalance(ctx context.Context, tx pgx.Tx, customerID uuid.UUID, newBalance int64, at time.Time, setFirst bool) error {
	query := `UPDATE customers SET wallet_balance = $1, last_transaction_date = $2,
		first_transaction_date = CASE WHEN $3 THEN $2 ELSE first_transaction_date END,
		updated_at = NOW()
		WHERE id = $4`

	tag, err := tx.Exec(ctx, query, newBalance, at, setFirst, customerID)
	if err != nil {
		return fmt.Errorf("apply customer balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %s", customerID)
	}
	return nil
}

// UpdateStatus sets a customer's status, scoped to its merchant.
func (r *CustomerRepo) UpdateStatus(ctx context.Context, id, merchantID uuid.UUID, status domain.CustomerStatus) error {
	query := `UPDATE customers SET status = $1, updated_at = NOW() WHERE id = $2 AND merchant_id = $3`

	tag, err := r.pool.Exec(ctx, query, status, id, merchantID)
	if err != nil {
		return fmt.Errorf("update customer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %s", id)
	}
	return nil
}

// List fetches customers with filtering and pagination.
func (r *CustomerRepo) List(ctx context.Context, params ports.CustomerListParams) ([]domain.Customer, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.MerchantID != nil {
		conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", argIdx))
		args = append(args, *params.MerchantID)
		argIdx++
	}
	if params.WorkerID != nil {
		conditions = append(conditions, fmt.Sprintf("assigned_worker_id = $%d", argIdx))
		args = append(args, *params.WorkerID)
		argIdx++
	}
	if params.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argIdx))
		args = append(args, *params.BranchID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT `+customerColumns+` FROM customers %s
		ORDER BY registration_date DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c := domain.Customer{}
		if err := scanCustomerRow(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customer rows: %w", err)
	}
	return customers, total, nil
}

// CountByMerchant counts customers registered under a merchant.
func (r *CustomerRepo) CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE merchant_id = $1`, merchantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers by merchant: %w", err)
	}
	return count, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(
		&c.ID, &c.MerchantID, &c.BranchID, &c.AssignedWorkerID,
		&c.FullName, &c.Email, &c.PhoneNumber,
		&c.WalletBalance, &c.Status, &c.RegistrationDate,
		&c.FirstTransactionDate, &c.LastTransactionDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

func scanCustomerRow(rows pgx.Rows, c *domain.Customer) error {
	return rows.Scan(
		&c.ID, &c.MerchantID, &c.BranchID, &c.AssignedWorkerID,
		&c.FullName, &c.Email, &c.PhoneNumber,
		&c.WalletBalance, &c.Status, &c.RegistrationDate,
		&c.FirstTransactionDate, &c.LastTransactionDate, &c.CreatedAt, &c.UpdatedAt,
	)
}
