package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workerColumns = `id, merchant_id, branch_id, first_name, last_name, email,
	phone_number, password_hash, status, created_at, updated_at`

// WorkerRepo implements ports.WorkerRepository.
type WorkerRepo struct {
	pool Pool
}

// NewWorkerRepo creates a new WorkerRepo.
func NewWorkerRepo(pool Pool) *WorkerRepo {
	return &WorkerRepo{pool: pool}
}

// Create inserts a new worker into the database.
func (r *WorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.MerchantID, w.BranchID, w.FirstName, w.LastName,
		w.Email, w.PhoneNumber, w.PasswordHash, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

// GetByID fetches a worker by UUID.
func (r *WorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	return scanWorker(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForMerchant fetches a worker scoped to its merchant.
func (r *WorkerRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1 AND merchant_id = $2`
	return scanWorker(r.pool.QueryRow(ctx, query, id, merchantID))
}

// GetByEmail fetches a worker by email.
func (r *WorkerRepo) GetByEmail(ctx context.Context, email string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE email = $1`
	return scanWorker(r.pool.QueryRow(ctx, query, email))
}

// Update overwrites a worker's mutable fields.
func (r *WorkerRepo) Update(ctx context.Context, w *domain.Worker) error {
	query := `UPDATE workers SET branch_id = $1, first_name = $2, last_name = $3,
		phone_number = $4, status = $5, updated_at = $6 WHERE id = $7`

	tag, err := r.pool.Exec(ctx, query,
		w.BranchID, w.FirstName, w.LastName, w.PhoneNumber, w.Status, w.UpdatedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worker not found: %s", w.ID)
	}
	return nil
}

// List fetches a merchant's workers, optionally filtered by status.
func (r *WorkerRepo) List(ctx context.Context, merchantID uuid.UUID, status *domain.WorkerStatus, page, pageSize int) ([]domain.Worker, int64, error) {
	conditions := []string{"merchant_id = $1"}
	args := []any{merchantID}
	argIdx := 2

	if status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM workers %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count workers: %w", err)
	}

	offset := (page - 1) * pageSize
	dataQuery := fmt.Sprintf(`SELECT `+workerColumns+` FROM workers %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var workers []domain.Worker
	for rows.Next() {
		w := domain.Worker{}
		err := rows.Scan(
			&w.ID, &w.MerchantID, &w.BranchID, &w.FirstName, &w.LastName,
			&w.Email, &w.PhoneNumber, &w.PasswordHash, &w.Status, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan worker row: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate worker rows: %w", err)
	}
	return workers, total, nil
}

func scanWorker(row pgx.Row) (*domain.Worker, error) {
	w := &domain.Worker{}
	err := row.Scan(
		&w.ID, &w.MerchantID, &w.BranchID, &w.FirstName, &w.LastName,
		&w.Email, &w.PhoneNumber, &w.PasswordHash, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan worker: %w", err)
	}
	return w, nil
}
