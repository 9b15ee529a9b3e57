package postgres

import (
	"context"
	"errors"
	"fmt"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const branchColumns = `id, merchant_id, name, city, address, status, created_at, updated_at`

// BranchRepo implements ports.BranchRepository.
type BranchRepo struct {
	pool Pool
}

// NewBranchRepo creates a new BranchRepo.
func NewBranchRepo(pool Pool) *BranchRepo {
	return &BranchRepo{pool: pool}
}

// Create inserts a new branch into the database.
func (r *BranchRepo) Create(ctx context.Context, b *domain.Branch) error {
	query := `INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.MerchantID, b.Name, b.City, b.Address, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByIDForMerchant fetches a branch scoped to its merchant.
func (r *BranchRepo) GetByIDForMerchant(ctx context.Context, id, merchantID uuid.UUID) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1 AND merchant_id = $2`

	b := &domain.Branch{}
	err := r.pool.QueryRow(ctx, query, id, merchantID).Scan(
		&b.ID, &b.MerchantID, &b.Name, &b.City, &b.Address, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// Update overwrites a branch's mutable fields.
func (r *BranchRepo) Update(ctx context.Context, b *domain.Branch) error {
	query := `UPDATE branches SET name = $1, city = $2, address = $3, status = $4, updated_at = $5
		WHERE id = $6`

	tag, err := r.pool.Exec(ctx, query, b.Name, b.City, b.Address, b.Status, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("branch not found: %s", b.ID)
	}
	return nil
}

// List fetches a merchant's branches with pagination.
func (r *BranchRepo) List(ctx context.Context, merchantID uuid.UUID, page, pageSize int) ([]domain.Branch, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM branches WHERE merchant_id = $1`, merchantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count branches: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + branchColumns + ` FROM branches WHERE merchant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, merchantID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		b := domain.Branch{}
		err := rows.Scan(
			&b.ID, &b.MerchantID, &b.Name, &b.City, &b.Address, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan branch row: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate branch rows: %w", err)
	}
	return branches, total, nil
}
