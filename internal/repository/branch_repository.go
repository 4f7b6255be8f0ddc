package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
)

// BranchRepository defines persistence access for branches.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	Update(ctx context.Context, branch *domain.Branch) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	GetByCode(ctx context.Context, code string) (*domain.Branch, error)
	List(ctx context.Context, status *domain.BranchStatus, limit, offset int) ([]domain.Branch, error)
}

type branchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository instantiates repository.
func NewBranchRepository(pool *pgxpool.Pool) BranchRepository {
	return &branchRepository{pool: pool}
}

const branchColumns = `id, branch_code, name, branch_type, status, region, city, address,
               phone_number, email, manager_name, opening_date, created_at, updated_at`

func (r *branchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	const query = `
        INSERT INTO branches (branch_code, name, branch_type, status, region, city, address,
            phone_number, email, manager_name, opening_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		branch.Code,
		branch.Name,
		branch.Type,
		branch.Status,
		branch.Region,
		branch.City,
		branch.Address,
		branch.PhoneNumber,
		branch.Email,
		branch.ManagerName,
		branch.OpeningDate,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
}

func (r *branchRepository) Update(ctx context.Context, branch *domain.Branch) error {
	const query = `
        UPDATE branches SET name=$1, branch_type=$2, status=$3, region=$4, city=$5, address=$6,
            phone_number=$7, email=$8, manager_name=$9, opening_date=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		branch.Name,
		branch.Type,
		branch.Status,
		branch.Region,
		branch.City,
		branch.Address,
		branch.PhoneNumber,
		branch.Email,
		branch.ManagerName,
		branch.OpeningDate,
		branch.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *branchRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *branchRepository) GetByCode(ctx context.Context, code string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE branch_code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *branchRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Branch, error) {
	var branch domain.Branch
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&branch.ID,
		&branch.Code,
		&branch.Name,
		&branch.Type,
		&branch.Status,
		&branch.Region,
		&branch.City,
		&branch.Address,
		&branch.PhoneNumber,
		&branch.Email,
		&branch.ManagerName,
		&branch.OpeningDate,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context, status *domain.BranchStatus, limit, offset int) ([]domain.Branch, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + branchColumns + ` FROM branches`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status=$1`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Branch
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(
			&branch.ID,
			&branch.Code,
			&branch.Name,
			&branch.Type,
			&branch.Status,
			&branch.Region,
			&branch.City,
			&branch.Address,
			&branch.PhoneNumber,
			&branch.Email,
			&branch.ManagerName,
			&branch.OpeningDate,
			&branch.CreatedAt,
			&branch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, branch)
	}
	return result, rows.Err()
}
