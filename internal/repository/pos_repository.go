package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
)

// POSFilter captures search parameters for POS terminal listings.
type POSFilter struct {
	BranchID     *string
	MerchantCode *string
	Statuses     []domain.POSStatus
	OnlyActive   bool
	Limit        int
	Offset       int
}

// POSRepository encapsulates POS terminal persistence.
type POSRepository interface {
	Create(ctx context.Context, terminal *domain.POSTerminal) error
	Update(ctx context.Context, terminal *domain.POSTerminal) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.POSTerminal, error)
	ListWithFilter(ctx context.Context, filter POSFilter) ([]domain.POSTerminal, error)
	CountByStatus(ctx context.Context) (map[domain.POSStatus]int64, error)
}

type posRepository struct {
	pool *pgxpool.Pool
}

// NewPOSRepository instantiates repository.
func NewPOSRepository(pool *pgxpool.Pool) POSRepository {
	return &posRepository{pool: pool}
}

const posColumns = `id, terminal_id, merchant_name, merchant_code, branch_id, location, model,
               serial_number, status, last_transaction_at, deployment_date, last_maintenance_date,
               is_active, created_at, updated_at`

func (r *posRepository) Create(ctx context.Context, terminal *domain.POSTerminal) error {
	const query = `
        INSERT INTO pos_terminals (terminal_id, merchant_name, merchant_code, branch_id, location,
            model, serial_number, status, last_transaction_at, deployment_date, last_maintenance_date, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		terminal.TerminalID,
		terminal.MerchantName,
		terminal.MerchantCode,
		terminal.BranchID,
		terminal.Location,
		terminal.Model,
		terminal.SerialNumber,
		terminal.Status,
		terminal.LastTransactionAt,
		terminal.DeploymentDate,
		terminal.LastMaintenanceDate,
		terminal.Active,
	).Scan(&terminal.ID, &terminal.CreatedAt, &terminal.UpdatedAt)
}

func (r *posRepository) Update(ctx context.Context, terminal *domain.POSTerminal) error {
	const query = `
        UPDATE pos_terminals SET merchant_name=$1, merchant_code=$2, branch_id=$3, location=$4,
            model=$5, status=$6, last_transaction_at=$7, last_maintenance_date=$8, is_active=$9,
            updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		terminal.MerchantName,
		terminal.MerchantCode,
		terminal.BranchID,
		terminal.Location,
		terminal.Model,
		terminal.Status,
		terminal.LastTransactionAt,
		terminal.LastMaintenanceDate,
		terminal.Active,
		terminal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *posRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM pos_terminals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *posRepository) GetByID(ctx context.Context, id string) (*domain.POSTerminal, error) {
	query := `SELECT ` + posColumns + ` FROM pos_terminals WHERE id=$1`
	var terminal domain.POSTerminal
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&terminal.ID,
		&terminal.TerminalID,
		&terminal.MerchantName,
		&terminal.MerchantCode,
		&terminal.BranchID,
		&terminal.Location,
		&terminal.Model,
		&terminal.SerialNumber,
		&terminal.Status,
		&terminal.LastTransactionAt,
		&terminal.DeploymentDate,
		&terminal.LastMaintenanceDate,
		&terminal.Active,
		&terminal.CreatedAt,
		&terminal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &terminal, nil
}

func (r *posRepository) ListWithFilter(ctx context.Context, filter POSFilter) ([]domain.POSTerminal, error) {
	base := `SELECT ` + posColumns + ` FROM pos_terminals`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
	if filter.MerchantCode != nil {
		args = append(args, *filter.MerchantCode)
		clauses = append(clauses, fmt.Sprintf("merchant_code=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.OnlyActive {
		clauses = append(clauses, "is_active=TRUE")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY merchant_name ASC, terminal_id ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.POSTerminal
	for rows.Next() {
		var terminal domain.POSTerminal
		if err := rows.Scan(
			&terminal.ID,
			&terminal.TerminalID,
			&terminal.MerchantName,
			&terminal.MerchantCode,
			&terminal.BranchID,
			&terminal.Location,
			&terminal.Model,
			&terminal.SerialNumber,
			&terminal.Status,
			&terminal.LastTransactionAt,
			&terminal.DeploymentDate,
			&terminal.LastMaintenanceDate,
			&terminal.Active,
			&terminal.CreatedAt,
			&terminal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, terminal)
	}
	return result, rows.Err()
}

func (r *posRepository) CountByStatus(ctx context.Context) (map[domain.POSStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM pos_terminals WHERE is_active=TRUE GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.POSStatus]int64)
	for rows.Next() {
		var (
			status domain.POSStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
