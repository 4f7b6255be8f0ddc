package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
)

// ATMFilter captures search parameters for ATM listings.
type ATMFilter struct {
	BranchID   *string
	Statuses   []domain.ATMStatus
	CashBelow  *int64
	OnlyActive bool
	Limit      int
	Offset     int
}

// ATMRepository encapsulates ATM persistence.
type ATMRepository interface {
	Create(ctx context.Context, atm *domain.ATM) error
	Update(ctx context.Context, atm *domain.ATM) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ATM, error)
	ListWithFilter(ctx context.Context, filter ATMFilter) ([]domain.ATM, error)
	CountByStatus(ctx context.Context) (map[domain.ATMStatus]int64, error)
}

type atmRepository struct {
	pool *pgxpool.Pool
}

// NewATMRepository instantiates repository.
func NewATMRepository(pool *pgxpool.Pool) ATMRepository {
	return &atmRepository{pool: pool}
}

const atmColumns = `id, atm_code, branch_id, location_description, model, manufacturer, serial_number,
               ip_address, status, cash_level, max_cash_capacity, last_cash_replenishment,
               last_maintenance_date, next_maintenance_date, installation_date, is_active,
               created_at, updated_at`

func (r *atmRepository) Create(ctx context.Context, atm *domain.ATM) error {
	const query = `
        INSERT INTO atms (atm_code, branch_id, location_description, model, manufacturer, serial_number,
            ip_address, status, cash_level, max_cash_capacity, last_cash_replenishment,
            last_maintenance_date, next_maintenance_date, installation_date, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		atm.Code,
		atm.BranchID,
		atm.LocationDescription,
		atm.Model,
		atm.Manufacturer,
		atm.SerialNumber,
		atm.IPAddress,
		atm.Status,
		atm.CashLevel,
		atm.MaxCashCapacity,
		atm.LastReplenishment,
		atm.LastMaintenanceDate,
		atm.NextMaintenanceDate,
		atm.InstallationDate,
		atm.Active,
	).Scan(&atm.ID, &atm.CreatedAt, &atm.UpdatedAt)
}

func (r *atmRepository) Update(ctx context.Context, atm *domain.ATM) error {
	const query = `
        UPDATE atms SET location_description=$1, model=$2, manufacturer=$3, ip_address=$4, status=$5,
            cash_level=$6, max_cash_capacity=$7, last_cash_replenishment=$8, last_maintenance_date=$9,
            next_maintenance_date=$10, is_active=$11, updated_at=NOW()
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		atm.LocationDescription,
		atm.Model,
		atm.Manufacturer,
		atm.IPAddress,
		atm.Status,
		atm.CashLevel,
		atm.MaxCashCapacity,
		atm.LastReplenishment,
		atm.LastMaintenanceDate,
		atm.NextMaintenanceDate,
		atm.Active,
		atm.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *atmRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM atms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *atmRepository) GetByID(ctx context.Context, id string) (*domain.ATM, error) {
	query := `SELECT ` + atmColumns + ` FROM atms WHERE id=$1`
	var atm domain.ATM
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&atm.ID,
		&atm.Code,
		&atm.BranchID,
		&atm.LocationDescription,
		&atm.Model,
		&atm.Manufacturer,
		&atm.SerialNumber,
		&atm.IPAddress,
		&atm.Status,
		&atm.CashLevel,
		&atm.MaxCashCapacity,
		&atm.LastReplenishment,
		&atm.LastMaintenanceDate,
		&atm.NextMaintenanceDate,
		&atm.InstallationDate,
		&atm.Active,
		&atm.CreatedAt,
		&atm.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &atm, nil
}

func (r *atmRepository) ListWithFilter(ctx context.Context, filter ATMFilter) ([]domain.ATM, error) {
	base := `SELECT ` + atmColumns + ` FROM atms`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CashBelow != nil {
		args = append(args, *filter.CashBelow)
		clauses = append(clauses, fmt.Sprintf("cash_level < $%d", len(args)))
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

	query := fmt.Sprintf(`%s WHERE %s ORDER BY atm_code ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ATM
	for rows.Next() {
		var atm domain.ATM
		if err := rows.Scan(
			&atm.ID,
			&atm.Code,
			&atm.BranchID,
			&atm.LocationDescription,
			&atm.Model,
			&atm.Manufacturer,
			&atm.SerialNumber,
			&atm.IPAddress,
			&atm.Status,
			&atm.CashLevel,
			&atm.MaxCashCapacity,
			&atm.LastReplenishment,
			&atm.LastMaintenanceDate,
			&atm.NextMaintenanceDate,
			&atm.InstallationDate,
			&atm.Active,
			&atm.CreatedAt,
			&atm.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, atm)
	}
	return result, rows.Err()
}

func (r *atmRepository) CountByStatus(ctx context.Context) (map[domain.ATMStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM atms WHERE is_active=TRUE GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ATMStatus]int64)
	for rows.Next() {
		var (
			status domain.ATMStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
