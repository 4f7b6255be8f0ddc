package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
)

// SystemFilter captures search parameters for monitored system listings.
type SystemFilter struct {
	BranchID *string
	Types    []domain.SystemType
	Statuses []domain.SystemStatus
	Limit    int
	Offset   int
}

// SystemRepository encapsulates monitored system persistence.
type SystemRepository interface {
	Create(ctx context.Context, system *domain.MonitoredSystem) error
	Update(ctx context.Context, system *domain.MonitoredSystem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.MonitoredSystem, error)
	ListWithFilter(ctx context.Context, filter SystemFilter) ([]domain.MonitoredSystem, error)
	CountByStatus(ctx context.Context) (map[domain.SystemStatus]int64, error)
}

type systemRepository struct {
	pool *pgxpool.Pool
}

// NewSystemRepository instantiates repository.
func NewSystemRepository(pool *pgxpool.Pool) SystemRepository {
	return &systemRepository{pool: pool}
}

const systemColumns = `id, system_name, system_type, branch_id, ip_address, hostname, status,
               cpu_usage, memory_usage, disk_usage, network_latency, uptime_hours, last_check,
               notes, is_monitored, created_at, updated_at`

func (r *systemRepository) Create(ctx context.Context, system *domain.MonitoredSystem) error {
	const query = `
        INSERT INTO system_monitoring (system_name, system_type, branch_id, ip_address, hostname,
            status, cpu_usage, memory_usage, disk_usage, network_latency, uptime_hours, notes, is_monitored)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, last_check, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		system.Name,
		system.Type,
		system.BranchID,
		system.IPAddress,
		system.Hostname,
		system.Status,
		system.CPUUsage,
		system.MemoryUsage,
		system.DiskUsage,
		system.NetworkLatency,
		system.UptimeHours,
		system.Notes,
		system.Monitored,
	).Scan(&system.ID, &system.LastCheck, &system.CreatedAt, &system.UpdatedAt)
}

func (r *systemRepository) Update(ctx context.Context, system *domain.MonitoredSystem) error {
	const query = `
        UPDATE system_monitoring SET system_name=$1, branch_id=$2, ip_address=$3, hostname=$4,
            status=$5, cpu_usage=$6, memory_usage=$7, disk_usage=$8, network_latency=$9,
            uptime_hours=$10, last_check=NOW(), notes=$11, is_monitored=$12, updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		system.Name,
		system.BranchID,
		system.IPAddress,
		system.Hostname,
		system.Status,
		system.CPUUsage,
		system.MemoryUsage,
		system.DiskUsage,
		system.NetworkLatency,
		system.UptimeHours,
		system.Notes,
		system.Monitored,
		system.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *systemRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM system_monitoring WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *systemRepository) GetByID(ctx context.Context, id string) (*domain.MonitoredSystem, error) {
	query := `SELECT ` + systemColumns + ` FROM system_monitoring WHERE id=$1`
	var system domain.MonitoredSystem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&system.ID,
		&system.Name,
		&system.Type,
		&system.BranchID,
		&system.IPAddress,
		&system.Hostname,
		&system.Status,
		&system.CPUUsage,
		&system.MemoryUsage,
		&system.DiskUsage,
		&system.NetworkLatency,
		&system.UptimeHours,
		&system.LastCheck,
		&system.Notes,
		&system.Monitored,
		&system.CreatedAt,
		&system.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &system, nil
}

func (r *systemRepository) ListWithFilter(ctx context.Context, filter SystemFilter) ([]domain.MonitoredSystem, error) {
	base := `SELECT ` + systemColumns + ` FROM system_monitoring`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, systemType := range filter.Types {
			args = append(args, systemType)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("system_type IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY last_check DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MonitoredSystem
	for rows.Next() {
		var system domain.MonitoredSystem
		if err := rows.Scan(
			&system.ID,
			&system.Name,
			&system.Type,
			&system.BranchID,
			&system.IPAddress,
			&system.Hostname,
			&system.Status,
			&system.CPUUsage,
			&system.MemoryUsage,
			&system.DiskUsage,
			&system.NetworkLatency,
			&system.UptimeHours,
			&system.LastCheck,
			&system.Notes,
			&system.Monitored,
			&system.CreatedAt,
			&system.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, system)
	}
	return result, rows.Err()
}

func (r *systemRepository) CountByStatus(ctx context.Context) (map[domain.SystemStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM system_monitoring WHERE is_monitored=TRUE GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.SystemStatus]int64)
	for rows.Next() {
		var (
			status domain.SystemStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
