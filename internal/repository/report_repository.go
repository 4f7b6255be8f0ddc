package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
)

// ReportRepository persists generated performance reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.PerformanceReport) error
	GetByID(ctx context.Context, id string) (*domain.PerformanceReport, error)
	List(ctx context.Context, reportType *domain.ReportType, limit, offset int) ([]domain.PerformanceReport, error)
	TicketStatsForPeriod(ctx context.Context, branchID *string, from, to time.Time) (total, resolved int, avgResolution *time.Duration, err error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, report_type, title, period_start, period_end, branch_id, total_tickets,
               resolved_tickets, avg_resolution_time_us, atm_uptime_pct, pos_uptime_pct,
               security_incidents, system_downtime_hours, report_data, generated_by, created_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.PerformanceReport) error {
	const query = `
        INSERT INTO performance_reports (report_type, title, period_start, period_end, branch_id,
            total_tickets, resolved_tickets, avg_resolution_time_us, atm_uptime_pct, pos_uptime_pct,
            security_incidents, system_downtime_hours, report_data, generated_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.Type,
		report.Title,
		report.PeriodStart,
		report.PeriodEnd,
		report.BranchID,
		report.TotalTickets,
		report.ResolvedTickets,
		durationToMicros(report.AverageResolutionTime),
		report.ATMUptimePercentage,
		report.POSUptimePercentage,
		report.SecurityIncidents,
		report.SystemDowntimeHours,
		report.Data,
		report.GeneratedBy,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.PerformanceReport, error) {
	query := `SELECT ` + reportColumns + ` FROM performance_reports WHERE id=$1`
	var (
		report   domain.PerformanceReport
		microsec *int64
	)
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.Type,
		&report.Title,
		&report.PeriodStart,
		&report.PeriodEnd,
		&report.BranchID,
		&report.TotalTickets,
		&report.ResolvedTickets,
		&microsec,
		&report.ATMUptimePercentage,
		&report.POSUptimePercentage,
		&report.SecurityIncidents,
		&report.SystemDowntimeHours,
		&report.Data,
		&report.GeneratedBy,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}
	report.AverageResolutionTime = microsToDuration(microsec)
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, reportType *domain.ReportType, limit, offset int) ([]domain.PerformanceReport, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + reportColumns + ` FROM performance_reports`
	args := []any{}
	if reportType != nil {
		args = append(args, *reportType)
		query += ` WHERE report_type=$1`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY period_end DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PerformanceReport
	for rows.Next() {
		var (
			report   domain.PerformanceReport
			microsec *int64
		)
		if err := rows.Scan(
			&report.ID,
			&report.Type,
			&report.Title,
			&report.PeriodStart,
			&report.PeriodEnd,
			&report.BranchID,
			&report.TotalTickets,
			&report.ResolvedTickets,
			&microsec,
			&report.ATMUptimePercentage,
			&report.POSUptimePercentage,
			&report.SecurityIncidents,
			&report.SystemDowntimeHours,
			&report.Data,
			&report.GeneratedBy,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		report.AverageResolutionTime = microsToDuration(microsec)
		result = append(result, report)
	}
	return result, rows.Err()
}

// TicketStatsForPeriod aggregates ticket volume and resolution metrics for a
// reporting window.
func (r *reportRepository) TicketStatsForPeriod(ctx context.Context, branchID *string, from, to time.Time) (int, int, *time.Duration, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE resolved_at IS NOT NULL),
               AVG(resolution_time_us)
        FROM support_tickets
        WHERE created_at >= $1 AND created_at <= $2`
	args := []any{from, to}
	if branchID != nil {
		args = append(args, *branchID)
		query += ` AND branch_id=$3`
	}

	var (
		total     int
		resolved  int
		avgMicros *float64
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total, &resolved, &avgMicros); err != nil {
		return 0, 0, nil, err
	}

	var avg *time.Duration
	if avgMicros != nil {
		d := time.Duration(*avgMicros) * time.Microsecond
		avg = &d
	}
	return total, resolved, avg, nil
}
