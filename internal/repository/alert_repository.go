package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/lifecycle"
)

// AlertFilter captures search parameters for alert listings.
type AlertFilter struct {
	Scope    lifecycle.AlertScope
	Statuses []domain.AlertStatus
	Types    []domain.AlertType
	BranchID *string
	Limit    int
	Offset   int
}

// AlertRepository encapsulates alert persistence.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Update(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	ListWithFilter(ctx context.Context, filter AlertFilter) ([]domain.Alert, error)
	CountByStatus(ctx context.Context) (map[domain.AlertStatus]int64, error)
}

type alertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository instantiates repository.
func NewAlertRepository(pool *pgxpool.Pool) AlertRepository {
	return &alertRepository{pool: pool}
}

const alertColumns = `id, alert_type, title, message, status, branch_id, atm_id, pos_terminal_id,
               security_event_id, acknowledged_by, acknowledged_at, resolved_at, created_at, updated_at`

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	const query = `
        INSERT INTO alerts (alert_type, title, message, status, branch_id, atm_id, pos_terminal_id, security_event_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		alert.Type,
		alert.Title,
		alert.Message,
		alert.Status,
		alert.BranchID,
		alert.ATMID,
		alert.POSTerminalID,
		alert.SecurityEventID,
	).Scan(&alert.ID, &alert.CreatedAt, &alert.UpdatedAt)
}

func (r *alertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	const query = `
        UPDATE alerts SET title=$1, message=$2, status=$3, acknowledged_by=$4, acknowledged_at=$5,
            resolved_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		alert.Title,
		alert.Message,
		alert.Status,
		alert.AcknowledgedBy,
		alert.AcknowledgedAt,
		alert.ResolvedAt,
		alert.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id=$1`
	var alert domain.Alert
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&alert.ID,
		&alert.Type,
		&alert.Title,
		&alert.Message,
		&alert.Status,
		&alert.BranchID,
		&alert.ATMID,
		&alert.POSTerminalID,
		&alert.SecurityEventID,
		&alert.AcknowledgedBy,
		&alert.AcknowledgedAt,
		&alert.ResolvedAt,
		&alert.CreatedAt,
		&alert.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) ListWithFilter(ctx context.Context, filter AlertFilter) ([]domain.Alert, error) {
	if filter.Scope.None {
		return []domain.Alert{}, nil
	}

	base := `SELECT ` + alertColumns + ` FROM alerts`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Scope.BranchID != nil {
		args = append(args, *filter.Scope.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
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
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, alertType := range filter.Types {
			args = append(args, alertType)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("alert_type IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Alert
	for rows.Next() {
		var alert domain.Alert
		if err := rows.Scan(
			&alert.ID,
			&alert.Type,
			&alert.Title,
			&alert.Message,
			&alert.Status,
			&alert.BranchID,
			&alert.ATMID,
			&alert.POSTerminalID,
			&alert.SecurityEventID,
			&alert.AcknowledgedBy,
			&alert.AcknowledgedAt,
			&alert.ResolvedAt,
			&alert.CreatedAt,
			&alert.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, alert)
	}
	return result, rows.Err()
}

func (r *alertRepository) CountByStatus(ctx context.Context) (map[domain.AlertStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM alerts GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.AlertStatus]int64)
	for rows.Next() {
		var (
			status domain.AlertStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
