package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
)

// SecurityEventFilter captures search parameters for security event listings.
type SecurityEventFilter struct {
	Statuses   []domain.SecurityEventStatus
	Severities []domain.Severity
	Types      []domain.SecurityEventType
	BranchID   *string
	AssignedTo *string
	Limit      int
	Offset     int
}

// SecurityEventRepository encapsulates security event persistence.
type SecurityEventRepository interface {
	Create(ctx context.Context, event *domain.SecurityEvent) error
	Update(ctx context.Context, event *domain.SecurityEvent) error
	GetByID(ctx context.Context, id string) (*domain.SecurityEvent, error)
	ListWithFilter(ctx context.Context, filter SecurityEventFilter) ([]domain.SecurityEvent, error)
	CountOpen(ctx context.Context) (int64, error)
}

type securityEventRepository struct {
	pool *pgxpool.Pool
}

// NewSecurityEventRepository instantiates repository.
func NewSecurityEventRepository(pool *pgxpool.Pool) SecurityEventRepository {
	return &securityEventRepository{pool: pool}
}

const securityEventColumns = `id, event_type, severity, status, source_ip, target_ip, branch_id, user_id,
               description, affected_system, action_taken, assigned_to, resolved_at, detected_at,
               created_at, updated_at`

func (r *securityEventRepository) Create(ctx context.Context, event *domain.SecurityEvent) error {
	const query = `
        INSERT INTO security_events (event_type, severity, status, source_ip, target_ip, branch_id,
            user_id, description, affected_system, action_taken, assigned_to, detected_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Type,
		event.Severity,
		event.Status,
		event.SourceIP,
		event.TargetIP,
		event.BranchID,
		event.UserID,
		event.Description,
		event.AffectedSystem,
		event.ActionTaken,
		event.AssignedTo,
		event.DetectedAt,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *securityEventRepository) Update(ctx context.Context, event *domain.SecurityEvent) error {
	const query = `
        UPDATE security_events SET severity=$1, status=$2, description=$3, affected_system=$4,
            action_taken=$5, assigned_to=$6, resolved_at=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		event.Severity,
		event.Status,
		event.Description,
		event.AffectedSystem,
		event.ActionTaken,
		event.AssignedTo,
		event.ResolvedAt,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *securityEventRepository) GetByID(ctx context.Context, id string) (*domain.SecurityEvent, error) {
	query := `SELECT ` + securityEventColumns + ` FROM security_events WHERE id=$1`
	var event domain.SecurityEvent
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Type,
		&event.Severity,
		&event.Status,
		&event.SourceIP,
		&event.TargetIP,
		&event.BranchID,
		&event.UserID,
		&event.Description,
		&event.AffectedSystem,
		&event.ActionTaken,
		&event.AssignedTo,
		&event.ResolvedAt,
		&event.DetectedAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *securityEventRepository) ListWithFilter(ctx context.Context, filter SecurityEventFilter) ([]domain.SecurityEvent, error) {
	base := `SELECT ` + securityEventColumns + ` FROM security_events`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Severities) > 0 {
		placeholders := make([]string, len(filter.Severities))
		for i, severity := range filter.Severities {
			args = append(args, severity)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("severity IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, eventType := range filter.Types {
			args = append(args, eventType)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("event_type IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY detected_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SecurityEvent
	for rows.Next() {
		var event domain.SecurityEvent
		if err := rows.Scan(
			&event.ID,
			&event.Type,
			&event.Severity,
			&event.Status,
			&event.SourceIP,
			&event.TargetIP,
			&event.BranchID,
			&event.UserID,
			&event.Description,
			&event.AffectedSystem,
			&event.ActionTaken,
			&event.AssignedTo,
			&event.ResolvedAt,
			&event.DetectedAt,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *securityEventRepository) CountOpen(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM security_events WHERE status NOT IN ('RESOLVED','FALSE_POSITIVE')`
	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
