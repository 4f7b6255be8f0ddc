package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/lifecycle"
)

// ErrSequenceConflict marks a ticket number assignment that kept conflicting
// after the retry. Callers surface it as a transient creation failure.
var ErrSequenceConflict = errors.New("ticket sequence conflict")

const ticketSeries = "TKT"

// TicketFilter captures search parameters for ticket listings.
type TicketFilter struct {
	Scope       lifecycle.TicketScope
	BranchID    *string
	AssignedTo  *string
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	Categories  []domain.TicketCategory
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, title, description, category, priority, status,
               branch_id, created_by, assigned_to, atm_id, pos_terminal_id,
               resolution_notes, resolution_time_us, resolved_at, closed_at, created_at, updated_at`

// Create inserts the ticket and assigns its sequence number inside one
// serializable transaction. The increment never happens in application
// memory; on serialization failure or a number collision the transaction is
// retried once before giving up with ErrSequenceConflict.
func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		err := r.createOnce(ctx, ticket)
		if err == nil {
			return nil
		}
		if !retryableCreateError(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %w", ErrSequenceConflict, lastErr)
}

func (r *ticketRepository) createOnce(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const nextSeq = `
        INSERT INTO ticket_sequences (series, last_value) VALUES ($1, 1)
        ON CONFLICT (series) DO UPDATE SET last_value = ticket_sequences.last_value + 1
        RETURNING last_value`
	var seq int64
	if err := tx.QueryRow(ctx, nextSeq, ticketSeries).Scan(&seq); err != nil {
		return err
	}
	ticket.TicketNumber = lifecycle.FormatTicketNumber(seq)

	const insert = `
        INSERT INTO support_tickets (ticket_number, title, description, category, priority, status,
            branch_id, created_by, assigned_to, atm_id, pos_terminal_id, resolution_notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		ticket.TicketNumber,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.BranchID,
		ticket.CreatedBy,
		ticket.AssignedTo,
		ticket.ATMID,
		ticket.POSTerminalID,
		ticket.ResolutionNotes,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func retryableCreateError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure or unique_violation on the ticket number
	return pgErr.Code == "40001" || pgErr.Code == "23505"
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE support_tickets SET title=$1, description=$2, category=$3, priority=$4, status=$5,
            branch_id=$6, assigned_to=$7, atm_id=$8, pos_terminal_id=$9, resolution_notes=$10,
            resolution_time_us=$11, resolved_at=$12, closed_at=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.BranchID,
		ticket.AssignedTo,
		ticket.ATMID,
		ticket.POSTerminalID,
		ticket.ResolutionNotes,
		durationToMicros(ticket.ResolutionTime),
		ticket.ResolvedAt,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE ticket_number=$1`
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var (
		ticket   domain.Ticket
		microsec *int64
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.BranchID,
		&ticket.CreatedBy,
		&ticket.AssignedTo,
		&ticket.ATMID,
		&ticket.POSTerminalID,
		&ticket.ResolutionNotes,
		&microsec,
		&ticket.ResolvedAt,
		&ticket.ClosedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	ticket.ResolutionTime = microsToDuration(microsec)
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	if filter.Scope.None {
		return []domain.Ticket{}, nil
	}

	base := `SELECT ` + ticketColumns + ` FROM support_tickets`
	clauses := []string{"1=1"}
	args := []any{}

	switch {
	case filter.Scope.BranchID != nil:
		args = append(args, *filter.Scope.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	case filter.Scope.AssigneeOrUnassigned != nil:
		args = append(args, *filter.Scope.AssigneeOrUnassigned)
		clauses = append(clauses, fmt.Sprintf("(assigned_to=$%d OR assigned_to IS NULL)", len(args)))
	}

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
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, cat := range filter.Categories {
			args = append(args, cat)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(ticket_number) LIKE %s)", placeholder, placeholder, placeholder))
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
	return scanTickets(rows)
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM support_tickets GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var (
			status domain.TicketStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var (
			ticket   domain.Ticket
			microsec *int64
		)
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.BranchID,
			&ticket.CreatedBy,
			&ticket.AssignedTo,
			&ticket.ATMID,
			&ticket.POSTerminalID,
			&ticket.ResolutionNotes,
			&microsec,
			&ticket.ResolvedAt,
			&ticket.ClosedAt,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ticket.ResolutionTime = microsToDuration(microsec)
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func durationToMicros(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	micros := d.Microseconds()
	return &micros
}

func microsToDuration(micros *int64) *time.Duration {
	if micros == nil {
		return nil
	}
	d := time.Duration(*micros) * time.Microsecond
	return &d
}
