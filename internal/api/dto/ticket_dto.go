package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Category      domain.TicketCategory `json:"category"`
	Priority      domain.TicketPriority `json:"priority"`
	BranchID      string                `json:"branch_id"`
	ATMID         *string               `json:"atm_id,omitempty"`
	POSTerminalID *string               `json:"pos_terminal_id,omitempty"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status          domain.TicketStatus `json:"status"`
	ResolutionNotes *string             `json:"resolution_notes,omitempty"`
}

// AssignTicketRequest payload. A null assigned_to unassigns the ticket.
type AssignTicketRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Category     domain.TicketCategory `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	BranchID     string                `json:"branch_id"`
	AssignedTo   *string               `json:"assigned_to,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID                    string                  `json:"id"`
	TicketNumber          string                  `json:"ticket_number"`
	Title                 string                  `json:"title"`
	Description           string                  `json:"description"`
	Category              domain.TicketCategory   `json:"category"`
	Priority              domain.TicketPriority   `json:"priority"`
	Status                domain.TicketStatus     `json:"status"`
	BranchID              string                  `json:"branch_id"`
	CreatedBy             *string                 `json:"created_by,omitempty"`
	AssignedTo            *string                 `json:"assigned_to,omitempty"`
	ATMID                 *string                 `json:"atm_id,omitempty"`
	POSTerminalID         *string                 `json:"pos_terminal_id,omitempty"`
	ResolutionNotes       *string                 `json:"resolution_notes,omitempty"`
	ResolutionTimeSeconds *float64                `json:"resolution_time_seconds,omitempty"`
	ResolvedAt            *time.Time              `json:"resolved_at,omitempty"`
	ClosedAt              *time.Time              `json:"closed_at,omitempty"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
	Comments              []TicketCommentResponse `json:"comments"`
}

// TicketCommentResponse represents a thread entry.
type TicketCommentResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}
