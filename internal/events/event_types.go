package events

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated              EventType = "ticket_created"
	EventTicketStatusChanged        EventType = "ticket_status_changed"
	EventTicketAssigned             EventType = "ticket_assigned"
	EventTicketCommentAdded         EventType = "ticket_comment_added"
	EventAlertCreated               EventType = "alert_created"
	EventAlertStatusChanged         EventType = "alert_status_changed"
	EventSecurityEventCreated       EventType = "security_event_created"
	EventSecurityEventStatusChanged EventType = "security_event_status_changed"
	EventEntityCreated              EventType = "entity_created"
	EventEntityUpdated              EventType = "entity_updated"
	EventEntityDeleted              EventType = "entity_deleted"
	EventReportGenerated            EventType = "report_generated"
	EventUserLoggedIn               EventType = "user_logged_in"
)

// Event represents a mutating action emitted by services. EntityType and
// EntityID identify the affected record for the audit consumer.
type Event struct {
	ID         string       `json:"id"`
	Type       EventType    `json:"type"`
	EntityType string       `json:"entity_type"`
	EntityID   string       `json:"entity_id"`
	Actor      domain.Actor `json:"actor"`
	Timestamp  time.Time    `json:"timestamp"`
	Payload    interface{}  `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	BranchID     string                `json:"branch_id"`
	Category     domain.TicketCategory `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
}

// StatusChangedPayload payload for any status transition.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Comment   string `json:"comment,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	Internal    bool   `json:"internal"`
	BodyPreview string `json:"body_preview"`
}

// EntityChangedPayload payload for generic CRUD events.
type EntityChangedPayload struct {
	Description string         `json:"description"`
	Changes     map[string]any `json:"changes,omitempty"`
}
