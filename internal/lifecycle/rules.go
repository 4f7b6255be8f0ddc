// Package lifecycle holds the pure rules for ticket numbering, status
// transition side effects, and role-based visibility. Nothing in this
// package performs I/O; callers apply the returned assignments atomically
// with the status change itself.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// ErrUnknownStatus rejects a transition target outside the entity's
// enumerated status set. The record is left unchanged.
var ErrUnknownStatus = errors.New("unknown status")

// TicketAssignments are the field writes triggered by a ticket status
// change. Each pointer is nil when the corresponding field keeps its value.
type TicketAssignments struct {
	ResolvedAt     *time.Time
	ResolutionTime *time.Duration
	ClosedAt       *time.Time
}

// TicketTransition computes the side effects of moving a ticket to next at
// the given instant. Timestamps are forward-only: a side effect fires only
// while its target field is unset, so reapplying RESOLVED or CLOSED is an
// idempotent no-op and moving back to a non-terminal status clears nothing.
func TicketTransition(ticket *domain.Ticket, next domain.TicketStatus, now time.Time) (TicketAssignments, error) {
	if !ValidTicketStatus(next) {
		return TicketAssignments{}, fmt.Errorf("ticket status %q: %w", next, ErrUnknownStatus)
	}

	var out TicketAssignments
	if next == domain.TicketStatusResolved && ticket.ResolvedAt == nil {
		resolvedAt := now
		out.ResolvedAt = &resolvedAt
		elapsed := now.Sub(ticket.CreatedAt)
		out.ResolutionTime = &elapsed
	}
	if next == domain.TicketStatusClosed && ticket.ClosedAt == nil {
		closedAt := now
		out.ClosedAt = &closedAt
	}
	return out, nil
}

// Apply writes the assignments and the new status onto the ticket.
func (a TicketAssignments) Apply(ticket *domain.Ticket, next domain.TicketStatus) {
	ticket.Status = next
	if a.ResolvedAt != nil {
		ticket.ResolvedAt = a.ResolvedAt
	}
	if a.ResolutionTime != nil {
		ticket.ResolutionTime = a.ResolutionTime
	}
	if a.ClosedAt != nil {
		ticket.ClosedAt = a.ClosedAt
	}
}

// AlertAssignments are the field writes triggered by an alert status change.
type AlertAssignments struct {
	AcknowledgedBy *string
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
}

// AlertTransition computes the side effects of moving an alert to next.
// The acknowledging party and time are recorded once, on the first
// transition into ACKNOWLEDGED.
func AlertTransition(alert *domain.Alert, next domain.AlertStatus, actor domain.Actor, now time.Time) (AlertAssignments, error) {
	if !ValidAlertStatus(next) {
		return AlertAssignments{}, fmt.Errorf("alert status %q: %w", next, ErrUnknownStatus)
	}

	var out AlertAssignments
	if next == domain.AlertStatusAcknowledged && alert.AcknowledgedAt == nil {
		actorID := actor.ID
		ackAt := now
		out.AcknowledgedBy = &actorID
		out.AcknowledgedAt = &ackAt
	}
	if next == domain.AlertStatusResolved && alert.ResolvedAt == nil {
		resolvedAt := now
		out.ResolvedAt = &resolvedAt
	}
	return out, nil
}

// Apply writes the assignments and the new status onto the alert.
func (a AlertAssignments) Apply(alert *domain.Alert, next domain.AlertStatus) {
	alert.Status = next
	if a.AcknowledgedBy != nil {
		alert.AcknowledgedBy = a.AcknowledgedBy
	}
	if a.AcknowledgedAt != nil {
		alert.AcknowledgedAt = a.AcknowledgedAt
	}
	if a.ResolvedAt != nil {
		alert.ResolvedAt = a.ResolvedAt
	}
}

// SecurityEventAssignments are the field writes triggered by a security
// event status change.
type SecurityEventAssignments struct {
	ResolvedAt *time.Time
}

// SecurityEventTransition computes the side effects of moving a security
// event to next. Resolution time is recorded once, on reaching RESOLVED.
func SecurityEventTransition(event *domain.SecurityEvent, next domain.SecurityEventStatus, now time.Time) (SecurityEventAssignments, error) {
	if !ValidSecurityEventStatus(next) {
		return SecurityEventAssignments{}, fmt.Errorf("security event status %q: %w", next, ErrUnknownStatus)
	}

	var out SecurityEventAssignments
	if next == domain.SecurityEventStatusResolved && event.ResolvedAt == nil {
		resolvedAt := now
		out.ResolvedAt = &resolvedAt
	}
	return out, nil
}

// Apply writes the assignments and the new status onto the event.
func (a SecurityEventAssignments) Apply(event *domain.SecurityEvent, next domain.SecurityEventStatus) {
	event.Status = next
	if a.ResolvedAt != nil {
		event.ResolvedAt = a.ResolvedAt
	}
}

// ValidTicketStatus reports enum membership for ticket statuses.
func ValidTicketStatus(status domain.TicketStatus) bool {
	switch status {
	case domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.TicketStatusPending,
		domain.TicketStatusResolved, domain.TicketStatusClosed, domain.TicketStatusCancelled:
		return true
	}
	return false
}

// ValidAlertStatus reports enum membership for alert statuses.
func ValidAlertStatus(status domain.AlertStatus) bool {
	switch status {
	case domain.AlertStatusActive, domain.AlertStatusAcknowledged,
		domain.AlertStatusResolved, domain.AlertStatusDismissed:
		return true
	}
	return false
}

// ValidSecurityEventStatus reports enum membership for security event statuses.
func ValidSecurityEventStatus(status domain.SecurityEventStatus) bool {
	switch status {
	case domain.SecurityEventStatusNew, domain.SecurityEventStatusInvestigating,
		domain.SecurityEventStatusContained, domain.SecurityEventStatusResolved,
		domain.SecurityEventStatusFalsePositive:
		return true
	}
	return false
}
