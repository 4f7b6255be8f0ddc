package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/biomss/internal/domain"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func openTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:        "tk-1",
		Status:    domain.TicketStatusOpen,
		CreatedAt: t0,
	}
}

func TestTicketResolvedSetsTimestampsOnce(t *testing.T) {
	ticket := openTicket()
	t1 := t0.Add(90 * time.Minute)

	assignments, err := TicketTransition(ticket, domain.TicketStatusResolved, t1)
	require.NoError(t, err)
	assignments.Apply(ticket, domain.TicketStatusResolved)

	require.NotNil(t, ticket.ResolvedAt)
	assert.Equal(t, t1, *ticket.ResolvedAt)
	require.NotNil(t, ticket.ResolutionTime)
	assert.Equal(t, 90*time.Minute, *ticket.ResolutionTime)

	// second transition at a later instant must not overwrite
	t2 := t1.Add(3 * time.Hour)
	assignments, err = TicketTransition(ticket, domain.TicketStatusResolved, t2)
	require.NoError(t, err)
	assert.Nil(t, assignments.ResolvedAt)
	assert.Nil(t, assignments.ResolutionTime)
	assignments.Apply(ticket, domain.TicketStatusResolved)

	assert.Equal(t, t1, *ticket.ResolvedAt)
	assert.Equal(t, 90*time.Minute, *ticket.ResolutionTime)
}

func TestTicketClosedSetsClosedAtOnce(t *testing.T) {
	ticket := openTicket()
	t1 := t0.Add(time.Hour)

	assignments, err := TicketTransition(ticket, domain.TicketStatusClosed, t1)
	require.NoError(t, err)
	assignments.Apply(ticket, domain.TicketStatusClosed)
	require.NotNil(t, ticket.ClosedAt)
	assert.Equal(t, t1, *ticket.ClosedAt)

	assignments, err = TicketTransition(ticket, domain.TicketStatusClosed, t1.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, assignments.ClosedAt)
}

func TestTicketReopenKeepsTimestamps(t *testing.T) {
	ticket := openTicket()
	t1 := t0.Add(time.Hour)

	assignments, err := TicketTransition(ticket, domain.TicketStatusResolved, t1)
	require.NoError(t, err)
	assignments.Apply(ticket, domain.TicketStatusResolved)

	assignments, err = TicketTransition(ticket, domain.TicketStatusInProgress, t1.Add(time.Minute))
	require.NoError(t, err)
	assignments.Apply(ticket, domain.TicketStatusInProgress)

	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)
	require.NotNil(t, ticket.ResolvedAt)
	assert.Equal(t, t1, *ticket.ResolvedAt)
	require.NotNil(t, ticket.ResolutionTime)
}

func TestTicketTransitionRejectsUnknownStatus(t *testing.T) {
	ticket := openTicket()
	_, err := TicketTransition(ticket, domain.TicketStatus("ARCHIVED"), t0)
	require.ErrorIs(t, err, ErrUnknownStatus)
	// record untouched
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Nil(t, ticket.ResolvedAt)
}

func TestAlertAcknowledgedOnce(t *testing.T) {
	alert := &domain.Alert{ID: "al-1", Status: domain.AlertStatusActive}
	first := domain.Actor{ID: "user-1", Role: domain.RoleITOfficer}
	second := domain.Actor{ID: "user-2", Role: domain.RoleITOfficer}
	t1 := t0.Add(5 * time.Minute)

	assignments, err := AlertTransition(alert, domain.AlertStatusAcknowledged, first, t1)
	require.NoError(t, err)
	assignments.Apply(alert, domain.AlertStatusAcknowledged)

	require.NotNil(t, alert.AcknowledgedBy)
	assert.Equal(t, "user-1", *alert.AcknowledgedBy)
	require.NotNil(t, alert.AcknowledgedAt)
	assert.Equal(t, t1, *alert.AcknowledgedAt)

	// a later acknowledgment by someone else changes nothing
	assignments, err = AlertTransition(alert, domain.AlertStatusAcknowledged, second, t1.Add(time.Minute))
	require.NoError(t, err)
	assert.Nil(t, assignments.AcknowledgedBy)
	assert.Nil(t, assignments.AcknowledgedAt)
	assignments.Apply(alert, domain.AlertStatusAcknowledged)
	assert.Equal(t, "user-1", *alert.AcknowledgedBy)
}

func TestAlertResolvedSetsResolvedAtOnce(t *testing.T) {
	alert := &domain.Alert{ID: "al-2", Status: domain.AlertStatusAcknowledged}
	actor := domain.Actor{ID: "user-1", Role: domain.RoleITOfficer}
	t1 := t0.Add(time.Hour)

	assignments, err := AlertTransition(alert, domain.AlertStatusResolved, actor, t1)
	require.NoError(t, err)
	assignments.Apply(alert, domain.AlertStatusResolved)
	require.NotNil(t, alert.ResolvedAt)
	assert.Equal(t, t1, *alert.ResolvedAt)

	assignments, err = AlertTransition(alert, domain.AlertStatusResolved, actor, t1.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, assignments.ResolvedAt)
}

func TestAlertTransitionRejectsUnknownStatus(t *testing.T) {
	alert := &domain.Alert{ID: "al-3", Status: domain.AlertStatusActive}
	_, err := AlertTransition(alert, domain.AlertStatus("MUTED"), domain.Actor{ID: "u"}, t0)
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestSecurityEventResolvedOnce(t *testing.T) {
	event := &domain.SecurityEvent{ID: "se-1", Status: domain.SecurityEventStatusInvestigating}
	t1 := t0.Add(30 * time.Minute)

	assignments, err := SecurityEventTransition(event, domain.SecurityEventStatusResolved, t1)
	require.NoError(t, err)
	assignments.Apply(event, domain.SecurityEventStatusResolved)
	require.NotNil(t, event.ResolvedAt)
	assert.Equal(t, t1, *event.ResolvedAt)

	assignments, err = SecurityEventTransition(event, domain.SecurityEventStatusResolved, t1.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, assignments.ResolvedAt)
	assignments.Apply(event, domain.SecurityEventStatusResolved)
	assert.Equal(t, t1, *event.ResolvedAt)
}

func TestSecurityEventFalsePositiveKeepsResolvedAt(t *testing.T) {
	event := &domain.SecurityEvent{ID: "se-2", Status: domain.SecurityEventStatusInvestigating}
	t1 := t0.Add(time.Minute)

	assignments, err := SecurityEventTransition(event, domain.SecurityEventStatusResolved, t1)
	require.NoError(t, err)
	assignments.Apply(event, domain.SecurityEventStatusResolved)

	assignments, err = SecurityEventTransition(event, domain.SecurityEventStatusFalsePositive, t1.Add(time.Minute))
	require.NoError(t, err)
	assignments.Apply(event, domain.SecurityEventStatusFalsePositive)

	assert.Equal(t, domain.SecurityEventStatusFalsePositive, event.Status)
	require.NotNil(t, event.ResolvedAt)
	assert.Equal(t, t1, *event.ResolvedAt)
}
