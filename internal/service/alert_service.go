package service

import (
	"context"
	"strings"
	"time"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/lifecycle"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// AlertService coordinates operational alert workflows.
type AlertService struct {
	alerts     repository.AlertRepository
	dispatcher events.Dispatcher
}

// AlertCreateInput describes alert creation payload.
type AlertCreateInput struct {
	Type            domain.AlertType
	Title           string
	Message         string
	BranchID        *string
	ATMID           *string
	POSTerminalID   *string
	SecurityEventID *string
}

// AlertListInput describes listing filters on top of the caller's scope.
type AlertListInput struct {
	Statuses []domain.AlertStatus
	Types    []domain.AlertType
	BranchID *string
	Limit    int
	Offset   int
}

// NewAlertService constructs the service.
func NewAlertService(alerts repository.AlertRepository, dispatcher events.Dispatcher) *AlertService {
	return &AlertService{alerts: alerts, dispatcher: dispatcher}
}

// CreateAlert raises a new alert in ACTIVE state.
func (s *AlertService) CreateAlert(ctx context.Context, actor domain.Actor, input AlertCreateInput) (*domain.Alert, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("alert title required", nil)
	}

	alert := &domain.Alert{
		Type:            input.Type,
		Title:           title,
		Message:         strings.TrimSpace(input.Message),
		Status:          domain.AlertStatusActive,
		BranchID:        input.BranchID,
		ATMID:           input.ATMID,
		POSTerminalID:   input.POSTerminalID,
		SecurityEventID: input.SecurityEventID,
	}
	if alert.Type == "" {
		alert.Type = domain.AlertTypeOther
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventAlertCreated,
		EntityType: "alert",
		EntityID:   alert.ID,
		Actor:      actor,
		Payload: events.EntityChangedPayload{
			Description: "alert raised: " + alert.Title,
		},
	})
	return alert, nil
}

// ListAlerts returns alerts visible to the actor.
func (s *AlertService) ListAlerts(ctx context.Context, actor domain.Actor, input AlertListInput) ([]domain.Alert, error) {
	filter := repository.AlertFilter{
		Scope:    lifecycle.AlertVisibility(actor),
		Statuses: input.Statuses,
		Types:    input.Types,
		BranchID: input.BranchID,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	alerts, err := s.alerts.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return alerts, nil
}

// GetAlert fetches a single alert, enforcing visibility.
func (s *AlertService) GetAlert(ctx context.Context, actor domain.Actor, alertID string) (*domain.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !lifecycle.AlertVisibility(actor).Allows(alert) {
		return nil, apperrors.NewForbidden("alert not visible to caller")
	}
	return alert, nil
}

// UpdateStatus transitions an alert. Acknowledgment bookkeeping fires only
// on the first transition into ACKNOWLEDGED; reapplying a status is a no-op.
func (s *AlertService) UpdateStatus(ctx context.Context, actor domain.Actor, alertID string, next domain.AlertStatus) (*domain.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !lifecycle.AlertVisibility(actor).Allows(alert) {
		return nil, apperrors.NewForbidden("alert not visible to caller")
	}

	assignments, err := lifecycle.AlertTransition(alert, next, actor, time.Now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"status": next})
	}

	oldStatus := alert.Status
	assignments.Apply(alert, next)

	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventAlertStatusChanged,
		EntityType: "alert",
		EntityID:   alert.ID,
		Actor:      actor,
		Payload: events.StatusChangedPayload{
			OldStatus: string(oldStatus),
			NewStatus: string(next),
		},
	})
	return alert, nil
}

// Acknowledge is shorthand for transitioning into ACKNOWLEDGED.
func (s *AlertService) Acknowledge(ctx context.Context, actor domain.Actor, alertID string) (*domain.Alert, error) {
	return s.UpdateStatus(ctx, actor, alertID, domain.AlertStatusAcknowledged)
}
