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

// SecurityEventService coordinates security incident workflows.
type SecurityEventService struct {
	securityEvents repository.SecurityEventRepository
	dispatcher     events.Dispatcher
}

// SecurityEventCreateInput describes creation payload.
type SecurityEventCreateInput struct {
	Type           domain.SecurityEventType
	Severity       domain.Severity
	SourceIP       *string
	TargetIP       *string
	BranchID       *string
	UserID         *string
	Description    string
	AffectedSystem *string
	DetectedAt     *time.Time
}

// SecurityEventUpdateInput describes mutable investigation fields.
type SecurityEventUpdateInput struct {
	Severity    *domain.Severity
	ActionTaken *string
	AssignedTo  *string
}

// NewSecurityEventService constructs the service.
func NewSecurityEventService(securityEvents repository.SecurityEventRepository, dispatcher events.Dispatcher) *SecurityEventService {
	return &SecurityEventService{securityEvents: securityEvents, dispatcher: dispatcher}
}

// CreateEvent records a new security event in NEW state.
func (s *SecurityEventService) CreateEvent(ctx context.Context, actor domain.Actor, input SecurityEventCreateInput) (*domain.SecurityEvent, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	detectedAt := time.Now().UTC()
	if input.DetectedAt != nil {
		detectedAt = *input.DetectedAt
	}

	event := &domain.SecurityEvent{
		Type:           input.Type,
		Severity:       input.Severity,
		Status:         domain.SecurityEventStatusNew,
		SourceIP:       input.SourceIP,
		TargetIP:       input.TargetIP,
		BranchID:       input.BranchID,
		UserID:         input.UserID,
		Description:    description,
		AffectedSystem: input.AffectedSystem,
		DetectedAt:     detectedAt,
	}
	if event.Type == "" {
		event.Type = domain.SecurityEventOther
	}
	if event.Severity == "" {
		event.Severity = domain.SeverityMedium
	}

	if err := s.securityEvents.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventSecurityEventCreated,
		EntityType: "security_event",
		EntityID:   event.ID,
		Actor:      actor,
		Payload: events.EntityChangedPayload{
			Description: "security event recorded: " + string(event.Type),
		},
	})
	return event, nil
}

// ListEvents returns security events matching the filter.
func (s *SecurityEventService) ListEvents(ctx context.Context, filter repository.SecurityEventFilter) ([]domain.SecurityEvent, error) {
	result, err := s.securityEvents.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// GetEvent fetches a single security event.
func (s *SecurityEventService) GetEvent(ctx context.Context, eventID string) (*domain.SecurityEvent, error) {
	event, err := s.securityEvents.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// UpdateStatus transitions a security event. Resolution time is recorded
// once, on the first transition into RESOLVED.
func (s *SecurityEventService) UpdateStatus(ctx context.Context, actor domain.Actor, eventID string, next domain.SecurityEventStatus, update SecurityEventUpdateInput) (*domain.SecurityEvent, error) {
	event, err := s.securityEvents.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	assignments, err := lifecycle.SecurityEventTransition(event, next, time.Now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"status": next})
	}

	oldStatus := event.Status
	assignments.Apply(event, next)
	if update.Severity != nil {
		event.Severity = *update.Severity
	}
	if update.ActionTaken != nil {
		event.ActionTaken = update.ActionTaken
	}
	if update.AssignedTo != nil {
		event.AssignedTo = update.AssignedTo
	}

	if err := s.securityEvents.Update(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventSecurityEventStatusChanged,
		EntityType: "security_event",
		EntityID:   event.ID,
		Actor:      actor,
		Payload: events.StatusChangedPayload{
			OldStatus: string(oldStatus),
			NewStatus: string(next),
		},
	})
	return event, nil
}
