package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// AuditService writes the compliance audit trail. It consumes dispatcher
// events so services never write audit rows directly.
type AuditService struct {
	audits repository.AuditRepository
	logger *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(audits repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{audits: audits, logger: logger}
}

// RegisterHandlers subscribes the audit consumer to every event type the
// services emit.
func (s *AuditService) RegisterHandlers(dispatcher events.Dispatcher) {
	auditedEvents := []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketAssigned,
		events.EventTicketCommentAdded,
		events.EventAlertCreated,
		events.EventAlertStatusChanged,
		events.EventSecurityEventCreated,
		events.EventSecurityEventStatusChanged,
		events.EventEntityCreated,
		events.EventEntityUpdated,
		events.EventEntityDeleted,
		events.EventReportGenerated,
		events.EventUserLoggedIn,
	}
	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, s.handleEvent)
	}
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	entry := &domain.AuditLog{
		Action:      actionForEvent(event.Type),
		EntityType:  event.EntityType,
		Description: describeEvent(event),
	}
	if event.Actor.ID != "" {
		userID := event.Actor.ID
		entry.UserID = &userID
	}
	if event.EntityID != "" {
		entityID := event.EntityID
		entry.EntityID = &entityID
	}
	if changes := changesForPayload(event.Payload); changes != nil {
		entry.Changes = changes
	}

	if err := s.audits.Create(ctx, entry); err != nil {
		s.logger.Error("failed to write audit entry",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_type", event.EntityType),
			zap.Error(err))
		return err
	}
	return nil
}

// ListEntries returns audit trail entries matching the filter.
func (s *AuditService) ListEntries(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditLog, error) {
	entries, err := s.audits.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func actionForEvent(eventType events.EventType) domain.AuditAction {
	switch eventType {
	case events.EventTicketCreated, events.EventAlertCreated, events.EventSecurityEventCreated, events.EventEntityCreated:
		return domain.AuditActionCreate
	case events.EventEntityDeleted:
		return domain.AuditActionDelete
	case events.EventUserLoggedIn:
		return domain.AuditActionLogin
	case events.EventReportGenerated:
		return domain.AuditActionExport
	default:
		return domain.AuditActionUpdate
	}
}

func describeEvent(event events.Event) string {
	switch payload := event.Payload.(type) {
	case events.TicketCreatedPayload:
		return fmt.Sprintf("ticket %s created: %s", payload.TicketNumber, payload.Title)
	case events.StatusChangedPayload:
		return fmt.Sprintf("%s status changed from %s to %s", event.EntityType, payload.OldStatus, payload.NewStatus)
	case events.TicketAssignedPayload:
		if payload.AssignedTo == nil {
			return "ticket unassigned"
		}
		return "ticket assigned to " + *payload.AssignedTo
	case events.TicketCommentAddedPayload:
		if payload.Internal {
			return "internal comment added"
		}
		return "comment added"
	case events.EntityChangedPayload:
		return payload.Description
	default:
		return string(event.Type)
	}
}

func changesForPayload(payload any) map[string]any {
	switch p := payload.(type) {
	case events.StatusChangedPayload:
		return map[string]any{"status": map[string]string{"from": p.OldStatus, "to": p.NewStatus}}
	case events.EntityChangedPayload:
		return p.Changes
	default:
		return nil
	}
}
