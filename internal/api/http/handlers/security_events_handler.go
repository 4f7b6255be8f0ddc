package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/api/dto"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/repository"
	"github.com/bankops/biomss/internal/service"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// SecurityEventsHandler manages security incident endpoints.
type SecurityEventsHandler struct {
	service *service.SecurityEventService
}

// NewSecurityEventsHandler constructs handler.
func NewSecurityEventsHandler(eventService *service.SecurityEventService) *SecurityEventsHandler {
	return &SecurityEventsHandler{service: eventService}
}

// CreateEvent POST /security-events.
func (h *SecurityEventsHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateSecurityEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	event, err := h.service.CreateEvent(c.Context(), auth.ActorFromContext(c), service.SecurityEventCreateInput{
		Type:           req.Type,
		Severity:       req.Severity,
		SourceIP:       req.SourceIP,
		TargetIP:       req.TargetIP,
		BranchID:       req.BranchID,
		UserID:         req.UserID,
		Description:    req.Description,
		AffectedSystem: req.AffectedSystem,
		DetectedAt:     req.DetectedAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": securityEventResponse(event)})
}

// ListEvents GET /security-events.
func (h *SecurityEventsHandler) ListEvents(c *fiber.Ctx) error {
	filter := repository.SecurityEventFilter{}
	for _, part := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.SecurityEventStatus(part))
	}
	for _, part := range splitCSV(c.Query("severity")) {
		filter.Severities = append(filter.Severities, domain.Severity(part))
	}
	for _, part := range splitCSV(c.Query("type")) {
		filter.Types = append(filter.Types, domain.SecurityEventType(part))
	}
	filter.BranchID = optionalQuery(c, "branch_id")
	filter.AssignedTo = optionalQuery(c, "assigned_to")
	filter.Limit, filter.Offset = pagination(c)

	events, err := h.service.ListEvents(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.SecurityEventResponse, 0, len(events))
	for i := range events {
		items = append(items, securityEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetEvent GET /security-events/:id.
func (h *SecurityEventsHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetEvent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": securityEventResponse(event)})
}

// UpdateStatus PATCH /security-events/:id/status.
func (h *SecurityEventsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateSecurityEventStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	event, err := h.service.UpdateStatus(c.Context(), auth.ActorFromContext(c), c.Params("id"), req.Status, service.SecurityEventUpdateInput{
		Severity:    req.Severity,
		ActionTaken: req.ActionTaken,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": securityEventResponse(event)})
}

func securityEventResponse(event *domain.SecurityEvent) dto.SecurityEventResponse {
	return dto.SecurityEventResponse{
		ID:             event.ID,
		Type:           event.Type,
		Severity:       event.Severity,
		Status:         event.Status,
		SourceIP:       event.SourceIP,
		TargetIP:       event.TargetIP,
		BranchID:       event.BranchID,
		UserID:         event.UserID,
		Description:    event.Description,
		AffectedSystem: event.AffectedSystem,
		ActionTaken:    event.ActionTaken,
		AssignedTo:     event.AssignedTo,
		ResolvedAt:     event.ResolvedAt,
		DetectedAt:     event.DetectedAt,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.UpdatedAt,
	}
}
