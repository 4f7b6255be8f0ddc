package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/api/dto"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/repository"
	"github.com/bankops/biomss/internal/service"
)

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// ListEntries GET /audit-logs.
func (h *AuditHandler) ListEntries(c *fiber.Ctx) error {
	filter := repository.AuditFilter{}
	filter.UserID = optionalQuery(c, "user_id")
	for _, part := range splitCSV(c.Query("action")) {
		filter.Actions = append(filter.Actions, domain.AuditAction(part))
	}
	filter.EntityType = optionalQuery(c, "entity_type")
	filter.EntityID = optionalQuery(c, "entity_id")
	filter.Limit, filter.Offset = pagination(c)

	entries, err := h.service.ListEntries(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		items = append(items, dto.AuditLogResponse{
			ID:          entry.ID,
			UserID:      entry.UserID,
			Action:      entry.Action,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			Description: entry.Description,
			IPAddress:   entry.IPAddress,
			Changes:     entry.Changes,
			Timestamp:   entry.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
