package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/api/dto"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/service"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// AlertsHandler manages operational alert endpoints.
type AlertsHandler struct {
	service *service.AlertService
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(alertService *service.AlertService) *AlertsHandler {
	return &AlertsHandler{service: alertService}
}

// CreateAlert POST /alerts.
func (h *AlertsHandler) CreateAlert(c *fiber.Ctx) error {
	var req dto.CreateAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	alert, err := h.service.CreateAlert(c.Context(), auth.ActorFromContext(c), service.AlertCreateInput{
		Type:            req.Type,
		Title:           req.Title,
		Message:         req.Message,
		BranchID:        req.BranchID,
		ATMID:           req.ATMID,
		POSTerminalID:   req.POSTerminalID,
		SecurityEventID: req.SecurityEventID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": alertResponse(alert)})
}

// ListAlerts GET /alerts.
func (h *AlertsHandler) ListAlerts(c *fiber.Ctx) error {
	input := service.AlertListInput{}
	for _, part := range splitCSV(c.Query("status")) {
		input.Statuses = append(input.Statuses, domain.AlertStatus(part))
	}
	for _, part := range splitCSV(c.Query("type")) {
		input.Types = append(input.Types, domain.AlertType(part))
	}
	input.BranchID = optionalQuery(c, "branch_id")
	input.Limit, input.Offset = pagination(c)

	alerts, err := h.service.ListAlerts(c.Context(), auth.ActorFromContext(c), input)
	if err != nil {
		return err
	}
	items := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, alertResponse(&alerts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAlert GET /alerts/:id.
func (h *AlertsHandler) GetAlert(c *fiber.Ctx) error {
	alert, err := h.service.GetAlert(c.Context(), auth.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": alertResponse(alert)})
}

// UpdateStatus PATCH /alerts/:id/status.
func (h *AlertsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateAlertStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	alert, err := h.service.UpdateStatus(c.Context(), auth.ActorFromContext(c), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": alertResponse(alert)})
}

// Acknowledge POST /alerts/:id/acknowledge.
func (h *AlertsHandler) Acknowledge(c *fiber.Ctx) error {
	alert, err := h.service.Acknowledge(c.Context(), auth.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": alertResponse(alert)})
}

func alertResponse(alert *domain.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:              alert.ID,
		Type:            alert.Type,
		Title:           alert.Title,
		Message:         alert.Message,
		Status:          alert.Status,
		BranchID:        alert.BranchID,
		ATMID:           alert.ATMID,
		POSTerminalID:   alert.POSTerminalID,
		SecurityEventID: alert.SecurityEventID,
		AcknowledgedBy:  alert.AcknowledgedBy,
		AcknowledgedAt:  alert.AcknowledgedAt,
		ResolvedAt:      alert.ResolvedAt,
		CreatedAt:       alert.CreatedAt,
		UpdatedAt:       alert.UpdatedAt,
	}
}
