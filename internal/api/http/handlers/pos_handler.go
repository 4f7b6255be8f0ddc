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

// POSHandler manages POS terminal endpoints.
type POSHandler struct {
	service *service.AssetService
}

// NewPOSHandler constructs handler.
func NewPOSHandler(assetService *service.AssetService) *POSHandler {
	return &POSHandler{service: assetService}
}

// CreateTerminal POST /pos-terminals.
func (h *POSHandler) CreateTerminal(c *fiber.Ctx) error {
	var req dto.POSTerminalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	terminal, err := h.service.CreatePOSTerminal(c.Context(), auth.ActorFromContext(c), posFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": posResponse(terminal)})
}

// UpdateTerminal PUT /pos-terminals/:id.
func (h *POSHandler) UpdateTerminal(c *fiber.Ctx) error {
	var req dto.POSTerminalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	terminal := posFromRequest(&req)
	terminal.ID = c.Params("id")
	updated, err := h.service.UpdatePOSTerminal(c.Context(), auth.ActorFromContext(c), terminal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": posResponse(updated)})
}

// GetTerminal GET /pos-terminals/:id.
func (h *POSHandler) GetTerminal(c *fiber.Ctx) error {
	terminal, err := h.service.GetPOSTerminal(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": posResponse(terminal)})
}

// ListTerminals GET /pos-terminals.
func (h *POSHandler) ListTerminals(c *fiber.Ctx) error {
	filter := repository.POSFilter{}
	filter.BranchID = optionalQuery(c, "branch_id")
	filter.MerchantCode = optionalQuery(c, "merchant_code")
	for _, part := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.POSStatus(part))
	}
	filter.OnlyActive = c.QueryBool("active_only")
	filter.Limit, filter.Offset = pagination(c)

	terminals, err := h.service.ListPOSTerminals(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.POSTerminalResponse, 0, len(terminals))
	for i := range terminals {
		items = append(items, posResponse(&terminals[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteTerminal DELETE /pos-terminals/:id.
func (h *POSHandler) DeleteTerminal(c *fiber.Ctx) error {
	if err := h.service.DeletePOSTerminal(c.Context(), auth.ActorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func posFromRequest(req *dto.POSTerminalRequest) *domain.POSTerminal {
	return &domain.POSTerminal{
		TerminalID:          req.TerminalID,
		MerchantName:        req.MerchantName,
		MerchantCode:        req.MerchantCode,
		BranchID:            req.BranchID,
		Location:            req.Location,
		Model:               req.Model,
		SerialNumber:        req.SerialNumber,
		Status:              req.Status,
		LastTransactionAt:   req.LastTransactionAt,
		DeploymentDate:      req.DeploymentDate,
		LastMaintenanceDate: req.LastMaintenanceDate,
		Active:              req.Active,
	}
}

func posResponse(terminal *domain.POSTerminal) dto.POSTerminalResponse {
	return dto.POSTerminalResponse{
		ID:                  terminal.ID,
		TerminalID:          terminal.TerminalID,
		MerchantName:        terminal.MerchantName,
		MerchantCode:        terminal.MerchantCode,
		BranchID:            terminal.BranchID,
		Location:            terminal.Location,
		Model:               terminal.Model,
		SerialNumber:        terminal.SerialNumber,
		Status:              terminal.Status,
		LastTransactionAt:   terminal.LastTransactionAt,
		DeploymentDate:      terminal.DeploymentDate,
		LastMaintenanceDate: terminal.LastMaintenanceDate,
		Active:              terminal.Active,
		CreatedAt:           terminal.CreatedAt,
		UpdatedAt:           terminal.UpdatedAt,
	}
}
