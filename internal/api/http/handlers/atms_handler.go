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

// ATMsHandler manages ATM asset endpoints.
type ATMsHandler struct {
	service *service.AssetService
}

// NewATMsHandler constructs handler.
func NewATMsHandler(assetService *service.AssetService) *ATMsHandler {
	return &ATMsHandler{service: assetService}
}

// CreateATM POST /atms.
func (h *ATMsHandler) CreateATM(c *fiber.Ctx) error {
	var req dto.ATMRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	atm, err := h.service.CreateATM(c.Context(), auth.ActorFromContext(c), atmFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": atmResponse(atm)})
}

// UpdateATM PUT /atms/:id.
func (h *ATMsHandler) UpdateATM(c *fiber.Ctx) error {
	var req dto.ATMRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	atm := atmFromRequest(&req)
	atm.ID = c.Params("id")
	updated, err := h.service.UpdateATM(c.Context(), auth.ActorFromContext(c), atm)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": atmResponse(updated)})
}

// GetATM GET /atms/:id.
func (h *ATMsHandler) GetATM(c *fiber.Ctx) error {
	atm, err := h.service.GetATM(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": atmResponse(atm)})
}

// ListATMs GET /atms.
func (h *ATMsHandler) ListATMs(c *fiber.Ctx) error {
	filter := repository.ATMFilter{}
	filter.BranchID = optionalQuery(c, "branch_id")
	for _, part := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.ATMStatus(part))
	}
	filter.CashBelow = parseInt64(c.Query("cash_below"))
	filter.OnlyActive = c.QueryBool("active_only")
	filter.Limit, filter.Offset = pagination(c)

	atms, err := h.service.ListATMs(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ATMResponse, 0, len(atms))
	for i := range atms {
		items = append(items, atmResponse(&atms[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteATM DELETE /atms/:id.
func (h *ATMsHandler) DeleteATM(c *fiber.Ctx) error {
	if err := h.service.DeleteATM(c.Context(), auth.ActorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func atmFromRequest(req *dto.ATMRequest) *domain.ATM {
	return &domain.ATM{
		Code:                req.Code,
		BranchID:            req.BranchID,
		LocationDescription: req.LocationDescription,
		Model:               req.Model,
		Manufacturer:        req.Manufacturer,
		SerialNumber:        req.SerialNumber,
		IPAddress:           req.IPAddress,
		Status:              req.Status,
		CashLevel:           req.CashLevel,
		MaxCashCapacity:     req.MaxCashCapacity,
		LastReplenishment:   req.LastReplenishment,
		LastMaintenanceDate: req.LastMaintenanceDate,
		NextMaintenanceDate: req.NextMaintenanceDate,
		InstallationDate:    req.InstallationDate,
		Active:              req.Active,
	}
}

func atmResponse(atm *domain.ATM) dto.ATMResponse {
	return dto.ATMResponse{
		ID:                  atm.ID,
		Code:                atm.Code,
		BranchID:            atm.BranchID,
		LocationDescription: atm.LocationDescription,
		Model:               atm.Model,
		Manufacturer:        atm.Manufacturer,
		SerialNumber:        atm.SerialNumber,
		IPAddress:           atm.IPAddress,
		Status:              atm.Status,
		CashLevel:           atm.CashLevel,
		MaxCashCapacity:     atm.MaxCashCapacity,
		CashPercentage:      atm.CashPercentage(),
		LastReplenishment:   atm.LastReplenishment,
		LastMaintenanceDate: atm.LastMaintenanceDate,
		NextMaintenanceDate: atm.NextMaintenanceDate,
		InstallationDate:    atm.InstallationDate,
		Active:              atm.Active,
		CreatedAt:           atm.CreatedAt,
		UpdatedAt:           atm.UpdatedAt,
	}
}
