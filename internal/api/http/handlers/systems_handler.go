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

// SystemsHandler manages monitored system endpoints.
type SystemsHandler struct {
	service *service.AssetService
}

// NewSystemsHandler constructs handler.
func NewSystemsHandler(assetService *service.AssetService) *SystemsHandler {
	return &SystemsHandler{service: assetService}
}

// CreateSystem POST /systems.
func (h *SystemsHandler) CreateSystem(c *fiber.Ctx) error {
	var req dto.SystemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	system, err := h.service.CreateSystem(c.Context(), auth.ActorFromContext(c), systemFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": systemResponse(system)})
}

// UpdateSystem PUT /systems/:id.
func (h *SystemsHandler) UpdateSystem(c *fiber.Ctx) error {
	var req dto.SystemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	system := systemFromRequest(&req)
	system.ID = c.Params("id")
	updated, err := h.service.UpdateSystem(c.Context(), auth.ActorFromContext(c), system)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": systemResponse(updated)})
}

// GetSystem GET /systems/:id.
func (h *SystemsHandler) GetSystem(c *fiber.Ctx) error {
	system, err := h.service.GetSystem(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": systemResponse(system)})
}

// ListSystems GET /systems.
func (h *SystemsHandler) ListSystems(c *fiber.Ctx) error {
	filter := repository.SystemFilter{}
	filter.BranchID = optionalQuery(c, "branch_id")
	for _, part := range splitCSV(c.Query("type")) {
		filter.Types = append(filter.Types, domain.SystemType(part))
	}
	for _, part := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.SystemStatus(part))
	}
	filter.Limit, filter.Offset = pagination(c)

	systems, err := h.service.ListSystems(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.SystemResponse, 0, len(systems))
	for i := range systems {
		items = append(items, systemResponse(&systems[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteSystem DELETE /systems/:id.
func (h *SystemsHandler) DeleteSystem(c *fiber.Ctx) error {
	if err := h.service.DeleteSystem(c.Context(), auth.ActorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func systemFromRequest(req *dto.SystemRequest) *domain.MonitoredSystem {
	return &domain.MonitoredSystem{
		Name:           req.Name,
		Type:           req.Type,
		BranchID:       req.BranchID,
		IPAddress:      req.IPAddress,
		Hostname:       req.Hostname,
		Status:         req.Status,
		CPUUsage:       req.CPUUsage,
		MemoryUsage:    req.MemoryUsage,
		DiskUsage:      req.DiskUsage,
		NetworkLatency: req.NetworkLatency,
		UptimeHours:    req.UptimeHours,
		Notes:          req.Notes,
		Monitored:      req.Monitored,
	}
}

func systemResponse(system *domain.MonitoredSystem) dto.SystemResponse {
	return dto.SystemResponse{
		ID:             system.ID,
		Name:           system.Name,
		Type:           system.Type,
		BranchID:       system.BranchID,
		IPAddress:      system.IPAddress,
		Hostname:       system.Hostname,
		Status:         system.Status,
		CPUUsage:       system.CPUUsage,
		MemoryUsage:    system.MemoryUsage,
		DiskUsage:      system.DiskUsage,
		NetworkLatency: system.NetworkLatency,
		UptimeHours:    system.UptimeHours,
		LastCheck:      system.LastCheck,
		Notes:          system.Notes,
		Monitored:      system.Monitored,
		CreatedAt:      system.CreatedAt,
		UpdatedAt:      system.UpdatedAt,
	}
}
