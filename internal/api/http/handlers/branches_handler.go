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

// BranchesHandler manages branch endpoints.
type BranchesHandler struct {
	service *service.BranchService
}

// NewBranchesHandler constructs handler.
func NewBranchesHandler(branchService *service.BranchService) *BranchesHandler {
	return &BranchesHandler{service: branchService}
}

// CreateBranch POST /branches.
func (h *BranchesHandler) CreateBranch(c *fiber.Ctx) error {
	var req dto.BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	branch, err := h.service.CreateBranch(c.Context(), auth.ActorFromContext(c), branchFromRequest(&req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": branchResponse(branch)})
}

// UpdateBranch PUT /branches/:id.
func (h *BranchesHandler) UpdateBranch(c *fiber.Ctx) error {
	var req dto.BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	branch := branchFromRequest(&req)
	branch.ID = c.Params("id")
	updated, err := h.service.UpdateBranch(c.Context(), auth.ActorFromContext(c), branch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": branchResponse(updated)})
}

// GetBranch GET /branches/:id.
func (h *BranchesHandler) GetBranch(c *fiber.Ctx) error {
	branch, err := h.service.GetBranch(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": branchResponse(branch)})
}

// ListBranches GET /branches.
func (h *BranchesHandler) ListBranches(c *fiber.Ctx) error {
	var status *domain.BranchStatus
	if val := c.Query("status"); val != "" {
		branchStatus := domain.BranchStatus(val)
		status = &branchStatus
	}
	limit, offset := pagination(c)
	branches, err := h.service.ListBranches(c.Context(), status, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		items = append(items, branchResponse(&branches[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteBranch DELETE /branches/:id.
func (h *BranchesHandler) DeleteBranch(c *fiber.Ctx) error {
	if err := h.service.DeleteBranch(c.Context(), auth.ActorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func branchFromRequest(req *dto.BranchRequest) *domain.Branch {
	return &domain.Branch{
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		Status:      req.Status,
		Region:      req.Region,
		City:        req.City,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		ManagerName: req.ManagerName,
		OpeningDate: req.OpeningDate,
	}
}

func branchResponse(branch *domain.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:          branch.ID,
		Code:        branch.Code,
		Name:        branch.Name,
		Type:        branch.Type,
		Status:      branch.Status,
		Region:      branch.Region,
		City:        branch.City,
		Address:     branch.Address,
		PhoneNumber: branch.PhoneNumber,
		Email:       branch.Email,
		ManagerName: branch.ManagerName,
		OpeningDate: branch.OpeningDate,
		CreatedAt:   branch.CreatedAt,
		UpdatedAt:   branch.UpdatedAt,
	}
}
