package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/api/dto"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/service"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BranchID == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("branch_id, title, description required", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), auth.ActorFromContext(c), service.TicketCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		BranchID:      req.BranchID,
		ATMID:         req.ATMID,
		POSTerminalID: req.POSTerminalID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	input := parseTicketQuery(c)
	tickets, err := h.service.ListTickets(c.Context(), auth.ActorFromContext(c), input)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, comments, err := h.service.GetTicket(c.Context(), auth.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, comments)})
}

// GetByNumber GET /tickets/number/:number.
func (h *TicketsHandler) GetByNumber(c *fiber.Ctx) error {
	ticket, comments, err := h.service.GetTicketByNumber(c.Context(), auth.ActorFromContext(c), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, comments)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.Context(), auth.ActorFromContext(c), c.Params("id"), req.Status, req.ResolutionNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AssignTicket PATCH /tickets/:id/assignee.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AssignTicket(c.Context(), auth.ActorFromContext(c), c.Params("id"), req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.Context(), auth.ActorFromContext(c), c.Params("id"), req.Body, req.Internal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListInput {
	input := service.TicketListInput{}
	for _, part := range splitCSV(c.Query("status")) {
		input.Statuses = append(input.Statuses, domain.TicketStatus(part))
	}
	for _, part := range splitCSV(c.Query("priority")) {
		input.Priorities = append(input.Priorities, domain.TicketPriority(part))
	}
	for _, part := range splitCSV(c.Query("category")) {
		input.Categories = append(input.Categories, domain.TicketCategory(part))
	}
	input.BranchID = optionalQuery(c, "branch_id")
	input.AssignedTo = optionalQuery(c, "assigned_to")
	input.SearchTerm = optionalQuery(c, "search")
	input.CreatedFrom = parseTime(c.Query("created_from"))
	input.CreatedTo = parseTime(c.Query("created_to"))
	input.Limit, input.Offset = pagination(c)
	return input
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Title:        ticket.Title,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		BranchID:     ticket.BranchID,
		AssignedTo:   ticket.AssignedTo,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, comments []domain.TicketComment) dto.TicketDetailResponse {
	items := make([]dto.TicketCommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}

	var resolutionSeconds *float64
	if ticket.ResolutionTime != nil {
		seconds := ticket.ResolutionTime.Seconds()
		resolutionSeconds = &seconds
	}

	return dto.TicketDetailResponse{
		ID:                    ticket.ID,
		TicketNumber:          ticket.TicketNumber,
		Title:                 ticket.Title,
		Description:           ticket.Description,
		Category:              ticket.Category,
		Priority:              ticket.Priority,
		Status:                ticket.Status,
		BranchID:              ticket.BranchID,
		CreatedBy:             ticket.CreatedBy,
		AssignedTo:            ticket.AssignedTo,
		ATMID:                 ticket.ATMID,
		POSTerminalID:         ticket.POSTerminalID,
		ResolutionNotes:       ticket.ResolutionNotes,
		ResolutionTimeSeconds: resolutionSeconds,
		ResolvedAt:            ticket.ResolvedAt,
		ClosedAt:              ticket.ClosedAt,
		CreatedAt:             ticket.CreatedAt,
		UpdatedAt:             ticket.UpdatedAt,
		Comments:              items,
	}
}

func commentResponse(comment *domain.TicketComment) dto.TicketCommentResponse {
	return dto.TicketCommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		Internal:  comment.Internal,
		CreatedAt: comment.CreatedAt,
	}
}
