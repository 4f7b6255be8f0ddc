package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/lifecycle"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// TicketService coordinates support ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	branches   repository.BranchRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	BranchRepo  repository.BranchRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title         string
	Description   string
	Category      domain.TicketCategory
	Priority      domain.TicketPriority
	BranchID      string
	ATMID         *string
	POSTerminalID *string
}

// TicketListInput describes listing filters on top of the caller's scope.
type TicketListInput struct {
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	Categories  []domain.TicketCategory
	BranchID    *string
	AssignedTo  *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		branches:   deps.BranchRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket opens a new ticket. The sequence number is assigned by the
// repository inside the creation transaction; a persistent number conflict
// surfaces as a transient CREATE_FAILED.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	branch, err := s.branches.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if branch.Status == domain.BranchStatusInactive {
		return nil, apperrors.NewValidationError("branch is inactive", nil)
	}

	createdBy := actor.ID
	ticket := &domain.Ticket{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        domain.TicketStatusOpen,
		BranchID:      input.BranchID,
		CreatedBy:     &createdBy,
		ATMID:         input.ATMID,
		POSTerminalID: input.POSTerminalID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Category == "" {
		ticket.Category = domain.TicketCategoryOther
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrSequenceConflict) {
			return nil, apperrors.NewCreateFailed("ticket", err)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventTicketCreated,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Actor:      actor,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			BranchID:     ticket.BranchID,
			Category:     ticket.Category,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the actor, narrowed by filters.
func (s *TicketService) ListTickets(ctx context.Context, actor domain.Actor, input TicketListInput) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		Scope:       lifecycle.TicketVisibility(actor),
		BranchID:    input.BranchID,
		AssignedTo:  input.AssignedTo,
		Statuses:    input.Statuses,
		Priorities:  input.Priorities,
		Categories:  input.Categories,
		SearchTerm:  input.SearchTerm,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Limit:       input.Limit,
		Offset:      input.Offset,
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a ticket with its comments, enforcing visibility.
// Internal comments are stripped for roles outside the IT staff set.
func (s *TicketService) GetTicket(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, []domain.TicketComment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !lifecycle.TicketVisibility(actor).Allows(ticket) {
		return nil, nil, apperrors.NewForbidden("ticket not visible to caller")
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID, canSeeInternalComments(actor.Role))
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, comments, nil
}

// GetTicketByNumber fetches a ticket by its human-readable number, with the
// same visibility and comment handling as GetTicket.
func (s *TicketService) GetTicketByNumber(ctx context.Context, actor domain.Actor, number string) (*domain.Ticket, []domain.TicketComment, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if _, err := lifecycle.ParseTicketNumber(number); err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error(), map[string]any{"ticket_number": number})
	}

	ticket, err := s.tickets.GetByNumber(ctx, number)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !lifecycle.TicketVisibility(actor).Allows(ticket) {
		return nil, nil, apperrors.NewForbidden("ticket not visible to caller")
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID, canSeeInternalComments(actor.Role))
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, comments, nil
}

// UpdateStatus transitions a ticket, applying the timestamp side effects
// atomically with the status change.
func (s *TicketService) UpdateStatus(ctx context.Context, actor domain.Actor, ticketID string, next domain.TicketStatus, resolutionNotes *string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !lifecycle.TicketVisibility(actor).Allows(ticket) {
		return nil, apperrors.NewForbidden("ticket not visible to caller")
	}

	assignments, err := lifecycle.TicketTransition(ticket, next, time.Now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"status": next})
	}

	oldStatus := ticket.Status
	assignments.Apply(ticket, next)
	if resolutionNotes != nil {
		ticket.ResolutionNotes = resolutionNotes
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventTicketStatusChanged,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Actor:      actor,
		Payload: events.StatusChangedPayload{
			OldStatus: string(oldStatus),
			NewStatus: string(next),
		},
	})
	return ticket, nil
}

// AssignTicket sets or clears the assignee.
func (s *TicketService) AssignTicket(ctx context.Context, actor domain.Actor, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !lifecycle.TicketVisibility(actor).Allows(ticket) {
		return nil, apperrors.NewForbidden("ticket not visible to caller")
	}
	if assigneeID != nil {
		assignee, err := s.users.GetByID(ctx, *assigneeID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !assignee.Active {
			return nil, apperrors.NewValidationError("assignee is not an active staff member", nil)
		}
	}

	ticket.AssignedTo = assigneeID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventTicketAssigned,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Actor:      actor,
		Payload:    events.TicketAssignedPayload{AssignedTo: assigneeID},
	})
	return ticket, nil
}

// AddComment appends a comment to a ticket. Internal comments require an IT
// staff role.
func (s *TicketService) AddComment(ctx context.Context, actor domain.Actor, ticketID, body string, internal bool) (*domain.TicketComment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !lifecycle.TicketVisibility(actor).Allows(ticket) {
		return nil, apperrors.NewForbidden("ticket not visible to caller")
	}
	if internal && !canSeeInternalComments(actor.Role) {
		return nil, apperrors.NewForbidden("internal comments require an IT staff role")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment body required", nil)
	}

	authorID := actor.ID
	comment := &domain.TicketComment{
		TicketID: ticket.ID,
		UserID:   &authorID,
		Body:     body,
		Internal: internal,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventTicketCommentAdded,
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Actor:      actor,
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			Internal:    comment.Internal,
			BodyPreview: stringPreview(comment.Body, 120),
		},
	})
	return comment, nil
}

func canSeeInternalComments(role domain.Role) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleITOfficer, domain.RoleSupportTech, domain.RoleSecurityOfficer:
		return true
	}
	return false
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, event)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
