package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

func strPtr(s string) *string { return &s }

func testBranch() *domain.Branch {
	return &domain.Branch{
		ID:     "br-1",
		Code:   "BR001",
		Name:   "Main Branch",
		Status: domain.BranchStatusActive,
	}
}

func newTestTicketService(tickets *fakeTicketRepo) (*TicketService, *fakeCommentRepo) {
	comments := &fakeCommentRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		CommentRepo: comments,
		BranchRepo:  newFakeBranchRepo(testBranch()),
		UserRepo: newFakeUserRepo(&domain.User{
			ID:       "usr-tech",
			Username: "tech",
			Role:     domain.RoleSupportTech,
			Active:   true,
		}),
	})
	return svc, comments
}

func TestCreateTicketConcurrentNumbersAreDistinct(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	actor := domain.Actor{ID: "usr-1", Role: domain.RoleAdmin}

	const n = 100
	numbers := make(chan string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticket, err := svc.CreateTicket(context.Background(), actor, TicketCreateInput{
				Title:       fmt.Sprintf("printer jam %d", i),
				Description: "paper tray 2",
				BranchID:    "br-1",
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- ticket.TicketNumber
		}(i)
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[string]bool, n)
	for number := range numbers {
		assert.Regexp(t, `^TKT-\d{6}$`, number)
		assert.False(t, seen[number], "duplicate ticket number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["TKT-000001"])
	assert.True(t, seen[fmt.Sprintf("TKT-%06d", n)])
}

func TestCreateTicketDefaultsAndValidation(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	actor := domain.Actor{ID: "usr-1", Role: domain.RoleBranchManager, BranchID: strPtr("br-1")}

	ticket, err := svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		Title:       "  ATM screen frozen  ",
		Description: "lobby ATM unresponsive",
		BranchID:    "br-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ATM screen frozen", ticket.Title)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, domain.TicketCategoryOther, ticket.Category)
	require.NotNil(t, ticket.CreatedBy)
	assert.Equal(t, "usr-1", *ticket.CreatedBy)

	_, err = svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		Title:    "no such branch",
		BranchID: "br-missing",
	})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCreateTicketSequenceConflictIsTransient(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.createErr = fmt.Errorf("%w: giving up", repository.ErrSequenceConflict)
	svc, _ := newTestTicketService(tickets)
	actor := domain.Actor{ID: "usr-1", Role: domain.RoleAdmin}

	_, err := svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		Title:    "card reader fault",
		BranchID: "br-1",
	})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CREATE_FAILED", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestUpdateStatusResolvedIsIdempotent(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	actor := domain.Actor{ID: "usr-1", Role: domain.RoleAdmin}

	created, err := svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		Title:    "VPN outage",
		BranchID: "br-1",
	})
	require.NoError(t, err)

	resolved, err := svc.UpdateStatus(context.Background(), actor, created.ID, domain.TicketStatusResolved, strPtr("rebooted edge router"))
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.ResolutionTime)
	firstResolvedAt := *resolved.ResolvedAt
	firstDuration := *resolved.ResolutionTime

	again, err := svc.UpdateStatus(context.Background(), actor, created.ID, domain.TicketStatusResolved, nil)
	require.NoError(t, err)
	assert.Equal(t, firstResolvedAt, *again.ResolvedAt)
	assert.Equal(t, firstDuration, *again.ResolutionTime)

	closed, err := svc.UpdateStatus(context.Background(), actor, created.ID, domain.TicketStatusClosed, nil)
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, firstResolvedAt, *closed.ResolvedAt)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	actor := domain.Actor{ID: "usr-1", Role: domain.RoleAdmin}

	created, err := svc.CreateTicket(context.Background(), actor, TicketCreateInput{
		Title:    "teller workstation slow",
		BranchID: "br-1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), actor, created.ID, domain.TicketStatus("ARCHIVED"), nil)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestListTicketsHonorsRoleScope(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	seed := []struct {
		branch   string
		assignee *string
	}{
		{"br-1", nil},
		{"br-1", strPtr("usr-tech")},
		{"br-2", strPtr("usr-other")},
	}
	for i, s := range seed {
		ticket := &domain.Ticket{
			Title:      fmt.Sprintf("incident %d", i),
			Status:     domain.TicketStatusOpen,
			BranchID:   s.branch,
			AssignedTo: s.assignee,
		}
		require.NoError(t, tickets.Create(context.Background(), ticket))
	}

	all, err := svc.ListTickets(context.Background(), admin, TicketListInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	manager := domain.Actor{ID: "usr-mgr", Role: domain.RoleBranchManager, BranchID: strPtr("br-1")}
	own, err := svc.ListTickets(context.Background(), manager, TicketListInput{})
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, ticket := range own {
		assert.Equal(t, "br-1", ticket.BranchID)
	}

	tech := domain.Actor{ID: "usr-tech", Role: domain.RoleSupportTech}
	mine, err := svc.ListTickets(context.Background(), tech, TicketListInput{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, ticket := range mine {
		if ticket.AssignedTo != nil {
			assert.Equal(t, "usr-tech", *ticket.AssignedTo)
		}
	}

	nobody, err := svc.ListTickets(context.Background(), domain.Actor{ID: "usr-x"}, TicketListInput{})
	require.NoError(t, err)
	assert.Empty(t, nobody)
}

func TestGetTicketOutsideScopeIsForbidden(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	created, err := svc.CreateTicket(context.Background(), admin, TicketCreateInput{
		Title:    "safe room camera offline",
		BranchID: "br-1",
	})
	require.NoError(t, err)

	otherManager := domain.Actor{ID: "usr-mgr2", Role: domain.RoleBranchManager, BranchID: strPtr("br-2")}
	_, _, err = svc.GetTicket(context.Background(), otherManager, created.ID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestAddCommentInternalRequiresITStaff(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, comments := newTestTicketService(tickets)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	created, err := svc.CreateTicket(context.Background(), admin, TicketCreateInput{
		Title:    "receipt printer out of ribbon",
		BranchID: "br-1",
	})
	require.NoError(t, err)

	manager := domain.Actor{ID: "usr-mgr", Role: domain.RoleBranchManager, BranchID: strPtr("br-1")}
	_, err = svc.AddComment(context.Background(), manager, created.ID, "escalating to HQ", true)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	tech := domain.Actor{ID: "usr-tech", Role: domain.RoleSupportTech}
	_, err = svc.AddComment(context.Background(), tech, created.ID, "replaced ribbon cartridge", true)
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), tech, created.ID, "ribbon replaced, please verify", false)
	require.NoError(t, err)

	visible, err := comments.ListByTicket(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	_, ticketComments, err := svc.GetTicket(context.Background(), manager, created.ID)
	require.NoError(t, err)
	assert.Len(t, ticketComments, 1)
}

func TestGetTicketByNumber(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	created, err := svc.CreateTicket(context.Background(), admin, TicketCreateInput{
		Title:    "signature pad not responding",
		BranchID: "br-1",
	})
	require.NoError(t, err)

	found, _, err := svc.GetTicketByNumber(context.Background(), admin, created.TicketNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// lookup normalizes case and whitespace
	found, _, err = svc.GetTicketByNumber(context.Background(), admin, "  tkt-000001 ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, _, err = svc.GetTicketByNumber(context.Background(), admin, "not-a-number")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, _, err = svc.GetTicketByNumber(context.Background(), admin, "TKT-999999")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	otherManager := domain.Actor{ID: "usr-mgr2", Role: domain.RoleBranchManager, BranchID: strPtr("br-2")}
	_, _, err = svc.GetTicketByNumber(context.Background(), otherManager, created.TicketNumber)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestAssignTicketValidatesAssignee(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc, _ := newTestTicketService(tickets)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	created, err := svc.CreateTicket(context.Background(), admin, TicketCreateInput{
		Title:    "POS terminal rebooting in loop",
		BranchID: "br-1",
	})
	require.NoError(t, err)

	assigned, err := svc.AssignTicket(context.Background(), admin, created.ID, strPtr("usr-tech"))
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, "usr-tech", *assigned.AssignedTo)

	_, err = svc.AssignTicket(context.Background(), admin, created.ID, strPtr("usr-ghost"))
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	unassigned, err := svc.AssignTicket(context.Background(), admin, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, unassigned.AssignedTo)
}
