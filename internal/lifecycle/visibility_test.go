package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/biomss/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleTickets() []domain.Ticket {
	return []domain.Ticket{
		{ID: "t1", BranchID: "branch-accra", AssignedTo: strPtr("tech-1")},
		{ID: "t2", BranchID: "branch-accra"},
		{ID: "t3", BranchID: "branch-kumasi", AssignedTo: strPtr("tech-2")},
		{ID: "t4", BranchID: "branch-kumasi"},
	}
}

func visibleTickets(scope TicketScope, tickets []domain.Ticket) []string {
	var ids []string
	for i := range tickets {
		if scope.Allows(&tickets[i]) {
			ids = append(ids, tickets[i].ID)
		}
	}
	return ids
}

func TestBranchManagerSeesOwnBranchOnly(t *testing.T) {
	actor := domain.Actor{ID: "mgr-1", Role: domain.RoleBranchManager, BranchID: strPtr("branch-accra")}
	scope := TicketVisibility(actor)
	assert.Equal(t, []string{"t1", "t2"}, visibleTickets(scope, sampleTickets()))
}

func TestBranchManagerWithoutBranchSeesNothing(t *testing.T) {
	actor := domain.Actor{ID: "mgr-2", Role: domain.RoleBranchManager}
	scope := TicketVisibility(actor)
	require.True(t, scope.None)
	assert.Empty(t, visibleTickets(scope, sampleTickets()))
}

func TestTechnicianSeesAssignedOrUnassigned(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleITOfficer, domain.RoleSupportTech} {
		actor := domain.Actor{ID: "tech-1", Role: role}
		scope := TicketVisibility(actor)
		assert.Equal(t, []string{"t1", "t2", "t4"}, visibleTickets(scope, sampleTickets()), "role %s", role)
	}
}

func TestAdminSeesFullCollection(t *testing.T) {
	actor := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	scope := TicketVisibility(actor)
	require.True(t, scope.All)
	assert.Len(t, visibleTickets(scope, sampleTickets()), 4)
}

func TestUnlistedRolesAreUnfiltered(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSecurityOfficer, domain.RoleViewer} {
		scope := TicketVisibility(domain.Actor{ID: "u", Role: role})
		assert.True(t, scope.All, "role %s", role)
	}
}

func TestAbsentRoleSeesNothing(t *testing.T) {
	scope := TicketVisibility(domain.Actor{ID: "ghost"})
	require.True(t, scope.None)
	assert.Empty(t, visibleTickets(scope, sampleTickets()))
}

func TestAlertVisibilityBranchScoped(t *testing.T) {
	alerts := []domain.Alert{
		{ID: "a1", BranchID: strPtr("branch-accra")},
		{ID: "a2", BranchID: strPtr("branch-kumasi")},
		{ID: "a3"},
	}

	mgr := AlertVisibility(domain.Actor{ID: "mgr", Role: domain.RoleBranchManager, BranchID: strPtr("branch-accra")})
	assert.True(t, mgr.Allows(&alerts[0]))
	assert.False(t, mgr.Allows(&alerts[1]))
	assert.False(t, mgr.Allows(&alerts[2]))

	admin := AlertVisibility(domain.Actor{ID: "admin", Role: domain.RoleAdmin})
	assert.True(t, admin.All)

	ghost := AlertVisibility(domain.Actor{ID: "ghost"})
	assert.True(t, ghost.None)
}
