package lifecycle

import "github.com/bankops/biomss/internal/domain"

// TicketScope describes the subset of tickets visible to an actor. Exactly
// one of the narrowing fields is set; All and None cover the unrestricted
// and empty cases.
type TicketScope struct {
	All      bool
	None     bool
	BranchID *string
	// AssigneeOrUnassigned matches tickets assigned to this actor or not
	// assigned at all.
	AssigneeOrUnassigned *string
}

// TicketVisibility maps an actor to their ticket scope:
//
//   - BRANCH_MANAGER sees tickets of their own branch
//   - IT_OFFICER and SUPPORT_TECH see tickets assigned to them or unassigned
//   - an absent role sees nothing (most restrictive default)
//   - every other role sees everything
func TicketVisibility(actor domain.Actor) TicketScope {
	switch actor.Role {
	case "":
		return TicketScope{None: true}
	case domain.RoleBranchManager:
		if actor.BranchID == nil {
			return TicketScope{None: true}
		}
		return TicketScope{BranchID: actor.BranchID}
	case domain.RoleITOfficer, domain.RoleSupportTech:
		actorID := actor.ID
		return TicketScope{AssigneeOrUnassigned: &actorID}
	default:
		return TicketScope{All: true}
	}
}

// Allows reports whether a single ticket falls inside the scope. The
// repository applies the same scope as SQL; this predicate backs per-record
// access checks and in-memory filtering.
func (s TicketScope) Allows(ticket *domain.Ticket) bool {
	switch {
	case s.None:
		return false
	case s.All:
		return true
	case s.BranchID != nil:
		return ticket.BranchID == *s.BranchID
	case s.AssigneeOrUnassigned != nil:
		return ticket.AssignedTo == nil || *ticket.AssignedTo == *s.AssigneeOrUnassigned
	}
	return false
}

// AlertScope describes the subset of alerts visible to an actor.
type AlertScope struct {
	All      bool
	None     bool
	BranchID *string
}

// AlertVisibility scopes alerts: branch managers see their branch, an absent
// role sees nothing, everyone else sees all alerts.
func AlertVisibility(actor domain.Actor) AlertScope {
	switch actor.Role {
	case "":
		return AlertScope{None: true}
	case domain.RoleBranchManager:
		if actor.BranchID == nil {
			return AlertScope{None: true}
		}
		return AlertScope{BranchID: actor.BranchID}
	default:
		return AlertScope{All: true}
	}
}

// Allows reports whether a single alert falls inside the scope.
func (s AlertScope) Allows(alert *domain.Alert) bool {
	switch {
	case s.None:
		return false
	case s.All:
		return true
	case s.BranchID != nil:
		return alert.BranchID != nil && *alert.BranchID == *s.BranchID
	}
	return false
}
