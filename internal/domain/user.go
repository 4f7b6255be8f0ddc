package domain

import "time"

// Role enumerates bank staff roles used for authorization decisions.
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleITOfficer       Role = "IT_OFFICER"
	RoleSupportTech     Role = "SUPPORT_TECH"
	RoleBranchManager   Role = "BRANCH_MANAGER"
	RoleSecurityOfficer Role = "SECURITY_OFFICER"
	RoleViewer          Role = "VIEWER"
)

// ValidRole reports whether the given role is a known member of the enum.
func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleITOfficer, RoleSupportTech, RoleBranchManager, RoleSecurityOfficer, RoleViewer:
		return true
	}
	return false
}

// User is an authenticated bank staff member.
type User struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	PhoneNumber  *string
	Department   *string
	BranchID     *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor carries the identity and role of the caller performing a mutation.
// The identity provider is trusted; no verification happens downstream.
type Actor struct {
	ID       string
	Role     Role
	BranchID *string
}

// ActorFromUser builds the actor view of a loaded user record.
func ActorFromUser(user *User) Actor {
	if user == nil {
		return Actor{}
	}
	return Actor{ID: user.ID, Role: user.Role, BranchID: user.BranchID}
}
