package domain

import "time"

// BranchType enumerates branch classifications.
type BranchType string

const (
	BranchTypeMain   BranchType = "MAIN"
	BranchTypeSub    BranchType = "SUB"
	BranchTypeAgency BranchType = "AGENCY"
	BranchTypeHQ     BranchType = "HQ"
)

// BranchStatus enumerates operational states for a branch.
type BranchStatus string

const (
	BranchStatusActive      BranchStatus = "ACTIVE"
	BranchStatusInactive    BranchStatus = "INACTIVE"
	BranchStatusMaintenance BranchStatus = "MAINTENANCE"
)

// Branch is a physical bank branch location.
type Branch struct {
	ID          string
	Code        string
	Name        string
	Type        BranchType
	Status      BranchStatus
	Region      string
	City        string
	Address     string
	PhoneNumber string
	Email       string
	ManagerName *string
	OpeningDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
