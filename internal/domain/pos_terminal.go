package domain

import "time"

// POSStatus enumerates operational states for POS terminals.
type POSStatus string

const (
	POSStatusActive      POSStatus = "ACTIVE"
	POSStatusInactive    POSStatus = "INACTIVE"
	POSStatusFaulty      POSStatus = "FAULTY"
	POSStatusMaintenance POSStatus = "MAINTENANCE"
)

// POSTerminal is a point-of-sale device deployed at a merchant location.
type POSTerminal struct {
	ID                  string
	TerminalID          string
	MerchantName        string
	MerchantCode        string
	BranchID            *string
	Location            string
	Model               string
	SerialNumber        string
	Status              POSStatus
	LastTransactionAt   *time.Time
	DeploymentDate      time.Time
	LastMaintenanceDate *time.Time
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
