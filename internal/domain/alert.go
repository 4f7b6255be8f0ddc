package domain

import "time"

// AlertType enumerates conditions that raise alerts.
type AlertType string

const (
	AlertTypeATMDown        AlertType = "ATM_DOWN"
	AlertTypeATMCashLow     AlertType = "ATM_CASH_LOW"
	AlertTypePOSOffline     AlertType = "POS_OFFLINE"
	AlertTypeNetworkDown    AlertType = "NETWORK_DOWN"
	AlertTypeSecurityThreat AlertType = "SECURITY_THREAT"
	AlertTypeSystemFailure  AlertType = "SYSTEM_FAILURE"
	AlertTypeMaintenanceDue AlertType = "MAINTENANCE_DUE"
	AlertTypeOther          AlertType = "OTHER"
)

// AlertStatus enumerates alert lifecycle states.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "ACTIVE"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
	AlertStatusDismissed    AlertStatus = "DISMISSED"
)

// Alert flags a condition requiring operator attention. AcknowledgedBy and
// AcknowledgedAt are set exactly once, on the first transition into
// ACKNOWLEDGED.
type Alert struct {
	ID              string
	Type            AlertType
	Title           string
	Message         string
	Status          AlertStatus
	BranchID        *string
	ATMID           *string
	POSTerminalID   *string
	SecurityEventID *string
	AcknowledgedBy  *string
	AcknowledgedAt  *time.Time
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
