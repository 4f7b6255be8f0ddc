package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// ATMRequest payload for create and update.
type ATMRequest struct {
	Code                string           `json:"code"`
	BranchID            string           `json:"branch_id"`
	LocationDescription string           `json:"location_description"`
	Model               string           `json:"model"`
	Manufacturer        string           `json:"manufacturer"`
	SerialNumber        string           `json:"serial_number"`
	IPAddress           string           `json:"ip_address"`
	Status              domain.ATMStatus `json:"status"`
	CashLevel           int64            `json:"cash_level"`
	MaxCashCapacity     int64            `json:"max_cash_capacity"`
	LastReplenishment   *time.Time       `json:"last_replenishment,omitempty"`
	LastMaintenanceDate *time.Time       `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time       `json:"next_maintenance_date,omitempty"`
	InstallationDate    time.Time        `json:"installation_date"`
	Active              bool             `json:"active"`
}

// ATMResponse response.
type ATMResponse struct {
	ID                  string           `json:"id"`
	Code                string           `json:"code"`
	BranchID            string           `json:"branch_id"`
	LocationDescription string           `json:"location_description"`
	Model               string           `json:"model"`
	Manufacturer        string           `json:"manufacturer"`
	SerialNumber        string           `json:"serial_number"`
	IPAddress           string           `json:"ip_address"`
	Status              domain.ATMStatus `json:"status"`
	CashLevel           int64            `json:"cash_level"`
	MaxCashCapacity     int64            `json:"max_cash_capacity"`
	CashPercentage      float64          `json:"cash_percentage"`
	LastReplenishment   *time.Time       `json:"last_replenishment,omitempty"`
	LastMaintenanceDate *time.Time       `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time       `json:"next_maintenance_date,omitempty"`
	InstallationDate    time.Time        `json:"installation_date"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// POSTerminalRequest payload for create and update.
type POSTerminalRequest struct {
	TerminalID          string           `json:"terminal_id"`
	MerchantName        string           `json:"merchant_name"`
	MerchantCode        string           `json:"merchant_code"`
	BranchID            *string          `json:"branch_id,omitempty"`
	Location            string           `json:"location"`
	Model               string           `json:"model"`
	SerialNumber        string           `json:"serial_number"`
	Status              domain.POSStatus `json:"status"`
	LastTransactionAt   *time.Time       `json:"last_transaction_at,omitempty"`
	DeploymentDate      time.Time        `json:"deployment_date"`
	LastMaintenanceDate *time.Time       `json:"last_maintenance_date,omitempty"`
	Active              bool             `json:"active"`
}

// POSTerminalResponse response.
type POSTerminalResponse struct {
	ID                  string           `json:"id"`
	TerminalID          string           `json:"terminal_id"`
	MerchantName        string           `json:"merchant_name"`
	MerchantCode        string           `json:"merchant_code"`
	BranchID            *string          `json:"branch_id,omitempty"`
	Location            string           `json:"location"`
	Model               string           `json:"model"`
	SerialNumber        string           `json:"serial_number"`
	Status              domain.POSStatus `json:"status"`
	LastTransactionAt   *time.Time       `json:"last_transaction_at,omitempty"`
	DeploymentDate      time.Time        `json:"deployment_date"`
	LastMaintenanceDate *time.Time       `json:"last_maintenance_date,omitempty"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// SystemRequest payload for create and update.
type SystemRequest struct {
	Name           string              `json:"name"`
	Type           domain.SystemType   `json:"type"`
	BranchID       *string             `json:"branch_id,omitempty"`
	IPAddress      *string             `json:"ip_address,omitempty"`
	Hostname       *string             `json:"hostname,omitempty"`
	Status         domain.SystemStatus `json:"status"`
	CPUUsage       *float64            `json:"cpu_usage,omitempty"`
	MemoryUsage    *float64            `json:"memory_usage,omitempty"`
	DiskUsage      *float64            `json:"disk_usage,omitempty"`
	NetworkLatency *int                `json:"network_latency,omitempty"`
	UptimeHours    float64             `json:"uptime_hours"`
	Notes          *string             `json:"notes,omitempty"`
	Monitored      bool                `json:"monitored"`
}

// SystemResponse response.
type SystemResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Type           domain.SystemType   `json:"type"`
	BranchID       *string             `json:"branch_id,omitempty"`
	IPAddress      *string             `json:"ip_address,omitempty"`
	Hostname       *string             `json:"hostname,omitempty"`
	Status         domain.SystemStatus `json:"status"`
	CPUUsage       *float64            `json:"cpu_usage,omitempty"`
	MemoryUsage    *float64            `json:"memory_usage,omitempty"`
	DiskUsage      *float64            `json:"disk_usage,omitempty"`
	NetworkLatency *int                `json:"network_latency,omitempty"`
	UptimeHours    float64             `json:"uptime_hours"`
	LastCheck      time.Time           `json:"last_check"`
	Notes          *string             `json:"notes,omitempty"`
	Monitored      bool                `json:"monitored"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
