package domain

import "time"

// SystemType enumerates the kinds of monitored infrastructure.
type SystemType string

const (
	SystemTypeServer      SystemType = "SERVER"
	SystemTypeNetwork     SystemType = "NETWORK"
	SystemTypeApplication SystemType = "APPLICATION"
	SystemTypeDatabase    SystemType = "DATABASE"
	SystemTypeFirewall    SystemType = "FIREWALL"
	SystemTypeSwitch      SystemType = "SWITCH"
	SystemTypeRouter      SystemType = "ROUTER"
)

// SystemStatus enumerates health states for monitored systems.
type SystemStatus string

const (
	SystemStatusOperational SystemStatus = "OPERATIONAL"
	SystemStatusWarning     SystemStatus = "WARNING"
	SystemStatusCritical    SystemStatus = "CRITICAL"
	SystemStatusDown        SystemStatus = "DOWN"
	SystemStatusMaintenance SystemStatus = "MAINTENANCE"
)

// MonitoredSystem is a server, network device, or application under watch.
type MonitoredSystem struct {
	ID             string
	Name           string
	Type           SystemType
	BranchID       *string
	IPAddress      *string
	Hostname       *string
	Status         SystemStatus
	CPUUsage       *float64
	MemoryUsage    *float64
	DiskUsage      *float64
	NetworkLatency *int
	UptimeHours    float64
	LastCheck      time.Time
	Notes          *string
	Monitored      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
