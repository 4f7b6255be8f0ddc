package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// GenerateReportRequest payload.
type GenerateReportRequest struct {
	Type        domain.ReportType `json:"type"`
	Title       string            `json:"title"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	BranchID    *string           `json:"branch_id,omitempty"`
}

// ReportResponse response.
type ReportResponse struct {
	ID                   string            `json:"id"`
	Type                 domain.ReportType `json:"type"`
	Title                string            `json:"title"`
	PeriodStart          time.Time         `json:"period_start"`
	PeriodEnd            time.Time         `json:"period_end"`
	BranchID             *string           `json:"branch_id,omitempty"`
	TotalTickets         int               `json:"total_tickets"`
	ResolvedTickets      int               `json:"resolved_tickets"`
	AvgResolutionSeconds *float64          `json:"avg_resolution_seconds,omitempty"`
	ATMUptimePercentage  float64           `json:"atm_uptime_percentage"`
	POSUptimePercentage  float64           `json:"pos_uptime_percentage"`
	SecurityIncidents    int               `json:"security_incidents"`
	SystemDowntimeHours  float64           `json:"system_downtime_hours"`
	Data                 map[string]any    `json:"data,omitempty"`
	GeneratedBy          *string           `json:"generated_by,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

// AuditLogResponse response.
type AuditLogResponse struct {
	ID          string             `json:"id"`
	UserID      *string            `json:"user_id,omitempty"`
	Action      domain.AuditAction `json:"action"`
	EntityType  string             `json:"entity_type"`
	EntityID    *string            `json:"entity_id,omitempty"`
	Description string             `json:"description"`
	IPAddress   *string            `json:"ip_address,omitempty"`
	Changes     map[string]any     `json:"changes,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}
