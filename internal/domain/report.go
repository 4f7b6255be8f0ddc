package domain

import "time"

// ReportType enumerates reporting periods.
type ReportType string

const (
	ReportTypeDaily     ReportType = "DAILY"
	ReportTypeWeekly    ReportType = "WEEKLY"
	ReportTypeMonthly   ReportType = "MONTHLY"
	ReportTypeQuarterly ReportType = "QUARTERLY"
	ReportTypeAnnual    ReportType = "ANNUAL"
	ReportTypeCustom    ReportType = "CUSTOM"
)

// PerformanceReport is a stored periodic roll-up of operational metrics.
type PerformanceReport struct {
	ID                    string
	Type                  ReportType
	Title                 string
	PeriodStart           time.Time
	PeriodEnd             time.Time
	BranchID              *string
	TotalTickets          int
	ResolvedTickets       int
	AverageResolutionTime *time.Duration
	ATMUptimePercentage   float64
	POSUptimePercentage   float64
	SecurityIncidents     int
	SystemDowntimeHours   float64
	Data                  map[string]any
	GeneratedBy           *string
	CreatedAt             time.Time
}
