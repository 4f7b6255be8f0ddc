package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// ReportService generates and stores periodic performance reports.
type ReportService struct {
	reports        repository.ReportRepository
	atms           repository.ATMRepository
	terminals      repository.POSRepository
	systems        repository.SystemRepository
	securityEvents repository.SecurityEventRepository
	dispatcher     events.Dispatcher
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	ReportRepo        repository.ReportRepository
	ATMRepo           repository.ATMRepository
	POSRepo           repository.POSRepository
	SystemRepo        repository.SystemRepository
	SecurityEventRepo repository.SecurityEventRepository
	Dispatcher        events.Dispatcher
}

// ReportInput describes a report generation request.
type ReportInput struct {
	Type        domain.ReportType
	Title       string
	PeriodStart time.Time
	PeriodEnd   time.Time
	BranchID    *string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:        deps.ReportRepo,
		atms:           deps.ATMRepo,
		terminals:      deps.POSRepo,
		systems:        deps.SystemRepo,
		securityEvents: deps.SecurityEventRepo,
		dispatcher:     deps.Dispatcher,
	}
}

// GenerateReport aggregates ticket, device, and security metrics over a
// period and stores the result.
func (s *ReportService) GenerateReport(ctx context.Context, actor domain.Actor, input ReportInput) (*domain.PerformanceReport, error) {
	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, apperrors.NewValidationError("period end must be after period start", nil)
	}
	if input.Type == "" {
		input.Type = domain.ReportTypeCustom
	}
	if input.Title == "" {
		input.Title = fmt.Sprintf("%s report %s to %s",
			input.Type,
			input.PeriodStart.Format("2006-01-02"),
			input.PeriodEnd.Format("2006-01-02"))
	}

	total, resolved, avgResolution, err := s.reports.TicketStatsForPeriod(ctx, input.BranchID, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	atmCounts, err := s.atms.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	posCounts, err := s.terminals.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	systemCounts, err := s.systems.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	openIncidents, err := s.securityEvents.CountOpen(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	generatedBy := actor.ID
	report := &domain.PerformanceReport{
		Type:                  input.Type,
		Title:                 input.Title,
		PeriodStart:           input.PeriodStart,
		PeriodEnd:             input.PeriodEnd,
		BranchID:              input.BranchID,
		TotalTickets:          total,
		ResolvedTickets:       resolved,
		AverageResolutionTime: avgResolution,
		ATMUptimePercentage:   uptimePct(atmCounts[domain.ATMStatusOnline], totalCount(atmCounts)),
		POSUptimePercentage:   uptimePct(posCounts[domain.POSStatusActive], totalCount(posCounts)),
		SecurityIncidents:     int(openIncidents),
		SystemDowntimeHours:   downtimeHours(systemCounts, input.PeriodStart, input.PeriodEnd),
		Data: map[string]any{
			"atm_status_counts":    statusCountsToMap(atmCounts),
			"pos_status_counts":    statusCountsToMap(posCounts),
			"system_status_counts": statusCountsToMap(systemCounts),
		},
		GeneratedBy: &generatedBy,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventReportGenerated,
		EntityType: "report",
		EntityID:   report.ID,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: "report generated: " + report.Title},
	})
	return report, nil
}

// GetReport fetches a stored report.
func (s *ReportService) GetReport(ctx context.Context, id string) (*domain.PerformanceReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// ListReports returns stored reports, optionally filtered by type.
func (s *ReportService) ListReports(ctx context.Context, reportType *domain.ReportType, limit, offset int) ([]domain.PerformanceReport, error) {
	reports, err := s.reports.List(ctx, reportType, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

func uptimePct(healthy, total int64) float64 {
	if total <= 0 {
		return 100
	}
	return float64(healthy) / float64(total) * 100
}

func totalCount[K comparable](counts map[K]int64) int64 {
	var total int64
	for _, count := range counts {
		total += count
	}
	return total
}

// downtimeHours approximates downtime as the period length scaled by the
// fraction of systems currently down.
func downtimeHours(counts map[domain.SystemStatus]int64, from, to time.Time) float64 {
	total := totalCount(counts)
	if total <= 0 {
		return 0
	}
	down := counts[domain.SystemStatusDown]
	periodHours := to.Sub(from).Hours()
	return periodHours * float64(down) / float64(total)
}

func statusCountsToMap[K ~string](counts map[K]int64) map[string]int64 {
	result := make(map[string]int64, len(counts))
	for status, count := range counts {
		result[string(status)] = count
	}
	return result
}
