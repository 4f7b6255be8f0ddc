package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/api/dto"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/service"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// ReportsHandler manages performance report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// GenerateReport POST /reports.
func (h *ReportsHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	report, err := h.service.GenerateReport(c.Context(), auth.ActorFromContext(c), service.ReportInput{
		Type:        req.Type,
		Title:       req.Title,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		BranchID:    req.BranchID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reportResponse(report)})
}

// GetReport GET /reports/:id.
func (h *ReportsHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.service.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// ListReports GET /reports.
func (h *ReportsHandler) ListReports(c *fiber.Ctx) error {
	var reportType *domain.ReportType
	if val := c.Query("type"); val != "" {
		parsed := domain.ReportType(val)
		reportType = &parsed
	}
	limit, offset := pagination(c)
	reports, err := h.service.ListReports(c.Context(), reportType, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, reportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func reportResponse(report *domain.PerformanceReport) dto.ReportResponse {
	var avgSeconds *float64
	if report.AverageResolutionTime != nil {
		seconds := report.AverageResolutionTime.Seconds()
		avgSeconds = &seconds
	}
	return dto.ReportResponse{
		ID:                   report.ID,
		Type:                 report.Type,
		Title:                report.Title,
		PeriodStart:          report.PeriodStart,
		PeriodEnd:            report.PeriodEnd,
		BranchID:             report.BranchID,
		TotalTickets:         report.TotalTickets,
		ResolvedTickets:      report.ResolvedTickets,
		AvgResolutionSeconds: avgSeconds,
		ATMUptimePercentage:  report.ATMUptimePercentage,
		POSUptimePercentage:  report.POSUptimePercentage,
		SecurityIncidents:    report.SecurityIncidents,
		SystemDowntimeHours:  report.SystemDowntimeHours,
		Data:                 report.Data,
		GeneratedBy:          report.GeneratedBy,
		CreatedAt:            report.CreatedAt,
	}
}
