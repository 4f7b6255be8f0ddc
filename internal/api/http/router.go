package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/api/http/handlers"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Alerts         *handlers.AlertsHandler
	SecurityEvents *handlers.SecurityEventsHandler
	Branches       *handlers.BranchesHandler
	ATMs           *handlers.ATMsHandler
	POS            *handlers.POSHandler
	Systems        *handlers.SystemsHandler
	Audit          *handlers.AuditHandler
	Reports        *handlers.ReportsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	api.Get("/auth/me", cfg.Auth.Me)
	api.Post("/auth/password/change", cfg.Auth.ChangePassword)

	users := api.Group("/users", auth.RequireAdmin())
	users.Post("", cfg.Auth.CreateUser)
	users.Get("", cfg.Auth.ListUsers)
	users.Get("/:id", cfg.Auth.GetUser)
	users.Patch("/:id/active", cfg.Auth.SetUserActive)

	tickets := api.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/number/:number", cfg.Tickets.GetByNumber)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/assignee", auth.RequireITStaff(), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)

	alerts := api.Group("/alerts")
	alerts.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleITOfficer, domain.RoleSupportTech, domain.RoleSecurityOfficer), cfg.Alerts.CreateAlert)
	alerts.Get("", cfg.Alerts.ListAlerts)
	alerts.Get("/:id", cfg.Alerts.GetAlert)
	alerts.Patch("/:id/status", cfg.Alerts.UpdateStatus)
	alerts.Post("/:id/acknowledge", cfg.Alerts.Acknowledge)

	securityEvents := api.Group("/security-events", auth.RequireRole(domain.RoleAdmin, domain.RoleSecurityOfficer))
	securityEvents.Post("", cfg.SecurityEvents.CreateEvent)
	securityEvents.Get("", cfg.SecurityEvents.ListEvents)
	securityEvents.Get("/:id", cfg.SecurityEvents.GetEvent)
	securityEvents.Patch("/:id/status", cfg.SecurityEvents.UpdateStatus)

	branches := api.Group("/branches")
	branches.Get("", cfg.Branches.ListBranches)
	branches.Get("/:id", cfg.Branches.GetBranch)
	branches.Post("", auth.RequireAdmin(), cfg.Branches.CreateBranch)
	branches.Put("/:id", auth.RequireAdmin(), cfg.Branches.UpdateBranch)
	branches.Delete("/:id", auth.RequireAdmin(), cfg.Branches.DeleteBranch)

	atms := api.Group("/atms")
	atms.Get("", cfg.ATMs.ListATMs)
	atms.Get("/:id", cfg.ATMs.GetATM)
	atms.Post("", auth.RequireITStaff(), cfg.ATMs.CreateATM)
	atms.Put("/:id", auth.RequireITStaff(), cfg.ATMs.UpdateATM)
	atms.Delete("/:id", auth.RequireAdmin(), cfg.ATMs.DeleteATM)

	pos := api.Group("/pos-terminals")
	pos.Get("", cfg.POS.ListTerminals)
	pos.Get("/:id", cfg.POS.GetTerminal)
	pos.Post("", auth.RequireITStaff(), cfg.POS.CreateTerminal)
	pos.Put("/:id", auth.RequireITStaff(), cfg.POS.UpdateTerminal)
	pos.Delete("/:id", auth.RequireAdmin(), cfg.POS.DeleteTerminal)

	systems := api.Group("/systems")
	systems.Get("", cfg.Systems.ListSystems)
	systems.Get("/:id", cfg.Systems.GetSystem)
	systems.Post("", auth.RequireITStaff(), cfg.Systems.CreateSystem)
	systems.Put("/:id", auth.RequireITStaff(), cfg.Systems.UpdateSystem)
	systems.Delete("/:id", auth.RequireAdmin(), cfg.Systems.DeleteSystem)

	api.Get("/audit-logs", auth.RequireRole(domain.RoleAdmin, domain.RoleSecurityOfficer), cfg.Audit.ListEntries)

	reports := api.Group("/reports")
	reports.Get("", cfg.Reports.ListReports)
	reports.Get("/:id", cfg.Reports.GetReport)
	reports.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleITOfficer), cfg.Reports.GenerateReport)

	api.Get("/dashboard", cfg.Dashboard.Summary)
}
