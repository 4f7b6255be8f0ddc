package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bankops/biomss/internal/api/http/handlers"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/observability"
	"github.com/bankops/biomss/internal/repository"
	"github.com/bankops/biomss/internal/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
func (s *stubUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) List(context.Context, int, int) ([]domain.User, error) { return nil, nil }

type stubATMRepo struct{}

func (stubATMRepo) Create(context.Context, *domain.ATM) error { return nil }
func (stubATMRepo) Update(context.Context, *domain.ATM) error { return nil }
func (stubATMRepo) Delete(context.Context, string) error      { return nil }
func (stubATMRepo) GetByID(context.Context, string) (*domain.ATM, error) {
	return nil, pgx.ErrNoRows
}
func (stubATMRepo) ListWithFilter(context.Context, repository.ATMFilter) ([]domain.ATM, error) {
	return nil, nil
}
func (stubATMRepo) CountByStatus(context.Context) (map[domain.ATMStatus]int64, error) {
	return nil, nil
}

type stubPOSRepo struct{}

func (stubPOSRepo) Create(context.Context, *domain.POSTerminal) error { return nil }
func (stubPOSRepo) Update(context.Context, *domain.POSTerminal) error { return nil }
func (stubPOSRepo) Delete(context.Context, string) error              { return nil }
func (stubPOSRepo) GetByID(context.Context, string) (*domain.POSTerminal, error) {
	return nil, pgx.ErrNoRows
}
func (stubPOSRepo) ListWithFilter(context.Context, repository.POSFilter) ([]domain.POSTerminal, error) {
	return nil, nil
}
func (stubPOSRepo) CountByStatus(context.Context) (map[domain.POSStatus]int64, error) {
	return nil, nil
}

type stubSystemRepo struct{}

func (stubSystemRepo) Create(context.Context, *domain.MonitoredSystem) error { return nil }
func (stubSystemRepo) Update(context.Context, *domain.MonitoredSystem) error { return nil }
func (stubSystemRepo) Delete(context.Context, string) error                  { return nil }
func (stubSystemRepo) GetByID(context.Context, string) (*domain.MonitoredSystem, error) {
	return nil, pgx.ErrNoRows
}
func (stubSystemRepo) ListWithFilter(context.Context, repository.SystemFilter) ([]domain.MonitoredSystem, error) {
	return nil, nil
}
func (stubSystemRepo) CountByStatus(context.Context) (map[domain.SystemStatus]int64, error) {
	return nil, nil
}

type stubBranchRepo struct{}

func (stubBranchRepo) Create(context.Context, *domain.Branch) error { return nil }
func (stubBranchRepo) Update(context.Context, *domain.Branch) error { return nil }
func (stubBranchRepo) Delete(context.Context, string) error         { return nil }
func (stubBranchRepo) GetByID(context.Context, string) (*domain.Branch, error) {
	return nil, pgx.ErrNoRows
}
func (stubBranchRepo) GetByCode(context.Context, string) (*domain.Branch, error) {
	return nil, pgx.ErrNoRows
}
func (stubBranchRepo) List(context.Context, *domain.BranchStatus, int, int) ([]domain.Branch, error) {
	return nil, nil
}

type stubSecurityEventRepo struct{}

func (stubSecurityEventRepo) Create(context.Context, *domain.SecurityEvent) error { return nil }
func (stubSecurityEventRepo) Update(context.Context, *domain.SecurityEvent) error { return nil }
func (stubSecurityEventRepo) GetByID(context.Context, string) (*domain.SecurityEvent, error) {
	return nil, pgx.ErrNoRows
}
func (stubSecurityEventRepo) ListWithFilter(context.Context, repository.SecurityEventFilter) ([]domain.SecurityEvent, error) {
	return nil, nil
}
func (stubSecurityEventRepo) CountOpen(context.Context) (int64, error) { return 0, nil }

// newAuthzTestApp builds a fiber app with the real route table and role
// guards over stub storage, plus a token minter per role.
func newAuthzTestApp(t *testing.T) (*fiber.App, func(domain.Role) string) {
	t.Helper()

	roles := []domain.Role{
		domain.RoleAdmin, domain.RoleITOfficer, domain.RoleSupportTech,
		domain.RoleBranchManager, domain.RoleSecurityOfficer, domain.RoleViewer,
	}
	users := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, role := range roles {
		id := "usr-" + string(role)
		users.users[id] = &domain.User{ID: id, Username: string(role), Role: role, Active: true}
	}

	tokens := auth.NewTokenManager("test-secret", 15)
	assetService := service.NewAssetService(service.AssetDependencies{
		ATMRepo:    stubATMRepo{},
		POSRepo:    stubPOSRepo{},
		SystemRepo: stubSystemRepo{},
		BranchRepo: stubBranchRepo{},
	})
	securityEventService := service.NewSecurityEventService(stubSecurityEventRepo{}, nil)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Auth:           handlers.NewAuthHandler(nil),
		Tickets:        handlers.NewTicketsHandler(nil),
		Alerts:         handlers.NewAlertsHandler(nil),
		SecurityEvents: handlers.NewSecurityEventsHandler(securityEventService),
		Branches:       handlers.NewBranchesHandler(nil),
		ATMs:           handlers.NewATMsHandler(assetService),
		POS:            handlers.NewPOSHandler(assetService),
		Systems:        handlers.NewSystemsHandler(assetService),
		Audit:          handlers.NewAuditHandler(nil),
		Reports:        handlers.NewReportsHandler(nil),
		Dashboard:      handlers.NewDashboardHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users),
	})

	mint := func(role domain.Role) string {
		token, _, err := tokens.GenerateToken("usr-"+string(role), role)
		require.NoError(t, err)
		return token
	}
	return app, mint
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAssetDeletionIsAdminOnly(t *testing.T) {
	app, mint := newAuthzTestApp(t)

	paths := []string{"/atms/atm-1", "/pos-terminals/pos-1", "/systems/sys-1"}
	for _, path := range paths {
		assert.Equal(t, http.StatusForbidden, doRequest(t, app, http.MethodDelete, path, mint(domain.RoleITOfficer)), path)
		assert.Equal(t, http.StatusForbidden, doRequest(t, app, http.MethodDelete, path, mint(domain.RoleSupportTech)), path)
		assert.Equal(t, http.StatusForbidden, doRequest(t, app, http.MethodDelete, path, mint(domain.RoleBranchManager)), path)
		assert.Equal(t, http.StatusNoContent, doRequest(t, app, http.MethodDelete, path, mint(domain.RoleAdmin)), path)
	}
}

func TestSecurityEventsRestrictedToSecurityRoles(t *testing.T) {
	app, mint := newAuthzTestApp(t)

	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/security-events", mint(domain.RoleAdmin)))
	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/security-events", mint(domain.RoleSecurityOfficer)))
	assert.Equal(t, http.StatusForbidden, doRequest(t, app, http.MethodGet, "/security-events", mint(domain.RoleITOfficer)))
	assert.Equal(t, http.StatusForbidden, doRequest(t, app, http.MethodGet, "/security-events", mint(domain.RoleViewer)))
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := newAuthzTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, doRequest(t, app, http.MethodDelete, "/atms/atm-1", ""))
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, app, http.MethodGet, "/security-events", ""))
}
