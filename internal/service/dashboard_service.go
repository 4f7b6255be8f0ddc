package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

const dashboardCacheKey = "biomss:dashboard:summary"

// DashboardSummary is the aggregate view served to the operations console.
type DashboardSummary struct {
	TicketCounts       map[domain.TicketStatus]int64 `json:"ticket_counts"`
	AlertCounts        map[domain.AlertStatus]int64  `json:"alert_counts"`
	ATMCounts          map[domain.ATMStatus]int64    `json:"atm_counts"`
	POSCounts          map[domain.POSStatus]int64    `json:"pos_counts"`
	SystemCounts       map[domain.SystemStatus]int64 `json:"system_counts"`
	OpenSecurityEvents int64                         `json:"open_security_events"`
	GeneratedAt        time.Time                     `json:"generated_at"`
}

// DashboardService assembles the summary, caching it in Redis for the
// configured TTL. A cold or unreachable cache falls back to live queries.
type DashboardService struct {
	tickets        repository.TicketRepository
	alerts         repository.AlertRepository
	atms           repository.ATMRepository
	terminals      repository.POSRepository
	systems        repository.SystemRepository
	securityEvents repository.SecurityEventRepository
	cache          *redis.Client
	cacheTTL       time.Duration
	logger         *zap.Logger
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	TicketRepo        repository.TicketRepository
	AlertRepo         repository.AlertRepository
	ATMRepo           repository.ATMRepository
	POSRepo           repository.POSRepository
	SystemRepo        repository.SystemRepository
	SecurityEventRepo repository.SecurityEventRepository
	Cache             *redis.Client
	CacheTTL          time.Duration
	Logger            *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		tickets:        deps.TicketRepo,
		alerts:         deps.AlertRepo,
		atms:           deps.ATMRepo,
		terminals:      deps.POSRepo,
		systems:        deps.SystemRepo,
		securityEvents: deps.SecurityEventRepo,
		cache:          deps.Cache,
		cacheTTL:       deps.CacheTTL,
		logger:         deps.Logger,
	}
}

// Summary returns the dashboard aggregate, served from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, summary)
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context) (*DashboardSummary, error) {
	ticketCounts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	alertCounts, err := s.alerts.CountByStatus(ctx)
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
	openSecurityEvents, err := s.securityEvents.CountOpen(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DashboardSummary{
		TicketCounts:       ticketCounts,
		AlertCounts:        alertCounts,
		ATMCounts:          atmCounts,
		POSCounts:          posCounts,
		SystemCounts:       systemCounts,
		OpenSecurityEvents: openSecurityEvents,
		GeneratedAt:        time.Now().UTC(),
	}, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *DashboardSummary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("dashboard cache entry corrupt", zap.Error(err))
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}
