package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bankops/biomss/internal/api/http"
	"github.com/bankops/biomss/internal/api/http/handlers"
	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/config"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/observability"
	"github.com/bankops/biomss/internal/persistence"
	"github.com/bankops/biomss/internal/repository"
	"github.com/bankops/biomss/internal/service"
	"github.com/bankops/biomss/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	branchRepo := repository.NewBranchRepository(pool)
	atmRepo := repository.NewATMRepository(pool)
	posRepo := repository.NewPOSRepository(pool)
	systemRepo := repository.NewSystemRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	securityEventRepo := repository.NewSecurityEventRepository(pool)
	alertRepo := repository.NewAlertRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Dispatcher: dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo)

	alertService := service.NewAlertService(alertRepo, dispatcher)
	securityEventService := service.NewSecurityEventService(securityEventRepo, dispatcher)
	branchService := service.NewBranchService(branchRepo, dispatcher)
	assetService := service.NewAssetService(service.AssetDependencies{
		ATMRepo:    atmRepo,
		POSRepo:    posRepo,
		SystemRepo: systemRepo,
		BranchRepo: branchRepo,
		Alerts:     alertService,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		BranchRepo:  branchRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	auditService := service.NewAuditService(auditRepo, logger)
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:        reportRepo,
		ATMRepo:           atmRepo,
		POSRepo:           posRepo,
		SystemRepo:        systemRepo,
		SecurityEventRepo: securityEventRepo,
		Dispatcher:        dispatcher,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo:        ticketRepo,
		AlertRepo:         alertRepo,
		ATMRepo:           atmRepo,
		POSRepo:           posRepo,
		SystemRepo:        systemRepo,
		SecurityEventRepo: securityEventRepo,
		Cache:             redis.Client,
		CacheTTL:          cfg.Redis.DashboardTTL(),
		Logger:            logger,
	})

	worker.StartAuditWorker(auditService, dispatcher)

	sweeper := worker.NewMaintenanceSweeper(assetService, alertService, logger, time.Hour)
	sweeper.Start()
	defer sweeper.Stop()

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Alerts:         handlers.NewAlertsHandler(alertService),
		SecurityEvents: handlers.NewSecurityEventsHandler(securityEventService),
		Branches:       handlers.NewBranchesHandler(branchService),
		ATMs:           handlers.NewATMsHandler(assetService),
		POS:            handlers.NewPOSHandler(assetService),
		Systems:        handlers.NewSystemsHandler(assetService),
		Audit:          handlers.NewAuditHandler(auditService),
		Reports:        handlers.NewReportsHandler(reportService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
