package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/repository"
	"github.com/bankops/biomss/internal/service"
)

// MaintenanceSweeper periodically scans active ATMs and raises
// MAINTENANCE_DUE alerts for machines past their scheduled date. An ATM is
// alerted at most once per overdue maintenance date.
type MaintenanceSweeper struct {
	assets   *service.AssetService
	alerts   *service.AlertService
	logger   *zap.Logger
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}

	alerted map[string]time.Time
}

// NewMaintenanceSweeper constructs the sweeper.
func NewMaintenanceSweeper(assets *service.AssetService, alerts *service.AlertService, logger *zap.Logger, interval time.Duration) *MaintenanceSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &MaintenanceSweeper{
		assets:   assets,
		alerts:   alerts,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		alerted:  make(map[string]time.Time),
	}
}

// Start launches the sweep loop in a goroutine.
func (s *MaintenanceSweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.sweep(context.Background())
			}
		}
	}()
}

// Stop signals the loop to exit and waits for it.
func (s *MaintenanceSweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *MaintenanceSweeper) sweep(ctx context.Context) {
	now := time.Now().UTC()
	atms, err := s.assets.ListATMs(ctx, repository.ATMFilter{OnlyActive: true, Limit: 500})
	if err != nil {
		s.logger.Warn("maintenance sweep failed", zap.Error(err))
		return
	}

	system := domain.Actor{Role: domain.RoleAdmin}
	for i := range atms {
		atm := &atms[i]
		if atm.NextMaintenanceDate == nil || atm.NextMaintenanceDate.After(now) {
			continue
		}
		if last, ok := s.alerted[atm.ID]; ok && last.Equal(*atm.NextMaintenanceDate) {
			continue
		}

		_, err := s.alerts.CreateAlert(ctx, system, service.AlertCreateInput{
			Type:     domain.AlertTypeMaintenanceDue,
			Title:    fmt.Sprintf("ATM %s maintenance overdue", atm.Code),
			Message:  fmt.Sprintf("ATM %s was due for maintenance on %s", atm.Code, atm.NextMaintenanceDate.Format("2006-01-02")),
			BranchID: &atm.BranchID,
			ATMID:    &atm.ID,
		})
		if err != nil {
			s.logger.Warn("failed to raise maintenance alert", zap.String("atm_id", atm.ID), zap.Error(err))
			continue
		}
		s.alerted[atm.ID] = *atm.NextMaintenanceDate
	}
}
