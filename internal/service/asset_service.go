package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// lowCashThresholdPct triggers an ATM_CASH_LOW alert when the cash level
// drops below this percentage of capacity.
const lowCashThresholdPct = 20.0

// AssetService manages ATMs, POS terminals, and monitored systems, raising
// operational alerts when device health degrades.
type AssetService struct {
	atms       repository.ATMRepository
	terminals  repository.POSRepository
	systems    repository.SystemRepository
	branches   repository.BranchRepository
	alerts     *AlertService
	dispatcher events.Dispatcher
}

// AssetDependencies bundles repositories for the asset service.
type AssetDependencies struct {
	ATMRepo    repository.ATMRepository
	POSRepo    repository.POSRepository
	SystemRepo repository.SystemRepository
	BranchRepo repository.BranchRepository
	Alerts     *AlertService
	Dispatcher events.Dispatcher
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	return &AssetService{
		atms:       deps.ATMRepo,
		terminals:  deps.POSRepo,
		systems:    deps.SystemRepo,
		branches:   deps.BranchRepo,
		alerts:     deps.Alerts,
		dispatcher: deps.Dispatcher,
	}
}

// CreateATM registers a new ATM under a branch.
func (s *AssetService) CreateATM(ctx context.Context, actor domain.Actor, atm *domain.ATM) (*domain.ATM, error) {
	atm.Code = strings.TrimSpace(atm.Code)
	if atm.Code == "" {
		return nil, apperrors.NewValidationError("atm code required", nil)
	}
	if _, err := s.branches.GetByID(ctx, atm.BranchID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if atm.Status == "" {
		atm.Status = domain.ATMStatusOnline
	}
	if err := s.atms.Create(ctx, atm); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEntityEvent(ctx, actor, events.EventEntityCreated, "atm", atm.ID, "atm registered: "+atm.Code)
	return atm, nil
}

// UpdateATM persists changes and raises alerts on degraded state.
func (s *AssetService) UpdateATM(ctx context.Context, actor domain.Actor, atm *domain.ATM) (*domain.ATM, error) {
	previous, err := s.atms.GetByID(ctx, atm.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.atms.Update(ctx, atm); err != nil {
		return nil, apperrors.MapError(err)
	}

	if previous.Status != atm.Status && (atm.Status == domain.ATMStatusOffline || atm.Status == domain.ATMStatusOutOfService) {
		s.raiseAlert(ctx, actor, domain.AlertTypeATMDown,
			fmt.Sprintf("ATM %s is %s", atm.Code, atm.Status),
			fmt.Sprintf("ATM %s at branch %s reported status %s", atm.Code, atm.BranchID, atm.Status),
			&atm.BranchID, &atm.ID, nil)
	}
	if atm.CashPercentage() < lowCashThresholdPct && previous.CashPercentage() >= lowCashThresholdPct {
		s.raiseAlert(ctx, actor, domain.AlertTypeATMCashLow,
			fmt.Sprintf("ATM %s cash level low", atm.Code),
			fmt.Sprintf("ATM %s cash level at %.1f%% of capacity", atm.Code, atm.CashPercentage()),
			&atm.BranchID, &atm.ID, nil)
	}

	s.publishEntityEvent(ctx, actor, events.EventEntityUpdated, "atm", atm.ID, "atm updated: "+atm.Code)
	return atm, nil
}

// GetATM fetches a single ATM.
func (s *AssetService) GetATM(ctx context.Context, id string) (*domain.ATM, error) {
	atm, err := s.atms.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return atm, nil
}

// ListATMs returns ATMs matching the filter.
func (s *AssetService) ListATMs(ctx context.Context, filter repository.ATMFilter) ([]domain.ATM, error) {
	atms, err := s.atms.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return atms, nil
}

// DeleteATM removes an ATM record.
func (s *AssetService) DeleteATM(ctx context.Context, actor domain.Actor, id string) error {
	if err := s.atms.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEntityEvent(ctx, actor, events.EventEntityDeleted, "atm", id, "atm removed")
	return nil
}

// CreatePOSTerminal registers a new POS terminal.
func (s *AssetService) CreatePOSTerminal(ctx context.Context, actor domain.Actor, terminal *domain.POSTerminal) (*domain.POSTerminal, error) {
	terminal.TerminalID = strings.TrimSpace(terminal.TerminalID)
	if terminal.TerminalID == "" {
		return nil, apperrors.NewValidationError("terminal id required", nil)
	}
	if terminal.BranchID != nil {
		if _, err := s.branches.GetByID(ctx, *terminal.BranchID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if terminal.Status == "" {
		terminal.Status = domain.POSStatusActive
	}
	if err := s.terminals.Create(ctx, terminal); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEntityEvent(ctx, actor, events.EventEntityCreated, "pos_terminal", terminal.ID, "pos terminal registered: "+terminal.TerminalID)
	return terminal, nil
}

// UpdatePOSTerminal persists changes and raises alerts on faults.
func (s *AssetService) UpdatePOSTerminal(ctx context.Context, actor domain.Actor, terminal *domain.POSTerminal) (*domain.POSTerminal, error) {
	previous, err := s.terminals.GetByID(ctx, terminal.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.terminals.Update(ctx, terminal); err != nil {
		return nil, apperrors.MapError(err)
	}

	if previous.Status != terminal.Status && terminal.Status == domain.POSStatusFaulty {
		s.raiseAlert(ctx, actor, domain.AlertTypePOSOffline,
			fmt.Sprintf("POS terminal %s is faulty", terminal.TerminalID),
			fmt.Sprintf("POS terminal %s at %s reported a fault", terminal.TerminalID, terminal.MerchantName),
			terminal.BranchID, nil, &terminal.ID)
	}

	s.publishEntityEvent(ctx, actor, events.EventEntityUpdated, "pos_terminal", terminal.ID, "pos terminal updated: "+terminal.TerminalID)
	return terminal, nil
}

// GetPOSTerminal fetches a single POS terminal.
func (s *AssetService) GetPOSTerminal(ctx context.Context, id string) (*domain.POSTerminal, error) {
	terminal, err := s.terminals.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return terminal, nil
}

// ListPOSTerminals returns terminals matching the filter.
func (s *AssetService) ListPOSTerminals(ctx context.Context, filter repository.POSFilter) ([]domain.POSTerminal, error) {
	terminals, err := s.terminals.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return terminals, nil
}

// DeletePOSTerminal removes a POS terminal record.
func (s *AssetService) DeletePOSTerminal(ctx context.Context, actor domain.Actor, id string) error {
	if err := s.terminals.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEntityEvent(ctx, actor, events.EventEntityDeleted, "pos_terminal", id, "pos terminal removed")
	return nil
}

// CreateSystem registers a monitored system.
func (s *AssetService) CreateSystem(ctx context.Context, actor domain.Actor, system *domain.MonitoredSystem) (*domain.MonitoredSystem, error) {
	system.Name = strings.TrimSpace(system.Name)
	if system.Name == "" {
		return nil, apperrors.NewValidationError("system name required", nil)
	}
	if system.Status == "" {
		system.Status = domain.SystemStatusOperational
	}
	if err := s.systems.Create(ctx, system); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEntityEvent(ctx, actor, events.EventEntityCreated, "system", system.ID, "system registered: "+system.Name)
	return system, nil
}

// UpdateSystem persists health readings and raises alerts on failures.
func (s *AssetService) UpdateSystem(ctx context.Context, actor domain.Actor, system *domain.MonitoredSystem) (*domain.MonitoredSystem, error) {
	previous, err := s.systems.GetByID(ctx, system.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.systems.Update(ctx, system); err != nil {
		return nil, apperrors.MapError(err)
	}

	if previous.Status != system.Status && (system.Status == domain.SystemStatusDown || system.Status == domain.SystemStatusCritical) {
		alertType := domain.AlertTypeSystemFailure
		if system.Type == domain.SystemTypeNetwork || system.Type == domain.SystemTypeRouter || system.Type == domain.SystemTypeSwitch {
			alertType = domain.AlertTypeNetworkDown
		}
		s.raiseAlert(ctx, actor, alertType,
			fmt.Sprintf("System %s is %s", system.Name, system.Status),
			fmt.Sprintf("Monitored system %s (%s) reported status %s", system.Name, system.Type, system.Status),
			system.BranchID, nil, nil)
	}

	s.publishEntityEvent(ctx, actor, events.EventEntityUpdated, "system", system.ID, "system updated: "+system.Name)
	return system, nil
}

// GetSystem fetches a single monitored system.
func (s *AssetService) GetSystem(ctx context.Context, id string) (*domain.MonitoredSystem, error) {
	system, err := s.systems.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return system, nil
}

// ListSystems returns monitored systems matching the filter.
func (s *AssetService) ListSystems(ctx context.Context, filter repository.SystemFilter) ([]domain.MonitoredSystem, error) {
	systems, err := s.systems.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return systems, nil
}

// DeleteSystem removes a monitored system record.
func (s *AssetService) DeleteSystem(ctx context.Context, actor domain.Actor, id string) error {
	if err := s.systems.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEntityEvent(ctx, actor, events.EventEntityDeleted, "system", id, "system removed")
	return nil
}

func (s *AssetService) raiseAlert(ctx context.Context, actor domain.Actor, alertType domain.AlertType, title, message string, branchID, atmID, posID *string) {
	if s.alerts == nil {
		return
	}
	_, _ = s.alerts.CreateAlert(ctx, actor, AlertCreateInput{
		Type:          alertType,
		Title:         title,
		Message:       message,
		BranchID:      branchID,
		ATMID:         atmID,
		POSTerminalID: posID,
	})
}

func (s *AssetService) publishEntityEvent(ctx context.Context, actor domain.Actor, eventType events.EventType, entityType, entityID, description string) {
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: description},
	})
}
