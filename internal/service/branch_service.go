package service

import (
	"context"
	"strings"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// BranchService manages branch records.
type BranchService struct {
	branches   repository.BranchRepository
	dispatcher events.Dispatcher
}

// NewBranchService constructs the service.
func NewBranchService(branches repository.BranchRepository, dispatcher events.Dispatcher) *BranchService {
	return &BranchService{branches: branches, dispatcher: dispatcher}
}

// CreateBranch registers a new branch. Branch codes are unique.
func (s *BranchService) CreateBranch(ctx context.Context, actor domain.Actor, branch *domain.Branch) (*domain.Branch, error) {
	branch.Code = strings.ToUpper(strings.TrimSpace(branch.Code))
	branch.Name = strings.TrimSpace(branch.Name)
	if branch.Code == "" || branch.Name == "" {
		return nil, apperrors.NewValidationError("branch code and name required", nil)
	}
	if existing, err := s.branches.GetByCode(ctx, branch.Code); err == nil && existing != nil {
		return nil, apperrors.NewConflict("branch code already in use", map[string]any{"code": branch.Code})
	}
	if branch.Status == "" {
		branch.Status = domain.BranchStatusActive
	}
	if branch.Type == "" {
		branch.Type = domain.BranchTypeSub
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEntityCreated,
		EntityType: "branch",
		EntityID:   branch.ID,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: "branch registered: " + branch.Code},
	})
	return branch, nil
}

// UpdateBranch persists changes to a branch.
func (s *BranchService) UpdateBranch(ctx context.Context, actor domain.Actor, branch *domain.Branch) (*domain.Branch, error) {
	if err := s.branches.Update(ctx, branch); err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEntityUpdated,
		EntityType: "branch",
		EntityID:   branch.ID,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: "branch updated: " + branch.Code},
	})
	return branch, nil
}

// GetBranch fetches a branch by id.
func (s *BranchService) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return branch, nil
}

// ListBranches returns branches, optionally filtered by status.
func (s *BranchService) ListBranches(ctx context.Context, status *domain.BranchStatus, limit, offset int) ([]domain.Branch, error) {
	branches, err := s.branches.List(ctx, status, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return branches, nil
}

// DeleteBranch removes a branch record.
func (s *BranchService) DeleteBranch(ctx context.Context, actor domain.Actor, id string) error {
	if err := s.branches.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEntityDeleted,
		EntityType: "branch",
		EntityID:   id,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: "branch removed"},
	})
	return nil
}
