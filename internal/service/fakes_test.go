package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/lifecycle"
	"github.com/bankops/biomss/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository. Sequence assignment is
// serialized by the mutex, mirroring the transactional guarantee of the
// real implementation.
type fakeTicketRepo struct {
	mu        sync.Mutex
	seq       int64
	tickets   map[string]*domain.Ticket
	createErr error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	ticket.ID = uuid.NewString()
	ticket.TicketNumber = lifecycle.FormatTicketNumber(f.seq)
	ticket.CreatedAt = time.Now().UTC()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now().UTC()
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) GetByNumber(_ context.Context, number string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ticket := range f.tickets {
		if ticket.TicketNumber == number {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.Ticket{}
	for _, ticket := range f.tickets {
		if !filter.Scope.Allows(ticket) {
			continue
		}
		if filter.BranchID != nil && ticket.BranchID != *filter.BranchID {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) CountByStatus(_ context.Context) (map[domain.TicketStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[domain.TicketStatus]int64)
	for _, ticket := range f.tickets {
		counts[ticket.Status]++
	}
	return counts, nil
}

type fakeBranchRepo struct {
	mu       sync.Mutex
	branches map[string]*domain.Branch
}

func newFakeBranchRepo(branches ...*domain.Branch) *fakeBranchRepo {
	repo := &fakeBranchRepo{branches: make(map[string]*domain.Branch)}
	for _, branch := range branches {
		repo.branches[branch.ID] = branch
	}
	return repo
}

func (f *fakeBranchRepo) Create(_ context.Context, branch *domain.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if branch.ID == "" {
		branch.ID = uuid.NewString()
	}
	branch.CreatedAt = time.Now().UTC()
	branch.UpdatedAt = branch.CreatedAt
	stored := *branch
	f.branches[branch.ID] = &stored
	return nil
}

func (f *fakeBranchRepo) Update(_ context.Context, branch *domain.Branch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.branches[branch.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *branch
	f.branches[branch.ID] = &stored
	return nil
}

func (f *fakeBranchRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.branches[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.branches, id)
	return nil
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (*domain.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	branch, ok := f.branches[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *branch
	return &copied, nil
}

func (f *fakeBranchRepo) GetByCode(_ context.Context, code string) (*domain.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, branch := range f.branches {
		if branch.Code == code {
			copied := *branch
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBranchRepo) List(_ context.Context, status *domain.BranchStatus, _, _ int) ([]domain.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.Branch{}
	for _, branch := range f.branches {
		if status != nil && branch.Status != *status {
			continue
		}
		result = append(result, *branch)
	}
	return result, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.User{}
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.TicketComment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.TicketComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string, includeInternal bool) ([]domain.TicketComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.TicketComment{}
	for _, comment := range f.comments {
		if comment.TicketID != ticketID {
			continue
		}
		if comment.Internal && !includeInternal {
			continue
		}
		result = append(result, comment)
	}
	return result, nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts map[string]*domain.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[string]*domain.Alert)}
}

func (f *fakeAlertRepo) Create(_ context.Context, alert *domain.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	alert.ID = uuid.NewString()
	alert.CreatedAt = time.Now().UTC()
	alert.UpdatedAt = alert.CreatedAt
	stored := *alert
	f.alerts[alert.ID] = &stored
	return nil
}

func (f *fakeAlertRepo) Update(_ context.Context, alert *domain.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.alerts[alert.ID]; !ok {
		return pgx.ErrNoRows
	}
	alert.UpdatedAt = time.Now().UTC()
	stored := *alert
	f.alerts[alert.ID] = &stored
	return nil
}

func (f *fakeAlertRepo) GetByID(_ context.Context, id string) (*domain.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	alert, ok := f.alerts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *alert
	return &copied, nil
}

func (f *fakeAlertRepo) ListWithFilter(_ context.Context, filter repository.AlertFilter) ([]domain.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.Alert{}
	for _, alert := range f.alerts {
		if !filter.Scope.Allows(alert) {
			continue
		}
		result = append(result, *alert)
	}
	return result, nil
}

func (f *fakeAlertRepo) CountByStatus(_ context.Context) (map[domain.AlertStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[domain.AlertStatus]int64)
	for _, alert := range f.alerts {
		counts[alert.Status]++
	}
	return counts, nil
}
