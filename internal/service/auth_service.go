package service

import (
	"context"
	"strings"
	"time"

	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/repository"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// AuthService handles login and staff account management.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	BcryptCost int
	Dispatcher events.Dispatcher
}

// LoginResult carries an issued token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// UserCreateInput describes staff account creation payload.
type UserCreateInput struct {
	Username    string
	FullName    string
	Email       string
	Password    string
	Role        domain.Role
	EmployeeID  *string
	PhoneNumber *string
	Department  *string
	BranchID    *string
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		dispatcher: deps.Dispatcher,
	}
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Same answer for unknown user and wrong password.
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("account deactivated")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserLoggedIn,
		EntityType: "user",
		EntityID:   user.ID,
		Actor:      domain.ActorFromUser(user),
		Payload:    events.EntityChangedPayload{Description: "user logged in: " + user.Username},
	})
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CreateUser registers a staff account.
func (s *AuthService) CreateUser(ctx context.Context, actor domain.Actor, input UserCreateInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, apperrors.NewValidationError("username required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if existing, err := s.users.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, apperrors.NewConflict("username already in use", map[string]any{"username": input.Username})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		EmployeeID:   input.EmployeeID,
		PhoneNumber:  input.PhoneNumber,
		Department:   input.Department,
		BranchID:     input.BranchID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEntityCreated,
		EntityType: "user",
		EntityID:   user.ID,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: "staff account created: " + user.Username},
	})
	return user, nil
}

// GetUser fetches a staff account.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns staff accounts.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ChangePassword updates a user's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// SetUserActive toggles account activation.
func (s *AuthService) SetUserActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user.Active = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	description := "staff account deactivated: " + user.Username
	if active {
		description = "staff account activated: " + user.Username
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventEntityUpdated,
		EntityType: "user",
		EntityID:   user.ID,
		Actor:      actor,
		Payload:    events.EntityChangedPayload{Description: description},
	})
	return user, nil
}
