package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankops/biomss/internal/auth"
	"github.com/bankops/biomss/internal/domain"
	apperrors "github.com/bankops/biomss/pkg/util"
)

func newTestAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(AuthDependencies{
		UserRepo:   users,
		Tokens:     auth.NewTokenManager("test-secret", 15),
		BcryptCost: bcrypt.MinCost,
	})
}

func seededUser(t *testing.T, username, password string, active bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           "usr-" + username,
		Username:     username,
		FullName:     "Test User",
		PasswordHash: hash,
		Role:         domain.RoleITOfficer,
		Active:       active,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	users := newFakeUserRepo(seededUser(t, "jsmith", "hunter2-secret", true))
	svc := newTestAuthService(users)

	result, err := svc.Login(context.Background(), " jsmith ", "hunter2-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "jsmith", result.User.Username)

	claims, err := auth.NewTokenManager("test-secret", 15).ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "usr-jsmith", claims.SubjectID)
	assert.Equal(t, domain.RoleITOfficer, claims.Role)
}

func TestLoginFailureIsUniform(t *testing.T) {
	users := newFakeUserRepo(seededUser(t, "jsmith", "hunter2-secret", true))
	svc := newTestAuthService(users)

	_, unknownErr := svc.Login(context.Background(), "nobody", "whatever-pass")
	require.Error(t, unknownErr)
	_, wrongErr := svc.Login(context.Background(), "jsmith", "wrong-password")
	require.Error(t, wrongErr)

	// Unknown user and wrong password must be indistinguishable.
	assert.Equal(t, apperrors.ToDomainError(unknownErr).Message, apperrors.ToDomainError(wrongErr).Message)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(unknownErr).Code)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(wrongErr).Code)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	users := newFakeUserRepo(seededUser(t, "jsmith", "hunter2-secret", false))
	svc := newTestAuthService(users)

	_, err := svc.Login(context.Background(), "jsmith", "hunter2-secret")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestCreateUserValidation(t *testing.T) {
	users := newFakeUserRepo(seededUser(t, "jsmith", "hunter2-secret", true))
	svc := newTestAuthService(users)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	_, err := svc.CreateUser(context.Background(), admin, UserCreateInput{
		Username: "newbie",
		Password: "short",
		Role:     domain.RoleViewer,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateUser(context.Background(), admin, UserCreateInput{
		Username: "jsmith",
		Password: "long-enough-pass",
		Role:     domain.RoleViewer,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateUser(context.Background(), admin, UserCreateInput{
		Username: "newbie",
		Password: "long-enough-pass",
		Role:     domain.Role("SUPERUSER"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	created, err := svc.CreateUser(context.Background(), admin, UserCreateInput{
		Username: "newbie",
		FullName: "New Technician",
		Password: "long-enough-pass",
		Role:     domain.RoleSupportTech,
	})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.NotEqual(t, "long-enough-pass", created.PasswordHash)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	users := newFakeUserRepo(seededUser(t, "jsmith", "hunter2-secret", true))
	svc := newTestAuthService(users)

	err := svc.ChangePassword(context.Background(), "usr-jsmith", "wrong", "replacement-pass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	err = svc.ChangePassword(context.Background(), "usr-jsmith", "hunter2-secret", "replacement-pass")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "jsmith", "replacement-pass")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "jsmith", "hunter2-secret")
	require.Error(t, err)
}
