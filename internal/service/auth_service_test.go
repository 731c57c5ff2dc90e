package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pharmflow/pharmflow/internal/config"
	"github.com/pharmflow/pharmflow/internal/domain"
	"github.com/pharmflow/pharmflow/pkg/auth"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateLoginAttempt(ctx context.Context, id uuid.UUID, success bool) error {
	return m.Called(ctx, id, success).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-not-for-production",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "pharmflow-test",
	})
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "staff@pharmflow.test",
		PasswordHash: string(hash),
		Role:         domain.RolePharmacist,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdateLoginAttempt", mock.Anything, user.ID, true).Return(nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	pair, err := sut.Login(context.Background(), user.Email, "correct horse battery staple", "10.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	repo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdateLoginAttempt", mock.Anything, user.ID, false).Return(nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	_, err := sut.Login(context.Background(), user.Email, "wrong", "10.0.0.1")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "nobody@pharmflow.test").Return(nil, assert.AnError)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	_, err := sut.Login(context.Background(), "nobody@pharmflow.test", "whatever", "10.0.0.1")

	// Same error as a wrong password, so callers cannot probe for accounts.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockedAccount(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	until := time.Now().Add(10 * time.Minute)
	user.LockedUntil = &until
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	_, err := sut.Login(context.Background(), user.Email, "correct horse battery staple", "10.0.0.1")

	assert.ErrorIs(t, err, ErrAccountLocked)
	repo.AssertNotCalled(t, "UpdateLoginAttempt", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	user.IsActive = false
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	_, err := sut.Login(context.Background(), user.Email, "correct horse battery staple", "10.0.0.1")

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefreshToken(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdateLoginAttempt", mock.Anything, user.ID, true).Return(nil)
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	pair, err := sut.Login(context.Background(), user.Email, "correct horse battery staple", "10.0.0.1")
	require.NoError(t, err)

	refreshed, err := sut.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdateLoginAttempt", mock.Anything, user.ID, true).Return(nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())
	pair, err := sut.Login(context.Background(), user.Email, "correct horse battery staple", "10.0.0.1")
	require.NoError(t, err)

	_, err = sut.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	repo := new(mockUserRepo)
	user := testUser(t, "correct horse battery staple")
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)

	sut := NewAuthService(repo, testJWTManager(), zap.NewNop())

	err := sut.ChangePassword(context.Background(), user.ID, "correct horse battery staple", "a much longer password")
	require.NoError(t, err)

	err = sut.ChangePassword(context.Background(), user.ID, "wrong", "a much longer password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = sut.ChangePassword(context.Background(), user.ID, "correct horse battery staple", "short")
	assert.Error(t, err)
	repo.AssertNumberOfCalls(t, "UpdatePassword", 1)
}
