package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathpilot_backend/internal/auth"
	"pathpilot_backend/internal/config"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

func setTestConfig(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	reg, err := svc.Register(dto.RegisterRequest{
		Email:    "new@test.dev",
		Password: "password123",
		FullName: "Test User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, models.PlanFree, reg.User.Plan)

	claims, err := auth.ParseToken(reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "free", claims.Plan)

	// повторная регистрация на тот же email
	_, err = svc.Register(dto.RegisterRequest{Email: "new@test.dev", Password: "password123"})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)

	login, err := svc.Login(dto.LoginRequest{Email: "new@test.dev", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(dto.LoginRequest{Email: "new@test.dev", Password: "wrong-pass"})
	assert.Error(t, err)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	reg, err := svc.Register(dto.RegisterRequest{Email: "rotate@test.dev", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// старый refresh-токен погашен
	_, err = svc.RefreshTokens(reg.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	reg, err := svc.Register(dto.RegisterRequest{Email: "bye@test.dev", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(reg.RefreshToken))
	_, err = svc.RefreshTokens(reg.RefreshToken)
	assert.Error(t, err)

	// повторный logout не является ошибкой
	assert.NoError(t, svc.Logout(reg.RefreshToken))
}

func TestAuthService_LogoutAllRevokesEverySession(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db))

	reg, err := svc.Register(dto.RegisterRequest{Email: "multi@test.dev", Password: "password123"})
	require.NoError(t, err)
	second, err := svc.Login(dto.LoginRequest{Email: "multi@test.dev", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(reg.User.ID))

	_, err = svc.RefreshTokens(reg.RefreshToken)
	assert.Error(t, err)
	_, err = svc.RefreshTokens(second.RefreshToken)
	assert.Error(t, err)
}
