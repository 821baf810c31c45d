package services

import (
	"time"

	"pathpilot_backend/internal/auth"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshTokens(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
	// LogoutAll revokes every refresh token of the user; active access
	// tokens stay valid until they expire.
	LogoutAll(userID string) error
}

type AuthServiceImpl struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) *AuthServiceImpl {
	return &AuthServiceImpl{users: users}
}

func (s *AuthServiceImpl) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Plan:         models.PlanFree,
	}
	if err := s.users.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID)
	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

// RefreshTokens rotates the refresh token: the presented token is
// deleted and a new pair is issued.
func (s *AuthServiceImpl) RefreshTokens(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.users.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.users.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.users.DeleteRefreshToken(refreshToken); err != nil &&
		!apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) LogoutAll(userID string) error {
	if err := s.users.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.Info("all sessions revoked", "user_id", userID)
	return nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Plan))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.NewUserResponse(user),
	}, nil
}
