package impl

import (
	"context"
	"time"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/security"
)

// authService implements service.AuthService
type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtProvider      *security.JWTProvider
	passwordHasher   *security.PasswordHasher
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher *security.PasswordHasher,
) service.AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtProvider:      jwtProvider,
		passwordHasher:   passwordHasher,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.userRepo.GetByLogin(ctx, req.Login)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, service.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, service.ErrUserInactive
	}

	if !s.passwordHasher.Verify(req.Password, *user.PasswordHash) {
		return nil, service.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.generateAuthResponse(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	// Validate the refresh token JWT
	_, err := s.jwtProvider.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, service.ErrInvalidToken
	}

	// Get the refresh token from database
	refreshToken, err := s.refreshTokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if refreshToken == nil || !refreshToken.IsValid() {
		return nil, service.ErrInvalidToken
	}

	// Revoke the old refresh token
	if err := s.refreshTokenRepo.RevokeByToken(ctx, req.RefreshToken); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}

	if !user.IsActive {
		return nil, service.ErrUserInactive
	}

	return s.generateAuthResponse(ctx, user)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.refreshTokenRepo.RevokeByToken(ctx, token)
}

func (s *authService) LogoutAll(ctx context.Context, userID int64) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

func (s *authService) generateAuthResponse(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	accessToken, err := s.jwtProvider.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenString, expiresAt, err := s.jwtProvider.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := &entity.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: expiresAt,
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtProvider.GetAccessTokenDuration(),
		User:         response.NewUserResponse(user),
	}, nil
}
