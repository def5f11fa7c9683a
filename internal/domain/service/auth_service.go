package service

import (
	"context"
	"errors"

	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserInactive       = errors.New("user account is inactive")
)

// AuthService defines the interface for authentication operations.
// Credentials exist only for users whose questionnaire was approved.
type AuthService interface {
	// Login authenticates a user and returns tokens
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)

	// RefreshToken generates new tokens using a refresh token
	RefreshToken(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)

	// Logout invalidates the current token
	Logout(ctx context.Context, token string) error

	// LogoutAll invalidates all tokens for a user
	LogoutAll(ctx context.Context, userID int64) error
}
