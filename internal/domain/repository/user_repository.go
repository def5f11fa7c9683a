package repository

import (
	"context"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID with the linked form preloaded
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	// GetByLogin retrieves a user by login
	GetByLogin(ctx context.Context, login string) (*entity.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID, cascading to the form
	Delete(ctx context.Context, id int64) error

	// ListActiveStaffVisible retrieves active non-admin users with forms
	// preloaded, optionally narrowed to one region
	ListActiveStaffVisible(ctx context.Context, region string) ([]*entity.User, error)

	// ListReportEligible retrieves active users in a region whose form
	// carries one of the given representative body levels
	ListReportEligible(ctx context.Context, region string, levels []string) ([]*entity.User, error)

	// ExistsByLogin checks if a login is taken
	ExistsByLogin(ctx context.Context, login string) (bool, error)
}

// RefreshTokenRepository defines the interface for refresh token operations
type RefreshTokenRepository interface {
	// Create creates a new refresh token
	Create(ctx context.Context, token *entity.RefreshToken) error

	// GetByToken retrieves a refresh token by its value
	GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error)

	// RevokeByToken revokes a specific refresh token
	RevokeByToken(ctx context.Context, token string) error

	// RevokeAllByUserID revokes all refresh tokens for a user
	RevokeAllByUserID(ctx context.Context, userID int64) error

	// DeleteExpired removes all expired tokens
	DeleteExpired(ctx context.Context) error
}
