package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/entity"
	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// refreshTokenRepository implements repository.RefreshTokenRepository using GORM.
type refreshTokenRepository struct {
	*baseRepository[entity.RefreshToken]
}

// NewRefreshTokenRepository creates a new GORM-based RefreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{
		baseRepository: newBaseRepository[entity.RefreshToken](db),
	}
}

// GetByToken retrieves a refresh token by its value.
// Only returns non-revoked tokens with preloaded User data.
func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var refreshToken entity.RefreshToken
	err := r.getDB().WithContext(ctx).
		Preload("User").
		Where("token = ? AND revoked = ?", token, false).
		First(&refreshToken).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

// RevokeByToken revokes a specific refresh token.
func (r *refreshTokenRepository) RevokeByToken(ctx context.Context, token string) error {
	return r.getDB().WithContext(ctx).
		Model(&entity.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}

// RevokeAllByUserID revokes all refresh tokens for a specific user.
func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID int64) error {
	return r.getDB().WithContext(ctx).
		Model(&entity.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}

// DeleteExpired removes all expired tokens from the database.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.getDB().WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.RefreshToken{}).Error
}
