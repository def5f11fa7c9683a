package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/domain/repository"
)

// txManager implements repository.TxManager on a gorm connection.
type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager bound to the given connection.
func NewTxManager(db *gorm.DB) repository.TxManager {
	return &txManager{db: db}
}

// Do opens a transaction and hands fn a repository bundle bound to it.
// An error from fn rolls everything back.
func (m *txManager) Do(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository.Repositories{
			Users:         NewUserRepository(tx),
			Forms:         NewFormRepository(tx),
			Reports:       NewReportRepository(tx),
			RefreshTokens: NewRefreshTokenRepository(tx),
		})
	})
}
