// Package gorm provides GORM-based repository implementations for SQL
// databases (MySQL, PostgreSQL).
package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// baseRepository provides common GORM operations shared by the
// entity-specific repositories.
type baseRepository[T any] struct {
	db *gorm.DB
}

func newBaseRepository[T any](db *gorm.DB) *baseRepository[T] {
	return &baseRepository[T]{db: db}
}

// Create inserts a new entity into the database.
func (r *baseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update modifies an existing entity in the database.
func (r *baseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// getDB returns the underlying GORM database instance for custom queries.
func (r *baseRepository[T]) getDB() *gorm.DB {
	return r.db
}

// findByField retrieves an entity by a specific field value.
// Returns nil, nil if the entity is not found.
func (r *baseRepository[T]) findByField(ctx context.Context, field string, value any) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(field+" = ?", value).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// deleteByField deletes entities matching a specific field value.
func (r *baseRepository[T]) deleteByField(ctx context.Context, field string, value any) error {
	var model T
	return r.db.WithContext(ctx).Where(field+" = ?", value).Delete(&model).Error
}

// existsBy checks if an entity exists by a field value.
func (r *baseRepository[T]) existsBy(ctx context.Context, field string, value any) (bool, error) {
	var count int64
	var model T
	err := r.db.WithContext(ctx).
		Model(&model).
		Where(field+" = ?", value).
		Count(&count).Error
	return count > 0, err
}
