package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/relay/worker"
)

// HandlerFunc is a typed handler function
type HandlerFunc[T any] func(ctx context.Context, payload T) error

// Registry manages task handler registration
type Registry struct {
	pool   *worker.Pool
	logger *zap.Logger
	mu     sync.RWMutex
	types  map[string]string // taskType -> Go type name for documentation
}

// NewRegistry creates a new handler registry
func NewRegistry(pool *worker.Pool, logger *zap.Logger) *Registry {
	return &Registry{
		pool:   pool,
		logger: logger,
		types:  make(map[string]string),
	}
}

// Register registers a typed handler for a task type
func Register[T any](r *Registry, taskType string, handler HandlerFunc[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	r.types[taskType] = fmt.Sprintf("%T", zero)

	wrappedHandler := func(ctx context.Context, data []byte) error {
		var payload T
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		return handler(ctx, payload)
	}

	r.pool.RegisterHandler(taskType, wrappedHandler)
	r.logger.Info("Registered typed task handler",
		zap.String("task_type", taskType),
		zap.String("payload_type", r.types[taskType]),
	)
}

// ListHandlers returns all registered handler types
func (r *Registry) ListHandlers() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string)
	for k, v := range r.types {
		result[k] = v
	}
	return result
}
