package handler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/relay"
	"github.com/politreg/deputy-portal/internal/relay/worker"
)

// mockQueue is a no-op relay.Queue for unit testing without Redis.
type mockQueue struct {
	mu      sync.Mutex
	results []*relay.Result
}

func (m *mockQueue) Enqueue(ctx context.Context, task *relay.Task) error { return nil }
func (m *mockQueue) Dequeue(ctx context.Context) (*relay.Task, error) {
	return nil, relay.ErrQueueEmpty
}
func (m *mockQueue) PublishResult(ctx context.Context, result *relay.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
	return nil
}
func (m *mockQueue) AwaitResult(ctx context.Context, taskID string, wait time.Duration) (*relay.Result, error) {
	return nil, relay.ErrResultTimeout
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	logger := zap.NewNop()
	pool := worker.NewPool(&mockQueue{}, logger, worker.DefaultPoolConfig())
	return NewRegistry(pool, logger)
}

func TestNewRegistry(t *testing.T) {
	r := newTestRegistry(t)
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if r.types == nil {
		t.Error("types map is nil")
	}
	if r.pool == nil {
		t.Error("pool is nil")
	}
}

func TestRegister_StoresType(t *testing.T) {
	r := newTestRegistry(t)

	Register(r, relay.TaskSendMessage, func(ctx context.Context, p relay.SendMessagePayload) error {
		return nil
	})

	handlers := r.ListHandlers()
	if len(handlers) != 1 {
		t.Fatalf("len(handlers) = %d, want 1", len(handlers))
	}
	if _, ok := handlers[relay.TaskSendMessage]; !ok {
		t.Errorf("%s not found in handlers", relay.TaskSendMessage)
	}
}

func TestRegister_MultipleHandlers(t *testing.T) {
	r := newTestRegistry(t)

	Register(r, relay.TaskSendMessage, func(ctx context.Context, p relay.SendMessagePayload) error {
		return nil
	})
	Register(r, relay.TaskChatInvite, func(ctx context.Context, p relay.ChatInvitePayload) error {
		return nil
	})

	handlers := r.ListHandlers()
	if len(handlers) != 2 {
		t.Fatalf("len(handlers) = %d, want 2", len(handlers))
	}
}
