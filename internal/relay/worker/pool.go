package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/politreg/deputy-portal/internal/relay"
)

// TaskHandler is a function that handles a specific task type.
type TaskHandler func(ctx context.Context, payload []byte) error

// PoolConfig configures the relay worker pool.
type PoolConfig struct {
	Concurrency     int           // Number of concurrent workers
	PollInterval    time.Duration // How often to poll for tasks
	ShutdownTimeout time.Duration // Timeout for graceful shutdown
}

// DefaultPoolConfig returns sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Concurrency:     4,
		PollInterval:    100 * time.Millisecond,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Pool manages the relay worker goroutines. Every finished task, pass
// or fail, publishes a result descriptor so the enqueuing side never
// waits past its budget for a verdict.
type Pool struct {
	config   PoolConfig
	queue    relay.Queue
	logger   *zap.Logger
	handlers map[string]TaskHandler
	mu       sync.RWMutex

	// State
	running atomic.Bool
	wg      sync.WaitGroup
	stopCh  chan struct{}

	// Metrics
	processedTasks atomic.Int64
	failedTasks    atomic.Int64
}

// NewPool creates a new relay worker pool.
func NewPool(q relay.Queue, logger *zap.Logger, config PoolConfig) *Pool {
	return &Pool{
		config:   config,
		queue:    q,
		logger:   logger,
		handlers: make(map[string]TaskHandler),
		stopCh:   make(chan struct{}),
	}
}

// RegisterHandler registers a handler for a task type.
func (p *Pool) RegisterHandler(taskType string, handler TaskHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[taskType] = handler
	p.logger.Info("Registered task handler", zap.String("type", taskType))
}

// Start starts the worker pool.
func (p *Pool) Start(ctx context.Context) error {
	if p.running.Load() {
		return fmt.Errorf("worker pool already running")
	}

	p.running.Store(true)
	p.logger.Info("Starting relay worker pool",
		zap.Int("concurrency", p.config.Concurrency),
		zap.Duration("poll_interval", p.config.PollInterval),
	)

	for i := 0; i < p.config.Concurrency; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	return nil
}

// Stop gracefully stops the worker pool.
func (p *Pool) Stop(ctx context.Context) error {
	if !p.running.Load() {
		return nil
	}

	p.logger.Info("Stopping relay worker pool")
	p.running.Store(false)
	close(p.stopCh)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Relay worker pool stopped gracefully")
	case <-time.After(p.config.ShutdownTimeout):
		p.logger.Warn("Relay worker pool shutdown timed out")
	case <-ctx.Done():
		p.logger.Warn("Relay worker pool shutdown cancelled")
	}

	return nil
}

// worker is a single worker goroutine.
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	logger := p.logger.With(zap.Int("worker_id", id))
	logger.Debug("Relay worker started")

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.processNextTask(ctx, logger)
		}
	}
}

// processNextTask attempts to process the next available task.
func (p *Pool) processNextTask(ctx context.Context, logger *zap.Logger) {
	task, err := p.queue.Dequeue(ctx)
	if err == relay.ErrQueueEmpty {
		return
	}
	if err != nil {
		if p.running.Load() {
			logger.Error("Failed to dequeue task", zap.Error(err))
		}
		return
	}

	logger = logger.With(
		zap.String("task_id", task.ID),
		zap.String("task_type", task.Type),
	)
	logger.Info("Processing task")

	p.mu.RLock()
	handler, ok := p.handlers[task.Type]
	p.mu.RUnlock()

	if !ok {
		logger.Error("No handler registered for task type")
		p.publish(ctx, task, fmt.Errorf("no handler for task type: %s", task.Type), logger)
		p.failedTasks.Add(1)
		return
	}

	execCtx, cancel := context.WithTimeout(ctx, task.Timeout)
	defer cancel()

	start := time.Now()
	err = handler(execCtx, task.Payload)
	duration := time.Since(start)

	if err != nil {
		logger.Error("Task failed", zap.Error(err), zap.Duration("duration", duration))
		p.failedTasks.Add(1)
	} else {
		logger.Info("Task completed", zap.Duration("duration", duration))
		p.processedTasks.Add(1)
	}
	p.publish(ctx, task, err, logger)
}

// publish sends the result descriptor back to the caller.
func (p *Pool) publish(ctx context.Context, task *relay.Task, taskErr error, logger *zap.Logger) {
	result := &relay.Result{
		TaskID:      task.ID,
		Status:      relay.StatusSuccess,
		CompletedAt: time.Now(),
	}
	if taskErr != nil {
		result.Status = relay.StatusError
		result.Message = taskErr.Error()
	}
	if err := p.queue.PublishResult(ctx, result); err != nil {
		logger.Error("Failed to publish task result", zap.Error(err))
	}
}

// Stats reports processed and failed task counts.
func (p *Pool) Stats() (processed, failed int64) {
	return p.processedTasks.Load(), p.failedTasks.Load()
}
