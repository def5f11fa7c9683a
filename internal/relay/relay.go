// Package relay carries notification tasks from the web process to the
// worker that owns the messenger session. The caller enqueues a task
// and blocks on its result descriptor, so a workflow can refuse to
// commit when the user was never notified.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrQueueEmpty    = errors.New("queue is empty")
	ErrResultTimeout = errors.New("timed out waiting for task result")
)

// Task types understood by the worker.
const (
	TaskSendMessage = "send_message"
	TaskChatInvite  = "chat_invite"
)

// SendMessagePayload asks the worker to deliver a direct message.
type SendMessagePayload struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// ChatInvitePayload asks the worker to issue a one-member invite link
// to the restricted channel and send it to the chat.
type ChatInvitePayload struct {
	ChatID int64 `json:"chat_id"`
}

// Status is the outcome marker of a task result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the descriptor the worker publishes when a task finishes.
type Result struct {
	TaskID      string    `json:"task_id"`
	Status      Status    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// OK reports whether the task succeeded.
func (r *Result) OK() bool { return r.Status == StatusSuccess }

// Task is the serializable unit stored in the queue.
type Task struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timeout   time.Duration   `json:"timeout"`
	CreatedAt time.Time       `json:"created_at"`
	StartedAt *time.Time      `json:"started_at,omitempty"`
}

// NewTask creates a task with the payload serialized.
func NewTask(taskType string, payload any, opts ...TaskOption) (*Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Payload:   data,
		Timeout:   30 * time.Second,
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(task)
	}

	return task, nil
}

// TaskOption is a functional option for configuring a task
type TaskOption func(*Task)

// WithTimeout sets the execution timeout granted to the handler.
func WithTimeout(d time.Duration) TaskOption {
	return func(t *Task) {
		t.Timeout = d
	}
}

// Queue is the transport between the enqueuing process and the worker.
type Queue interface {
	// Enqueue stores the task and makes it visible to the worker
	Enqueue(ctx context.Context, task *Task) error
	// Dequeue retrieves the next pending task
	Dequeue(ctx context.Context) (*Task, error)
	// PublishResult makes a finished task's result visible to the caller
	PublishResult(ctx context.Context, result *Result) error
	// AwaitResult blocks until the task's result arrives or wait elapses
	AwaitResult(ctx context.Context, taskID string, wait time.Duration) (*Result, error)
}

// Client is the synchronous calling side of the relay.
type Client interface {
	// Call enqueues a task and waits for its result descriptor. A
	// transport failure or timeout is returned as an error; a result
	// with StatusError comes back err-free for the caller to inspect.
	Call(ctx context.Context, taskType string, payload any) (*Result, error)
}

// client implements Client over a Queue.
type client struct {
	queue       Queue
	wait        time.Duration
	taskTimeout time.Duration
}

// NewClient creates a relay client. wait bounds how long Call blocks on
// the result descriptor; taskTimeout is the execution budget granted to
// the worker-side handler of each task.
func NewClient(queue Queue, wait, taskTimeout time.Duration) Client {
	if wait <= 0 {
		wait = 30 * time.Second
	}
	if taskTimeout <= 0 {
		taskTimeout = 30 * time.Second
	}
	return &client{queue: queue, wait: wait, taskTimeout: taskTimeout}
}

func (c *client) Call(ctx context.Context, taskType string, payload any) (*Result, error) {
	task, err := NewTask(taskType, payload, WithTimeout(c.taskTimeout))
	if err != nil {
		return nil, err
	}
	if err := c.queue.Enqueue(ctx, task); err != nil {
		return nil, err
	}
	return c.queue.AwaitResult(ctx, task.ID, c.wait)
}
