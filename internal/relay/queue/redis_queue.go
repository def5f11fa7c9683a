package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/politreg/deputy-portal/internal/relay"
)

const (
	// Redis key prefixes
	keyQueue        = "deputy:relay:queue"
	keyPrefixTask   = "deputy:relay:task:"
	keyPrefixResult = "deputy:relay:result:"

	// taskTTL bounds how long task bodies and unclaimed results live.
	taskTTL = time.Hour
)

// RedisQueue implements relay.Queue on Redis. Tasks travel through a
// single list; each result lands on a per-task list the caller blocks on.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue creates a new Redis-backed relay queue.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

// Enqueue stores the task body and pushes its id onto the queue.
func (q *RedisQueue) Enqueue(ctx context.Context, task *relay.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	if err := q.client.Set(ctx, keyPrefixTask+task.ID, data, taskTTL).Err(); err != nil {
		return fmt.Errorf("failed to store task: %w", err)
	}
	if err := q.client.LPush(ctx, keyQueue, task.ID).Err(); err != nil {
		return fmt.Errorf("failed to queue task: %w", err)
	}
	return nil
}

// Dequeue retrieves the next pending task. Uses RPOP so the worker's
// poll loop controls the wait, not Redis.
func (q *RedisQueue) Dequeue(ctx context.Context) (*relay.Task, error) {
	taskID, err := q.client.RPop(ctx, keyQueue).Result()
	if err == redis.Nil {
		return nil, relay.ErrQueueEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue: %w", err)
	}

	task, err := q.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.StartedAt = &now
	if err := q.updateTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (q *RedisQueue) getTask(ctx context.Context, taskID string) (*relay.Task, error) {
	data, err := q.client.Get(ctx, keyPrefixTask+taskID).Bytes()
	if err == redis.Nil {
		return nil, relay.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task relay.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to deserialize task: %w", err)
	}
	return &task, nil
}

func (q *RedisQueue) updateTask(ctx context.Context, task *relay.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	return q.client.Set(ctx, keyPrefixTask+task.ID, data, taskTTL).Err()
}

// PublishResult pushes the result onto the per-task list the caller
// blocks on. The key expires so an abandoned result does not linger.
func (q *RedisQueue) PublishResult(ctx context.Context, result *relay.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	key := keyPrefixResult + result.TaskID
	if err := q.client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}
	return q.client.Expire(ctx, key, taskTTL).Err()
}

// AwaitResult blocks on the per-task result list until a result arrives
// or wait elapses.
func (q *RedisQueue) AwaitResult(ctx context.Context, taskID string, wait time.Duration) (*relay.Result, error) {
	values, err := q.client.BRPop(ctx, wait, keyPrefixResult+taskID).Result()
	if err == redis.Nil {
		return nil, relay.ErrResultTimeout
	}
	if err != nil {
		return nil, fmt.Errorf("failed to await result: %w", err)
	}
	// BRPOP returns [key, value]
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply of %d values", len(values))
	}

	var result relay.Result
	if err := json.Unmarshal([]byte(values[1]), &result); err != nil {
		return nil, fmt.Errorf("failed to deserialize result: %w", err)
	}
	return &result, nil
}
