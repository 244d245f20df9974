package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// JobQueue implements ports.JobQueue on Redis lists: LPUSH to enqueue,
// BRPOP to consume, so order is FIFO per queue. BRPOP removes atomically,
// which keeps the queue safe for N concurrent consumers even though one
// worker per queue is the default deployment.
type JobQueue struct {
	client *goredis.Client
}

// NewJobQueue creates a Redis-backed job queue.
func NewJobQueue(client *goredis.Client) *JobQueue {
	return &JobQueue{client: client}
}

// Enqueue serializes the job and appends it to the named queue, then bumps
// the shared pending counter.
func (q *JobQueue) Enqueue(ctx context.Context, queue string, job domain.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}
	if err := q.client.LPush(ctx, queue, payload).Err(); err != nil {
		return fmt.Errorf("redis queue push: %w", err)
	}
	// Best effort: the status endpoint derives pending from queue depths,
	// the counter only tracks total enqueues.
	q.client.Incr(ctx, counterKey(counterPending))
	return nil
}

// DequeueBlocking removes and returns the oldest entry, or (nil, nil) once
// timeout elapses with the queue empty.
func (q *JobQueue) DequeueBlocking(ctx context.Context, queue string, timeout time.Duration) (*domain.Job, error) {
	res, err := q.client.BRPop(ctx, timeout, queue).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis queue pop: %w", err)
	}
	// BRPOP returns [key, value].
	var job domain.Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshaling job: %w", err)
	}
	return &job, nil
}

// Depth returns the current length of the named queue.
func (q *JobQueue) Depth(ctx context.Context, queue string) (int64, error) {
	n, err := q.client.LLen(ctx, queue).Result()
	if err != nil {
		return 0, fmt.Errorf("redis queue len: %w", err)
	}
	return n, nil
}
