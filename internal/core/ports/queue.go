package ports

import (
	"context"
	"time"

	"payment-gateway-sim/internal/core/domain"
)

// JobQueue is a named durable FIFO queue of job references.
//
// The contract is at-least-once: a pop is atomic per consumer (multiple
// consumers on one queue never receive the same entry), but a consumer
// crash between pop and completion loses the in-flight job. Webhook jobs
// are recovered by the due-retry sweep; payment and refund jobs are not.
type JobQueue interface {
	// Enqueue serializes the job and appends it to the named queue.
	// Serialization failure is propagated, not swallowed.
	Enqueue(ctx context.Context, queue string, job domain.Job) error
	// DequeueBlocking removes and returns the oldest entry, or (nil, nil)
	// once timeout elapses with the queue empty. Callers loop.
	DequeueBlocking(ctx context.Context, queue string, timeout time.Duration) (*domain.Job, error)
	// Depth returns the current queue length.
	Depth(ctx context.Context, queue string) (int64, error)
}

// JobMetrics is the aggregate snapshot exposed by the status boundary.
type JobMetrics struct {
	Pending    int64  `json:"pending"`
	Processing int64  `json:"processing"`
	Completed  int64  `json:"completed"`
	Failed     int64  `json:"failed"`
	Worker     string `json:"worker_status"` // running | stopped
}

// MetricsStore holds the shared job counters and the worker heartbeat.
// Counters are process-wide shared state with atomic increments; no worker
// holds a private copy.
type MetricsStore interface {
	IncrPending(ctx context.Context) error
	IncrProcessing(ctx context.Context) error
	DecrProcessing(ctx context.Context) error
	IncrCompleted(ctx context.Context) error
	IncrFailed(ctx context.Context) error
	// Heartbeat refreshes the short-TTL liveness marker.
	Heartbeat(ctx context.Context) error
	// WorkerStatus derives "running" or "stopped" from the heartbeat TTL.
	WorkerStatus(ctx context.Context) (string, error)
	// Counter reads a single counter value; missing counters read as zero.
	Counter(ctx context.Context, name string) (int64, error)
}

// Counter names understood by MetricsStore implementations.
const (
	CounterPending    = "pending"
	CounterProcessing = "processing"
	CounterCompleted  = "completed"
	CounterFailed     = "failed"
)
