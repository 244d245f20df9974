package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	counterPrefix = "metrics:jobs:"
	heartbeatKey  = "worker:status"

	counterPending    = "pending"
	counterProcessing = "processing"
	counterCompleted  = "completed"
	counterFailed     = "failed"
)

func counterKey(name string) string { return counterPrefix + name }

// MetricsStore implements ports.MetricsStore on plain Redis counters plus
// a short-TTL heartbeat key. Counters use INCR/DECR so concurrent workers
// never need application-level locking.
type MetricsStore struct {
	client       *goredis.Client
	heartbeatTTL time.Duration
}

// NewMetricsStore creates a Redis-backed metrics store.
func NewMetricsStore(client *goredis.Client, heartbeatTTL time.Duration) *MetricsStore {
	return &MetricsStore{client: client, heartbeatTTL: heartbeatTTL}
}

func (s *MetricsStore) IncrPending(ctx context.Context) error {
	return s.incr(ctx, counterPending, 1)
}

func (s *MetricsStore) IncrProcessing(ctx context.Context) error {
	return s.incr(ctx, counterProcessing, 1)
}

func (s *MetricsStore) DecrProcessing(ctx context.Context) error {
	return s.incr(ctx, counterProcessing, -1)
}

func (s *MetricsStore) IncrCompleted(ctx context.Context) error {
	return s.incr(ctx, counterCompleted, 1)
}

func (s *MetricsStore) IncrFailed(ctx context.Context) error {
	return s.incr(ctx, counterFailed, 1)
}

func (s *MetricsStore) incr(ctx context.Context, name string, delta int64) error {
	if err := s.client.IncrBy(ctx, counterKey(name), delta).Err(); err != nil {
		return fmt.Errorf("redis counter %s: %w", name, err)
	}
	return nil
}

// Heartbeat refreshes the worker liveness marker with its short TTL.
func (s *MetricsStore) Heartbeat(ctx context.Context) error {
	if err := s.client.Set(ctx, heartbeatKey, "1", s.heartbeatTTL).Err(); err != nil {
		return fmt.Errorf("redis heartbeat: %w", err)
	}
	return nil
}

// WorkerStatus returns "running" while the heartbeat key is alive,
// "stopped" once its TTL lapses.
func (s *MetricsStore) WorkerStatus(ctx context.Context) (string, error) {
	_, err := s.client.Get(ctx, heartbeatKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "stopped", nil
		}
		return "", fmt.Errorf("redis heartbeat get: %w", err)
	}
	return "running", nil
}

// Counter reads a single counter; a missing key reads as zero.
func (s *MetricsStore) Counter(ctx context.Context, name string) (int64, error) {
	v, err := s.client.Get(ctx, counterKey(name)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis counter get %s: %w", name, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
