package redis

import (
	"context"
	"testing"
	"time"

	"payment-gateway-sim/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*MetricsStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewMetricsStore(client, 15*time.Second), s
}

func TestMetricsStore_Counters(t *testing.T) {
	m, _ := newTestMetrics(t)
	ctx := context.Background()

	// Missing counter reads as zero.
	n, err := m.Counter(ctx, ports.CounterCompleted)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, m.IncrCompleted(ctx))
	require.NoError(t, m.IncrCompleted(ctx))
	require.NoError(t, m.IncrFailed(ctx))

	n, err = m.Counter(ctx, ports.CounterCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = m.Counter(ctx, ports.CounterFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMetricsStore_ProcessingIncrDecr(t *testing.T) {
	m, _ := newTestMetrics(t)
	ctx := context.Background()

	require.NoError(t, m.IncrProcessing(ctx))
	require.NoError(t, m.IncrProcessing(ctx))
	require.NoError(t, m.DecrProcessing(ctx))

	n, err := m.Counter(ctx, ports.CounterProcessing)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMetricsStore_HeartbeatTTL(t *testing.T) {
	m, s := newTestMetrics(t)
	ctx := context.Background()

	// No heartbeat yet -> stopped.
	status, err := m.WorkerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stopped", status)

	require.NoError(t, m.Heartbeat(ctx))
	status, err = m.WorkerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "running", status)

	// Heartbeat lapses after its TTL.
	s.FastForward(16 * time.Second)
	status, err = m.WorkerStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stopped", status)
}
