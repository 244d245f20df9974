package redis

import (
	"context"
	"testing"
	"time"

	"payment-gateway-sim/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*JobQueue, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewJobQueue(client), s
}

func TestJobQueue_FIFO(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, domain.QueuePaymentProcess, domain.PaymentJob("pay_first")))
	require.NoError(t, q.Enqueue(ctx, domain.QueuePaymentProcess, domain.PaymentJob("pay_second")))
	require.NoError(t, q.Enqueue(ctx, domain.QueuePaymentProcess, domain.PaymentJob("pay_third")))

	depth, err := q.Depth(ctx, domain.QueuePaymentProcess)
	require.NoError(t, err)
	assert.Equal(t, int64(3), depth)

	for _, want := range []string{"pay_first", "pay_second", "pay_third"} {
		job, err := q.DequeueBlocking(ctx, domain.QueuePaymentProcess, time.Second)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, want, job.PaymentID)
	}

	depth, err = q.Depth(ctx, domain.QueuePaymentProcess)
	require.NoError(t, err)
	assert.Zero(t, depth)
}

func TestJobQueue_DequeueBlocking_EmptyTimesOut(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	start := time.Now()
	job, err := q.DequeueBlocking(ctx, domain.QueueRefundProcess, 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, job, "empty queue should return a miss, not an error")
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestJobQueue_NoCrossQueueLeakage(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob("a9c9e2ab-1111-4f3c-9d58-000000000001")))

	job, err := q.DequeueBlocking(ctx, domain.QueuePaymentProcess, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, job)

	job, err = q.DequeueBlocking(ctx, domain.QueueWebhookDeliver, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "a9c9e2ab-1111-4f3c-9d58-000000000001", job.WebhookID)
	assert.Empty(t, job.PaymentID)
	assert.Empty(t, job.RefundID)
}

func TestJobQueue_WireFormat(t *testing.T) {
	q, s := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, domain.QueueRefundProcess, domain.RefundJob("rfnd_abc123")))

	// The queue entry is a flat JSON object with exactly the one id field.
	raw, err := s.Lpop(domain.QueueRefundProcess)
	require.NoError(t, err)
	assert.JSONEq(t, `{"refundId":"rfnd_abc123"}`, raw)
}

func TestJobQueue_EnqueueBumpsPendingCounter(t *testing.T) {
	q, s := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, domain.QueuePaymentProcess, domain.PaymentJob("pay_x")))
	require.NoError(t, q.Enqueue(ctx, domain.QueuePaymentProcess, domain.PaymentJob("pay_y")))

	v, err := s.Get("metrics:jobs:pending")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
