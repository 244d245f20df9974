// Package worker implements the async job-processing subsystem: the
// payment and refund processors, the webhook delivery engine and the
// due-retry sweep. Workers consume job references from Redis queues and
// re-fetch authoritative state before mutating, so duplicate pops are
// harmless.
package worker

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"

	"github.com/rs/zerolog"
)

// consumeLoop drives one queue consumer until ctx is cancelled. Every
// iteration refreshes the worker heartbeat, pops one job and routes it
// through handle. A handler failure increments the failed counter and the
// loop keeps going; nothing a single job does can kill the worker.
func consumeLoop(
	ctx context.Context,
	name, queueName string,
	queue ports.JobQueue,
	metrics ports.MetricsStore,
	popTimeout time.Duration,
	log zerolog.Logger,
	handle func(ctx context.Context, job *domain.Job) error,
) {
	log.Info().Str("worker", name).Str("queue", queueName).Msg("worker started")

	for {
		if ctx.Err() != nil {
			log.Info().Str("worker", name).Msg("worker stopped")
			return
		}

		if err := metrics.Heartbeat(ctx); err != nil {
			log.Warn().Err(err).Str("worker", name).Msg("heartbeat failed")
		}

		job, err := queue.DequeueBlocking(ctx, queueName, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Str("worker", name).Msg("dequeue failed")
			// Back off so a broken Redis connection does not spin the loop.
			_ = sleepCtx(ctx, time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := metrics.IncrProcessing(ctx); err != nil {
			log.Warn().Err(err).Str("worker", name).Msg("incr processing failed")
		}

		if err := runJob(ctx, job, handle); err != nil {
			log.Error().Err(err).Str("worker", name).Msg("job failed")
			if merr := metrics.IncrFailed(ctx); merr != nil {
				log.Warn().Err(merr).Str("worker", name).Msg("incr failed counter failed")
			}
		} else {
			if merr := metrics.IncrCompleted(ctx); merr != nil {
				log.Warn().Err(merr).Str("worker", name).Msg("incr completed failed")
			}
		}

		if err := metrics.DecrProcessing(ctx); err != nil {
			log.Warn().Err(err).Str("worker", name).Msg("decr processing failed")
		}
	}
}

// runJob invokes handle with a panic guard.
func runJob(ctx context.Context, job *domain.Job, handle func(ctx context.Context, job *domain.Job) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return handle(ctx, job)
}

// sleepCtx sleeps for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
