package worker

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically re-enqueues pending webhook records whose scheduled
// retry time has passed. This is the recovery path for deliveries whose
// queue job was lost (process restart between enqueue and pop) as well as
// the mechanism that makes backoff schedules actually fire.
type Sweeper struct {
	webhookRepo ports.WebhookLogRepository
	queue       ports.JobQueue
	interval    time.Duration
	log         zerolog.Logger
	cron        *cron.Cron
}

// NewSweeper creates a new Sweeper running at the given interval.
func NewSweeper(webhookRepo ports.WebhookLogRepository, queue ports.JobQueue, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		webhookRepo: webhookRepo,
		queue:       queue,
		interval:    interval,
		log:         log,
	}
}

// Start schedules the sweep and returns immediately.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.Sweep(ctx)
	}); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	c.Start()
	s.cron = c
	s.log.Info().Dur("interval", s.interval).Msg("webhook sweep started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Sweep enqueues one delivery job for every due pending record. Enqueued
// duplicates are harmless: AttemptDelivery skips terminal records and the
// next sweep only sees records still pending.
func (s *Sweeper) Sweep(ctx context.Context) {
	due, err := s.webhookRepo.ListDue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("list due webhooks failed")
		return
	}

	for _, record := range due {
		if err := s.queue.Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(record.ID.String())); err != nil {
			s.log.Error().Err(err).Str("webhook_id", record.ID.String()).Msg("enqueue due webhook failed")
		}
	}

	if len(due) > 0 {
		s.log.Debug().Int("count", len(due)).Msg("due webhooks re-enqueued")
	}
}
