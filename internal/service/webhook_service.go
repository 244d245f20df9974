package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebhookServiceImpl implements ports.WebhookService. It owns webhook
// record bookkeeping; the actual HTTP delivery lives in the worker.
type WebhookServiceImpl struct {
	webhookRepo ports.WebhookLogRepository
	queue       ports.JobQueue
	log         zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl.
func NewWebhookService(webhookRepo ports.WebhookLogRepository, queue ports.JobQueue, log zerolog.Logger) *WebhookServiceImpl {
	return &WebhookServiceImpl{webhookRepo: webhookRepo, queue: queue, log: log}
}

// Record snapshots the event payload, persists a pending delivery record
// and enqueues one delivery job. Merchants without a configured webhook
// endpoint produce no record at all.
//
// The snapshot is taken here and never recomputed: retries deliver the
// entity state as of the event, not as of the retry.
func (s *WebhookServiceImpl) Record(ctx context.Context, merchant *domain.Merchant, event string, body map[string]any) error {
	if !merchant.WebhookConfigured() {
		return nil
	}

	now := time.Now().UTC()
	envelope := domain.NewWebhookEnvelope(event, body, now)
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	record := &domain.WebhookLog{
		ID:          uuid.New(),
		MerchantID:  merchant.ID,
		Event:       event,
		Payload:     payload,
		Status:      domain.WebhookStatusPending,
		Attempts:    0,
		NextRetryAt: &now,
		CreatedAt:   now,
	}

	if err := s.webhookRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("create webhook log: %w", err)
	}

	if err := s.queue.Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(record.ID.String())); err != nil {
		// The record stays pending with next_retry_at set, so the due-retry
		// sweep picks it up even when the enqueue is lost.
		s.log.Warn().Err(err).Str("webhook_id", record.ID.String()).Msg("enqueue webhook delivery failed")
	}

	s.log.Info().
		Str("webhook_id", record.ID.String()).
		Str("event", event).
		Str("merchant_id", merchant.ID.String()).
		Msg("webhook recorded")

	return nil
}

// List returns a page of delivery records for the merchant, newest first.
func (s *WebhookServiceImpl) List(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]domain.WebhookLog, int64, error) {
	logs, total, err := s.webhookRepo.ListByMerchant(ctx, merchantID, limit, offset)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list webhook logs: %w", err))
	}
	return logs, total, nil
}

// RetryNow resets a delivery record to a fresh pending state and enqueues
// exactly one delivery job, bypassing the backoff schedule. Works on any
// record, including terminally failed ones.
func (s *WebhookServiceImpl) RetryNow(ctx context.Context, merchantID uuid.UUID, webhookID uuid.UUID) (*domain.WebhookLog, error) {
	record, err := s.webhookRepo.GetByID(ctx, webhookID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get webhook log: %w", err))
	}
	if record == nil || record.MerchantID != merchantID {
		return nil, apperror.ErrNotFound("Webhook")
	}

	record.Status = domain.WebhookStatusPending
	record.Attempts = 0
	record.NextRetryAt = nil

	if err := s.webhookRepo.Update(ctx, record); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reset webhook log: %w", err))
	}

	if err := s.queue.Enqueue(ctx, domain.QueueWebhookDeliver, domain.WebhookJob(record.ID.String())); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("enqueue webhook delivery: %w", err))
	}

	s.log.Info().Str("webhook_id", webhookID.String()).Msg("webhook manually retried")

	return record, nil
}
