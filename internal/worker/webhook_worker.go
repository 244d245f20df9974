package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"payment-gateway-sim/config"
	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxResponseBodyBytes caps what we keep of a merchant endpoint response.
const maxResponseBodyBytes = 4 << 10

// HTTPClient is the subset of http.Client the delivery engine needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewWebhookHTTPClient builds the http.Client used for deliveries, with
// separate connect and response-header timeouts.
func NewWebhookHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			ResponseHeaderTimeout: readTimeout,
		},
	}
}

// WebhookWorker is the delivery engine. AttemptDelivery is the single
// entry point for both triggers: the queue consumer and the due-retry
// sweep. It is idempotent, so a record reached by both triggers at once is
// delivered at most once past its terminal state.
type WebhookWorker struct {
	queue        ports.JobQueue
	metrics      ports.MetricsStore
	webhookRepo  ports.WebhookLogRepository
	merchantRepo ports.MerchantRepository
	encSvc       ports.EncryptionService
	signer       ports.SignatureService
	client       HTTPClient
	cfg          config.WorkerConfig
	log          zerolog.Logger
}

// NewWebhookWorker creates a new WebhookWorker.
func NewWebhookWorker(
	queue ports.JobQueue,
	metrics ports.MetricsStore,
	webhookRepo ports.WebhookLogRepository,
	merchantRepo ports.MerchantRepository,
	encSvc ports.EncryptionService,
	signer ports.SignatureService,
	client HTTPClient,
	cfg config.WorkerConfig,
	log zerolog.Logger,
) *WebhookWorker {
	return &WebhookWorker{
		queue:        queue,
		metrics:      metrics,
		webhookRepo:  webhookRepo,
		merchantRepo: merchantRepo,
		encSvc:       encSvc,
		signer:       signer,
		client:       client,
		cfg:          cfg,
		log:          log,
	}
}

// Run blocks consuming jobs until ctx is cancelled.
func (w *WebhookWorker) Run(ctx context.Context) {
	consumeLoop(ctx, "webhook", domain.QueueWebhookDeliver, w.queue, w.metrics, w.cfg.PopTimeout, w.log, w.process)
}

func (w *WebhookWorker) process(ctx context.Context, job *domain.Job) error {
	id, err := uuid.Parse(job.WebhookID)
	if err != nil {
		return fmt.Errorf("parse webhook id %q: %w", job.WebhookID, err)
	}
	return w.AttemptDelivery(ctx, id)
}

// AttemptDelivery makes one delivery attempt for the record. Terminal
// records are skipped, so duplicate jobs (queue + sweep overlap, manual
// retries) cause no extra requests. The posted body is the payload
// snapshot taken when the event was recorded, signed with the merchant's
// decrypted webhook secret.
func (w *WebhookWorker) AttemptDelivery(ctx context.Context, webhookID uuid.UUID) error {
	record, err := w.webhookRepo.GetByID(ctx, webhookID)
	if err != nil {
		return fmt.Errorf("get webhook log: %w", err)
	}
	if record == nil {
		w.log.Warn().Str("webhook_id", webhookID.String()).Msg("webhook log not found, discarding")
		return nil
	}
	if record.IsTerminal() {
		return nil
	}

	merchant, err := w.merchantRepo.GetByID(ctx, record.MerchantID)
	if err != nil {
		return fmt.Errorf("get merchant: %w", err)
	}
	if merchant == nil {
		w.log.Warn().Str("webhook_id", webhookID.String()).Msg("merchant missing for webhook, discarding")
		return nil
	}
	if !merchant.WebhookConfigured() {
		// No endpoint or secret to deliver with: terminal failure, the
		// attempt counter stays untouched.
		msg := "webhook not configured"
		record.Status = domain.WebhookStatusFailed
		record.ResponseBody = &msg
		record.NextRetryAt = nil
		if err := w.webhookRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("update webhook log: %w", err)
		}
		return nil
	}

	secret, err := w.encSvc.Decrypt(*merchant.WebhookSecretEnc)
	if err != nil {
		return fmt.Errorf("decrypt webhook secret: %w", err)
	}

	now := time.Now().UTC()
	record.Attempts++
	record.LastAttemptAt = &now

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *merchant.WebhookURL, bytes.NewReader(record.Payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", w.signer.Sign(secret, string(record.Payload)))

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Warn().Err(err).
			Str("webhook_id", webhookID.String()).
			Int("attempt", record.Attempts).
			Msg("webhook delivery failed")
		w.scheduleRetry(record, now)
	} else {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
		resp.Body.Close()

		code := resp.StatusCode
		bodyStr := string(body)
		record.ResponseCode = &code
		record.ResponseBody = &bodyStr

		if code >= 200 && code < 300 {
			record.Status = domain.WebhookStatusSuccess
			record.NextRetryAt = nil
			w.log.Info().
				Str("webhook_id", webhookID.String()).
				Int("attempt", record.Attempts).
				Msg("webhook delivered")
		} else {
			w.scheduleRetry(record, now)
		}
	}

	if err := w.webhookRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("update webhook log: %w", err)
	}
	return nil
}

// scheduleRetry moves a record past a failed attempt: terminal once the
// attempt cap is reached, otherwise pending with the next slot from the
// backoff table.
func (w *WebhookWorker) scheduleRetry(record *domain.WebhookLog, now time.Time) {
	if record.Attempts >= domain.WebhookDeliveryMaxAttempts {
		record.Status = domain.WebhookStatusFailed
		record.NextRetryAt = nil
		w.log.Warn().
			Str("webhook_id", record.ID.String()).
			Int("attempts", record.Attempts).
			Msg("webhook delivery exhausted")
		return
	}
	next := now.Add(retryDelay(record.Attempts, w.cfg.AcceleratedRetries))
	record.Status = domain.WebhookStatusPending
	record.NextRetryAt = &next
}
