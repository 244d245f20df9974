package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WebhookStatus represents the delivery state of a webhook record.
type WebhookStatus string

const (
	WebhookStatusPending WebhookStatus = "pending"
	WebhookStatusSuccess WebhookStatus = "success"
	WebhookStatusFailed  WebhookStatus = "failed"
)

// Lifecycle event names carried in webhook payloads.
const (
	EventPaymentCreated  = "payment.created"
	EventPaymentPending  = "payment.pending"
	EventPaymentSuccess  = "payment.success"
	EventPaymentFailed   = "payment.failed"
	EventRefundCreated   = "refund.created"
	EventRefundProcessed = "refund.processed"
)

// WebhookDeliveryMaxAttempts is the cap after which a record becomes
// terminally failed.
const WebhookDeliveryMaxAttempts = 5

// WebhookLog records one webhook delivery and its retry state. The payload
// is snapshotted at enqueue time and never recomputed, so a delivery always
// reflects the entity state at the moment the event occurred.
type WebhookLog struct {
	ID            uuid.UUID     `json:"id"`
	MerchantID    uuid.UUID     `json:"merchant_id"`
	Event         string        `json:"event"`
	Payload       []byte        `json:"payload"` // JSON snapshot
	Status        WebhookStatus `json:"status"`
	Attempts      int           `json:"attempts"`
	LastAttemptAt *time.Time    `json:"last_attempt_at,omitempty"`
	NextRetryAt   *time.Time    `json:"next_retry_at,omitempty"`
	ResponseCode  *int          `json:"response_code,omitempty"`
	ResponseBody  *string       `json:"response_body,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsTerminal returns true once the record can never be attempted again.
func (w *WebhookLog) IsTerminal() bool {
	return w.Status == WebhookStatusSuccess || w.Status == WebhookStatusFailed
}

// WebhookEnvelope is the JSON body posted to the merchant endpoint.
type WebhookEnvelope struct {
	Event     string                    `json:"event"`
	Timestamp int64                     `json:"timestamp"` // Unix seconds
	Data      map[string]map[string]any `json:"data"`
}

// NewWebhookEnvelope wraps an event body under its entity key: "refund" for
// refund.* events, "payment" otherwise.
func NewWebhookEnvelope(event string, body map[string]any, now time.Time) WebhookEnvelope {
	key := "payment"
	if strings.HasPrefix(event, "refund") {
		key = "refund"
	}
	return WebhookEnvelope{
		Event:     event,
		Timestamp: now.Unix(),
		Data:      map[string]map[string]any{key: body},
	}
}
