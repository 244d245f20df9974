package ports

import (
	"context"
	"time"

	"payment-gateway-sim/internal/core/domain"

	"github.com/google/uuid"
)

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Merchant, error)
	Update(ctx context.Context, merchant *domain.Merchant) error
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// RefundRepository defines persistence operations for refunds.
type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) error
	GetByID(ctx context.Context, id string) (*domain.Refund, error)
	Update(ctx context.Context, refund *domain.Refund) error
	ListByPaymentID(ctx context.Context, paymentID string) ([]domain.Refund, error)
}

// WebhookLogRepository defines persistence for webhook delivery records.
type WebhookLogRepository interface {
	Create(ctx context.Context, log *domain.WebhookLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookLog, error)
	Update(ctx context.Context, log *domain.WebhookLog) error
	ListByMerchant(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]domain.WebhookLog, int64, error)
	// ListDue returns pending records whose next_retry_at is at or before now.
	ListDue(ctx context.Context, now time.Time) ([]domain.WebhookLog, error)
}

// IdempotencyRepository defines persistence for idempotency entries, keyed
// by the composite (merchant_id, key).
type IdempotencyRepository interface {
	Get(ctx context.Context, merchantID uuid.UUID, key string) (*domain.IdempotencyEntry, error)
	Save(ctx context.Context, entry *domain.IdempotencyEntry) error
	Delete(ctx context.Context, merchantID uuid.UUID, key string) error
}
