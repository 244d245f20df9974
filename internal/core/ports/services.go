package ports

import (
	"context"
	"encoding/json"
	"time"

	"payment-gateway-sim/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption of secrets
// at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	// Sign returns the lowercase hex HMAC-SHA256 of payload.
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// HashService handles API secret hashing (Argon2id).
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

// TokenService handles JWT token operations for dashboard access.
type TokenService interface {
	Generate(merchantID uuid.UUID, apiKey string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	MerchantID uuid.UUID
	APIKey     string
}

// IdempotencyCache is the Redis fast path in front of the durable
// idempotency store.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// --- Service Ports (Business Logic) ---

// CreatePaymentInput holds validated input for payment creation.
type CreatePaymentInput struct {
	OrderID   string
	Amount    int64
	Currency  string
	Method    string
	VPA       *string
	CardLast4 *string
}

// PaymentService creates payments and hands them to the async pipeline.
type PaymentService interface {
	Create(ctx context.Context, merchant *domain.Merchant, input CreatePaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, merchantID uuid.UUID, paymentID string) (*domain.Payment, error)
	Capture(ctx context.Context, merchant *domain.Merchant, paymentID string, amount *int64) (*domain.Payment, error)
}

// CreateRefundInput holds validated input for refund creation.
type CreateRefundInput struct {
	Amount int64
	Reason *string
}

// RefundService creates refunds against successful payments.
type RefundService interface {
	Create(ctx context.Context, merchant *domain.Merchant, paymentID string, input CreateRefundInput) (*domain.Refund, error)
}

// WebhookService owns webhook record bookkeeping: snapshotting payloads,
// enqueueing delivery jobs and operator-level retries.
type WebhookService interface {
	// Record snapshots the event payload, persists a pending record and
	// enqueues a delivery job. No-op if the merchant has no webhook URL.
	Record(ctx context.Context, merchant *domain.Merchant, event string, body map[string]any) error
	List(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]domain.WebhookLog, int64, error)
	// RetryNow resets a record to attempts=0/pending and enqueues exactly
	// one delivery job, bypassing backoff. Operator override.
	RetryNow(ctx context.Context, merchantID uuid.UUID, webhookID uuid.UUID) (*domain.WebhookLog, error)
}

// IdempotencyService makes repeated create calls side-effect free within
// the fixed TTL.
type IdempotencyService interface {
	// Lookup returns the cached response, or nil on miss. Expired or
	// corrupt entries are evicted and treated as misses.
	Lookup(ctx context.Context, merchantID uuid.UUID, key string) (json.RawMessage, error)
	// Save stores the response with the fixed TTL, overwriting any prior
	// entry for the composite key.
	Save(ctx context.Context, merchantID uuid.UUID, key string, response any) error
}

// RegisterInput holds input for merchant registration.
type RegisterInput struct {
	Name          string
	Email         string
	WebhookURL    *string
	WebhookSecret *string
}

// RegisterResult holds the credentials shown once at registration.
type RegisterResult struct {
	MerchantID uuid.UUID
	APIKey     string
	APISecret  string // Plaintext, shown only at registration
}

// AuthService defines merchant authentication.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	// Authenticate resolves and verifies an API key/secret pair.
	Authenticate(ctx context.Context, apiKey, apiSecret string) (*domain.Merchant, error)
	// IssueToken exchanges an API key/secret pair for a dashboard JWT.
	IssueToken(ctx context.Context, apiKey, apiSecret string) (string, time.Time, error)
}
