package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyTTL is the fixed lifetime of an idempotency entry from creation.
const IdempotencyTTL = 24 * time.Hour

// IdempotencyEntry caches the response produced for a (merchant, client key)
// pair so that retried create calls are side-effect free. Write-once,
// read-many until expiry; a corrupt entry is evicted on read.
type IdempotencyEntry struct {
	Key        string    `json:"key"`
	MerchantID uuid.UUID `json:"merchant_id"`
	Response   []byte    `json:"response"` // Cached response JSON
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its lifetime at the given time.
func (e *IdempotencyEntry) Expired(now time.Time) bool {
	return e.ExpiresAt.Before(now)
}
