package domain

import (
	"time"

	"github.com/google/uuid"
)

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "ACTIVE"
	MerchantStatusSuspended MerchantStatus = "SUSPENDED"
)

// Merchant represents a registered merchant in the system.
type Merchant struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	APIKey           string         `json:"api_key"`
	APISecretHash    string         `json:"-"` // Argon2id, never exposed
	WebhookURL       *string        `json:"webhook_url,omitempty"`
	WebhookSecretEnc *string        `json:"-"` // AES-256-GCM encrypted, never exposed
	Status           MerchantStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsActive returns true if the merchant account is active.
func (m *Merchant) IsActive() bool {
	return m.Status == MerchantStatusActive
}

// WebhookConfigured returns true if the merchant can receive webhooks:
// both a delivery URL and a signing secret must be set.
func (m *Merchant) WebhookConfigured() bool {
	return m.WebhookURL != nil && *m.WebhookURL != "" &&
		m.WebhookSecretEnc != nil && *m.WebhookSecretEnc != ""
}
