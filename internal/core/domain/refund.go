package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus represents the lifecycle state of a refund.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
)

// Refund represents a full or partial refund against a payment.
type Refund struct {
	ID          string       `json:"id"` // rfnd_<16 alphanumerics>
	PaymentID   string       `json:"payment_id"`
	MerchantID  uuid.UUID    `json:"merchant_id"`
	Amount      int64        `json:"amount"`
	Reason      *string      `json:"reason,omitempty"`
	Status      RefundStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
}
