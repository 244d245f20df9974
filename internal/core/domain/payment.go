package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment represents a payment created by a merchant. The API layer writes
// only the initial pending state; the payment worker owns the terminal
// transitions.
type Payment struct {
	ID               string        `json:"id"` // pay_<16 alphanumerics>
	MerchantID       uuid.UUID     `json:"merchant_id"`
	OrderID          string        `json:"order_id"`
	Amount           int64         `json:"amount"` // Smallest currency unit
	Currency         string        `json:"currency"`
	Method           string        `json:"method"` // upi, card, netbanking, wallet
	VPA              *string       `json:"vpa,omitempty"`
	CardLast4        *string       `json:"card_last4,omitempty"`
	Status           PaymentStatus `json:"status"`
	ErrorCode        *string       `json:"error_code,omitempty"`
	ErrorDescription *string       `json:"error_description,omitempty"`
	Captured         bool          `json:"captured"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`
}

// IsTerminal returns true once the worker has decided an outcome.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusSuccess ||
		p.Status == PaymentStatusFailed ||
		p.Status == PaymentStatusRefunded
}

// IsRefundable returns true if refunds may be created against this payment.
func (p *Payment) IsRefundable() bool {
	return p.Status == PaymentStatusSuccess
}

// IsCapturable returns true if the payment can be captured.
func (p *Payment) IsCapturable() bool {
	return p.Status == PaymentStatusSuccess && !p.Captured
}
