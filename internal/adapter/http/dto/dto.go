package dto

// RegisterRequest is the request body for merchant registration.
type RegisterRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Email         string  `json:"email" binding:"required,email,max=255"`
	WebhookURL    *string `json:"webhook_url,omitempty" binding:"omitempty,safe_url,max=2048"`
	WebhookSecret *string `json:"webhook_secret,omitempty" binding:"omitempty,min=8,max=128"`
}

// RegisterResponse carries the credentials shown once at registration.
type RegisterResponse struct {
	MerchantID string `json:"merchant_id"`
	APIKey     string `json:"api_key"`
	APISecret  string `json:"api_secret"`
}

// TokenRequest is the request body for exchanging API credentials for a JWT.
type TokenRequest struct {
	APIKey    string `json:"api_key" binding:"required"`
	APISecret string `json:"api_secret" binding:"required"`
}

// TokenResponse is the response body for a successful token exchange.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreatePaymentRequest is the request body for payment creation.
type CreatePaymentRequest struct {
	OrderID   string  `json:"order_id" binding:"required,safe_id,max=100"`
	Amount    int64   `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency" binding:"required,len=3"`
	Method    string  `json:"method" binding:"required,oneof=upi card netbanking wallet"`
	VPA       *string `json:"vpa,omitempty" binding:"omitempty,max=100"`
	CardLast4 *string `json:"card_last4,omitempty" binding:"omitempty,len=4,numeric"`
}

// CapturePaymentRequest is the request body for payment capture. A nil
// amount captures the full authorized amount.
type CapturePaymentRequest struct {
	Amount *int64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

// CreateRefundRequest is the request body for refund creation.
type CreateRefundRequest struct {
	Amount int64   `json:"amount" binding:"required,gt=0"`
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=255"`
}

// PaymentResponse is the response body for payment results.
type PaymentResponse struct {
	ID               string  `json:"id"`
	OrderID          string  `json:"order_id"`
	Amount           int64   `json:"amount"`
	Currency         string  `json:"currency"`
	Method           string  `json:"method"`
	VPA              *string `json:"vpa,omitempty"`
	CardLast4        *string `json:"card_last4,omitempty"`
	Status           string  `json:"status"`
	ErrorCode        *string `json:"error_code,omitempty"`
	ErrorDescription *string `json:"error_description,omitempty"`
	Captured         bool    `json:"captured"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

// RefundResponse is the response body for refund results.
type RefundResponse struct {
	ID          string  `json:"id"`
	PaymentID   string  `json:"payment_id"`
	Amount      int64   `json:"amount"`
	Reason      *string `json:"reason,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// WebhookLogResponse is one delivery record in the webhook listing.
type WebhookLogResponse struct {
	ID            string  `json:"id"`
	Event         string  `json:"event"`
	Status        string  `json:"status"`
	Attempts      int     `json:"attempts"`
	LastAttemptAt *string `json:"last_attempt_at,omitempty"`
	NextRetryAt   *string `json:"next_retry_at,omitempty"`
	ResponseCode  *int    `json:"response_code,omitempty"`
	ResponseBody  *string `json:"response_body,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// WebhookListResponse wraps a paginated webhook listing.
type WebhookListResponse struct {
	Items  []WebhookLogResponse `json:"items"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}
