package domain

import "time"

// PaymentEventBody builds the payment entity body embedded in webhook
// payloads.
func PaymentEventBody(p *Payment) map[string]any {
	body := map[string]any{
		"id":         p.ID,
		"order_id":   p.OrderID,
		"amount":     p.Amount,
		"currency":   p.Currency,
		"method":     p.Method,
		"status":     string(p.Status),
		"captured":   p.Captured,
		"created_at": p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.ErrorCode != nil {
		body["error_code"] = *p.ErrorCode
	}
	if p.ErrorDescription != nil {
		body["error_description"] = *p.ErrorDescription
	}
	return body
}

// RefundEventBody builds the refund entity body embedded in webhook
// payloads.
func RefundEventBody(r *Refund) map[string]any {
	body := map[string]any{
		"id":         r.ID,
		"payment_id": r.PaymentID,
		"amount":     r.Amount,
		"status":     string(r.Status),
		"created_at": r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.Reason != nil {
		body["reason"] = *r.Reason
	}
	if r.ProcessedAt != nil {
		body["processed_at"] = r.ProcessedAt.UTC().Format(time.RFC3339)
	}
	return body
}
