package domain

// Queue names. Each queue carries one job shape and one consumer owns it.
const (
	QueuePaymentProcess = "queue:payment.process"
	QueueRefundProcess  = "queue:refund.process"
	QueueWebhookDeliver = "queue:webhook.deliver"
)

// Job is the minimal reference placed on a queue. Exactly one field is set,
// matching the queue it travels on. No business payload travels in the
// queue; consumers re-fetch authoritative state by id.
//
// Delivery guarantee is at-least-once: consumers must tolerate duplicate
// pops by re-reading current entity state before mutating.
type Job struct {
	PaymentID string `json:"paymentId,omitempty"`
	RefundID  string `json:"refundId,omitempty"`
	WebhookID string `json:"webhookId,omitempty"`
}

// PaymentJob builds a job for the payment-processing queue.
func PaymentJob(paymentID string) Job { return Job{PaymentID: paymentID} }

// RefundJob builds a job for the refund-processing queue.
func RefundJob(refundID string) Job { return Job{RefundID: refundID} }

// WebhookJob builds a job for the webhook-delivery queue.
func WebhookJob(webhookID string) Job { return Job{WebhookID: webhookID} }
