package service

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"
	"payment-gateway-sim/pkg/idgen"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentServiceImpl implements ports.PaymentService. Create writes only
// the initial pending state and hands the payment to the async pipeline;
// the worker owns the terminal transition.
type PaymentServiceImpl struct {
	paymentRepo ports.PaymentRepository
	queue       ports.JobQueue
	webhookSvc  ports.WebhookService
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	paymentRepo ports.PaymentRepository,
	queue ports.JobQueue,
	webhookSvc ports.WebhookService,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		queue:       queue,
		webhookSvc:  webhookSvc,
		log:         log,
	}
}

// Create persists a pending payment, enqueues a processing job and records
// the payment.created and payment.pending lifecycle events.
func (s *PaymentServiceImpl) Create(ctx context.Context, merchant *domain.Merchant, input ports.CreatePaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	payment := &domain.Payment{
		ID:         idgen.NewPaymentID(),
		MerchantID: merchant.ID,
		OrderID:    input.OrderID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Method:     input.Method,
		VPA:        input.VPA,
		CardLast4:  input.CardLast4,
		Status:     domain.PaymentStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create payment: %w", err))
	}

	if err := s.queue.Enqueue(ctx, domain.QueuePaymentProcess, domain.PaymentJob(payment.ID)); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("enqueue payment job: %w", err))
	}

	s.recordEvent(ctx, merchant, domain.EventPaymentCreated, payment)
	s.recordEvent(ctx, merchant, domain.EventPaymentPending, payment)

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("merchant_id", merchant.ID.String()).
		Int64("amount", payment.Amount).
		Str("method", payment.Method).
		Msg("payment created")

	return payment, nil
}

// Get fetches a payment, scoped to the owning merchant.
func (s *PaymentServiceImpl) Get(ctx context.Context, merchantID uuid.UUID, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment: %w", err))
	}
	if payment == nil || payment.MerchantID != merchantID {
		return nil, apperror.ErrNotFound("Payment")
	}
	return payment, nil
}

// Capture marks a successful payment as captured. A nil amount captures the
// full payment amount; a partial capture above the authorized amount is
// rejected.
func (s *PaymentServiceImpl) Capture(ctx context.Context, merchant *domain.Merchant, paymentID string, amount *int64) (*domain.Payment, error) {
	payment, err := s.Get(ctx, merchant.ID, paymentID)
	if err != nil {
		return nil, err
	}

	if !payment.IsCapturable() {
		return nil, apperror.ErrNotCapturable()
	}
	if amount != nil && *amount > payment.Amount {
		return nil, apperror.ErrCaptureExceedsAuthorized()
	}

	now := time.Now().UTC()
	payment.Captured = true
	payment.UpdatedAt = &now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("capture payment: %w", err))
	}

	s.recordEvent(ctx, merchant, domain.EventPaymentSuccess, payment)

	s.log.Info().Str("payment_id", payment.ID).Msg("payment captured")

	return payment, nil
}

// recordEvent hands a lifecycle event to the webhook service. A recording
// failure never fails the payment operation.
func (s *PaymentServiceImpl) recordEvent(ctx context.Context, merchant *domain.Merchant, event string, payment *domain.Payment) {
	if err := s.webhookSvc.Record(ctx, merchant, event, domain.PaymentEventBody(payment)); err != nil {
		s.log.Warn().Err(err).Str("event", event).Str("payment_id", payment.ID).Msg("record webhook failed")
	}
}
