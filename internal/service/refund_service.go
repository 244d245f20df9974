package service

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"
	"payment-gateway-sim/pkg/idgen"

	"github.com/rs/zerolog"
)

// RefundServiceImpl implements ports.RefundService.
type RefundServiceImpl struct {
	refundRepo  ports.RefundRepository
	paymentRepo ports.PaymentRepository
	queue       ports.JobQueue
	webhookSvc  ports.WebhookService
	log         zerolog.Logger
}

// NewRefundService creates a new RefundServiceImpl.
func NewRefundService(
	refundRepo ports.RefundRepository,
	paymentRepo ports.PaymentRepository,
	queue ports.JobQueue,
	webhookSvc ports.WebhookService,
	log zerolog.Logger,
) *RefundServiceImpl {
	return &RefundServiceImpl{
		refundRepo:  refundRepo,
		paymentRepo: paymentRepo,
		queue:       queue,
		webhookSvc:  webhookSvc,
		log:         log,
	}
}

// Create validates a refund against the payment and the cumulative refund
// total, persists it pending and enqueues a processing job. All validation
// happens before any enqueue; a rejected refund leaves no trace.
func (s *RefundServiceImpl) Create(ctx context.Context, merchant *domain.Merchant, paymentID string, input ports.CreateRefundInput) (*domain.Refund, error) {
	if input.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payment: %w", err))
	}
	if payment == nil || payment.MerchantID != merchant.ID {
		return nil, apperror.ErrNotFound("Payment")
	}
	if !payment.IsRefundable() {
		return nil, apperror.ErrNotRefundable()
	}

	existing, err := s.refundRepo.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list refunds: %w", err))
	}
	var refunded int64
	for _, r := range existing {
		refunded += r.Amount
	}
	if refunded+input.Amount > payment.Amount {
		return nil, apperror.ErrRefundExceedsAvailable()
	}

	refund := &domain.Refund{
		ID:         idgen.NewRefundID(),
		PaymentID:  payment.ID,
		MerchantID: merchant.ID,
		Amount:     input.Amount,
		Reason:     input.Reason,
		Status:     domain.RefundStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create refund: %w", err))
	}

	if err := s.queue.Enqueue(ctx, domain.QueueRefundProcess, domain.RefundJob(refund.ID)); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("enqueue refund job: %w", err))
	}

	if err := s.webhookSvc.Record(ctx, merchant, domain.EventRefundCreated, domain.RefundEventBody(refund)); err != nil {
		s.log.Warn().Err(err).Str("refund_id", refund.ID).Msg("record webhook failed")
	}

	s.log.Info().
		Str("refund_id", refund.ID).
		Str("payment_id", payment.ID).
		Int64("amount", refund.Amount).
		Msg("refund created")

	return refund, nil
}
