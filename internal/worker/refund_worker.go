package worker

import (
	"context"
	"fmt"
	"time"

	"payment-gateway-sim/config"
	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"

	"github.com/rs/zerolog"
)

// RefundWorker consumes the refund-processing queue. Refunds always
// succeed; a refund covering the full payment amount also flips the
// payment to refunded.
type RefundWorker struct {
	queue        ports.JobQueue
	metrics      ports.MetricsStore
	refundRepo   ports.RefundRepository
	paymentRepo  ports.PaymentRepository
	merchantRepo ports.MerchantRepository
	webhookSvc   ports.WebhookService
	sim          *Simulator
	cfg          config.WorkerConfig
	log          zerolog.Logger
}

// NewRefundWorker creates a new RefundWorker.
func NewRefundWorker(
	queue ports.JobQueue,
	metrics ports.MetricsStore,
	refundRepo ports.RefundRepository,
	paymentRepo ports.PaymentRepository,
	merchantRepo ports.MerchantRepository,
	webhookSvc ports.WebhookService,
	sim *Simulator,
	cfg config.WorkerConfig,
	log zerolog.Logger,
) *RefundWorker {
	return &RefundWorker{
		queue:        queue,
		metrics:      metrics,
		refundRepo:   refundRepo,
		paymentRepo:  paymentRepo,
		merchantRepo: merchantRepo,
		webhookSvc:   webhookSvc,
		sim:          sim,
		cfg:          cfg,
		log:          log,
	}
}

// Run blocks consuming jobs until ctx is cancelled.
func (w *RefundWorker) Run(ctx context.Context) {
	consumeLoop(ctx, "refund", domain.QueueRefundProcess, w.queue, w.metrics, w.cfg.PopTimeout, w.log, w.process)
}

func (w *RefundWorker) process(ctx context.Context, job *domain.Job) error {
	refund, err := w.refundRepo.GetByID(ctx, job.RefundID)
	if err != nil {
		return fmt.Errorf("get refund: %w", err)
	}
	if refund == nil {
		w.log.Warn().Str("refund_id", job.RefundID).Msg("refund not found for job, discarding")
		return nil
	}
	if refund.Status == domain.RefundStatusProcessed {
		w.log.Debug().Str("refund_id", refund.ID).Msg("refund already processed, skipping")
		return nil
	}

	payment, err := w.paymentRepo.GetByID(ctx, refund.PaymentID)
	if err != nil {
		return fmt.Errorf("get payment: %w", err)
	}
	if payment == nil {
		w.log.Warn().Str("refund_id", refund.ID).Msg("payment missing for refund, discarding")
		return nil
	}

	merchant, err := w.merchantRepo.GetByID(ctx, refund.MerchantID)
	if err != nil {
		return fmt.Errorf("get merchant: %w", err)
	}
	if merchant == nil {
		w.log.Warn().Str("refund_id", refund.ID).Msg("merchant missing for refund, discarding")
		return nil
	}

	if err := sleepCtx(ctx, w.sim.RefundDelay()); err != nil {
		return err
	}

	now := time.Now().UTC()
	refund.Status = domain.RefundStatusProcessed
	refund.ProcessedAt = &now

	if err := w.refundRepo.Update(ctx, refund); err != nil {
		return fmt.Errorf("update refund: %w", err)
	}

	if refund.Amount == payment.Amount {
		payment.Status = domain.PaymentStatusRefunded
		payment.UpdatedAt = &now
		if err := w.paymentRepo.Update(ctx, payment); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
	}

	if err := w.webhookSvc.Record(ctx, merchant, domain.EventRefundProcessed, domain.RefundEventBody(refund)); err != nil {
		return fmt.Errorf("record webhook: %w", err)
	}

	w.log.Info().
		Str("refund_id", refund.ID).
		Str("payment_id", refund.PaymentID).
		Msg("refund processed")

	return nil
}
