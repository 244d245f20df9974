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

// Error details written on a declined payment.
const (
	paymentFailureCode        = "PMT_FAILED"
	paymentFailureDescription = "Payment authorization failed"
)

// PaymentWorker consumes the payment-processing queue and drives pending
// payments to their terminal state.
type PaymentWorker struct {
	queue        ports.JobQueue
	metrics      ports.MetricsStore
	paymentRepo  ports.PaymentRepository
	merchantRepo ports.MerchantRepository
	webhookSvc   ports.WebhookService
	sim          *Simulator
	cfg          config.WorkerConfig
	log          zerolog.Logger
}

// NewPaymentWorker creates a new PaymentWorker.
func NewPaymentWorker(
	queue ports.JobQueue,
	metrics ports.MetricsStore,
	paymentRepo ports.PaymentRepository,
	merchantRepo ports.MerchantRepository,
	webhookSvc ports.WebhookService,
	sim *Simulator,
	cfg config.WorkerConfig,
	log zerolog.Logger,
) *PaymentWorker {
	return &PaymentWorker{
		queue:        queue,
		metrics:      metrics,
		paymentRepo:  paymentRepo,
		merchantRepo: merchantRepo,
		webhookSvc:   webhookSvc,
		sim:          sim,
		cfg:          cfg,
		log:          log,
	}
}

// Run blocks consuming jobs until ctx is cancelled.
func (w *PaymentWorker) Run(ctx context.Context) {
	consumeLoop(ctx, "payment", domain.QueuePaymentProcess, w.queue, w.metrics, w.cfg.PopTimeout, w.log, w.process)
}

func (w *PaymentWorker) process(ctx context.Context, job *domain.Job) error {
	payment, err := w.paymentRepo.GetByID(ctx, job.PaymentID)
	if err != nil {
		return fmt.Errorf("get payment: %w", err)
	}
	if payment == nil {
		w.log.Warn().Str("payment_id", job.PaymentID).Msg("payment not found for job, discarding")
		return nil
	}
	if payment.IsTerminal() {
		// Duplicate pop; the first delivery already decided the outcome.
		w.log.Debug().Str("payment_id", payment.ID).Msg("payment already terminal, skipping")
		return nil
	}

	merchant, err := w.merchantRepo.GetByID(ctx, payment.MerchantID)
	if err != nil {
		return fmt.Errorf("get merchant: %w", err)
	}
	if merchant == nil {
		w.log.Warn().Str("payment_id", payment.ID).Msg("merchant missing for payment, discarding")
		return nil
	}

	if err := sleepCtx(ctx, w.sim.PaymentDelay()); err != nil {
		return err
	}

	now := time.Now().UTC()
	success := w.sim.PaymentSucceeds(payment.Method)
	if success {
		payment.Status = domain.PaymentStatusSuccess
		payment.ErrorCode = nil
		payment.ErrorDescription = nil
	} else {
		code := paymentFailureCode
		desc := paymentFailureDescription
		payment.Status = domain.PaymentStatusFailed
		payment.ErrorCode = &code
		payment.ErrorDescription = &desc
	}
	payment.UpdatedAt = &now

	if err := w.paymentRepo.Update(ctx, payment); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	event := domain.EventPaymentSuccess
	if !success {
		event = domain.EventPaymentFailed
	}
	if err := w.webhookSvc.Record(ctx, merchant, event, domain.PaymentEventBody(payment)); err != nil {
		return fmt.Errorf("record webhook: %w", err)
	}

	w.log.Info().
		Str("payment_id", payment.ID).
		Str("status", string(payment.Status)).
		Msg("payment processed")

	return nil
}
