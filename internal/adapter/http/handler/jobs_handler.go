package handler

import (
	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"
	"payment-gateway-sim/pkg/response"

	"github.com/gin-gonic/gin"
)

// JobsHandler exposes the async pipeline status.
type JobsHandler struct {
	queue   ports.JobQueue
	metrics ports.MetricsStore
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(queue ports.JobQueue, metrics ports.MetricsStore) *JobsHandler {
	return &JobsHandler{queue: queue, metrics: metrics}
}

// Status handles GET /api/v1/jobs/status. Pending is derived from live
// queue depths rather than the pending counter, so lost jobs never show
// as eternally pending.
func (h *JobsHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	var pending int64
	for _, q := range []string{domain.QueuePaymentProcess, domain.QueueRefundProcess, domain.QueueWebhookDeliver} {
		depth, err := h.queue.Depth(ctx, q)
		if err != nil {
			response.Error(c, apperror.InternalError(err))
			return
		}
		pending += depth
	}

	processing, err := h.metrics.Counter(ctx, ports.CounterProcessing)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	completed, err := h.metrics.Counter(ctx, ports.CounterCompleted)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	failed, err := h.metrics.Counter(ctx, ports.CounterFailed)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	worker, err := h.metrics.WorkerStatus(ctx)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, ports.JobMetrics{
		Pending:    pending,
		Processing: processing,
		Completed:  completed,
		Failed:     failed,
		Worker:     worker,
	})
}
