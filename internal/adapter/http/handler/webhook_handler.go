package handler

import (
	"strconv"
	"time"

	"payment-gateway-sim/internal/adapter/http/dto"
	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"
	"payment-gateway-sim/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultWebhookPageSize = 20
	maxWebhookPageSize     = 100
)

// WebhookHandler handles the dashboard-facing webhook endpoints.
type WebhookHandler struct {
	webhookSvc ports.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookSvc ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// List handles GET /api/v1/webhooks with limit/offset pagination.
func (h *WebhookHandler) List(c *gin.Context) {
	merchantID, ok := contextMerchantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	limit := queryInt(c, "limit", defaultWebhookPageSize)
	if limit < 1 || limit > maxWebhookPageSize {
		limit = defaultWebhookPageSize
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, total, err := h.webhookSvc.List(c.Request.Context(), merchantID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WebhookLogResponse, 0, len(records))
	for i := range records {
		items = append(items, toWebhookLogResponse(&records[i]))
	}

	response.OK(c, dto.WebhookListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Retry handles POST /api/v1/webhooks/:id/retry — operator override that
// resets the record and fires one immediate delivery attempt.
func (h *WebhookHandler) Retry(c *gin.Context) {
	merchantID, ok := contextMerchantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	webhookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("Webhook"))
		return
	}

	record, err := h.webhookSvc.RetryNow(c.Request.Context(), merchantID, webhookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWebhookLogResponse(record))
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// toWebhookLogResponse converts domain.WebhookLog to DTO. The payload
// snapshot is deliberately omitted from listings.
func toWebhookLogResponse(w *domain.WebhookLog) dto.WebhookLogResponse {
	resp := dto.WebhookLogResponse{
		ID:           w.ID.String(),
		Event:        w.Event,
		Status:       string(w.Status),
		Attempts:     w.Attempts,
		ResponseCode: w.ResponseCode,
		ResponseBody: w.ResponseBody,
		CreatedAt:    w.CreatedAt.Format(time.RFC3339),
	}
	if w.LastAttemptAt != nil {
		s := w.LastAttemptAt.Format(time.RFC3339)
		resp.LastAttemptAt = &s
	}
	if w.NextRetryAt != nil {
		s := w.NextRetryAt.Format(time.RFC3339)
		resp.NextRetryAt = &s
	}
	return resp
}
