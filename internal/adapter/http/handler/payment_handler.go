package handler

import (
	"encoding/json"
	"time"

	"payment-gateway-sim/internal/adapter/http/dto"
	"payment-gateway-sim/internal/adapter/http/middleware"
	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/pkg/apperror"
	"payment-gateway-sim/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderIdempotencyKey makes POST /payments replay-safe: a repeated request
// with the same key returns the stored response without creating anything.
const HeaderIdempotencyKey = "Idempotency-Key"

// PaymentHandler handles payment and refund endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	refundSvc  ports.RefundService
	idemSvc    ports.IdempotencyService
	log        zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService, refundSvc ports.RefundService, idemSvc ports.IdempotencyService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, refundSvc: refundSvc, idemSvc: idemSvc, log: log}
}

// Create handles POST /api/v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	merchant, ok := contextMerchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}

	idemKey := c.GetHeader(HeaderIdempotencyKey)
	if idemKey != "" {
		cached, err := h.idemSvc.Lookup(c.Request.Context(), merchant.ID, idemKey)
		if err != nil {
			h.log.Warn().Err(err).Msg("idempotency lookup failed, proceeding")
		} else if cached != nil {
			response.OK(c, json.RawMessage(cached))
			return
		}
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	payment, err := h.paymentSvc.Create(c.Request.Context(), merchant, ports.CreatePaymentInput{
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		VPA:       req.VPA,
		CardLast4: req.CardLast4,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toPaymentResponse(payment)
	if idemKey != "" {
		if err := h.idemSvc.Save(c.Request.Context(), merchant.ID, idemKey, resp); err != nil {
			h.log.Warn().Err(err).Str("payment_id", payment.ID).Msg("idempotency save failed")
		}
	}

	response.Created(c, resp)
}

// Get handles GET /api/v1/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	merchant, ok := contextMerchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}

	payment, err := h.paymentSvc.Get(c.Request.Context(), merchant.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPaymentResponse(payment))
}

// Capture handles POST /api/v1/payments/:id/capture.
func (h *PaymentHandler) Capture(c *gin.Context) {
	merchant, ok := contextMerchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}

	var req dto.CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.paymentSvc.Capture(c.Request.Context(), merchant, c.Param("id"), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPaymentResponse(payment))
}

// CreateRefund handles POST /api/v1/payments/:id/refunds.
func (h *PaymentHandler) CreateRefund(c *gin.Context) {
	merchant, ok := contextMerchant(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}

	var req dto.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	refund, err := h.refundSvc.Create(c.Request.Context(), merchant, c.Param("id"), ports.CreateRefundInput{
		Amount: req.Amount,
		Reason: req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toRefundResponse(refund))
}

// contextMerchant pulls the authenticated merchant set by APIKeyAuth.
func contextMerchant(c *gin.Context) (*domain.Merchant, bool) {
	v, ok := c.Get(middleware.CtxMerchant)
	if !ok {
		return nil, false
	}
	m, ok := v.(*domain.Merchant)
	return m, ok
}

// contextMerchantID pulls the merchant id set by either auth middleware.
func contextMerchantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// toPaymentResponse converts domain.Payment to DTO.
func toPaymentResponse(p *domain.Payment) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		ID:               p.ID,
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Method:           p.Method,
		VPA:              p.VPA,
		CardLast4:        p.CardLast4,
		Status:           string(p.Status),
		ErrorCode:        p.ErrorCode,
		ErrorDescription: p.ErrorDescription,
		Captured:         p.Captured,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
	if p.UpdatedAt != nil {
		s := p.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &s
	}
	return resp
}

// toRefundResponse converts domain.Refund to DTO.
func toRefundResponse(r *domain.Refund) dto.RefundResponse {
	resp := dto.RefundResponse{
		ID:        r.ID,
		PaymentID: r.PaymentID,
		Amount:    r.Amount,
		Reason:    r.Reason,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		s := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &s
	}
	return resp
}
