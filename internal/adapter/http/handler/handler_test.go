package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-gateway-sim/internal/adapter/http/dto"
	"payment-gateway-sim/internal/adapter/http/middleware"
	"payment-gateway-sim/internal/core/domain"
	"payment-gateway-sim/internal/core/ports"
	"payment-gateway-sim/internal/core/ports/mocks"
	"payment-gateway-sim/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testMerchant() *domain.Merchant {
	return &domain.Merchant{
		ID:     uuid.New(),
		Name:   "Test Shop",
		Email:  "shop@example.com",
		APIKey: "key_test",
		Status: domain.MerchantStatusActive,
	}
}

func postJSON(c *gin.Context, path string, body any) {
	raw, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	merchantID := uuid.New()
	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterInput{
		Name:  "Test Shop",
		Email: "shop@example.com",
	}).Return(&ports.RegisterResult{
		MerchantID: merchantID,
		APIKey:     "key_abc",
		APISecret:  "secret_abc",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/api/v1/auth/register", dto.RegisterRequest{
		Name:  "Test Shop",
		Email: "shop@example.com",
	})

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, merchantID.String(), data["merchant_id"])
	assert.Equal(t, "key_abc", data["api_key"])
	assert.Equal(t, "secret_abc", data["api_secret"])
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_InvalidWebhookURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	badURL := "ftp://example.com/hook"
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.RegisterRequest{
		Name:       "Shop",
		Email:      "shop@example.com",
		WebhookURL: &badURL,
	})

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_EmailExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEmailExists())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.RegisterRequest{Name: "Shop", Email: "taken@example.com"})

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().IssueToken(gomock.Any(), "key_abc", "secret_abc").Return("jwt-token-123", expiry, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.TokenRequest{APIKey: "key_abc", APISecret: "secret_abc"})

	h.Token(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestToken_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().IssueToken(gomock.Any(), "bad", "bad").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.TokenRequest{APIKey: "bad", APISecret: "bad"})

	h.Token(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Payment Handler Tests ---

type paymentHandlerFixture struct {
	handler    *PaymentHandler
	paymentSvc *mocks.MockPaymentService
	refundSvc  *mocks.MockRefundService
	idemSvc    *mocks.MockIdempotencyService
}

func setupPaymentHandler(t *testing.T) paymentHandlerFixture {
	ctrl := gomock.NewController(t)
	f := paymentHandlerFixture{
		paymentSvc: mocks.NewMockPaymentService(ctrl),
		refundSvc:  mocks.NewMockRefundService(ctrl),
		idemSvc:    mocks.NewMockIdempotencyService(ctrl),
	}
	f.handler = NewPaymentHandler(f.paymentSvc, f.refundSvc, f.idemSvc, zerolog.Nop())
	return f
}

func TestPaymentCreate_Success(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()
	now := time.Now()

	f.paymentSvc.EXPECT().Create(gomock.Any(), merchant, ports.CreatePaymentInput{
		OrderID:  "order-001",
		Amount:   50000,
		Currency: "INR",
		Method:   "upi",
	}).Return(&domain.Payment{
		ID:         "pay_abc123",
		MerchantID: merchant.ID,
		OrderID:    "order-001",
		Amount:     50000,
		Currency:   "INR",
		Method:     "upi",
		Status:     domain.PaymentStatusPending,
		CreatedAt:  now,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CreatePaymentRequest{
		OrderID:  "order-001",
		Amount:   50000,
		Currency: "INR",
		Method:   "upi",
	})
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "pay_abc123", data["id"])
	assert.Equal(t, "pending", data["status"])
}

func TestPaymentCreate_IdempotentReplay(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()

	cached := json.RawMessage(`{"id":"pay_cached","status":"pending"}`)
	f.idemSvc.EXPECT().Lookup(gomock.Any(), merchant.ID, "idem-1").Return(cached, nil)
	// No Create call: the stored response is returned as-is.

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CreatePaymentRequest{
		OrderID:  "order-001",
		Amount:   50000,
		Currency: "INR",
		Method:   "upi",
	})
	c.Request.Header.Set(HeaderIdempotencyKey, "idem-1")
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "pay_cached", data["id"])
}

func TestPaymentCreate_IdempotencyMissSavesResponse(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()
	now := time.Now()

	f.idemSvc.EXPECT().Lookup(gomock.Any(), merchant.ID, "idem-2").Return(nil, nil)
	f.paymentSvc.EXPECT().Create(gomock.Any(), merchant, gomock.Any()).Return(&domain.Payment{
		ID:         "pay_fresh",
		MerchantID: merchant.ID,
		OrderID:    "order-002",
		Amount:     1000,
		Currency:   "INR",
		Method:     "card",
		Status:     domain.PaymentStatusPending,
		CreatedAt:  now,
	}, nil)
	f.idemSvc.EXPECT().Save(gomock.Any(), merchant.ID, "idem-2", gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, _ string, response any) error {
			resp, ok := response.(dto.PaymentResponse)
			require.True(t, ok)
			assert.Equal(t, "pay_fresh", resp.ID)
			return nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CreatePaymentRequest{
		OrderID:  "order-002",
		Amount:   1000,
		Currency: "INR",
		Method:   "card",
	})
	c.Request.Header.Set(HeaderIdempotencyKey, "idem-2")
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPaymentCreate_MissingMerchant(t *testing.T) {
	f := setupPaymentHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	f.handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentCreate_InvalidMethod(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CreatePaymentRequest{
		OrderID:  "order-001",
		Amount:   50000,
		Currency: "INR",
		Method:   "cash",
	})
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentGet_NotFound(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()

	f.paymentSvc.EXPECT().Get(gomock.Any(), merchant.ID, "pay_missing").Return(nil, apperror.ErrNotFound("Payment"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "pay_missing"}}
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentCapture_Success(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()
	now := time.Now()

	f.paymentSvc.EXPECT().Capture(gomock.Any(), merchant, "pay_abc", (*int64)(nil)).Return(&domain.Payment{
		ID:         "pay_abc",
		MerchantID: merchant.ID,
		Amount:     50000,
		Currency:   "INR",
		Method:     "card",
		Status:     domain.PaymentStatusSuccess,
		Captured:   true,
		CreatedAt:  now,
		UpdatedAt:  &now,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CapturePaymentRequest{})
	c.Params = gin.Params{{Key: "id", Value: "pay_abc"}}
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Capture(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["captured"])
}

func TestPaymentCapture_NotCapturable(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()

	f.paymentSvc.EXPECT().Capture(gomock.Any(), merchant, "pay_abc", gomock.Any()).Return(nil, apperror.ErrNotCapturable())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CapturePaymentRequest{})
	c.Params = gin.Params{{Key: "id", Value: "pay_abc"}}
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.Capture(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefundCreate_Success(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()
	now := time.Now()
	reason := "Customer request"

	f.refundSvc.EXPECT().Create(gomock.Any(), merchant, "pay_abc", ports.CreateRefundInput{
		Amount: 25000,
		Reason: &reason,
	}).Return(&domain.Refund{
		ID:         "rfnd_xyz",
		PaymentID:  "pay_abc",
		MerchantID: merchant.ID,
		Amount:     25000,
		Reason:     &reason,
		Status:     domain.RefundStatusPending,
		CreatedAt:  now,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CreateRefundRequest{Amount: 25000, Reason: &reason})
	c.Params = gin.Params{{Key: "id", Value: "pay_abc"}}
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.CreateRefund(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "rfnd_xyz", data["id"])
	assert.Equal(t, "pending", data["status"])
}

func TestRefundCreate_ExceedsAvailable(t *testing.T) {
	f := setupPaymentHandler(t)
	merchant := testMerchant()

	f.refundSvc.EXPECT().Create(gomock.Any(), merchant, "pay_abc", gomock.Any()).Return(nil, apperror.ErrRefundExceedsAvailable())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/", dto.CreateRefundRequest{Amount: 99999})
	c.Params = gin.Params{{Key: "id", Value: "pay_abc"}}
	c.Set(middleware.CtxMerchant, merchant)

	f.handler.CreateRefund(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Webhook Handler Tests ---

func TestWebhookList_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(mockWebhook)

	merchantID := uuid.New()
	now := time.Now()
	mockWebhook.EXPECT().List(gomock.Any(), merchantID, 20, 0).Return([]domain.WebhookLog{
		{
			ID:         uuid.New(),
			MerchantID: merchantID,
			Event:      domain.EventPaymentSuccess,
			Status:     domain.WebhookStatusSuccess,
			Attempts:   1,
			CreatedAt:  now,
		},
	}, int64(1), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.CtxMerchantID, merchantID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, float64(20), data["limit"])
}

func TestWebhookList_ClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(mockWebhook)

	merchantID := uuid.New()
	// limit above the cap falls back to the default, negative offset to 0
	mockWebhook.EXPECT().List(gomock.Any(), merchantID, 20, 0).Return(nil, int64(0), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=500&offset=-3", nil)
	c.Set(middleware.CtxMerchantID, merchantID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookRetry_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(mockWebhook)

	merchantID := uuid.New()
	webhookID := uuid.New()
	now := time.Now()
	mockWebhook.EXPECT().RetryNow(gomock.Any(), merchantID, webhookID).Return(&domain.WebhookLog{
		ID:         webhookID,
		MerchantID: merchantID,
		Event:      domain.EventPaymentFailed,
		Status:     domain.WebhookStatusPending,
		Attempts:   0,
		CreatedAt:  now,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: webhookID.String()}}
	c.Set(middleware.CtxMerchantID, merchantID)

	h.Retry(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(0), data["attempts"])
}

func TestWebhookRetry_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWebhook := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(mockWebhook)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	c.Set(middleware.CtxMerchantID, uuid.New())

	h.Retry(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Jobs Handler Tests ---

func TestJobsStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockQueue := mocks.NewMockJobQueue(ctrl)
	mockMetrics := mocks.NewMockMetricsStore(ctrl)
	h := NewJobsHandler(mockQueue, mockMetrics)

	mockQueue.EXPECT().Depth(gomock.Any(), domain.QueuePaymentProcess).Return(int64(3), nil)
	mockQueue.EXPECT().Depth(gomock.Any(), domain.QueueRefundProcess).Return(int64(1), nil)
	mockQueue.EXPECT().Depth(gomock.Any(), domain.QueueWebhookDeliver).Return(int64(2), nil)
	mockMetrics.EXPECT().Counter(gomock.Any(), ports.CounterProcessing).Return(int64(1), nil)
	mockMetrics.EXPECT().Counter(gomock.Any(), ports.CounterCompleted).Return(int64(40), nil)
	mockMetrics.EXPECT().Counter(gomock.Any(), ports.CounterFailed).Return(int64(2), nil)
	mockMetrics.EXPECT().WorkerStatus(gomock.Any()).Return("running", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.Status(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(6), data["pending"])
	assert.Equal(t, float64(1), data["processing"])
	assert.Equal(t, float64(40), data["completed"])
	assert.Equal(t, float64(2), data["failed"])
	assert.Equal(t, "running", data["worker_status"])
}

func TestJobsStatus_DepthError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockQueue := mocks.NewMockJobQueue(ctrl)
	mockMetrics := mocks.NewMockMetricsStore(ctrl)
	h := NewJobsHandler(mockQueue, mockMetrics)

	mockQueue.EXPECT().Depth(gomock.Any(), domain.QueuePaymentProcess).Return(int64(0), errors.New("redis down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.Status(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health Check Tests ---

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Ping(context.Context) error { return f.err }
func (f fakeChecker) Name() string               { return f.name }

func TestHealthCheck_Healthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(fakeChecker{name: "postgresql"}, fakeChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(fakeChecker{name: "postgresql"}, fakeChecker{name: "redis", err: errors.New("conn refused")})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
}
