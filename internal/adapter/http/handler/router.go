package handler

import (
	"payment-gateway-sim/internal/adapter/http/middleware"
	redisStore "payment-gateway-sim/internal/adapter/storage/redis"
	"payment-gateway-sim/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	PaymentSvc     ports.PaymentService
	RefundSvc      ports.RefundService
	WebhookSvc     ports.WebhookService
	IdempotencySvc ports.IdempotencyService
	TokenSvc       ports.TokenService
	Queue          ports.JobQueue
	Metrics        ports.MetricsStore
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/token", rl("auth_token"), authHandler.Token)
	}

	// --- API-key-authenticated routes (merchant API) ---
	apiAuth := middleware.APIKeyAuth(deps.AuthSvc, deps.Logger)
	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.RefundSvc, deps.IdempotencySvc, deps.Logger)
	payments := v1.Group("/payments", apiAuth)
	{
		payments.POST("", rl("payments"), paymentHandler.Create)
		payments.GET("/:id", rl("payments"), paymentHandler.Get)
		payments.POST("/:id/capture", rl("payments"), paymentHandler.Capture)
		payments.POST("/:id/refunds", rl("refunds"), paymentHandler.CreateRefund)
	}

	// --- JWT-authenticated routes (dashboard) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	webhooks := v1.Group("/webhooks", jwtAuth)
	{
		webhooks.GET("", rl("dashboard"), webhookHandler.List)
		webhooks.POST("/:id/retry", rl("dashboard"), webhookHandler.Retry)
	}

	jobsHandler := NewJobsHandler(deps.Queue, deps.Metrics)
	jobs := v1.Group("/jobs", jwtAuth)
	{
		jobs.GET("/status", rl("dashboard"), jobsHandler.Status)
	}

	return r
}
