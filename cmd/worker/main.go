package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"payment-gateway-sim/config"
	pgStorage "payment-gateway-sim/internal/adapter/storage/postgres"
	redisStorage "payment-gateway-sim/internal/adapter/storage/redis"
	"payment-gateway-sim/internal/service"
	"payment-gateway-sim/internal/worker"
	"payment-gateway-sim/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Bool("test_mode", cfg.Worker.TestMode).
		Dur("sweep_interval", cfg.Worker.SweepInterval).
		Msg("Starting Payment Gateway workers")

	// Root context cancelled on SIGINT/SIGTERM; all loops observe it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories and stores
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	paymentRepo := pgStorage.NewPaymentRepo(pool)
	refundRepo := pgStorage.NewRefundRepo(pool)
	webhookRepo := pgStorage.NewWebhookLogRepo(pool)
	queue := redisStorage.NewJobQueue(rdb)
	metrics := redisStorage.NewMetricsStore(rdb, cfg.Worker.HeartbeatTTL)

	// Initialize services shared with the API process
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	webhookSvc := service.NewWebhookService(webhookRepo, queue, log)

	// Initialize workers
	sim := worker.NewSimulator(cfg.Worker)
	paymentWorker := worker.NewPaymentWorker(queue, metrics, paymentRepo, merchantRepo, webhookSvc, sim, cfg.Worker, log)
	refundWorker := worker.NewRefundWorker(queue, metrics, refundRepo, paymentRepo, merchantRepo, webhookSvc, sim, cfg.Worker, log)

	httpClient := worker.NewWebhookHTTPClient(cfg.Worker.ConnectTimeout, cfg.Worker.ReadTimeout)
	webhookWorker := worker.NewWebhookWorker(queue, metrics, webhookRepo, merchantRepo, encSvc, sigSvc, httpClient, cfg.Worker, log)

	sweeper := worker.NewSweeper(webhookRepo, queue, cfg.Worker.SweepInterval, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start webhook sweep")
	}

	var wg sync.WaitGroup
	for name, run := range map[string]func(context.Context){
		"payment": paymentWorker.Run,
		"refund":  refundWorker.Run,
		"webhook": webhookWorker.Run,
	} {
		wg.Add(1)
		go func(name string, run func(context.Context)) {
			defer wg.Done()
			log.Info().Str("worker", name).Msg("worker started")
			run(ctx)
			log.Info().Str("worker", name).Msg("worker stopped")
		}(name, run)
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down workers...")

	wg.Wait()
	sweeper.Stop()

	log.Info().Msg("Workers exited")
}
