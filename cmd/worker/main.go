package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/nillow/booking-api/internal/config"
	"github.com/nillow/booking-api/internal/repository/postgres"
	"github.com/nillow/booking-api/pkg/logger"
	"github.com/nillow/booking-api/pkg/messaging/redis"
	"github.com/nillow/booking-api/pkg/metrics"
	"github.com/nillow/booking-api/pkg/worker"
)

func setupHealthCheck() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}

func redisURL(addr, password string, db int) string {
	if password != "" {
		return fmt.Sprintf("redis://:%s@%s/%d", password, addr, db)
	}
	return fmt.Sprintf("redis://%s/%d", addr, db)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	l := logger.NewLogger(nil)
	m := metrics.NewMetrics("nillow", "worker")

	zl := log.Logger
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          redisURL(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  time.Duration(cfg.Outbox.PollIntervalSeconds) * time.Second,
		RetryAttempts: 3,
		RetryDelay:    5 * time.Second,
		RetentionDays: cfg.Outbox.RetentionDays,
	}, l, m)

	setupHealthCheck()

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")
	cancel()

	// Give the processor a moment to finish the in-flight batch.
	time.Sleep(time.Second)
	log.Info().Msg("worker exited properly")
}
