package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"esp-monitor/internal/cache"
	"esp-monitor/internal/config"
	"esp-monitor/internal/database"
	"esp-monitor/internal/logger"
	"esp-monitor/internal/metrics"
	"esp-monitor/internal/mq"
	"esp-monitor/internal/watcher"
	"esp-monitor/pkg/esp"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.ESPToken == "" {
		log.Fatal("ESP_TOKEN is required. Get one at https://eskomsepush.gumroad.com/l/api")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database ---
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	log.Info("database connected and migrated")

	// --- Redis ---
	redisCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer redisCache.Close()
	log.Info("redis connected")

	// --- RabbitMQ ---
	publisher, err := mq.NewPublisher(cfg.RabbitMQURL, log.Named("mq"))
	if err != nil {
		log.Fatal("rabbitmq publisher", zap.Error(err))
	}
	defer publisher.Close()
	log.Info("rabbitmq connected")

	// --- Metrics ---
	m := metrics.New(prometheus.DefaultRegisterer)
	metricsApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	metricsApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	go func() {
		if err := metricsApp.Listen(":" + cfg.MetricsPort); err != nil {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	defer metricsApp.Shutdown()

	// --- Stage watcher ---
	opts := []esp.Option{esp.WithLogger(log.Named("esp"))}
	if cfg.ESPBaseURL != "" {
		opts = append(opts, esp.WithBaseURL(cfg.ESPBaseURL))
	}
	client := esp.NewClient(cfg.ESPToken, opts...)

	w := watcher.New(client, db, redisCache, publisher, m, cfg.StatusPollInterval, log.Named("watcher"))
	go w.Start(ctx)

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down worker")
	cancel()
}
