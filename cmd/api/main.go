package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"esp-monitor/internal/config"
	"esp-monitor/internal/database"
	"esp-monitor/internal/handlers"
	"esp-monitor/internal/logger"
	"esp-monitor/internal/metrics"
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
		log.Warn("ESP_TOKEN is empty, upstream endpoints will fail")
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

	// --- ESP client ---
	opts := []esp.Option{esp.WithLogger(log.Named("esp"))}
	if cfg.ESPBaseURL != "" {
		opts = append(opts, esp.WithBaseURL(cfg.ESPBaseURL))
	}
	client := esp.NewClient(cfg.ESPToken, opts...)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())

	h := &handlers.Handlers{
		Client:  client,
		History: db,
		Metrics: metrics.NewAPI(prometheus.DefaultRegisterer),
		Log:     log.Named("api"),
	}
	h.Register(app, cfg.AdminLogin, cfg.AdminPassword)

	// --- Graceful shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		cancel()
		_ = app.Shutdown()
	}()

	log.Info("API service starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
