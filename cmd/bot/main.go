package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"esp-monitor/internal/bot"
	"esp-monitor/internal/config"
	"esp-monitor/internal/geocode"
	"esp-monitor/internal/logger"
	"esp-monitor/internal/mq"
	"esp-monitor/pkg/esp"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required. Get one from @BotFather on Telegram.")
	}
	if cfg.ChannelID == 0 {
		log.Fatal("CHANNEL_ID is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- RabbitMQ ---
	consumer, err := mq.NewConsumer(cfg.RabbitMQURL, log.Named("mq"))
	if err != nil {
		log.Fatal("rabbitmq consumer", zap.Error(err))
	}
	defer consumer.Close()
	log.Info("rabbitmq connected")

	// --- Telegram Bot ---
	opts := []esp.Option{esp.WithLogger(log.Named("esp"))}
	if cfg.ESPBaseURL != "" {
		opts = append(opts, esp.WithBaseURL(cfg.ESPBaseURL))
	}
	client := esp.NewClient(cfg.ESPToken, opts...)

	tgBot, err := bot.New(cfg.BotToken, client, geocode.New(cfg.GeocoderURL), log.Named("bot"))
	if err != nil {
		log.Fatal("bot", zap.Error(err))
	}

	go tgBot.Start()
	defer tgBot.Stop()
	log.Info("telegram bot started")

	// --- Start RabbitMQ listener ---
	notifier := bot.NewNotifier(tgBot.TeleBot(), cfg.ChannelID, log.Named("notifier"))
	l := newListener(consumer, notifier, log.Named("listener"))
	go l.start(ctx)
	log.Info("rabbitmq listener started")

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down bot service")
	cancel()
}
