package main

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"esp-monitor/internal/mq"
)

type stageNotifier interface {
	NotifyStageChange(msg mq.StageChangeMsg) error
}

// listener consumes stage changes from RabbitMQ and posts them to Telegram.
type listener struct {
	consumer *mq.Consumer
	notifier stageNotifier
	log      *zap.Logger
}

func newListener(consumer *mq.Consumer, n stageNotifier, log *zap.Logger) *listener {
	return &listener{consumer: consumer, notifier: n, log: log}
}

func (l *listener) start(ctx context.Context) {
	stageCh, err := l.consumer.Consume(mq.QueueStageChange)
	if err != nil {
		l.log.Fatal("failed to consume", zap.String("queue", mq.QueueStageChange), zap.Error(err))
	}

	l.log.Info("consuming", zap.String("queue", mq.QueueStageChange))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("stopped")
			return
		case d, ok := <-stageCh:
			if !ok {
				return
			}
			l.handleStageChange(d.Body)
			d.Ack(false)
		}
	}
}

// handleStageChange never fails the delivery: malformed or undeliverable
// messages are logged and dropped.
func (l *listener) handleStageChange(payload []byte) {
	var msg mq.StageChangeMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		l.log.Warn("bad stage_change message", zap.Error(err))
		return
	}
	if err := l.notifier.NotifyStageChange(msg); err != nil {
		l.log.Error("notify stage change", zap.String("region", msg.Region), zap.Error(err))
	}
}
