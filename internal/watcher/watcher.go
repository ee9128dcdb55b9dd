package watcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"esp-monitor/internal/metrics"
	"esp-monitor/internal/models"
	"esp-monitor/internal/mq"
	"esp-monitor/pkg/esp"
)

// StatusFetcher is the part of esp.Client the watcher needs.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) (*esp.NestedStatus, error)
}

// Store persists stage history.
type Store interface {
	InsertStageChange(ctx context.Context, c *models.StageChange) (*models.StageChange, error)
}

// StageCache remembers the last stage seen per region.
type StageCache interface {
	GetStage(ctx context.Context, region string) (string, bool, error)
	SetStage(ctx context.Context, region, stage string) error
}

// Notifier fans stage changes out to subscribers.
type Notifier interface {
	PublishStageChange(ctx context.Context, msg mq.StageChangeMsg) error
}

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 15 * time.Minute

// regions is the poll order.
var regions = []string{esp.RegionEskom, esp.RegionCapeTown}

// Watcher polls the load-shedding status and reports stage changes.
type Watcher struct {
	client   StatusFetcher
	store    Store
	cache    StageCache
	notifier Notifier
	metrics  *metrics.Metrics
	interval time.Duration
	log      *zap.Logger
}

func New(client StatusFetcher, store Store, cache StageCache, notifier Notifier, m *metrics.Metrics, intervalSec int, log *zap.Logger) *Watcher {
	interval := time.Duration(intervalSec) * time.Second
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		client:   client,
		store:    store,
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		interval: interval,
		log:      log,
	}
}

// Start polls once immediately, then every interval. Blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.log.Info("watcher started", zap.Duration("interval", w.interval))

	w.pollAndLog(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			w.pollAndLog(ctx)
		}
	}
}

func (w *Watcher) pollAndLog(ctx context.Context) {
	if err := w.Poll(ctx); err != nil {
		w.log.Error("poll failed", zap.Error(err))
	}
}

// Poll fetches the status once and handles every region. A failure in one
// region does not stop the others.
func (w *Watcher) Poll(ctx context.Context) error {
	status, err := w.client.FetchStatus(ctx)
	if err != nil {
		w.metrics.Polls.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("fetch status: %w", err)
	}
	w.metrics.Polls.WithLabelValues(metrics.ResultOK).Inc()

	byRegion := status.Regions()
	var errs []error
	for _, region := range regions {
		if err := w.checkRegion(ctx, region, byRegion[region]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", region, err))
		}
	}
	return errors.Join(errs...)
}

func (w *Watcher) checkRegion(ctx context.Context, region string, sr esp.StatusRegion) error {
	if n, err := strconv.Atoi(sr.Stage); err == nil {
		w.metrics.CurrentStage.WithLabelValues(region).Set(float64(n))
	}

	prev, seen, err := w.cache.GetStage(ctx, region)
	if err != nil {
		return fmt.Errorf("read last stage: %w", err)
	}
	if seen && prev == sr.Stage {
		return nil
	}

	change := &models.StageChange{
		Region:        region,
		Name:          sr.Name,
		Stage:         sr.Stage,
		PreviousStage: prev,
		StageUpdated:  sr.StageUpdated,
	}
	if _, err := w.store.InsertStageChange(ctx, change); err != nil {
		return fmt.Errorf("store stage change: %w", err)
	}

	msg := mq.StageChangeMsg{
		Region:        region,
		Name:          sr.Name,
		Stage:         sr.Stage,
		PreviousStage: prev,
		StageUpdated:  sr.StageUpdated,
		NextStages:    upcoming(sr.NextStages),
	}
	if err := w.notifier.PublishStageChange(ctx, msg); err != nil {
		return fmt.Errorf("publish stage change: %w", err)
	}

	// Updated last: a failed publish is retried on the next poll.
	if err := w.cache.SetStage(ctx, region, sr.Stage); err != nil {
		return fmt.Errorf("remember stage: %w", err)
	}

	w.metrics.StageChanges.WithLabelValues(region).Inc()
	w.log.Info("stage changed",
		zap.String("region", region),
		zap.String("from", prev),
		zap.String("to", sr.Stage),
	)
	return nil
}

func upcoming(stages []esp.Stage) []models.UpcomingStage {
	out := make([]models.UpcomingStage, 0, len(stages))
	for _, s := range stages {
		out = append(out, models.UpcomingStage{Stage: s.Stage, Starts: s.StageStartTimestamp})
	}
	return out
}
