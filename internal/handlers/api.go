package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"esp-monitor/internal/metrics"
	"esp-monitor/internal/models"
	"esp-monitor/pkg/esp"
)

// HistoryStore reads recorded stage changes.
type HistoryStore interface {
	GetStageHistory(ctx context.Context, region string, from, to time.Time) ([]*models.StageChange, error)
}

type Handlers struct {
	Client  *esp.Client
	History HistoryStore
	Metrics *metrics.API
	Log     *zap.Logger

	// In-memory response cache for /api/status.
	statusCache   []byte
	statusCacheAt time.Time
	statusCacheMu sync.RWMutex
}

const (
	// StatusCacheTTL is how long to cache the status response. Every upstream
	// call counts against the API allowance.
	StatusCacheTTL = 60 * time.Second
	// StatusCacheMaxAgeSec is the Cache-Control max-age header value.
	StatusCacheMaxAgeSec = 60
	// DefaultHistoryLookback is the default time range for history queries.
	DefaultHistoryLookback = 24 * time.Hour
	// MaxHistoryRange is the maximum allowed time range for history queries.
	MaxHistoryRange = 30 * 24 * time.Hour
)

var knownRegions = map[string]bool{
	esp.RegionCapeTown: true,
	esp.RegionEskom:    true,
}

// GetStatus returns the national and Cape Town status. Response is cached
// server-side so dashboards don't drain the API allowance.
func (h *Handlers) GetStatus(c *fiber.Ctx) error {
	h.statusCacheMu.RLock()
	if h.statusCache != nil && time.Since(h.statusCacheAt) < StatusCacheTTL {
		data := h.statusCache
		h.statusCacheMu.RUnlock()
		return sendCached(c, data)
	}
	h.statusCacheMu.RUnlock()

	h.statusCacheMu.Lock()
	defer h.statusCacheMu.Unlock()

	// Double-check after acquiring write lock.
	if h.statusCache != nil && time.Since(h.statusCacheAt) < StatusCacheTTL {
		return sendCached(c, h.statusCache)
	}

	status, err := h.Client.FetchStatus(c.UserContext())
	h.observe("status", err)
	if err != nil {
		return h.upstreamError(c, err)
	}

	data, err := json.Marshal(status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "encoding error"})
	}

	h.statusCache = data
	h.statusCacheAt = time.Now()
	return sendCached(c, data)
}

func sendCached(c *fiber.Ctx, data []byte) error {
	c.Set("Content-Type", "application/json")
	c.Set("Cache-Control", "public, max-age="+strconv.Itoa(StatusCacheMaxAgeSec))
	return c.Send(data)
}

// GetAllowance returns the API quota of the configured token.
func (h *Handlers) GetAllowance(c *fiber.Ctx) error {
	allowance, err := h.Client.FetchAllowance(c.UserContext())
	h.observe("allowance", err)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(allowance)
}

// SearchAreas handles GET /api/areas/search?text=.
func (h *Handlers) SearchAreas(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}
	result, err := h.Client.SearchAreas(c.UserContext(), text)
	h.observe("areas_search", err)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(result)
}

// NearbyAreas handles GET /api/areas/nearby?lat=&lon=.
func (h *Handlers) NearbyAreas(c *fiber.Ctx) error {
	lat, lon, ok := coordinates(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat and lon are required numbers"})
	}
	result, err := h.Client.FetchNearbyAreas(c.UserContext(), lat, lon)
	h.observe("areas_nearby", err)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(result)
}

// GetArea handles GET /api/areas/:id.
func (h *Handlers) GetArea(c *fiber.Ctx) error {
	area, err := h.Client.FetchAreaInformation(c.UserContext(), c.Params("id"))
	h.observe("area", err)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(area)
}

// NearbyTopics handles GET /api/topics/nearby?lat=&lon=.
func (h *Handlers) NearbyTopics(c *fiber.Ctx) error {
	lat, lon, ok := coordinates(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat and lon are required numbers"})
	}
	result, err := h.Client.FetchNearbyTopics(c.UserContext(), lat, lon)
	h.observe("topics_nearby", err)
	if err != nil {
		return h.upstreamError(c, err)
	}
	return c.JSON(result)
}

// observe counts one upstream call.
func (h *Handlers) observe(endpoint string, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	h.Metrics.Upstream.WithLabelValues(endpoint, result).Inc()
}

func coordinates(c *fiber.Ctx) (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// GetHistory returns recorded stage changes for a region.
// Query params: ?from=2026-02-09T00:00:00Z&to=2026-02-10T00:00:00Z
// Defaults to the last 24 hours if not provided.
func (h *Handlers) GetHistory(c *fiber.Ctx) error {
	region := c.Params("region")
	if !knownRegions[region] {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown region"})
	}

	now := time.Now()
	from := now.Add(-DefaultHistoryLookback)
	to := now

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be RFC3339"})
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be RFC3339"})
		}
		to = t
	}

	if from.After(to) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be before to"})
	}

	// Cap to max history range.
	if to.Sub(from) > MaxHistoryRange {
		from = to.Add(-MaxHistoryRange)
	}

	changes, err := h.History.GetStageHistory(c.UserContext(), region, from, to)
	if err != nil {
		h.Log.Error("load history", zap.String("region", region), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}

	if changes == nil {
		changes = make([]*models.StageChange, 0)
	}

	return c.JSON(fiber.Map{
		"region":  region,
		"from":    from.Format(time.RFC3339),
		"to":      to.Format(time.RFC3339),
		"changes": changes,
	})
}

// upstreamError maps an ESP client error to an HTTP response.
func (h *Handlers) upstreamError(c *fiber.Ctx, err error) error {
	var (
		respErr      *esp.ResponseError
		transportErr *esp.TransportError
		decodeErr    *esp.DecodeError
	)
	switch {
	case errors.Is(err, esp.ErrMissingParameter):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, esp.ErrAuthenticationMissing):
		h.Log.Error("ESP token is not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "api token not configured"})
	case errors.As(err, &respErr):
		h.Log.Warn("upstream rejected request", zap.Int("status", respErr.StatusCode), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":           "upstream error",
			"upstream_status": respErr.StatusCode,
			"message":         respErr.Message,
		})
	case errors.As(err, &transportErr):
		h.Log.Warn("upstream unreachable", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream unreachable"})
	case errors.As(err, &decodeErr):
		h.Log.Error("unexpected upstream payload", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "unexpected upstream response",
			"field": decodeErr.Field,
		})
	}
	h.Log.Error("request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
