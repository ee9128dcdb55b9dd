package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts the API routes and /metrics on app. When adminLogin and
// adminPassword are both set, the allowance endpoint requires them.
func (h *Handlers) Register(app *fiber.App, adminLogin, adminPassword string) {
	api := app.Group("/api")
	api.Get("/status", h.GetStatus)

	if adminLogin != "" && adminPassword != "" {
		api.Get("/allowance", BasicAuth(adminLogin, adminPassword), h.GetAllowance)
	} else {
		api.Get("/allowance", h.GetAllowance)
	}

	// Static segments before :id.
	api.Get("/areas/search", h.SearchAreas)
	api.Get("/areas/nearby", h.NearbyAreas)
	api.Get("/areas/:id", h.GetArea)
	api.Get("/topics/nearby", h.NearbyTopics)
	api.Get("/history/:region", h.GetHistory)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
