package handler

import (
	"github.com/gofiber/fiber/v2"
)

// API identity reported by the root endpoint.
const (
	apiName    = "GitHub Issue Assistant API"
	apiVersion = "1.0.0"
)

// HealthHandler serves liveness and service-info endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Register mounts GET / and GET /health directly on the app.
func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/", h.root)
	r.Get("/health", h.health)
}

// root handles GET / with a small service-info document.
func (h *HealthHandler) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    apiName,
		"version": apiVersion,
		"status":  "running",
		"endpoints": fiber.Map{
			"analyze": "/api/analyze",
			"cache":   "/api/cache",
			"health":  "/health",
		},
	})
}

// health handles GET /health.
func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
