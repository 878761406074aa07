package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-assistant/internal/service"
)

// CacheHandler exposes the administrative cache reset.
type CacheHandler struct {
	svc service.AnalysisService
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(svc service.AnalysisService) *CacheHandler {
	return &CacheHandler{svc: svc}
}

// Register mounts DELETE /cache on the supplied router group.
func (h *CacheHandler) Register(r fiber.Router) {
	r.Delete("/cache", h.clear)
}

// clear handles DELETE /api/cache — drops every cached analysis.
func (h *CacheHandler) clear(c *fiber.Ctx) error {
	h.svc.ClearCache()
	return c.JSON(fiber.Map{
		"message": "Cache cleared successfully",
	})
}
