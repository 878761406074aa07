package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-assistant/internal/service"
)

// RegisterRoutes mounts every /api endpoint on the app.
func RegisterRoutes(app *fiber.App, analysisSvc service.AnalysisService) {
	api := app.Group("/api")
	NewAnalyzeHandler(analysisSvc).Register(api)
	NewCacheHandler(analysisSvc).Register(api)
}
