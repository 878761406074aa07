package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-assistant/internal/cache"
	"github.com/ahmednasr/issue-assistant/internal/config"
	"github.com/ahmednasr/issue-assistant/internal/github"
	"github.com/ahmednasr/issue-assistant/internal/handler"
	"github.com/ahmednasr/issue-assistant/internal/middleware"
	"github.com/ahmednasr/issue-assistant/internal/service"
)

// main is the single entry-point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - LLM model: %s (temperature %g)", cfg.LLMModel, cfg.LLMTemperature)
	log.Printf("  - Cache: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	if cfg.GitHubToken == "" {
		log.Printf("  - GITHUB_TOKEN not set; GitHub requests are unauthenticated (low rate limits)")
	}

	// Initialize the Vertex AI text generator
	ctx := context.Background()
	llm, err := service.NewVertexLLM(ctx, cfg.ProjectID, cfg.Location, cfg.LLMModel, cfg.LLMTemperature, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize Vertex AI client: %v", err)
	}
	defer llm.Close()

	// Initialize collaborators and the analysis pipeline
	analysisCache := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	gh := github.NewClient(cfg.GitHubToken)
	analyzer := service.NewAnalyzer(llm)
	analysisSvc := service.NewAnalysisService(analysisCache, gh, analyzer)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(middleware.Recovery())
	app.Use(middleware.Logging())

	// Register routes
	handler.RegisterRoutes(app, analysisSvc)
	handler.NewHealthHandler().Register(app)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
