package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-assistant/internal/github"
	"github.com/ahmednasr/issue-assistant/internal/models"
	"github.com/ahmednasr/issue-assistant/internal/service"
)

// AnalyzeHandler wires HTTP → AnalysisService.
type AnalyzeHandler struct {
	svc service.AnalysisService
}

// NewAnalyzeHandler returns a struct pointer so you can call Register on it.
func NewAnalyzeHandler(svc service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

// Register mounts the /analyze endpoint on the supplied router group.
func (h *AnalyzeHandler) Register(r fiber.Router) {
	r.Post("/analyze", h.analyze)
}

// analyze handles POST /api/analyze  { "repo_url": "...", "issue_number": 42 }
//
// Input-shape problems and caller-caused retrieval failures (bad URL,
// unknown issue, rate limit) map to 400; anything else to 500. The
// analyzer itself never errors, so 500s come from the GitHub side.
func (h *AnalyzeHandler) analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	req.RepoURL = strings.TrimSpace(req.RepoURL)
	if !strings.Contains(req.RepoURL, "github.com") {
		return fiber.NewError(fiber.StatusBadRequest, "repo_url must be a valid GitHub repository URL")
	}
	if req.IssueNumber <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "issue_number must be positive")
	}

	analysis, err := h.svc.Analyze(c.UserContext(), req.RepoURL, req.IssueNumber)
	if err != nil {
		if github.IsClientError(err) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error: "+err.Error())
	}

	return c.JSON(analysis)
}
