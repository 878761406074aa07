package service

import (
	"context"

	"github.com/ahmednasr/issue-assistant/internal/cache"
	"github.com/ahmednasr/issue-assistant/internal/models"
)

// ---- Collaborator interfaces -----------------------------------------------

// IssueRetriever fetches and normalizes one issue with its comments.
// *github.Client satisfies it.
type IssueRetriever interface {
	GetIssueData(repoURL string, issueNumber int) (models.IssueData, error)
}

// IssueAnalyzer produces a structured analysis for a normalized issue.
// Implementations must always return a schema-valid result, degrading
// internally instead of failing (*Analyzer satisfies it).
type IssueAnalyzer interface {
	AnalyzeIssue(ctx context.Context, issue models.IssueData) models.Analysis
}

// ---- Service interface + implementation ------------------------------------

// AnalysisService is the per-request pipeline: fingerprint the request,
// serve from cache when possible, otherwise retrieve, analyze, attach
// metadata and cache the result.
type AnalysisService interface {
	Analyze(ctx context.Context, repoURL string, issueNumber int) (models.Analysis, error)
	ClearCache()
}

type analysisService struct {
	cache    *cache.Cache
	gh       IssueRetriever
	analyzer IssueAnalyzer
}

// NewAnalysisService wires dependencies and returns an AnalysisService.
func NewAnalysisService(c *cache.Cache, gh IssueRetriever, analyzer IssueAnalyzer) AnalysisService {
	return &analysisService{cache: c, gh: gh, analyzer: analyzer}
}

// Analyze runs the full pipeline for one issue. Retrieval errors
// propagate to the caller; analysis never fails (see IssueAnalyzer).
//
// Cache hits are returned exactly as stored, byte for byte, so the
// metadata "cached" flag keeps the value it was stored with.
func (s *analysisService) Analyze(ctx context.Context, repoURL string, issueNumber int) (models.Analysis, error) {
	key := cache.Key(repoURL, issueNumber)
	if hit, ok := s.cache.Get(key); ok {
		return hit, nil
	}

	issue, err := s.gh.GetIssueData(repoURL, issueNumber)
	if err != nil {
		return models.Analysis{}, err
	}

	analysis := s.analyzer.AnalyzeIssue(ctx, issue)
	analysis.Metadata = map[string]any{
		"issue_url":      issue.HTMLURL,
		"issue_state":    issue.State,
		"comments_count": issue.CommentsCount,
		"created_at":     issue.CreatedAt,
		"cached":         false,
	}

	s.cache.Set(key, analysis)
	return analysis, nil
}

// ClearCache drops every cached analysis.
func (s *analysisService) ClearCache() {
	s.cache.Clear()
}
