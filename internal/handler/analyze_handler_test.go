package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/issue-assistant/internal/github"
	"github.com/ahmednasr/issue-assistant/internal/models"
)

// fakeAnalysisService records calls and returns a scripted result.
type fakeAnalysisService struct {
	analysis models.Analysis
	err      error
	calls    int
	cleared  bool
}

func (f *fakeAnalysisService) Analyze(_ context.Context, repoURL string, issueNumber int) (models.Analysis, error) {
	f.calls++
	if f.err != nil {
		return models.Analysis{}, f.err
	}
	return f.analysis, nil
}

func (f *fakeAnalysisService) ClearCache() {
	f.cleared = true
}

func newTestApp(svc *fakeAnalysisService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, svc)
	NewHealthHandler().Register(app)
	return app
}

func analyzeRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAnalyzeSuccess(t *testing.T) {
	svc := &fakeAnalysisService{analysis: models.Analysis{
		Summary:         "A crash.",
		Type:            models.TypeBug,
		PriorityScore:   "4 - High",
		SuggestedLabels: []string{"bug"},
		PotentialImpact: "Bad.",
		Metadata:        map[string]any{"cached": false},
	}}
	app := newTestApp(svc)

	resp, err := app.Test(analyzeRequest(`{"repo_url": "https://github.com/octocat/Hello-World", "issue_number": 42}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Analysis
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &got))
	assert.Equal(t, models.TypeBug, got.Type)
	assert.Equal(t, []string{"bug"}, got.SuggestedLabels)
	assert.Equal(t, false, got.Metadata["cached"])
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "invalid JSON",
			body: `{"repo_url": `,
			want: "invalid JSON body",
		},
		{
			name: "non-github URL",
			body: `{"repo_url": "https://gitlab.com/a/b", "issue_number": 1}`,
			want: "GitHub repository URL",
		},
		{
			name: "zero issue number",
			body: `{"repo_url": "https://github.com/a/b", "issue_number": 0}`,
			want: "issue_number must be positive",
		},
		{
			name: "negative issue number",
			body: `{"repo_url": "https://github.com/a/b", "issue_number": -7}`,
			want: "issue_number must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAnalysisService{}
			app := newTestApp(svc)

			resp, err := app.Test(analyzeRequest(tc.body))
			require.NoError(t, err)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), tc.want)
			assert.Equal(t, 0, svc.calls, "invalid input must not reach the service")
		})
	}
}

func TestAnalyzeMapsRetrieverErrors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "issue not found",
			err:        &github.NotFoundError{Owner: "octocat", Repo: "Hello-World", Number: 42},
			wantStatus: http.StatusBadRequest,
			wantBody:   "octocat/Hello-World",
		},
		{
			name:       "rate limited",
			err:        github.ErrRateLimited,
			wantStatus: http.StatusBadRequest,
			wantBody:   "rate limit",
		},
		{
			name:       "upstream error",
			err:        &github.APIError{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeAnalysisService{err: tc.err})

			resp, err := app.Test(analyzeRequest(`{"repo_url": "https://github.com/octocat/Hello-World", "issue_number": 42}`))
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), tc.wantBody)
		})
	}
}

func TestClearCacheEndpoint(t *testing.T) {
	svc := &fakeAnalysisService{}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/cache", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Cache cleared successfully")
	assert.True(t, svc.cleared)
}

func TestHealthAndRoot(t *testing.T) {
	app := newTestApp(&fakeAnalysisService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "healthy")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), apiName)
}
