// Package github is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints the analysis pipeline requires.
package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ahmednasr/issue-assistant/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// repoURLPatterns are tried in order, first match wins. The strict form
// anchors owner/repo at the end of the URL and tolerates a ".git" suffix
// and a trailing slash; the loose fallback accepts owner/repo anywhere in
// the path, so URLs with extra trailing segments still resolve.
var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`),
}

// Client is a GitHub API client scoped to issue retrieval.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient returns a ready-to-use GitHub API client.
// token may be an empty string, but you will be subject to very low rate-limits.
func NewClient(token string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// ParseRepoURL extracts (owner, repo) from a GitHub repository URL.
// Returns an *InvalidRepoURLError when no pattern matches.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	for _, pat := range repoURLPatterns {
		m := pat.FindStringSubmatch(repoURL)
		if m == nil {
			continue
		}
		owner, repo = m[1], m[2]
		// Clean repo name from any trailing slash or .git leftover the
		// loose pattern may have captured.
		repo = strings.TrimRight(repo, "/")
		repo = strings.ReplaceAll(repo, ".git", "")
		return owner, repo, nil
	}
	return "", "", &InvalidRepoURLError{URL: repoURL}
}

// GetIssueData is the single public retrieval entry point: it parses the
// repository URL, fetches the issue, then fetches its comments on a
// best-effort basis, and normalizes everything into one models.IssueData.
func (c *Client) GetIssueData(repoURL string, issueNumber int) (models.IssueData, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return models.IssueData{}, err
	}

	issue, err := c.fetchIssue(owner, repo, issueNumber)
	if err != nil {
		return models.IssueData{}, err
	}

	comments := c.fetchComments(owner, repo, issueNumber)

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.Name)
	}

	normalized := make([]models.IssueComment, 0, len(comments))
	for _, cm := range comments {
		author := "unknown"
		if cm.User != nil && cm.User.Login != "" {
			author = cm.User.Login
		}
		normalized = append(normalized, models.IssueComment{
			Author:    author,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		})
	}

	return models.IssueData{
		Title:         issue.Title,
		Body:          issue.Body, // null upstream already decoded to ""
		State:         issue.State,
		Labels:        labels,
		CommentsCount: issue.Comments,
		Comments:      normalized,
		CreatedAt:     issue.CreatedAt,
		HTMLURL:       issue.HTMLURL,
	}, nil
}

// fetchIssue retrieves a single issue and translates HTTP failures into
// the package's error taxonomy.
func (c *Client) fetchIssue(owner, repo string, issueNumber int) (models.Issue, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/%d",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), issueNumber)

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return models.Issue{}, err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Issue{}, fmt.Errorf("failed to connect to GitHub API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.Issue{}, &NotFoundError{Owner: owner, Repo: repo, Number: issueNumber}
	case resp.StatusCode == http.StatusForbidden:
		return models.Issue{}, ErrRateLimited
	case resp.StatusCode >= 300:
		return models.Issue{}, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var issue models.Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return models.Issue{}, fmt.Errorf("github: decode issue: %w", err)
	}
	return issue, nil
}

// fetchComments retrieves the issue's comment thread. Comments are
// supplementary, so any failure (network, non-2xx, bad JSON) degrades to
// an empty list instead of failing the caller.
func (c *Client) fetchComments(owner, repo string, issueNumber int) []models.Comment {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), issueNumber)

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil
	}

	var comments []models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		return nil
	}
	return comments
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "issue-assistant-api")
}
