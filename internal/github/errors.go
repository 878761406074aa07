package github

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned when GitHub answers 403, which for
// unauthenticated clients almost always means the rate limit.
var ErrRateLimited = errors.New(
	"GitHub API rate limit exceeded. Add a GITHUB_TOKEN to your environment for higher limits")

// InvalidRepoURLError reports a repository URL no matcher accepted.
type InvalidRepoURLError struct {
	URL string
}

func (e *InvalidRepoURLError) Error() string {
	return fmt.Sprintf("invalid GitHub repository URL: %s. Expected format: https://github.com/owner/repo", e.URL)
}

// NotFoundError reports a 404 for a specific issue.
type NotFoundError struct {
	Owner  string
	Repo   string
	Number int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("issue #%d not found in %s/%s. Please check the repository and issue number", e.Number, e.Owner, e.Repo)
}

// APIError reports any other non-2xx status from GitHub.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: unexpected status %s", e.Status)
}

// IsClientError reports whether err is caused by the caller's input
// (bad URL, missing issue, exhausted quota) rather than by us or by
// GitHub being unreachable. The HTTP layer maps these to 400.
func IsClientError(err error) bool {
	var invalidURL *InvalidRepoURLError
	var notFound *NotFoundError
	return errors.As(err, &invalidURL) ||
		errors.As(err, &notFound) ||
		errors.Is(err, ErrRateLimited)
}
