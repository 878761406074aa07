package models

// Issue captures the fields we care about from GitHub's REST API.
// Body may be null upstream; encoding/json leaves it as "" in that case.
type Issue struct {
	ID        int     `json:"id"`
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	State     string  `json:"state"`
	Labels    []Label `json:"labels"`
	Comments  int     `json:"comments"`
	HTMLURL   string  `json:"html_url"`
	CreatedAt string  `json:"created_at"`
	User      *User   `json:"user"`
}

// Label is GitHub's label object; only the name matters to us.
type Label struct {
	Name string `json:"name"`
}

// User is the nested author object on issues and comments.
type User struct {
	Login string `json:"login"`
}

// Comment is a single entry from the issue's comment thread.
type Comment struct {
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	User      *User  `json:"user"`
}

// IssueComment is a comment normalized for analysis: author resolved
// (or "unknown" when GitHub omits the user object), body and timestamp kept.
type IssueComment struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// IssueData is the normalized record the analysis pipeline consumes:
// one issue plus its comment thread, flattened to plain strings.
// It is built once per request and never shared or mutated afterwards.
type IssueData struct {
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	State         string         `json:"state"`
	Labels        []string       `json:"labels"`
	CommentsCount int            `json:"comments_count"`
	Comments      []IssueComment `json:"comments"`
	CreatedAt     string         `json:"created_at"`
	HTMLURL       string         `json:"html_url"`
}
