package models

// Issue classification values the analyzer is allowed to return.
// Anything else coming back from the model is coerced to TypeOther.
const (
	TypeBug            = "bug"
	TypeFeatureRequest = "feature_request"
	TypeDocumentation  = "documentation"
	TypeQuestion       = "question"
	TypeOther          = "other"
)

// ValidTypes lists every classification the API may emit.
var ValidTypes = []string{TypeBug, TypeFeatureRequest, TypeDocumentation, TypeQuestion, TypeOther}

// AnalyzeRequest is the payload for POST /api/analyze.
type AnalyzeRequest struct {
	RepoURL     string `json:"repo_url"`
	IssueNumber int    `json:"issue_number"`
}

// Analysis is the structured result of one issue analysis.
// PriorityScore is deliberately a string: a digit 1-5 followed by a
// justification sentence, not a bare number.
type Analysis struct {
	Summary         string         `json:"summary"`
	Type            string         `json:"type"`
	PriorityScore   string         `json:"priority_score"`
	SuggestedLabels []string       `json:"suggested_labels"`
	PotentialImpact string         `json:"potential_impact"`
	Metadata        map[string]any `json:"metadata"`
}
