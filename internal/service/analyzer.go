package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ahmednasr/issue-assistant/internal/models"
)

// Prompt assembly limits. Long issues blow past token limits, so the
// body and each comment are cut hard and the tail of the thread dropped.
const (
	maxBodyChars    = 4000
	maxCommentChars = 500
	maxComments     = 10
	maxAttempts     = 2
)

// requiredFields must all be present in the model's JSON output.
var requiredFields = []string{"summary", "type", "priority_score", "suggested_labels", "potential_impact"}

// MalformedOutputError reports model output that failed JSON parsing or
// schema validation. Snippet carries the first 200 characters of the
// offending text for diagnostics.
type MalformedOutputError struct {
	Reason  string
	Snippet string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output (%s): %s", e.Reason, e.Snippet)
}

// Analyzer turns a normalized issue into a structured analysis via the
// text-generation backend. It owns the prompt contract: what goes into
// the model and what shape must come back.
type Analyzer struct {
	llm TextGenerator
}

// NewAnalyzer wires the generation backend and returns an Analyzer.
func NewAnalyzer(llm TextGenerator) *Analyzer {
	return &Analyzer{llm: llm}
}

// AnalyzeIssue builds the prompt, calls the model up to maxAttempts
// times, and parses the reply. It never fails: if every attempt errors
// out, the returned analysis is a schema-valid fallback that carries the
// failure in its summary. Callers can rely on the result unconditionally.
func (a *Analyzer) AnalyzeIssue(ctx context.Context, issue models.IssueData) models.Analysis {
	prompt := BuildPrompt(issue)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := a.llm.GenerateText(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		analysis, err := ParseResponse(text)
		if err != nil {
			lastErr = err
			continue
		}
		return analysis
	}

	return fallbackAnalysis(lastErr)
}

// fallbackAnalysis is the degraded-but-valid result returned when the
// model path fails entirely. Every field satisfies the response schema.
func fallbackAnalysis(cause error) models.Analysis {
	return models.Analysis{
		Summary:         fmt.Sprintf("Analysis unavailable: LLM analysis failed after %d attempts: %v", maxAttempts, cause),
		Type:            models.TypeOther,
		PriorityScore:   "3 - Unable to determine automatically",
		SuggestedLabels: []string{"needs-triage"},
		PotentialImpact: "Unable to analyze due to LLM error",
	}
}

// BuildPrompt instantiates the analysis prompt for one issue. It is a
// pure function of its input: same issue, same prompt, so cached results
// stay honest. Three few-shot examples anchor the output format before
// the real issue is presented.
func BuildPrompt(issue models.IssueData) string {
	body := issue.Body
	if utf8.RuneCountInString(body) > maxBodyChars {
		body = truncateRunes(body, maxBodyChars) + "\n... (truncated for length)"
	}
	if body == "" {
		body = "No description provided"
	}

	var comments strings.Builder
	if len(issue.Comments) > 0 {
		thread := issue.Comments
		if len(thread) > maxComments {
			thread = thread[:maxComments]
		}
		for i, c := range thread {
			text := c.Body
			if utf8.RuneCountInString(text) > maxCommentChars {
				text = truncateRunes(text, maxCommentChars) + "..."
			}
			author := c.Author
			if author == "" {
				author = "unknown"
			}
			fmt.Fprintf(&comments, "\nComment %d by %s:\n%s\n", i+1, author, text)
		}
	} else {
		comments.WriteString("No comments yet.")
	}

	labels := "None"
	if len(issue.Labels) > 0 {
		labels = strings.Join(issue.Labels, ", ")
	}

	return fmt.Sprintf(promptTemplate, issue.Title, body, comments.String(), labels)
}

// ParseResponse extracts and validates the model's JSON reply.
//
// The reply is often wrapped in a markdown fence; if so, only the span
// between the first fence line and the next one is kept. After parsing,
// all five required fields must be present. An unknown "type" is coerced
// to "other" and a bare-string "suggested_labels" to a one-element list
// rather than rejected, since both still carry usable signal.
func ParseResponse(raw string) (models.Analysis, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		start, end := 0, len(lines)
		for i, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				if start == 0 {
					start = i + 1
				} else {
					end = i
					break
				}
			}
		}
		text = strings.Join(lines[start:end], "\n")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return models.Analysis{}, &MalformedOutputError{
			Reason:  fmt.Sprintf("failed to parse LLM response as JSON: %v", err),
			Snippet: snippet(text),
		}
	}

	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return models.Analysis{}, &MalformedOutputError{
				Reason:  fmt.Sprintf("missing required field: %s", f),
				Snippet: snippet(text),
			}
		}
	}

	issueType := asString(fields["type"])
	if !validType(issueType) {
		issueType = models.TypeOther
	}

	var labels []string
	switch v := fields["suggested_labels"].(type) {
	case []any:
		labels = make([]string, 0, len(v))
		for _, item := range v {
			labels = append(labels, asString(item))
		}
	default:
		labels = []string{asString(v)}
	}

	return models.Analysis{
		Summary:         asString(fields["summary"]),
		Type:            issueType,
		PriorityScore:   asString(fields["priority_score"]),
		SuggestedLabels: labels,
		PotentialImpact: asString(fields["potential_impact"]),
	}, nil
}

func validType(t string) bool {
	for _, v := range models.ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// asString renders any JSON value as its string form; actual strings
// pass through untouched.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// snippet returns at most the first 200 characters of s.
func snippet(s string) string {
	return truncateRunes(s, 200)
}

// truncateRunes cuts s after n runes. The limits are character counts,
// not byte counts, and a byte slice could split a multibyte sequence —
// the model backend rejects prompts that are not valid UTF-8.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// promptTemplate expects, in order: issue title, issue body, formatted
// comment thread, comma-joined existing labels.
const promptTemplate = `You are an expert GitHub issue analyst. Analyze the following GitHub issue and provide a structured JSON response.

**IMPORTANT**: You must respond with ONLY valid JSON in the exact format specified below. Do not include any markdown, explanations, or text outside the JSON object.

Required JSON Format:
{
  "summary": "A comprehensive, multi-sentence paragraph (approx 50-70 words) fully explaining the issue context, the problem, and the proposed solution.",
  "type": "One of: bug, feature_request, documentation, question, or other",
  "priority_score": "A number from 1-5 where 1=low, 2=minor, 3=moderate, 4=high, 5=critical. Include a full sentence justification.",
  "suggested_labels": ["2-3 relevant labels"],
  "potential_impact": "A detailed paragraph explaining the specific consequences for users, developers, and the business if this is not addressed."
}

**Few-Shot Examples:**

Example 1 - Bug Report:
Issue Title: "Application crashes when clicking submit button"
Issue Body: "When I click the submit button on the login form, the app crashes immediately. This happens consistently on iOS 17."
Analysis:
{
  "summary": "Login form submit button causes consistent app crashes on iOS 17",
  "type": "bug",
  "priority_score": "5 - Critical: Blocks core functionality (login) for all iOS 17 users",
  "suggested_labels": ["bug", "crash", "ios", "login"],
  "potential_impact": "Users cannot log in on iOS 17, completely blocking app access for this user segment"
}

Example 2 - Feature Request:
Issue Title: "Add dark mode support"
Issue Body: "It would be great to have a dark mode option for better viewing at night."
Analysis:
{
  "summary": "Request for dark mode theme option for improved nighttime viewing experience",
  "type": "feature_request",
  "priority_score": "2 - Low: Nice-to-have enhancement, not blocking any functionality",
  "suggested_labels": ["enhancement", "ui", "dark-mode"],
  "potential_impact": "Would improve user experience for users who prefer dark interfaces, but no current functionality is broken"
}

Example 3 - Question:
Issue Title: "How to configure SSL certificates?"
Issue Body: "I'm trying to set up SSL but can't find documentation on where to place the certificates."
Analysis:
{
  "summary": "User needs guidance on SSL certificate configuration and file placement",
  "type": "question",
  "priority_score": "3 - Moderate: Indicates documentation gap affecting user onboarding",
  "suggested_labels": ["question", "documentation", "ssl"],
  "potential_impact": "May indicate unclear documentation that could confuse other users during setup"
}

---

Now analyze this issue:

**Issue Title:** %s

**Issue Body:**
%s

**Comments:**
%s

**Existing Labels:** %s

Provide your analysis as valid JSON only:`
