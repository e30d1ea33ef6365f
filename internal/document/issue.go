package document

import (
	"strings"

	"proofgate/internal/patterns"
)

// Issue types used by the built-in reviewers.
const (
	IssueTypeQuality      = "quality"
	IssueTypeHumanization = "humanization"
)

// UnspecifiedIssue describes an issue reported without any text.
const UnspecifiedIssue = "unspecified issue"

// Issue is an actionable finding. An empty SectionID means the whole
// document.
type Issue struct {
	SectionID   string            `json:"section_id"`
	IssueType   string            `json:"issue_type"`
	Severity    patterns.Severity `json:"severity"`
	Description string            `json:"description"`
	Suggestion  string            `json:"suggestion"`
}

// RawIssue is an issue as a collaborator reports it, before validation.
type RawIssue struct {
	SectionID   string `json:"section_id"`
	IssueType   string `json:"issue_type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// NormalizeIssues validates collaborator issues against the known section
// ids. Unknown section ids become "", unknown severities become medium and a
// missing issue type takes defaultType. Every issue is kept: one with neither
// description nor suggestion is described as UnspecifiedIssue so its severity
// still counts.
func NormalizeIssues(raw []RawIssue, known map[string]struct{}, defaultType string) []Issue {
	issues := make([]Issue, 0, len(raw))
	for _, r := range raw {
		description := strings.TrimSpace(r.Description)
		suggestion := strings.TrimSpace(r.Suggestion)
		if description == "" && suggestion == "" {
			description = UnspecifiedIssue
		}
		sectionID := strings.TrimSpace(r.SectionID)
		if _, ok := known[sectionID]; !ok {
			sectionID = ""
		}
		issueType := strings.ToLower(strings.TrimSpace(r.IssueType))
		if issueType == "" {
			issueType = defaultType
		}
		issues = append(issues, Issue{
			SectionID:   sectionID,
			IssueType:   issueType,
			Severity:    patterns.CoerceSeverity(r.Severity),
			Description: description,
			Suggestion:  suggestion,
		})
	}
	return issues
}

// HasSeverity reports whether any issue has the given severity.
func HasSeverity(issues []Issue, severity patterns.Severity) bool {
	for _, issue := range issues {
		if issue.Severity == severity {
			return true
		}
	}
	return false
}
