package review

import (
	"proofgate/internal/document"
	"proofgate/internal/humanize"
	"proofgate/internal/patterns"
)

// DefaultThreshold is the minimum total score for approval.
const DefaultThreshold = 91

// Status records how a result was produced.
type Status string

const (
	// StatusEvaluated means both collaborators answered.
	StatusEvaluated Status = "evaluated"
	// StatusEvaluationFailed means a collaborator failed and its share was
	// scored as zero.
	StatusEvaluationFailed Status = "evaluation_failed"
	// StatusSkipped means the input was empty or carried an upstream error.
	StatusSkipped Status = "skipped"
)

// Result is the gate's verdict on one document.
type Result struct {
	ID                  string           `json:"id"`
	Score               int              `json:"score"`
	BaseScore           int              `json:"base_score"`
	Approved            bool             `json:"approved"`
	Issues              []document.Issue `json:"issues"`
	Summary             string           `json:"summary"`
	HumanizationScore   int              `json:"humanization_score"`
	HumanizationSummary string           `json:"humanization_summary"`
	Strategy            string           `json:"strategy,omitempty"`
	Threshold           int              `json:"threshold"`
	Status              Status           `json:"status"`
	State               State            `json:"state"`
}

// Shared-state keys written by Apply.
const (
	KeyReviewScore         = "review_score"
	KeyReviewApproved      = "review_approved"
	KeyReviewIssues        = "review_issues"
	KeyHumanizationScore   = "humanization_score"
	KeyHumanizationSummary = "humanization_summary"
)

// Apply writes the result into a pipeline's shared state map.
func (r Result) Apply(state map[string]any) {
	if state == nil {
		return
	}
	issues := r.Issues
	if issues == nil {
		issues = []document.Issue{}
	}
	state[KeyReviewScore] = r.Score
	state[KeyReviewApproved] = r.Approved
	state[KeyReviewIssues] = issues
	state[KeyHumanizationScore] = r.HumanizationScore
	state[KeyHumanizationSummary] = r.HumanizationSummary
}

// MergeScore folds a base score (0-100) and a humanization score (0-20)
// onto a 0-100 scale, rounding half up.
func MergeScore(base, humanization int) int {
	base = clamp(base, 0, 100)
	humanization = clamp(humanization, 0, humanize.MaxScore)
	scaled := (base + humanization) * 100
	total := (scaled*2 + maxCombined) / (maxCombined * 2)
	return clamp(total, 0, 100)
}

const maxCombined = 100 + humanize.MaxScore

// Decide approves only when the rubric approved, no issue is high severity
// and total reaches threshold.
func Decide(rubricApproved bool, issues []document.Issue, total, threshold int) bool {
	return rubricApproved && !document.HasSeverity(issues, patterns.SeverityHigh) && total >= threshold
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}
