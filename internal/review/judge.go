package review

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"proofgate/internal/document"
	"proofgate/internal/humanize"
	"proofgate/internal/services"
	"proofgate/internal/services/llm"
)

const rubricComponent = "rubric"

// RubricRequest is what the rubric judge sees.
type RubricRequest struct {
	Document  document.Document
	Outline   any
	Threshold int
}

// Rubric is the judge's holistic verdict.
type Rubric struct {
	Score    int
	Approved bool
	Issues   []document.Issue
	Summary  string
}

// RubricJudge produces the base score for a document.
type RubricJudge interface {
	Judge(ctx context.Context, req RubricRequest) (Rubric, error)
}

// RubricJudgeFunc adapts a function to RubricJudge.
type RubricJudgeFunc func(ctx context.Context, req RubricRequest) (Rubric, error)

func (f RubricJudgeFunc) Judge(ctx context.Context, req RubricRequest) (Rubric, error) {
	return f(ctx, req)
}

var rubricSchema = llm.MustCompileSchema(rubricComponent, `{
  "type": "object",
  "required": ["score", "approved"],
  "properties": {
    "score": {"type": "number"},
    "approved": {"type": "boolean"},
    "summary": {"type": ["string", "null"]},
    "issues": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "section_id":  {"type": ["string", "null"]},
          "issue_type":  {"type": ["string", "null"]},
          "severity":    {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]},
          "suggestion":  {"type": ["string", "null"]}
        }
      }
    }
  }
}`)

type rubricResponse struct {
	Score    float64             `json:"score"`
	Approved bool                `json:"approved"`
	Summary  *string             `json:"summary"`
	Issues   []document.RawIssue `json:"issues"`
}

// LLMJudge scores documents with an LLM collaborator.
type LLMJudge struct {
	completer llm.Completer
	guide     string
}

// NewLLMJudge builds a judge whose prompt embeds the reviewer guide.
func NewLLMJudge(completer llm.Completer) *LLMJudge {
	return &LLMJudge{completer: completer, guide: humanize.ReviewerGuide()}
}

// Judge implements RubricJudge. Malformed responses are ErrContract.
func (j *LLMJudge) Judge(ctx context.Context, req RubricRequest) (Rubric, error) {
	if j == nil || j.completer == nil {
		return Rubric{}, services.Wrap(services.ErrConfiguration, rubricComponent, "judge", "no llm client", nil)
	}
	userPrompt, err := rubricUserPrompt(req)
	if err != nil {
		return Rubric{}, err
	}
	content, err := j.completer.CompleteJSON(ctx, RubricSystemPrompt(req.Threshold, j.guide), userPrompt)
	if err != nil {
		return Rubric{}, err
	}
	var resp rubricResponse
	if err := rubricSchema.Decode(content, &resp); err != nil {
		return Rubric{}, err
	}
	if math.IsNaN(resp.Score) || math.IsInf(resp.Score, 0) {
		return Rubric{}, services.Wrap(services.ErrContract, rubricComponent, "decode", "score is not finite", nil)
	}
	summary := ""
	if resp.Summary != nil {
		summary = strings.TrimSpace(*resp.Summary)
	}
	return Rubric{
		Score:    clamp(int(max(min(resp.Score, 1000), -1000)), 0, 100),
		Approved: resp.Approved,
		Issues:   document.NormalizeIssues(resp.Issues, req.Document.SectionIDs(), document.IssueTypeQuality),
		Summary:  summary,
	}, nil
}

// RubricSystemPrompt renders the reviewer instructions for a threshold.
func RubricSystemPrompt(threshold int, guide string) string {
	return fmt.Sprintf(`You are a senior technical editor reviewing a long-form article before publication.

Judge the document against its outline: accuracy of coverage, structure, depth, clarity and readability. Also judge how human the prose sounds using the guide below.

%s
Scoring:
- score is 0-100 for overall quality, not counting the humanization check.
- Set approved to true only if the article is ready to publish and score >= %d.
- Mark an issue high severity only if it must be fixed before publication.
- Attach each issue to the id of the section it concerns, or leave section_id empty for whole-document issues.

Respond with JSON only:
{"score": <integer 0-100>, "approved": <true|false>, "summary": "<short verdict>", "issues": [{"section_id": "<id>", "issue_type": "quality", "severity": "low|medium|high", "description": "<problem>", "suggestion": "<fix>"}]}

The gate adds a separate humanization_score (0-20) to your score, so do not include one.`, guide, threshold)
}

func rubricUserPrompt(req RubricRequest) (string, error) {
	outline := req.Outline
	if outline == nil {
		outline = map[string]any{}
	}
	encoded, err := json.MarshalIndent(outline, "", "  ")
	if err != nil {
		return "", services.Wrap(services.ErrValidation, rubricComponent, "encode outline", "", err)
	}
	ids := make([]string, 0, len(req.Document.Sections))
	for _, s := range req.Document.Sections {
		ids = append(ids, fmt.Sprintf("%s: %s", s.ID, s.Title))
	}
	var b strings.Builder
	b.WriteString("## Outline\n\n```json\n")
	b.Write(encoded)
	b.WriteString("\n```\n\n## Section ids\n\n")
	b.WriteString(strings.Join(ids, "\n"))
	b.WriteString("\n\n## Document\n\n")
	b.WriteString(req.Document.Text)
	b.WriteByte('\n')
	return b.String(), nil
}
