package humanize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"proofgate/internal/document"
	"proofgate/internal/logging"
	"proofgate/internal/services"
	"proofgate/internal/services/llm"
	"proofgate/internal/textutil"
)

// Default request caps, in runes.
const (
	DefaultSectionCharLimit  = 4000
	DefaultDocumentCharLimit = 12000
)

const auditorComponent = "auditor"

var auditorSchema = llm.MustCompileSchema(auditorComponent, `{
  "type": "object",
  "required": ["humanization_score"],
  "properties": {
    "humanization_score": {},
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

type auditorResponse struct {
	HumanizationScore json.RawMessage     `json:"humanization_score"`
	Summary           *string             `json:"summary"`
	Issues            []document.RawIssue `json:"issues"`
}

type auditorSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Auditor asks an LLM collaborator to audit each section for AI writing
// patterns.
type Auditor struct {
	completer     llm.Completer
	sectionLimit  int
	documentLimit int
	timeout       time.Duration
	logger        *slog.Logger
}

// AuditorOption customizes an Auditor.
type AuditorOption func(*Auditor)

// WithCharLimits overrides the per-section and whole-document rune caps.
// Non-positive values keep the defaults.
func WithCharLimits(section, doc int) AuditorOption {
	return func(a *Auditor) {
		if section > 0 {
			a.sectionLimit = section
		}
		if doc > 0 {
			a.documentLimit = doc
		}
	}
}

// WithTimeout bounds each collaborator call.
func WithTimeout(timeout time.Duration) AuditorOption {
	return func(a *Auditor) {
		a.timeout = timeout
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAuditor builds a collaborator-backed strategy.
func NewAuditor(completer llm.Completer, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		completer:     completer,
		sectionLimit:  DefaultSectionCharLimit,
		documentLimit: DefaultDocumentCharLimit,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.logger = logging.NewComponentLogger(a.logger, auditorComponent)
	return a
}

func (a *Auditor) Name() string { return StrategyAuditor }

// Assess implements Strategy. Any failure yields a zero score marked Failed.
func (a *Auditor) Assess(ctx context.Context, in Input) Assessment {
	assessment, err := a.audit(ctx, in)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, a.logger), "section audit failed; humanization score set to 0",
			"auditor_failed",
			logging.Error(err),
			logging.String("failure", string(services.Classify(err))),
			logging.String(logging.FieldErrorHint, "check llm settings and collaborator output"),
			logging.String(logging.FieldImpact, "review cannot pass on humanization"),
		)
		return failedAssessment(err)
	}
	return assessment
}

func (a *Auditor) audit(ctx context.Context, in Input) (Assessment, error) {
	if a.completer == nil {
		return Assessment{}, services.Wrap(services.ErrConfiguration, auditorComponent, "assess", "no llm client", nil)
	}
	userPrompt, err := a.userPrompt(in.Document)
	if err != nil {
		return Assessment{}, err
	}
	ctx = services.WithComponent(ctx, auditorComponent)
	content, err := services.CallWithTimeout(ctx, a.timeout, auditorComponent, "complete", func(ctx context.Context) (string, error) {
		return a.completer.CompleteJSON(ctx, auditorSystemPrompt(), userPrompt)
	})
	if err != nil {
		return Assessment{}, err
	}

	var resp auditorResponse
	if err := auditorSchema.Decode(content, &resp); err != nil {
		return Assessment{}, err
	}

	summary := ""
	if resp.Summary != nil {
		summary = strings.TrimSpace(*resp.Summary)
	}
	return Assessment{
		Score:   clampScore(coerceScore(resp.HumanizationScore), 0, MaxScore),
		Summary: summary,
		Issues:  document.NormalizeIssues(resp.Issues, in.Document.SectionIDs(), document.IssueTypeHumanization),
	}, nil
}

func (a *Auditor) userPrompt(doc document.Document) (string, error) {
	sections := make([]auditorSection, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		sections = append(sections, auditorSection{
			ID:      s.ID,
			Title:   s.Title,
			Content: textutil.TruncateRunes(s.Content, a.sectionLimit),
		})
	}
	encoded, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return "", services.Wrap(services.ErrValidation, auditorComponent, "encode sections", "", err)
	}
	var b strings.Builder
	b.WriteString("## Sections\n\n```json\n")
	b.Write(encoded)
	b.WriteString("\n```\n\n## Full document\n\n")
	b.WriteString(textutil.TruncateRunes(doc.Text, a.documentLimit))
	b.WriteByte('\n')
	return b.String(), nil
}

func auditorSystemPrompt() string {
	return fmt.Sprintf(`You are an editor who audits text for signs of AI-generated writing.

%s
Audit every section. Report each problem against the id of the section it appears in, or an empty section_id for whole-document problems. Rate the whole text from 0 (obviously machine-written) to %d (reads as written by a person).

Respond with JSON only:
{"humanization_score": <integer 0-%d>, "summary": "<one or two sentences>", "issues": [{"section_id": "<id>", "issue_type": "humanization", "severity": "low|medium|high", "description": "<what is wrong>", "suggestion": "<how to fix it>"}]}`,
		ReviewerGuide(), MaxScore, MaxScore)
}

// coerceScore accepts a JSON number or numeric string. Numbers are
// truncated toward zero; anything else is 0.
func coerceScore(raw json.RawMessage) int {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return truncate(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return truncate(f)
		}
	}
	return 0
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

var (
	_ Strategy = (*Auditor)(nil)
	_ Strategy = (*DetectorStrategy)(nil)
)
