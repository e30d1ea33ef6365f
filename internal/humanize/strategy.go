package humanize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"proofgate/internal/detect"
	"proofgate/internal/document"
	"proofgate/internal/patterns"
	"proofgate/internal/services/llm"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyDetector = "detector"
	StrategyAuditor  = "auditor"
)

// FailedSummary is the summary of an assessment that could not be produced.
const FailedSummary = "detection failed"

// Input is the document a strategy assesses.
type Input struct {
	Document document.Document
}

// Assessment is a strategy's verdict on one document.
type Assessment struct {
	Score   int              `json:"score"`
	Summary string           `json:"summary"`
	Issues  []document.Issue `json:"issues"`
	// Failed marks a fail-closed result: Score is 0 and Err holds the cause.
	Failed bool  `json:"failed"`
	Err    error `json:"-"`
}

// Strategy produces a humanization assessment. Implementations never return
// an error; failures are reported through Assessment.Failed.
type Strategy interface {
	Name() string
	Assess(ctx context.Context, in Input) Assessment
}

func failedAssessment(err error) Assessment {
	return Assessment{
		Score:   0,
		Summary: FailedSummary,
		Issues:  []document.Issue{},
		Failed:  true,
		Err:     err,
	}
}

// StrategyOptions carries the dependencies either strategy may need.
type StrategyOptions struct {
	Detector          *detect.Detector
	MinSeverity       patterns.Severity
	Completer         llm.Completer
	SectionCharLimit  int
	DocumentCharLimit int
	Timeout           time.Duration
	Logger            *slog.Logger
}

// NewStrategy selects a strategy by name.
func NewStrategy(name string, opts StrategyOptions) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyDetector:
		return NewDetectorStrategy(opts.Detector, opts.MinSeverity), nil
	case StrategyAuditor:
		if opts.Completer == nil {
			return nil, fmt.Errorf("auditor strategy requires an llm client")
		}
		return NewAuditor(opts.Completer,
			WithCharLimits(opts.SectionCharLimit, opts.DocumentCharLimit),
			WithTimeout(opts.Timeout),
			WithLogger(opts.Logger),
		), nil
	default:
		return nil, fmt.Errorf("unknown humanization strategy %q", name)
	}
}
