package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"proofgate/internal/document"
	"proofgate/internal/humanize"
	"proofgate/internal/logging"
	"proofgate/internal/patterns"
	"proofgate/internal/services"
)

// loggedIssueLimit caps the issues echoed in the decision log line.
const loggedIssueLimit = 3

// Input is one review request.
type Input struct {
	Sections []document.Section
	Outline  any
	// Err is an upstream failure. A non-nil Err skips the review.
	Err error
}

// Gate decides whether a document may be published.
type Gate struct {
	judge               RubricJudge
	strategy            humanize.Strategy
	threshold           int
	rubricTimeout       time.Duration
	humanizationTimeout time.Duration
	logger              *slog.Logger
	newID               func() string
}

// Option customizes a Gate.
type Option func(*Gate)

// WithThreshold sets the approval threshold. Values are clamped to 0-100.
func WithThreshold(threshold int) Option {
	return func(g *Gate) {
		g.threshold = clamp(threshold, 0, 100)
	}
}

// WithRubricTimeout bounds the rubric judge call.
func WithRubricTimeout(timeout time.Duration) Option {
	return func(g *Gate) {
		g.rubricTimeout = timeout
	}
}

// WithHumanizationTimeout bounds the humanization strategy.
func WithHumanizationTimeout(timeout time.Duration) Option {
	return func(g *Gate) {
		g.humanizationTimeout = timeout
	}
}

// WithLogger sets the gate logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithIDGenerator replaces the review id source.
func WithIDGenerator(fn func() string) Option {
	return func(g *Gate) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// New builds a Gate. A nil strategy uses the local detector.
func New(judge RubricJudge, strategy humanize.Strategy, opts ...Option) *Gate {
	if strategy == nil {
		strategy = humanize.NewDetectorStrategy(nil, "")
	}
	g := &Gate{
		judge:     judge,
		strategy:  strategy,
		threshold: DefaultThreshold,
		logger:    logging.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.logger = logging.NewComponentLogger(g.logger, "review")
	return g
}

// Threshold returns the configured approval threshold.
func (g *Gate) Threshold() int {
	return g.threshold
}

// Review evaluates in and always returns a complete Result.
func (g *Gate) Review(ctx context.Context, in Input) Result {
	id := g.newID()
	ctx = services.WithReviewID(ctx, id)
	logger := logging.WithContext(ctx, g.logger)

	run := &reviewRun{hasInput: in.Err == nil && len(in.Sections) > 0}
	machine, err := newStateMachine(run)
	if err != nil {
		logging.ErrorWithContext(logger, "review state machine unavailable", "review_internal", logging.Error(err))
		return g.result(id, StatePending, StatusEvaluationFailed, "review unavailable: "+err.Error())
	}

	if !run.hasInput {
		skipErr := skipError(in)
		if err := machine.transition(eventSkip); err != nil {
			logger.Debug("skip transition refused", logging.Error(err))
		}
		logging.WarnWithContext(logger, "review skipped", "review_skipped",
			logging.Error(skipErr),
			logging.String("failure", string(services.Classify(skipErr))),
			logging.String(logging.FieldErrorHint, "fix the upstream step and resubmit"),
			logging.String(logging.FieldImpact, "document rejected without scoring"),
		)
		return g.result(id, machine.current(), StatusSkipped, "skipped: "+skipErr.Error())
	}

	if err := machine.transition(eventScore); err != nil {
		logging.ErrorWithContext(logger, "review could not start scoring", "review_internal", logging.Error(err))
		return g.result(id, machine.current(), StatusEvaluationFailed, "review unavailable: "+err.Error())
	}

	doc := document.Assemble(in.Sections)
	scored := g.score(ctx, doc, in.Outline)
	rubric, rubricErr, assessment := scored.rubric, scored.rubricErr, scored.assessment

	base, rubricApproved := 0, false
	if rubricErr == nil {
		base, rubricApproved = clamp(rubric.Score, 0, 100), rubric.Approved
	}
	humanization := clamp(assessment.Score, 0, humanize.MaxScore)

	issues := make([]document.Issue, 0, len(rubric.Issues)+len(assessment.Issues))
	issues = append(issues, rubric.Issues...)
	issues = append(issues, assessment.Issues...)

	total := MergeScore(base, humanization)
	run.approved = Decide(rubricApproved, issues, total, g.threshold)

	event := eventReject
	if run.approved {
		event = eventApprove
	}
	if err := machine.transition(event); err != nil {
		logger.Debug("decision transition refused", logging.Error(err))
	}

	status := StatusEvaluated
	if rubricErr != nil || assessment.Failed {
		status = StatusEvaluationFailed
	}
	summary := rubric.Summary
	if rubricErr != nil {
		summary = fmt.Sprintf("rubric evaluation failed (%s): %v", services.Classify(rubricErr), rubricErr)
		logging.WarnWithContext(logger, "rubric evaluation failed; base score set to 0", "rubric_failed",
			logging.Error(rubricErr),
			logging.String("failure", string(services.Classify(rubricErr))),
			logging.String(logging.FieldErrorHint, "check llm settings and rubric output"),
			logging.String(logging.FieldImpact, "document rejected"),
		)
	}

	result := Result{
		ID:                  id,
		Score:               total,
		BaseScore:           base,
		Approved:            run.approved && machine.current() == StateApproved,
		Issues:              issues,
		Summary:             summary,
		HumanizationScore:   humanization,
		HumanizationSummary: assessment.Summary,
		Strategy:            g.strategy.Name(),
		Threshold:           g.threshold,
		Status:              status,
		State:               machine.current(),
	}
	g.logDecision(logger, result, scored, decisionReason(rubricErr, rubricApproved, issues, total, g.threshold))
	return result
}

type scores struct {
	rubric              Rubric
	rubricErr           error
	assessment          humanize.Assessment
	rubricLatency       time.Duration
	humanizationLatency time.Duration
}

// score runs the rubric judge and the humanization strategy concurrently.
func (g *Gate) score(ctx context.Context, doc document.Document, outline any) scores {
	var (
		rubric     Rubric
		rubricErr  error
		assessment humanize.Assessment
		latency    [2]time.Duration
		group      errgroup.Group
	)

	group.Go(func() error {
		if g.judge == nil {
			rubricErr = services.Wrap(services.ErrConfiguration, rubricComponent, "judge", "no rubric judge", nil)
			return nil
		}
		started := time.Now()
		defer func() { latency[0] = time.Since(started) }()
		rubricCtx := services.WithComponent(ctx, rubricComponent)
		rubric, rubricErr = services.CallWithTimeout(rubricCtx, g.rubricTimeout, rubricComponent, "judge", func(ctx context.Context) (r Rubric, err error) {
			defer recoverInto(&err, rubricComponent)
			return g.judge.Judge(ctx, RubricRequest{Document: doc, Outline: outline, Threshold: g.threshold})
		})
		return nil
	})

	group.Go(func() error {
		started := time.Now()
		defer func() { latency[1] = time.Since(started) }()
		component := g.strategy.Name()
		result, err := services.CallWithTimeout(services.WithComponent(ctx, component), g.humanizationTimeout, component, "assess", func(ctx context.Context) (a humanize.Assessment, err error) {
			defer recoverInto(&err, component)
			return g.strategy.Assess(ctx, humanize.Input{Document: doc}), nil
		})
		if err != nil {
			result = humanize.Assessment{Summary: humanize.FailedSummary, Issues: []document.Issue{}, Failed: true, Err: err}
		}
		assessment = result
		return nil
	})

	_ = group.Wait()
	if rubricErr != nil {
		rubric = Rubric{}
	}
	if assessment.Issues == nil {
		assessment.Issues = []document.Issue{}
	}
	return scores{
		rubric:              rubric,
		rubricErr:           rubricErr,
		assessment:          assessment,
		rubricLatency:       latency[0],
		humanizationLatency: latency[1],
	}
}

// recoverInto must be deferred directly so recover sees the panic.
func recoverInto(target *error, component string) {
	if r := recover(); r != nil {
		*target = services.Wrap(services.ErrExternalTool, component, "panic", fmt.Sprint(r), nil)
	}
}

func (g *Gate) result(id string, state State, status Status, summary string) Result {
	return Result{
		ID:                  id,
		Issues:              []document.Issue{},
		Summary:             summary,
		HumanizationSummary: "",
		Strategy:            g.strategy.Name(),
		Threshold:           g.threshold,
		Status:              status,
		State:               state,
	}
}

// skipError tags why a review never reached scoring.
func skipError(in Input) error {
	if in.Err != nil {
		return services.Wrap(services.ErrUpstream, "review", "guard", "upstream step failed", in.Err)
	}
	return services.Wrap(services.ErrEmptyInput, "review", "guard", "no sections", nil)
}

func decisionReason(rubricErr error, rubricApproved bool, issues []document.Issue, total, threshold int) string {
	var reasons []string
	if rubricErr != nil {
		reasons = append(reasons, "rubric evaluation failed")
	} else if !rubricApproved {
		reasons = append(reasons, "rubric rejected")
	}
	if document.HasSeverity(issues, patterns.SeverityHigh) {
		reasons = append(reasons, "high-severity issue")
	}
	if total < threshold {
		reasons = append(reasons, fmt.Sprintf("score %d below threshold %d", total, threshold))
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("score %d meets threshold %d", total, threshold)
	}
	return strings.Join(reasons, "; ")
}

func (g *Gate) logDecision(logger *slog.Logger, r Result, scored scores, reason string) {
	verdict := "rejected"
	if r.Approved {
		verdict = "approved"
	}
	attrs := logging.DecisionAttrs("review_gate", verdict, reason)
	attrs = append(attrs,
		logging.Int("score", r.Score),
		logging.Int("base_score", r.BaseScore),
		logging.Int("humanization_score", r.HumanizationScore),
		logging.Bool("approved", r.Approved),
		logging.String("status", string(r.Status)),
		logging.String("strategy", r.Strategy),
		logging.Int("issue_count", len(r.Issues)),
		logging.Duration("rubric_latency", scored.rubricLatency),
		logging.Duration("humanization_latency", scored.humanizationLatency),
	)
	for i, issue := range r.Issues {
		if i == loggedIssueLimit {
			break
		}
		attrs = append(attrs, logging.String(fmt.Sprintf("issue_%d", i+1), fmt.Sprintf("[%s] %s", issue.Severity, issue.Description)))
	}
	logger.Info("review decision", logging.Args(attrs...)...)
}
