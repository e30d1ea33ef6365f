package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"proofgate/internal/config"
	"proofgate/internal/humanize"
	"proofgate/internal/patterns"
	"proofgate/internal/review"
)

// errReviewRejected gives a rejected document a non-zero exit status.
var errReviewRejected = errors.New("review rejected")

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var strategyName string
	var threshold int
	var jsonOutput bool
	var stateOut string

	cmd := &cobra.Command{
		Use:   "review [file|-]",
		Short: "Run the publication gate over a markdown or JSON document",
		Long: "Run the publication gate over a document.\n\n" +
			"Markdown input is split into sections on \"## \" headings. JSON input\n" +
			"takes the form {\"sections\": [{\"id\", \"title\", \"content\"}], \"outline\": ..., \"error\": \"...\"}.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Review.Strategy = strings.ToLower(strings.TrimSpace(strategyName))
			}
			if cmd.Flags().Changed("threshold") {
				if threshold < 0 || threshold > 100 {
					return fmt.Errorf("threshold must be between 0 and 100, got %d", threshold)
				}
				cfg.Review.Threshold = threshold
			}

			content, source, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := parseReviewInput(source, content)
			if err != nil {
				return err
			}

			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			gate, err := buildGate(cfg, logger)
			if err != nil {
				return err
			}

			result := gate.Review(cmd.Context(), review.Input{
				Sections: doc.Sections,
				Outline:  doc.Outline,
				Err:      doc.upstreamErr(),
			})

			if path := strings.TrimSpace(stateOut); path != "" {
				if err := writeReviewState(path, doc, result); err != nil {
					return err
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				printReviewResult(cmd, result)
			}
			if !result.Approved {
				return errReviewRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "", "Humanization strategy (detector or auditor)")
	cmd.Flags().IntVar(&threshold, "threshold", review.DefaultThreshold, "Approval threshold (0-100)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	cmd.Flags().StringVar(&stateOut, "state-out", "", "Write the document and review keys to this JSON file")
	return cmd
}

func buildGate(cfg *config.Config, logger *slog.Logger) (*review.Gate, error) {
	rubricLLM := cfg.RubricLLM()
	if err := cfg.RequireLLM(rubricLLM); err != nil {
		return nil, err
	}

	opts := humanize.StrategyOptions{
		MinSeverity:       patterns.CoerceSeverity(cfg.Review.MinSeverity),
		SectionCharLimit:  cfg.Review.SectionCharLimit,
		DocumentCharLimit: cfg.Review.DocumentCharLimit,
		Timeout:           cfg.AuditorTimeout(),
		Logger:            logger,
	}
	if cfg.Review.Strategy == humanize.StrategyAuditor {
		auditorLLM := cfg.AuditorLLM()
		if err := cfg.RequireLLM(auditorLLM); err != nil {
			return nil, fmt.Errorf("auditor: %w", err)
		}
		opts.Completer = llmClient(auditorLLM)
	}
	strategy, err := humanize.NewStrategy(cfg.Review.Strategy, opts)
	if err != nil {
		return nil, err
	}

	return review.New(review.NewLLMJudge(llmClient(rubricLLM)), strategy,
		review.WithThreshold(cfg.Review.Threshold),
		review.WithRubricTimeout(cfg.RubricTimeout()),
		review.WithHumanizationTimeout(cfg.AuditorTimeout()),
		review.WithLogger(logger),
	), nil
}

func writeReviewState(path string, doc reviewDocument, result review.Result) error {
	state := map[string]any{
		"sections": doc.Sections,
	}
	if doc.Outline != nil {
		state["outline"] = doc.Outline
	}
	if doc.Error != "" {
		state["error"] = doc.Error
	}
	result.Apply(state)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode review state: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write review state %s: %w", path, err)
	}
	return nil
}

func printReviewResult(cmd *cobra.Command, result review.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	writeLines(out, renderSectionHeader("Review "+result.ID, colorize)...)

	verdict, verdictKind := "rejected", statusError
	if result.Approved {
		verdict, verdictKind = "approved", statusOK
	}
	writeLines(out, renderStatusBlock([]statusLine{
		{label: "Verdict", kind: verdictKind, message: verdict},
		{label: "Score", kind: scoreKind(result.Score, result.Threshold),
			message: fmt.Sprintf("%d/100 (threshold %d)", result.Score, result.Threshold)},
		{label: "Rubric", kind: statusInfo, message: fmt.Sprintf("%d/100", result.BaseScore)},
		{label: "Humanization", kind: scoreKind(result.HumanizationScore, humanize.MaxScore),
			message: fmt.Sprintf("%d/%d via %s", result.HumanizationScore, humanize.MaxScore, result.Strategy)},
		{label: "Status", kind: reviewStatusKind(result.Status), message: string(result.Status)},
	}, colorize)...)

	if summary := strings.TrimSpace(result.Summary); summary != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, summary)
	}
	if summary := strings.TrimSpace(result.HumanizationSummary); summary != "" {
		fmt.Fprintln(out, summary)
	}

	if len(result.Issues) == 0 {
		return
	}
	rows := make([][]string, 0, len(result.Issues))
	for i, issue := range result.Issues {
		section := issue.SectionID
		if section == "" {
			section = "(document)"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			section,
			issue.IssueType,
			string(issue.Severity),
			issue.Description,
			issue.Suggestion,
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]tableColumn{
		{Header: "#", Right: true},
		{Header: "Section"},
		{Header: "Type"},
		{Header: "Severity"},
		{Header: "Issue", MaxWidth: 48},
		{Header: "Suggestion", MaxWidth: 48},
	}, rows))
}

func reviewStatusKind(status review.Status) statusKind {
	switch status {
	case review.StatusEvaluated:
		return statusOK
	case review.StatusSkipped:
		return statusWarn
	default:
		return statusError
	}
}
