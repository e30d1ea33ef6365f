package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"proofgate/internal/detect"
	"proofgate/internal/humanize"
	"proofgate/internal/patterns"
)

type detectReport struct {
	Source     string             `json:"source"`
	Score      int                `json:"humanization_score"`
	MaxScore   int                `json:"max_score"`
	Summary    string             `json:"summary"`
	Detections []detect.Detection `json:"detections"`
}

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var minSeverity string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "detect [file|-]",
		Short: "Scan text for AI writing patterns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			min := strings.TrimSpace(minSeverity)
			if min == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				min = cfg.Review.MinSeverity
			}
			severity, ok := patterns.ParseSeverity(min)
			if !ok {
				return fmt.Errorf("invalid severity %q (want low, medium or high)", min)
			}

			text, source, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			detections := detect.Detect(text, severity)
			report := detectReport{
				Source:     source,
				Score:      humanize.Score(detections),
				MaxScore:   humanize.MaxScore,
				Summary:    humanize.SummarizeDetections(detections),
				Detections: detections,
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			printDetectReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "Lowest severity to report (low, medium, high)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func printDetectReport(cmd *cobra.Command, report detectReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	if len(report.Detections) == 0 {
		fmt.Fprintln(out, "No AI writing patterns detected")
	} else {
		rows := make([][]string, 0, len(report.Detections))
		for _, d := range report.Detections {
			rows = append(rows, []string{
				d.PatternName,
				string(d.Category),
				string(d.Severity),
				strconv.Itoa(d.Count),
				detectionKeywords(d),
			})
		}
		fmt.Fprintln(out, renderTable([]tableColumn{
			{Header: "Pattern"},
			{Header: "Category"},
			{Header: "Severity"},
			{Header: "Count", Right: true},
			{Header: "Matches", MaxWidth: 40},
		}, rows))
	}
	label := fmt.Sprintf("%d/%d", report.Score, report.MaxScore)
	fmt.Fprintln(out, renderStatusLine("Humanization score", scoreKind(report.Score, report.MaxScore), label, colorize))
}

func detectionKeywords(d detect.Detection) string {
	seen := make(map[string]struct{}, len(d.Locations))
	keywords := make([]string, 0, len(d.Locations))
	for _, loc := range d.Locations {
		if _, ok := seen[loc.Keyword]; ok {
			continue
		}
		seen[loc.Keyword] = struct{}{}
		keywords = append(keywords, loc.Keyword)
	}
	return strings.Join(keywords, ", ")
}
