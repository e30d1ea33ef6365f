package humanize

import (
	"context"
	"fmt"
	"strings"

	"proofgate/internal/detect"
	"proofgate/internal/document"
	"proofgate/internal/patterns"
)

// DetectorStrategy scores a document with the local pattern detector. It is
// deterministic and makes no network calls.
type DetectorStrategy struct {
	detector    *detect.Detector
	minSeverity patterns.Severity
}

// NewDetectorStrategy builds a detector-backed strategy. A nil detector uses
// the default catalog and an empty severity means medium.
func NewDetectorStrategy(detector *detect.Detector, minSeverity patterns.Severity) *DetectorStrategy {
	if detector == nil {
		detector = detect.New(nil)
	}
	if minSeverity == "" {
		minSeverity = patterns.SeverityMedium
	}
	return &DetectorStrategy{detector: detector, minSeverity: minSeverity}
}

func (s *DetectorStrategy) Name() string { return StrategyDetector }

// Assess implements Strategy.
func (s *DetectorStrategy) Assess(_ context.Context, in Input) Assessment {
	detections := s.detector.Detect(in.Document.Text, s.minSeverity)
	score := Score(detections)
	issues := make([]document.Issue, 0, len(detections))
	for _, d := range detections {
		issues = append(issues, detectionIssue(in.Document, d))
	}
	return Assessment{
		Score:   score,
		Summary: detectionSummary(score, detections),
		Issues:  issues,
	}
}

func detectionIssue(doc document.Document, d detect.Detection) document.Issue {
	sectionID := ""
	if len(d.Locations) > 0 {
		sectionID = doc.SectionAt(d.Locations[0].Offset)
	}
	return document.Issue{
		SectionID:   sectionID,
		IssueType:   document.IssueTypeHumanization,
		Severity:    d.Severity,
		Description: detectionDescription(d),
		Suggestion:  SuggestionFor(d.Category),
	}
}

func detectionDescription(d detect.Detection) string {
	seen := make(map[string]struct{}, len(d.Locations))
	keywords := make([]string, 0, 3)
	for _, loc := range d.Locations {
		if _, ok := seen[loc.Keyword]; ok {
			continue
		}
		seen[loc.Keyword] = struct{}{}
		keywords = append(keywords, fmt.Sprintf("%q", loc.Keyword))
		if len(keywords) == 3 {
			break
		}
	}
	desc := fmt.Sprintf("%s: %d matches", d.PatternName, d.Count)
	if d.Count == 1 {
		desc = d.PatternName + ": 1 match"
	}
	if len(keywords) > 0 {
		desc += " (" + strings.Join(keywords, ", ") + ")"
	}
	return desc
}

func detectionSummary(score int, detections []detect.Detection) string {
	if len(detections) == 0 {
		return fmt.Sprintf("humanization %d/%d, no AI writing patterns detected", score, MaxScore)
	}
	names := make([]string, 0, 3)
	for i, d := range detections {
		if i == 3 {
			break
		}
		names = append(names, d.PatternName)
	}
	return fmt.Sprintf("humanization %d/%d, %d %s detected: %s", score, MaxScore, len(detections), plural(len(detections), "pattern"), strings.Join(names, "; "))
}
