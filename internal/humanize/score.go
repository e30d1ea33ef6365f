package humanize

import (
	"fmt"
	"math"
	"strings"

	"proofgate/internal/detect"
)

// MaxScore is the humanization score of text with no detected patterns.
const MaxScore = 20

// perPatternCap bounds how many matches of one pattern count toward the
// penalty.
const perPatternCap = 5

// Score converts detections into a humanization score in [0, MaxScore].
// Each pattern costs its severity weight per match, up to perPatternCap
// matches.
func Score(detections []detect.Detection) int {
	if len(detections) == 0 {
		return MaxScore
	}
	penalty := 0.0
	for _, d := range detections {
		penalty += d.Severity.Weight() * float64(min(d.Count, perPatternCap))
	}
	return clampScore(MaxScore-int(math.Floor(penalty)), 0, MaxScore)
}

func clampScore(value, lo, hi int) int {
	return max(lo, min(value, hi))
}

// summaryLimit caps how many patterns SummarizeDetections lists.
const summaryLimit = 10

// SummarizeDetections renders one line per detected pattern, at most ten,
// in detector order.
func SummarizeDetections(detections []detect.Detection) string {
	if len(detections) == 0 {
		return ""
	}
	lines := make([]string, 0, min(len(detections), summaryLimit))
	for i, d := range detections {
		if i == summaryLimit {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %d %s", d.PatternName, d.Severity, d.Count, plural(d.Count, "occurrence")))
	}
	return strings.Join(lines, "\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
