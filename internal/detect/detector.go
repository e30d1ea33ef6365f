package detect

import (
	"fmt"
	"sort"
	"strings"

	"proofgate/internal/patterns"
	"proofgate/internal/textutil"
)

const (
	// MaxLocations caps the locations kept per detection.
	MaxLocations = 5
	// ContextRunes is the context width captured on each side of a match.
	ContextRunes = 30
)

// Location is a single keyword match.
type Location struct {
	Keyword string `json:"keyword"`
	Offset  int    `json:"offset"`
	Context string `json:"context"`
}

// Detection aggregates the matches for one pattern.
type Detection struct {
	PatternID   string            `json:"pattern_id"`
	PatternName string            `json:"pattern_name"`
	Category    patterns.Category `json:"category"`
	Severity    patterns.Severity `json:"severity"`
	Locations   []Location        `json:"locations"`
	Count       int               `json:"count"`
	Description string            `json:"description"`
	Suggestion  string            `json:"suggestion"`
}

// Detector scans text against a catalog.
type Detector struct {
	catalog *patterns.Catalog
}

// New returns a detector over catalog. A nil catalog uses the embedded one.
func New(catalog *patterns.Catalog) *Detector {
	if catalog == nil {
		catalog = patterns.Default()
	}
	return &Detector{catalog: catalog}
}

// Detect scans text with the embedded catalog.
func Detect(text string, min patterns.Severity) []Detection {
	return New(nil).Detect(text, min)
}

// Detect returns the patterns found in text whose severity is at least min.
// Severities below low, including unknown values, clamp to low.
func (d *Detector) Detect(text string, min patterns.Severity) []Detection {
	detections := make([]Detection, 0)
	if text == "" {
		return detections
	}

	folded := textutil.Fold(text)
	for _, p := range d.catalog.AtLeast(min) {
		if p.Structural() {
			continue
		}
		det, ok := scanPattern(text, folded, p)
		if ok {
			detections = append(detections, det)
		}
	}

	sort.SliceStable(detections, func(i, j int) bool {
		a, b := detections[i], detections[j]
		if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
			return ra > rb
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.PatternID < b.PatternID
	})
	return detections
}

func scanPattern(text string, folded textutil.Folded, p patterns.Pattern) (Detection, bool) {
	count := 0
	locations := make([]Location, 0, MaxLocations)
	for _, keyword := range p.Keywords {
		needle := textutil.FoldString(keyword)
		if needle == "" {
			continue
		}
		from := 0
		for from <= len(folded.Text) {
			idx := strings.Index(folded.Text[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)
			from = end
			count++
			if len(locations) >= MaxLocations {
				continue
			}
			origStart := folded.Origin(start)
			origEnd := folded.Origin(end)
			locations = append(locations, Location{
				Keyword: keyword,
				Offset:  origStart,
				Context: textutil.Window(text, origStart, origEnd, ContextRunes),
			})
		}
	}
	if count == 0 {
		return Detection{}, false
	}
	return Detection{
		PatternID:   p.ID,
		PatternName: p.Name,
		Category:    p.Category,
		Severity:    p.Severity,
		Locations:   locations,
		Count:       count,
		Description: p.Description,
		Suggestion:  Suggestion(p),
	}, true
}

// Suggestion returns the rewrite hint for a pattern: its before/after example
// when it has one, otherwise its description.
func Suggestion(p patterns.Pattern) string {
	if p.ExampleBefore != "" && p.ExampleAfter != "" {
		return fmt.Sprintf("Example rewrite:\nBefore: %s\nAfter: %s", p.ExampleBefore, p.ExampleAfter)
	}
	if p.Description != "" {
		return p.Description
	}
	return "Rewrite the passage in plain, specific language."
}

// PatternIDs returns the ids of detections in order.
func PatternIDs(detections []Detection) []string {
	ids := make([]string, 0, len(detections))
	for _, d := range detections {
		ids = append(ids, d.PatternID)
	}
	return ids
}
