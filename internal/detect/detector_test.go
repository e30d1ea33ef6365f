package detect

import (
	"strings"
	"sync"
	"testing"

	"proofgate/internal/patterns"
)

const aiHeavy = "It is crucial to delve into the landscape. This pivotal moment is a tapestry of ideas."

func findDetection(detections []Detection, id string) (Detection, bool) {
	for _, d := range detections {
		if d.PatternID == id {
			return d, true
		}
	}
	return Detection{}, false
}

func TestDetectAIVocabularyAtMedium(t *testing.T) {
	detections := Detect(aiHeavy, patterns.SeverityMedium)
	det, ok := findDetection(detections, "ai_vocabulary")
	if !ok {
		t.Fatalf("expected ai_vocabulary detection, got %v", PatternIDs(detections))
	}
	if det.Count < 5 {
		t.Fatalf("expected at least 5 matches, got %d", det.Count)
	}
	if det.Severity != patterns.SeverityHigh {
		t.Fatalf("expected high severity, got %s", det.Severity)
	}
	if len(det.Locations) == 0 || len(det.Locations) > MaxLocations {
		t.Fatalf("unexpected location count %d", len(det.Locations))
	}
	if det.Suggestion == "" {
		t.Fatal("expected suggestion")
	}
}

func TestDetectPlainTextAtHighIsEmpty(t *testing.T) {
	text := "The weather today is sunny. I went to the park."
	detections := Detect(text, patterns.SeverityHigh)
	if detections == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(detections) != 0 {
		t.Fatalf("expected no detections, got %v", PatternIDs(detections))
	}
}

func TestDetectEmptyText(t *testing.T) {
	detections := Detect("", patterns.SeverityLow)
	if detections == nil || len(detections) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", detections)
	}
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	detections := Detect("DELVE deeper. Delve again.", patterns.SeverityHigh)
	det, ok := findDetection(detections, "ai_vocabulary")
	if !ok {
		t.Fatalf("expected ai_vocabulary, got %v", PatternIDs(detections))
	}
	if det.Count != 2 {
		t.Fatalf("count = %d, want 2", det.Count)
	}
	if det.Locations[0].Offset != 0 || det.Locations[1].Offset != 14 {
		t.Fatalf("unexpected offsets %+v", det.Locations)
	}
	if det.Locations[0].Keyword != "delve" {
		t.Fatalf("keyword = %q, want catalog spelling", det.Locations[0].Keyword)
	}
}

func TestDetectOffsetsAreBytesInOriginalText(t *testing.T) {
	text := "Ünïcödé prefix then delve"
	detections := Detect(text, patterns.SeverityHigh)
	det, ok := findDetection(detections, "ai_vocabulary")
	if !ok {
		t.Fatalf("expected ai_vocabulary, got %v", PatternIDs(detections))
	}
	offset := det.Locations[0].Offset
	if text[offset:offset+len("delve")] != "delve" {
		t.Fatalf("offset %d does not point at the match", offset)
	}
}

func TestDetectCapsLocationsButNotCount(t *testing.T) {
	text := strings.Repeat("We must delve. ", 8)
	detections := Detect(text, patterns.SeverityHigh)
	det, ok := findDetection(detections, "ai_vocabulary")
	if !ok {
		t.Fatalf("expected ai_vocabulary, got %v", PatternIDs(detections))
	}
	if det.Count != 8 {
		t.Fatalf("count = %d, want 8", det.Count)
	}
	if len(det.Locations) != MaxLocations {
		t.Fatalf("locations = %d, want %d", len(det.Locations), MaxLocations)
	}
}

func TestDetectContextWindow(t *testing.T) {
	prefix := strings.Repeat("a", 40)
	suffix := strings.Repeat("b", 40)
	text := prefix + " delve " + suffix
	det, ok := findDetection(Detect(text, patterns.SeverityHigh), "ai_vocabulary")
	if !ok {
		t.Fatal("expected ai_vocabulary")
	}
	want := strings.Repeat("a", 29) + " delve " + strings.Repeat("b", 29)
	if got := det.Locations[0].Context; got != want {
		t.Fatalf("context = %q, want %q", got, want)
	}
}

func TestDetectFilteringIsMonotonic(t *testing.T) {
	text := aiHeavy + " It is important to note that we may see this overall. Let's go — now — here — there."
	low := PatternIDs(Detect(text, patterns.SeverityLow))
	medium := PatternIDs(Detect(text, patterns.SeverityMedium))
	high := PatternIDs(Detect(text, patterns.SeverityHigh))

	if !isSubset(high, medium) || !isSubset(medium, low) {
		t.Fatalf("filtering not monotonic: low=%v medium=%v high=%v", low, medium, high)
	}
	if len(low) <= len(high) {
		t.Fatalf("expected low to include more patterns than high: low=%v high=%v", low, high)
	}
}

func TestDetectUnknownMinimumClampsToLow(t *testing.T) {
	text := "In conclusion, the end."
	if _, ok := findDetection(Detect(text, patterns.Severity("trivial")), "generic_conclusions"); !ok {
		t.Fatal("expected low-severity pattern with unknown minimum")
	}
}

func TestDetectOrdering(t *testing.T) {
	text := "Let's delve. Let's delve. Let's go. It is important to note this. In conclusion, done."
	detections := Detect(text, patterns.SeverityLow)
	if len(detections) < 3 {
		t.Fatalf("expected several detections, got %v", PatternIDs(detections))
	}
	for i := 1; i < len(detections); i++ {
		prev, cur := detections[i-1], detections[i]
		if prev.Severity.Rank() < cur.Severity.Rank() {
			t.Fatalf("severity out of order at %d: %v", i, PatternIDs(detections))
		}
		if prev.Severity == cur.Severity {
			if prev.Count < cur.Count {
				t.Fatalf("count out of order at %d: %v", i, PatternIDs(detections))
			}
			if prev.Count == cur.Count && prev.PatternID > cur.PatternID {
				t.Fatalf("id out of order at %d: %v", i, PatternIDs(detections))
			}
		}
	}
	if detections[0].PatternID != "collaborative_artifacts" {
		t.Fatalf("first detection = %s, want collaborative_artifacts", detections[0].PatternID)
	}
}

func TestDetectSkipsStructuralPatterns(t *testing.T) {
	catalog, err := patterns.New([]patterns.Pattern{
		{ID: "shape", Name: "Shape", Category: patterns.CategoryStyle, Severity: patterns.SeverityHigh},
		{ID: "word", Name: "Word", Category: patterns.CategoryLanguage, Severity: patterns.SeverityLow, Keywords: []string{"word"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	detections := New(catalog).Detect("word word shape", patterns.SeverityLow)
	if len(detections) != 1 || detections[0].PatternID != "word" {
		t.Fatalf("unexpected detections %v", PatternIDs(detections))
	}
	if detections[0].Suggestion != "Rewrite the passage in plain, specific language." {
		t.Fatalf("unexpected fallback suggestion %q", detections[0].Suggestion)
	}
}

func TestDetectorConcurrentUse(t *testing.T) {
	detector := New(nil)
	want := len(detector.Detect(aiHeavy, patterns.SeverityLow))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := len(detector.Detect(aiHeavy, patterns.SeverityLow)); got != want {
				t.Errorf("concurrent detect = %d, want %d", got, want)
			}
		}()
	}
	wg.Wait()
}

func isSubset(sub, super []string) bool {
	set := make(map[string]struct{}, len(super))
	for _, id := range super {
		set[id] = struct{}{}
	}
	for _, id := range sub {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
