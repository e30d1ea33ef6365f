package main

import (
	"encoding/json"
	"testing"

	"proofgate/internal/patterns"
)

func TestDetectCommandJSON(t *testing.T) {
	isolateConfig(t)

	input := "Additionally, this crucial work is a testament to the vibrant landscape."
	stdout, _, err := runCLI(t, []string{"detect", "--json", "-"}, input)
	if err != nil {
		t.Fatalf("detect returned error: %v", err)
	}
	var report detectReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, stdout)
	}
	if report.Source != "stdin" || report.MaxScore != 20 {
		t.Fatalf("unexpected report header %+v", report)
	}
	if report.Score >= 20 {
		t.Fatalf("expected a penalty, got score %d", report.Score)
	}
	found := false
	for _, d := range report.Detections {
		if d.PatternID == "ai_vocabulary" {
			found = true
			if d.Severity != patterns.SeverityHigh {
				t.Fatalf("unexpected severity %q", d.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("expected ai_vocabulary detection, got %+v", report.Detections)
	}
}

func TestDetectCommandCleanText(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, []string{"detect"}, "The cat sat on the mat. It was warm.")
	if err != nil {
		t.Fatalf("detect returned error: %v", err)
	}
	requireContains(t, stdout, "No AI writing patterns detected")
	requireContains(t, stdout, "Humanization score:")
	requireContains(t, stdout, "[OK] 20/20")
}

func TestDetectCommandTable(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, t.TempDir(), "draft.md", "Let's delve into the intricate tapestry together.")

	stdout, _, err := runCLI(t, []string{"detect", path}, "")
	if err != nil {
		t.Fatalf("detect returned error: %v", err)
	}
	requireContains(t, stdout, "Overused AI vocabulary")
	requireContains(t, stdout, "Collaborative communication artifacts")
	requireContains(t, stdout, "delve")
}

func TestDetectCommandRejectsSeverity(t *testing.T) {
	isolateConfig(t)

	if _, _, err := runCLI(t, []string{"detect", "--min-severity", "urgent"}, "text"); err == nil {
		t.Fatal("expected invalid severity to fail")
	}
}

func TestPatternsCommandCategory(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"patterns", "--category", "style", "--json"}, "")
	if err != nil {
		t.Fatalf("patterns returned error: %v", err)
	}
	var entries []patterns.Pattern
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decode patterns: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected style patterns")
	}
	for _, p := range entries {
		if p.Category != patterns.CategoryStyle {
			t.Fatalf("unexpected category %q for %s", p.Category, p.ID)
		}
	}

	if _, _, err := runCLI(t, []string{"patterns", "--category", "tone"}, ""); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

func TestPatternsCommandTable(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"patterns"}, "")
	if err != nil {
		t.Fatalf("patterns returned error: %v", err)
	}
	requireContains(t, stdout, "ai_vocabulary")
	requireContains(t, stdout, "(structural)")
	requireContains(t, stdout, "patterns\n")
}
