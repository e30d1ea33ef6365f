package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"proofgate/internal/review"
)

const cleanMarkdown = "## Intro\n\nThe cat sat on the mat.\n\n## Method\n\nWe fed the cat at noon.\n"

func TestReviewCommandApproves(t *testing.T) {
	dir := isolateConfig(t)
	stub := newLLMStub(t, `{"score": 90, "approved": true, "issues": [], "summary": "clear and specific"}`)
	configPath := writeTestConfig(t, dir, stub.server.URL)
	docPath := writeFile(t, dir, "draft.md", cleanMarkdown)

	stdout, stderr, err := runCLI(t, []string{"--config", configPath, "review", "--json", docPath}, "")
	if err != nil {
		t.Fatalf("review returned error: %v\nstderr: %s", err, stderr)
	}
	var result review.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode result: %v\n%s", err, stdout)
	}
	if !result.Approved || result.Score != 92 || result.BaseScore != 90 || result.HumanizationScore != 20 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Status != review.StatusEvaluated || result.State != review.StateApproved {
		t.Fatalf("unexpected status %q state %q", result.Status, result.State)
	}
	if got := stub.calls.Load(); got != 1 {
		t.Fatalf("expected one rubric call, got %d", got)
	}
	requireContains(t, stderr, `"msg":"review decision"`)
}

func TestReviewCommandRejectsAndWritesState(t *testing.T) {
	dir := isolateConfig(t)
	stub := newLLMStub(t, `{"score": 95, "approved": true, "issues": [
		{"section_id": "method", "severity": "high", "description": "unsupported claim", "suggestion": "cite the source"}
	]}`)
	configPath := writeTestConfig(t, dir, stub.server.URL)
	input := `{"sections": [
		{"id": "intro", "title": "Intro", "content": "The cat sat on the mat."},
		{"id": "method", "title": "Method", "content": "We fed the cat at noon."}
	]}`
	docPath := writeFile(t, dir, "draft.json", input)
	statePath := filepath.Join(dir, "state.json")

	stdout, _, err := runCLI(t, []string{"--config", configPath, "review", "--state-out", statePath, docPath}, "")
	if !errors.Is(err, errReviewRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	requireContains(t, stdout, "[ERROR] rejected")
	requireContains(t, stdout, "unsupported claim")

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if approved, _ := state[review.KeyReviewApproved].(bool); approved {
		t.Fatalf("expected review_approved false, got %v", state[review.KeyReviewApproved])
	}
	if score, _ := state[review.KeyReviewScore].(float64); score != 96 {
		t.Fatalf("expected review_score 96, got %v", state[review.KeyReviewScore])
	}
	issues, _ := state[review.KeyReviewIssues].([]any)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", state[review.KeyReviewIssues])
	}
	if _, ok := state["sections"]; !ok {
		t.Fatal("expected sections to be preserved in state")
	}
}

func TestReviewCommandSkipsUpstreamError(t *testing.T) {
	dir := isolateConfig(t)
	stub := newLLMStub(t, `{"score": 100, "approved": true}`)
	configPath := writeTestConfig(t, dir, stub.server.URL)

	stdout, _, err := runCLI(t, []string{"--config", configPath, "review", "--json", "-"},
		`{"sections": [{"title": "Intro", "content": "text"}], "error": "outline generation failed"}`)
	if !errors.Is(err, errReviewRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	var result review.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Status != review.StatusSkipped || result.State != review.StateRejectedEmpty || result.Score != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if got := stub.calls.Load(); got != 0 {
		t.Fatalf("expected no llm calls, got %d", got)
	}
}

func TestReviewCommandThresholdFlag(t *testing.T) {
	dir := isolateConfig(t)
	stub := newLLMStub(t, `{"score": 70, "approved": true}`)
	configPath := writeTestConfig(t, dir, stub.server.URL)
	docPath := writeFile(t, dir, "draft.md", cleanMarkdown)

	// (70+20)*100/120 = 75
	stdout, _, err := runCLI(t, []string{"--config", configPath, "review", "--threshold", "75", "--json", docPath}, "")
	if err != nil {
		t.Fatalf("review returned error: %v", err)
	}
	var result review.Result
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Score != 75 || result.Threshold != 75 || !result.Approved {
		t.Fatalf("unexpected result %+v", result)
	}

	if _, _, err := runCLI(t, []string{"--config", configPath, "review", "--threshold", "101", docPath}, ""); err == nil {
		t.Fatal("expected out-of-range threshold to fail")
	}
}

func TestReviewCommandRequiresAPIKey(t *testing.T) {
	dir := isolateConfig(t)
	docPath := writeFile(t, dir, "draft.md", cleanMarkdown)

	_, _, err := runCLI(t, []string{"--config", filepath.Join(dir, "missing.toml"), "review", docPath}, "")
	if err == nil {
		t.Fatal("expected missing api key to fail")
	}
	requireContains(t, err.Error(), "llm.api_key is required")
}

func TestReviewCommandUnknownStrategy(t *testing.T) {
	dir := isolateConfig(t)
	stub := newLLMStub(t, `{"score": 90, "approved": true}`)
	configPath := writeTestConfig(t, dir, stub.server.URL)
	docPath := writeFile(t, dir, "draft.md", cleanMarkdown)

	if _, _, err := runCLI(t, []string{"--config", configPath, "review", "--strategy", "oracle", docPath}, ""); err == nil {
		t.Fatal("expected unknown strategy to fail")
	}
}

func TestParseReviewInput(t *testing.T) {
	doc, err := parseReviewInput("draft.json", `{"sections": [{"title": "A", "content": "x"}, {"id": "s1", "title": "B", "content": "y"}]}`)
	if err != nil {
		t.Fatalf("parseReviewInput: %v", err)
	}
	if len(doc.Sections) != 2 || doc.Sections[0].ID == "" || doc.Sections[0].ID == "s1" {
		t.Fatalf("expected a fresh id for the first section, got %+v", doc.Sections)
	}
	if doc.upstreamErr() != nil {
		t.Fatal("expected no upstream error")
	}

	md, err := parseReviewInput("draft.md", cleanMarkdown)
	if err != nil {
		t.Fatalf("parseReviewInput markdown: %v", err)
	}
	if len(md.Sections) != 2 || md.Sections[1].Title != "Method" {
		t.Fatalf("unexpected markdown sections %+v", md.Sections)
	}

	if _, err := parseReviewInput("draft.json", "{not json"); err == nil {
		t.Fatal("expected malformed JSON to fail")
	}
}
