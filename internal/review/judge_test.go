package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"proofgate/internal/document"
	"proofgate/internal/patterns"
	"proofgate/internal/services"
)

type stubCompleter struct {
	content string
	err     error
	system  string
	user    string
}

func (s *stubCompleter) CompleteJSON(_ context.Context, system, user string) (string, error) {
	s.system = system
	s.user = user
	return s.content, s.err
}

func rubricRequest() RubricRequest {
	return RubricRequest{
		Document:  document.Assemble(sampleSections()),
		Outline:   map[string]any{"title": "Redis basics"},
		Threshold: 91,
	}
}

func TestLLMJudgeParsesResponse(t *testing.T) {
	stub := &stubCompleter{content: "```json\n" + `{
		"score": 140,
		"approved": true,
		"summary": " good ",
		"issues": [
			{"section_id": "s2", "severity": "HIGH", "description": "missing example", "suggestion": "add one"},
			{"section_id": "nope", "severity": "urgent", "description": "tone"}
		]
	}` + "\n```"}
	got, err := NewLLMJudge(stub).Judge(context.Background(), rubricRequest())
	if err != nil {
		t.Fatalf("Judge returned error: %v", err)
	}
	if got.Score != 100 || !got.Approved || got.Summary != "good" {
		t.Fatalf("unexpected rubric %+v", got)
	}
	if len(got.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", got.Issues)
	}
	if got.Issues[0].SectionID != "s2" || got.Issues[0].Severity != patterns.SeverityHigh || got.Issues[0].IssueType != document.IssueTypeQuality {
		t.Fatalf("unexpected first issue %+v", got.Issues[0])
	}
	if got.Issues[1].SectionID != "" || got.Issues[1].Severity != patterns.SeverityMedium {
		t.Fatalf("unexpected second issue %+v", got.Issues[1])
	}
}

func TestLLMJudgePrompt(t *testing.T) {
	stub := &stubCompleter{content: `{"score": 90, "approved": false}`}
	if _, err := NewLLMJudge(stub).Judge(context.Background(), rubricRequest()); err != nil {
		t.Fatalf("Judge returned error: %v", err)
	}
	for _, want := range []string{"score >= 91", "AI writing patterns to check", "humanization_score"} {
		if !strings.Contains(stub.system, want) {
			t.Fatalf("system prompt missing %q", want)
		}
	}
	for _, want := range []string{`"title": "Redis basics"`, "s1: Intro", "## Usage"} {
		if !strings.Contains(stub.user, want) {
			t.Fatalf("user prompt missing %q", want)
		}
	}
}

func TestLLMJudgeContractViolations(t *testing.T) {
	cases := map[string]string{
		"missing approved": `{"score": 90}`,
		"string score":     `{"score": "ninety", "approved": true}`,
		"prose":            `looks good to me`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLLMJudge(&stubCompleter{content: content}).Judge(context.Background(), rubricRequest())
			if !errors.Is(err, services.ErrContract) {
				t.Fatalf("expected contract error, got %v", err)
			}
		})
	}
}

func TestLLMJudgePropagatesCollaboratorError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewLLMJudge(&stubCompleter{err: boom}).Judge(context.Background(), rubricRequest())
	if !errors.Is(err, boom) {
		t.Fatalf("expected collaborator error, got %v", err)
	}
	if _, err := NewLLMJudge(nil).Judge(context.Background(), rubricRequest()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
