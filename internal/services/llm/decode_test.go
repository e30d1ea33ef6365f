package llm

import (
	"errors"
	"testing"

	"proofgate/internal/services"
)

const testSchema = `{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score": {"type": "integer"},
    "summary": {"type": "string"}
  }
}`

func TestDecodeLLMJSON(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "plain", content: `{"score": 3}`},
		{name: "fenced", content: "```json\n{\"score\": 3}\n```"},
		{name: "prose", content: "Here is the result: {\"score\": 3} hope it helps"},
		{name: "empty", content: "  ", wantErr: true},
		{name: "garbage", content: "no json here", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out struct {
				Score int `json:"score"`
			}
			err := DecodeLLMJSON(tc.content, &out)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLLMJSON: %v", err)
			}
			if out.Score != 3 {
				t.Fatalf("score = %d, want 3", out.Score)
			}
		})
	}
}

func TestSchemaDecode(t *testing.T) {
	schema := MustCompileSchema("rubric", testSchema)
	var out struct {
		Score   int    `json:"score"`
		Summary string `json:"summary"`
	}
	if err := schema.Decode("```json\n{\"score\": 70, \"summary\": \"ok\"}\n```", &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Score != 70 || out.Summary != "ok" {
		t.Fatalf("unexpected decode %+v", out)
	}
}

func TestSchemaDecodeRejectsContractViolations(t *testing.T) {
	schema := MustCompileSchema("rubric", testSchema)
	for _, content := range []string{`{"summary":"missing score"}`, `{"score":"high"}`, `not json`, `[1,2]`} {
		var out map[string]any
		err := schema.Decode(content, &out)
		if !errors.Is(err, services.ErrContract) {
			t.Fatalf("Decode(%q) = %v, want contract error", content, err)
		}
	}
}

func TestCompileSchemaRejectsInvalidDocument(t *testing.T) {
	if _, err := CompileSchema("broken", `{"type": 12}`); err == nil {
		t.Fatal("expected compile error")
	}
}
