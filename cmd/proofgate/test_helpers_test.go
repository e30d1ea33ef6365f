package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"proofgate/internal/config"
)

// isolateConfig points HOME at a temp dir and clears the API key variables so
// the developer's own configuration never leaks into a test.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvLLMAPIKey, "")
	t.Setenv(config.EnvOpenRouterKey, "")
	t.Setenv(config.EnvReviewThreshold, "")
	return home
}

func runCLI(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// llmStub answers every chat completion with content and counts requests.
type llmStub struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newLLMStub(t *testing.T, content string) *llmStub {
	t.Helper()
	stub := &llmStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		payload := map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func writeTestConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "proofgate.toml")
	content := fmt.Sprintf("[llm]\napi_key = %q\nbase_url = %q\nmodel = %q\n\n[logging]\nformat = %q\n",
		"test-key", baseURL, "demo-model", "json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
