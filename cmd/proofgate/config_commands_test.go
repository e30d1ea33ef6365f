package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitCreatesSample(t *testing.T) {
	isolateConfig(t)
	target := filepath.Join(t.TempDir(), "nested", "proofgate.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing file error, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite returned error: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"--config", target, "config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate returned error: %v", err)
	}
	requireContains(t, stdout, "Configuration valid")
}

func TestConfigValidateReportsDefaults(t *testing.T) {
	dir := isolateConfig(t)
	missing := filepath.Join(dir, "missing.toml")

	stdout, _, err := runCLI(t, []string{"--config", missing, "config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate returned error: %v", err)
	}
	requireContains(t, stdout, "Config file did not exist; defaults were used")
	requireContains(t, stdout, "[WARN] api key not set")
	requireContains(t, stdout, "[INFO] 91")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	dir := isolateConfig(t)
	path := writeFile(t, dir, "bad.toml", "[review]\nthreshold = 150\n")

	if _, _, err := runCLI(t, []string{"--config", path, "config", "validate"}, ""); err == nil {
		t.Fatal("expected invalid threshold to fail")
	}
}

func TestLLMHealthCommand(t *testing.T) {
	dir := isolateConfig(t)
	stub := newLLMStub(t, `{"ok": true}`)
	configPath := writeTestConfig(t, dir, stub.server.URL)

	stdout, _, err := runCLI(t, []string{"--config", configPath, "llm", "health"}, "")
	if err != nil {
		t.Fatalf("llm health returned error: %v", err)
	}
	requireContains(t, stdout, "[OK] demo-model")

	missing := filepath.Join(dir, "missing.toml")
	stdout, _, err = runCLI(t, []string{"--config", missing, "llm", "health"}, "")
	if err == nil {
		t.Fatal("expected health check without api key to fail")
	}
	requireContains(t, stdout, "[ERROR]")
}
