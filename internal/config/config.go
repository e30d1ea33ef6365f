package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Review contains the gate's decision and humanization settings.
type Review struct {
	Threshold             int    `toml:"threshold"`
	MinSeverity           string `toml:"min_severity"`
	Strategy              string `toml:"strategy"`
	RubricTimeoutSeconds  int    `toml:"rubric_timeout_seconds"`
	AuditorTimeoutSeconds int    `toml:"auditor_timeout_seconds"`
	SectionCharLimit      int    `toml:"section_char_limit"`
	DocumentCharLimit     int    `toml:"document_char_limit"`
}

// LLM contains shared LLM connection settings used by the rubric judge and
// the section auditor.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Auditor contains optional overrides for the section auditor's LLM
// connection. Empty values fall back to [llm].
type Auditor struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for proofgate.
//
// Configuration sections by subsystem:
//   - Review: approval threshold, detection severity, strategy, timeouts
//   - LLM: chat-completions connection for the rubric judge
//   - Auditor: per-field overrides of LLM for the section auditor
//   - Logging: log format, level, and optional file output
type Config struct {
	Review  Review  `toml:"review"`
	LLM     LLM     `toml:"llm"`
	Auditor Auditor `toml:"auditor"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults and environment overrides still apply. It returns
// the config, the resolved path and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the connection settings for one LLM collaborator.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// Configured reports whether an API key and model are present.
func (l LLMConfig) Configured() bool {
	return l.APIKey != "" && l.Model != ""
}

// RubricLLM returns the LLM settings for the rubric judge.
func (c *Config) RubricLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}

// AuditorLLM returns the LLM settings for the section auditor.
// Falls back to [llm] settings when not explicitly configured.
func (c *Config) AuditorLLM() LLMConfig {
	cfg := c.RubricLLM()
	if key := strings.TrimSpace(c.Auditor.APIKey); key != "" {
		cfg.APIKey = key
	}
	if base := strings.TrimSpace(c.Auditor.BaseURL); base != "" {
		cfg.BaseURL = base
	}
	if model := strings.TrimSpace(c.Auditor.Model); model != "" {
		cfg.Model = model
	}
	return cfg
}

// RubricTimeout bounds a single rubric judge call.
func (c *Config) RubricTimeout() time.Duration {
	return time.Duration(c.Review.RubricTimeoutSeconds) * time.Second
}

// AuditorTimeout bounds a single section auditor call.
func (c *Config) AuditorTimeout() time.Duration {
	return time.Duration(c.Review.AuditorTimeoutSeconds) * time.Second
}
