package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateReview(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateReview() error {
	if c.Review.Threshold < 0 || c.Review.Threshold > 100 {
		return fmt.Errorf("review.threshold must be between 0 and 100, got %d", c.Review.Threshold)
	}
	switch c.Review.MinSeverity {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("review.min_severity must be one of low, medium, high, got %q", c.Review.MinSeverity)
	}
	switch c.Review.Strategy {
	case StrategyDetector, StrategyAuditor:
	default:
		return fmt.Errorf("review.strategy must be %q or %q, got %q", StrategyDetector, StrategyAuditor, c.Review.Strategy)
	}
	if c.Review.SectionCharLimit > c.Review.DocumentCharLimit {
		return errors.New("review.section_char_limit must not exceed review.document_char_limit")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.TimeoutSeconds > 600 {
		return errors.New("llm.timeout_seconds must be 600 or less")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// RequireLLM reports a configuration error when the collaborator settings are
// incomplete. Commands that call the LLM check this before building a client.
func (c *Config) RequireLLM(llm LLMConfig) error {
	if llm.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("llm.api_key is required. Set %s or %s, or edit %s (create with 'proofgate config init')", EnvLLMAPIKey, EnvOpenRouterKey, defaultPath)
	}
	if llm.Model == "" {
		return errors.New("llm.model must be set")
	}
	return nil
}
