package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeReview()
	c.normalizeLLM()
	c.normalizeAuditor()
	return c.normalizeLogging()
}

func (c *Config) normalizeReview() {
	if value, ok := os.LookupEnv(EnvReviewThreshold); ok {
		if threshold, ok := parseThreshold(value); ok {
			c.Review.Threshold = threshold
		}
	}
	c.Review.MinSeverity = strings.ToLower(strings.TrimSpace(c.Review.MinSeverity))
	if c.Review.MinSeverity == "" {
		c.Review.MinSeverity = defaultMinSeverity
	}
	c.Review.Strategy = strings.ToLower(strings.TrimSpace(c.Review.Strategy))
	if c.Review.Strategy == "" {
		c.Review.Strategy = defaultStrategy
	}
	if c.Review.RubricTimeoutSeconds <= 0 {
		c.Review.RubricTimeoutSeconds = defaultRubricTimeoutSeconds
	}
	if c.Review.AuditorTimeoutSeconds <= 0 {
		c.Review.AuditorTimeoutSeconds = defaultAuditorTimeoutSeconds
	}
	if c.Review.SectionCharLimit <= 0 {
		c.Review.SectionCharLimit = defaultSectionCharLimit
	}
	if c.Review.DocumentCharLimit <= 0 {
		c.Review.DocumentCharLimit = defaultDocumentCharLimit
	}
}

// parseThreshold accepts an integer in [0,100]. Anything else is ignored so
// a bad deployment value falls back to the configured threshold.
func parseThreshold(value string) (int, bool) {
	threshold, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || threshold < 0 || threshold > 100 {
		return 0, false
	}
	return threshold, true
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv(EnvLLMAPIKey); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv(EnvOpenRouterKey); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeAuditor() {
	c.Auditor.APIKey = strings.TrimSpace(c.Auditor.APIKey)
	c.Auditor.BaseURL = strings.TrimSpace(c.Auditor.BaseURL)
	c.Auditor.Model = strings.TrimSpace(c.Auditor.Model)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
