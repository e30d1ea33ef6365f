package config

const (
	defaultConfigPath            = "~/.config/proofgate/config.toml"
	projectConfigName            = "proofgate.toml"
	defaultThreshold             = 91
	defaultMinSeverity           = "medium"
	defaultStrategy              = StrategyDetector
	defaultRubricTimeoutSeconds  = 120
	defaultAuditorTimeoutSeconds = 120
	defaultSectionCharLimit      = 4000
	defaultDocumentCharLimit     = 12000
	defaultLLMBaseURL            = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel              = "google/gemini-3-flash-preview"
	defaultLLMTitle              = "proofgate"
	defaultLLMTimeoutSeconds     = 120
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Humanization strategies selectable with review.strategy.
const (
	StrategyDetector = "detector"
	StrategyAuditor  = "auditor"
)

// Environment variables consulted during normalization.
const (
	EnvReviewThreshold = "REVIEW_THRESHOLD"
	EnvLLMAPIKey       = "PROOFGATE_LLM_API_KEY"
	EnvOpenRouterKey   = "OPENROUTER_API_KEY"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Review: Review{
			Threshold:             defaultThreshold,
			MinSeverity:           defaultMinSeverity,
			Strategy:              defaultStrategy,
			RubricTimeoutSeconds:  defaultRubricTimeoutSeconds,
			AuditorTimeoutSeconds: defaultAuditorTimeoutSeconds,
			SectionCharLimit:      defaultSectionCharLimit,
			DocumentCharLimit:     defaultDocumentCharLimit,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
