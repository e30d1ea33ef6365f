// Package config loads, normalizes, and validates proofgate configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// REVIEW_THRESHOLD and OPENROUTER_API_KEY. A bad REVIEW_THRESHOLD value is
// ignored rather than rejected, so a deployment typo keeps the configured
// threshold.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
