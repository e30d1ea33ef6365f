// Package logging assembles structured slog loggers and formatting helpers used
// across proofgate.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so review code tags log lines
// with review IDs, components, and correlation IDs. A configured log file
// receives a JSON copy of every record through the tee handler. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
