// Package main hosts the proofgate CLI entrypoint and command graph.
//
// The Cobra-based command tree scans text for AI writing patterns, runs the
// full review gate against an LLM rubric judge, lists the pattern catalog,
// and scaffolds configuration. It centralizes configuration resolution and
// logging setup so subcommands only deal with input and presentation.
package main
