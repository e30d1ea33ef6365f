// Package detect scans text for the AI writing signatures in the pattern
// catalog.
//
// Detect filters the catalog by minimum severity, runs a case-insensitive
// literal scan for every keyword, and aggregates matches per pattern. Each
// Detection keeps the true match count but at most five locations for
// display. Results are ordered by severity, then count, then pattern id, so
// output is deterministic.
//
// Detection is pure: a Detector holds only the read-only catalog and is safe
// for concurrent use.
package detect
