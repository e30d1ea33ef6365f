// Package patterns holds the catalog of AI writing signatures.
//
// The catalog is compiled into the binary from catalog.yaml and parsed once.
// Each Pattern carries a closed Category and Severity, the literal keywords
// the detector scans for, and a before/after example used as a rewrite
// suggestion. Patterns with no keywords describe signatures that need
// structural detection; they stay listed so catalog completeness checks see
// them, but they never produce keyword detections.
//
// The catalog is read-only. Accessors return copies so callers cannot mutate
// shared state.
package patterns
