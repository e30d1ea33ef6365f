// Package services defines shared utilities consumed by the review gate and
// its collaborator integrations.
//
// Key responsibilities:
//   - Context helpers that stamp review IDs, component names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper, and Classify, which turns
//     a failure into the kind the gate records (timeout, contract, upstream).
//
// Use these helpers when wiring a new collaborator so failure handling and
// observability stay uniform across the gate.
package services
