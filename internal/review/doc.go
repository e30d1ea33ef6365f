// Package review implements the publication gate for machine-authored
// documents.
//
// A Gate assembles the document, runs the rubric judge and the configured
// humanization strategy concurrently, merges the base score (0-100) with the
// humanization score (0-20) into a total on a 0-100 scale, and decides
// approval. Each review walks a small state machine (pending, scoring, and
// one of approved, rejected, rejected_empty) so the terminal state recorded
// in the Result always matches the decision.
//
// The gate is total: it never returns an error. Collaborator failures fail
// closed and are reported through Result.Status.
package review
