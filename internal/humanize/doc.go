// Package humanize turns AI-writing signals into a bounded humanization
// score and actionable issues.
//
// Score converts detector output into a 0-20 sub-score. Two strategies
// produce a full Assessment for a document: DetectorStrategy runs the local
// pattern detector, and Auditor asks an LLM collaborator to audit each
// section. The Auditor never fails open; any collaborator problem yields a
// zero score flagged as Failed.
package humanize
