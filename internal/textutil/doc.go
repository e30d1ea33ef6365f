// Package textutil provides text helpers shared by the detector, the
// humanization strategies, and the CLI.
//
// The primary use cases are:
//   - Normalising input to NFC with Unix line endings before scanning
//   - Case folding with a map back to original byte offsets
//   - Rune-safe truncation and context windows around a match
//   - Title-casing labels for terminal output
//
// All helpers operate on UTF-8 and never split a multi-byte rune.
package textutil
