package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize converts text to NFC and Unix line endings so composed and
// decomposed forms of the same phrase scan identically.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return norm.NFC.String(lineEndingReplacer.Replace(text))
}

// Title converts a label such as "communication" into "Communication".
func Title(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return cases.Title(language.Und).String(value)
}
