package textutil

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes returns at most limit runes of value. A non-positive limit
// returns value unchanged.
func TruncateRunes(value string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	count := 0
	for i := range value {
		if count == limit {
			return value[:i]
		}
		count++
	}
	return value
}

// Window returns the text between byte offsets start and end widened by pad
// runes on each side, clamped to the bounds of text and trimmed of
// surrounding whitespace.
func Window(text string, start, end, pad int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}
	left := start
	for n := 0; n < pad && left > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:left])
		left -= size
	}
	right := end
	for n := 0; n < pad && right < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[right:])
		right += size
	}
	return strings.TrimSpace(text[left:right])
}
