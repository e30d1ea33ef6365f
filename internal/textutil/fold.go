package textutil

import (
	"unicode"
	"unicode/utf8"
)

// Folded is a lower-cased copy of a string that remembers where each byte
// came from, so matches found in the folded text map back to the original.
type Folded struct {
	Text    string
	origins []int
	srcLen  int
}

// Fold lower-cases text rune by rune. Lower-casing can change the encoded
// width of a rune, so byte offsets in Text are not offsets in the original;
// use Origin to translate them.
func Fold(text string) Folded {
	buf := make([]byte, 0, len(text))
	origins := make([]int, 0, len(text))
	var scratch [utf8.UTFMax]byte
	for i, r := range text {
		lower := unicode.ToLower(r)
		n := utf8.EncodeRune(scratch[:], lower)
		buf = append(buf, scratch[:n]...)
		for k := 0; k < n; k++ {
			origins = append(origins, i)
		}
	}
	return Folded{Text: string(buf), origins: origins, srcLen: len(text)}
}

// FoldString lower-cases a needle the same way Fold lower-cases the haystack.
func FoldString(text string) string {
	return Fold(text).Text
}

// Origin maps a byte offset in the folded text to the byte offset of the
// rune it came from in the original. Offsets at or past the end map to the
// original length.
func (f Folded) Origin(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset >= len(f.origins) {
		return f.srcLen
	}
	return f.origins[offset]
}
