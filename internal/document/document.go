// Package document models the text under review: ordered sections, the
// assembled document the gate scans, and the issues reviewers attach to it.
package document

import (
	"sort"
	"strings"

	"proofgate/internal/textutil"
)

const (
	// SectionSeparator joins assembled sections.
	SectionSeparator = "\n\n---\n\n"
	headingPrefix    = "## "
)

// Section is one titled part of a document.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// span locates a section inside the assembled text.
type span struct {
	SectionID string
	Start     int
	End       int
}

// Document is the assembled, normalized text of a section list.
type Document struct {
	Sections []Section
	Text     string
	spans    []span
}

// Assemble renders sections as "## title\n\ncontent" blocks joined by a
// horizontal rule. Titles and content are normalized to NFC with Unix line
// endings first.
func Assemble(sections []Section) Document {
	normalized := make([]Section, 0, len(sections))
	spans := make([]span, 0, len(sections))
	var b strings.Builder
	for i, s := range sections {
		s.ID = strings.TrimSpace(s.ID)
		s.Title = textutil.Normalize(s.Title)
		s.Content = textutil.Normalize(s.Content)
		normalized = append(normalized, s)
		if i > 0 {
			b.WriteString(SectionSeparator)
		}
		start := b.Len()
		b.WriteString(headingPrefix)
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		b.WriteString(s.Content)
		spans = append(spans, span{SectionID: s.ID, Start: start, End: b.Len()})
	}
	return Document{Sections: normalized, Text: b.String(), spans: spans}
}

// Empty reports whether the document has no sections.
func (d Document) Empty() bool {
	return len(d.Sections) == 0
}

// SectionAt returns the id of the section containing byte offset. Offsets in
// a separator belong to the preceding section. It returns "" when the offset
// is outside the document.
func (d Document) SectionAt(offset int) string {
	if offset < 0 || offset >= len(d.Text) || len(d.spans) == 0 {
		return ""
	}
	idx := sort.Search(len(d.spans), func(i int) bool { return d.spans[i].Start > offset })
	if idx == 0 {
		return ""
	}
	return d.spans[idx-1].SectionID
}

// SectionIDs returns the set of known, non-empty section ids.
func (d Document) SectionIDs() map[string]struct{} {
	return SectionIDs(d.Sections)
}

// SectionIDs returns the set of non-empty ids in sections.
func SectionIDs(sections []Section) map[string]struct{} {
	ids := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		id := strings.TrimSpace(s.ID)
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}
