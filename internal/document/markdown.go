package document

import (
	"fmt"
	"strings"

	"proofgate/internal/textutil"
)

// ParseMarkdown splits a markdown document into sections on "## " headings.
// Text before the first heading becomes an untitled section when it is not
// blank. Headings inside ``` or ~~~ fenced code blocks stay in the body.
// Horizontal rules that only separate sections are dropped. Section ids are
// "s1", "s2", ... in document order.
func ParseMarkdown(text string) []Section {
	text = textutil.Normalize(text)
	lines := strings.Split(text, "\n")

	sections := make([]Section, 0)
	var (
		title   string
		body    []string
		started bool
		fence   string
	)
	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		content = strings.TrimSpace(strings.TrimSuffix(content, "---"))
		if !started && content == "" {
			return
		}
		sections = append(sections, Section{
			ID:      fmt.Sprintf("s%d", len(sections)+1),
			Title:   title,
			Content: content,
		})
	}

	for _, line := range lines {
		if marker := fenceMarker(line); marker != "" {
			switch fence {
			case "":
				fence = marker
			case marker:
				fence = ""
			}
		}
		if fence == "" && strings.HasPrefix(line, headingPrefix) {
			flush()
			title = strings.TrimSpace(strings.TrimPrefix(line, headingPrefix))
			body = body[:0]
			started = true
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

// fenceMarker returns "```" or "~~~" when line opens or closes a code fence.
func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, marker) {
			return marker
		}
	}
	return ""
}

// AssignIDs fills blank section ids with "sN" by position, skipping ids that
// are already taken.
func AssignIDs(sections []Section) []Section {
	out := make([]Section, len(sections))
	taken := make(map[string]struct{}, len(sections))
	for i, s := range sections {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID != "" {
			taken[s.ID] = struct{}{}
		}
		out[i] = s
	}
	next := 1
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		for {
			id := fmt.Sprintf("s%d", next)
			next++
			if _, ok := taken[id]; !ok {
				out[i].ID = id
				taken[id] = struct{}{}
				break
			}
		}
	}
	return out
}
