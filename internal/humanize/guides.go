package humanize

import (
	"fmt"
	"strings"
	"sync"

	"proofgate/internal/patterns"
	"proofgate/internal/textutil"
)

const writingGuide = `## Writing guide: avoid AI patterns

1. No AI vocabulary. Do not use crucial, delve, landscape, pivotal, showcase, testament, underscore, vibrant or realm. Pick the simpler word.
2. No copula avoidance. Write is, are and has instead of serves as, stands as or features.
3. No inflated emphasis. Skip vital role, significant role and pivotal moment. If a fact matters the reader will see it.
4. No empty -ing phrases. Do not tack highlighting, ensuring or fostering onto a sentence to lift the theme.
5. No filler connectives. Use Additionally, Furthermore and Moreover sparingly. If the logic flows, start the next sentence.
6. No forced triads. Do not group ideas in threes for symmetry.
7. No throat clearing. Drop It is important to note and In conclusion. Say the point.

Core principle: write like a person. Have opinions, vary the rhythm, and avoid prose so polished it reads as a form letter.`

// WritingGuide returns the short rule list given to writers.
func WritingGuide() string {
	return writingGuide
}

// guideKeywordLimit caps the example keywords listed per pattern.
const guideKeywordLimit = 6

var (
	reviewerGuideOnce sync.Once
	reviewerGuide     string
)

// ReviewerGuide renders the pattern catalog as a checklist for reviewers
// and the section auditor.
func ReviewerGuide() string {
	reviewerGuideOnce.Do(func() {
		reviewerGuide = renderReviewerGuide(patterns.Default())
	})
	return reviewerGuide
}

func renderReviewerGuide(catalog *patterns.Catalog) string {
	var b strings.Builder
	b.WriteString("## AI writing patterns to check\n")
	n := 0
	for _, category := range patterns.Categories() {
		list := catalog.ByCategory(category)
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n", textutil.Title(string(category)))
		for _, p := range list {
			n++
			fmt.Fprintf(&b, "%d. **%s** (%s): %s", n, p.Name, p.Severity, p.Description)
			if len(p.Keywords) > 0 {
				keywords := p.Keywords[:min(len(p.Keywords), guideKeywordLimit)]
				fmt.Fprintf(&b, " Examples: %s.", strings.Join(keywords, ", "))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
