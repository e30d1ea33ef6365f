package patterns

import "strings"

// Severity ranks how strongly a pattern signals AI authorship.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities: low < medium < high. Unknown values rank as low.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// Weight is the per-match penalty used by the humanization score.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityHigh:
		return 2.0
	case SeverityMedium:
		return 1.0
	case SeverityLow:
		return 0.5
	default:
		return 1.0
	}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

func (s Severity) String() string { return string(s) }

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(value string) (Severity, bool) {
	sev := Severity(strings.ToLower(strings.TrimSpace(value)))
	if !sev.Valid() {
		return "", false
	}
	return sev, true
}

// CoerceSeverity parses value and falls back to medium for anything unknown.
// Use it at trust boundaries such as parsed collaborator output.
func CoerceSeverity(value string) Severity {
	if sev, ok := ParseSeverity(value); ok {
		return sev
	}
	return SeverityMedium
}

// Category groups patterns by the kind of writing habit they describe.
type Category string

const (
	CategoryContent       Category = "content"
	CategoryLanguage      Category = "language"
	CategoryStyle         Category = "style"
	CategoryCommunication Category = "communication"
	CategoryFiller        Category = "filler"
)

// Categories lists every category in catalog order.
func Categories() []Category {
	return []Category{
		CategoryContent,
		CategoryLanguage,
		CategoryStyle,
		CategoryCommunication,
		CategoryFiller,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryContent, CategoryLanguage, CategoryStyle, CategoryCommunication, CategoryFiller:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// ParseCategory parses a category name case-insensitively.
func ParseCategory(value string) (Category, bool) {
	cat := Category(strings.ToLower(strings.TrimSpace(value)))
	if !cat.Valid() {
		return "", false
	}
	return cat, true
}
