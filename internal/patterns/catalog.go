package patterns

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Pattern describes one AI writing signature.
type Pattern struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Category      Category `yaml:"category" json:"category"`
	Severity      Severity `yaml:"severity" json:"severity"`
	Keywords      []string `yaml:"keywords" json:"keywords"`
	Threshold     int      `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Description   string   `yaml:"description" json:"description"`
	ExampleBefore string   `yaml:"example_before,omitempty" json:"example_before,omitempty"`
	ExampleAfter  string   `yaml:"example_after,omitempty" json:"example_after,omitempty"`
}

// Structural reports whether the pattern needs non-keyword detection.
func (p Pattern) Structural() bool {
	return len(p.Keywords) == 0
}

func (p Pattern) clone() Pattern {
	if p.Keywords != nil {
		p.Keywords = append([]string(nil), p.Keywords...)
	}
	return p
}

// Catalog is an immutable, ordered set of patterns.
type Catalog struct {
	patterns []Pattern
	index    map[string]int
}

type catalogFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, parsed on first use. It panics if the
// embedded document is invalid, which is a build defect rather than a runtime
// condition.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("patterns: embedded catalog: %v", defaultErr))
	}
	return defaultCatalog
}

// Load parses the embedded catalog document.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalog from a YAML document and validates every entry.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(file.Patterns)
}

// New builds a catalog from patterns, keeping their order.
func New(patterns []Pattern) (*Catalog, error) {
	if len(patterns) == 0 {
		return nil, errors.New("catalog: no patterns")
	}
	c := &Catalog{
		patterns: make([]Pattern, 0, len(patterns)),
		index:    make(map[string]int, len(patterns)),
	}
	for i, p := range patterns {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: pattern %d: id required", i)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("catalog: pattern %q: duplicate id", p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("catalog: pattern %q: name required", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("catalog: pattern %q: unknown category %q", p.ID, p.Category)
		}
		if !p.Severity.Valid() {
			return nil, fmt.Errorf("catalog: pattern %q: unknown severity %q", p.ID, p.Severity)
		}
		keywords := make([]string, 0, len(p.Keywords))
		for _, kw := range p.Keywords {
			if kw == "" {
				return nil, fmt.Errorf("catalog: pattern %q: empty keyword", p.ID)
			}
			keywords = append(keywords, kw)
		}
		p.Keywords = keywords
		c.index[p.ID] = len(c.patterns)
		c.patterns = append(c.patterns, p)
	}
	return c, nil
}

// Len returns the number of patterns.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.patterns)
}

// All returns every pattern in catalog order.
func (c *Catalog) All() []Pattern {
	return c.filter(func(Pattern) bool { return true })
}

// ByCategory returns the patterns in the given category.
func (c *Catalog) ByCategory(category Category) []Pattern {
	return c.filter(func(p Pattern) bool { return p.Category == category })
}

// HighSeverity returns the patterns whose severity is high.
func (c *Catalog) HighSeverity() []Pattern {
	return c.filter(func(p Pattern) bool { return p.Severity == SeverityHigh })
}

// AtLeast returns the patterns whose severity is min or above.
func (c *Catalog) AtLeast(min Severity) []Pattern {
	rank := min.Rank()
	return c.filter(func(p Pattern) bool { return p.Severity.Rank() >= rank })
}

// Lookup finds a pattern by id.
func (c *Catalog) Lookup(id string) (Pattern, bool) {
	if c == nil {
		return Pattern{}, false
	}
	idx, ok := c.index[id]
	if !ok {
		return Pattern{}, false
	}
	return c.patterns[idx].clone(), true
}

func (c *Catalog) filter(keep func(Pattern) bool) []Pattern {
	if c == nil {
		return nil
	}
	out := make([]Pattern, 0, len(c.patterns))
	for _, p := range c.patterns {
		if keep(p) {
			out = append(out, p.clone())
		}
	}
	return out
}
