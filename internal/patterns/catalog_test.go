package patterns

import "testing"

func TestDefaultCatalogStructure(t *testing.T) {
	catalog := Default()
	if catalog.Len() != 24 {
		t.Fatalf("expected 24 patterns, got %d", catalog.Len())
	}
	for _, p := range catalog.All() {
		if p.Name == "" {
			t.Fatalf("pattern %q has no name", p.ID)
		}
		if !p.Category.Valid() {
			t.Fatalf("pattern %q has invalid category %q", p.ID, p.Category)
		}
		if !p.Severity.Valid() {
			t.Fatalf("pattern %q has invalid severity %q", p.ID, p.Severity)
		}
		if p.Description == "" {
			t.Fatalf("pattern %q has no description", p.ID)
		}
	}
}

func TestStructuralPatternsStayListed(t *testing.T) {
	catalog := Default()
	for _, id := range []string{"rule_of_three", "elegant_variation", "inline_header_lists", "title_case_headings"} {
		p, ok := catalog.Lookup(id)
		if !ok {
			t.Fatalf("expected structural pattern %q in catalog", id)
		}
		if !p.Structural() {
			t.Fatalf("expected %q to have no keywords, got %v", id, p.Keywords)
		}
	}
}

func TestByCategoryCoversCatalog(t *testing.T) {
	catalog := Default()
	total := 0
	for _, cat := range Categories() {
		subset := catalog.ByCategory(cat)
		if len(subset) == 0 {
			t.Fatalf("expected patterns in category %q", cat)
		}
		for _, p := range subset {
			if p.Category != cat {
				t.Fatalf("pattern %q listed under %q but has category %q", p.ID, cat, p.Category)
			}
		}
		total += len(subset)
	}
	if total != catalog.Len() {
		t.Fatalf("categories cover %d patterns, catalog has %d", total, catalog.Len())
	}
}

func TestHighSeverity(t *testing.T) {
	high := Default().HighSeverity()
	want := map[string]bool{
		"ing_endings":             true,
		"promotional_language":    true,
		"ai_vocabulary":           true,
		"collaborative_artifacts": true,
		"knowledge_cutoff":        true,
	}
	if len(high) != len(want) {
		t.Fatalf("expected %d high severity patterns, got %d", len(want), len(high))
	}
	for _, p := range high {
		if !want[p.ID] {
			t.Fatalf("unexpected high severity pattern %q", p.ID)
		}
	}
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Default().Lookup("does_not_exist"); ok {
		t.Fatal("expected lookup of unknown id to fail")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	catalog := Default()
	p, ok := catalog.Lookup("ai_vocabulary")
	if !ok {
		t.Fatal("expected ai_vocabulary")
	}
	original := p.Keywords[0]
	p.Keywords[0] = "mutated"
	again, _ := catalog.Lookup("ai_vocabulary")
	if again.Keywords[0] != original {
		t.Fatalf("catalog mutated through Lookup copy: %q", again.Keywords[0])
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "patterns: []"},
		{"bad severity", "patterns:\n  - {id: a, name: A, category: content, severity: extreme}"},
		{"bad category", "patterns:\n  - {id: a, name: A, category: prose, severity: low}"},
		{"duplicate", "patterns:\n  - {id: a, name: A, category: content, severity: low}\n  - {id: a, name: B, category: style, severity: low}"},
		{"missing id", "patterns:\n  - {name: A, category: content, severity: low}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestCoerceSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"high", SeverityHigh},
		{" LOW ", SeverityLow},
		{"Medium", SeverityMedium},
		{"critical", SeverityMedium},
		{"", SeverityMedium},
	}
	for _, tt := range tests {
		if got := CoerceSeverity(tt.in); got != tt.want {
			t.Errorf("CoerceSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityLow.Rank() < SeverityMedium.Rank() && SeverityMedium.Rank() < SeverityHigh.Rank()) {
		t.Fatal("expected low < medium < high")
	}
	if Severity("bogus").Rank() != SeverityLow.Rank() {
		t.Fatal("expected unknown severity to rank as low")
	}
}
