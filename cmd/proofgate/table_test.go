package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]tableColumn{{Header: "Pattern"}, {Header: "Count", Right: true}}, [][]string{{"Filler phrases"}})
	if !strings.Contains(out, "Filler phrases") || !strings.Contains(out, "Count") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if renderTable(nil, [][]string{{"x"}}) != "" {
		t.Fatal("expected empty output without columns")
	}
}

func TestRenderTableWrapsWideColumns(t *testing.T) {
	long := strings.Repeat("word ", 20)
	out := renderTable([]tableColumn{{Header: "Issue", MaxWidth: 20}}, [][]string{{long}})
	for _, line := range strings.Split(out, "\n") {
		if n := len([]rune(line)); n > 30 {
			t.Fatalf("line exceeds wrapped width (%d runes): %q", n, line)
		}
	}
}
