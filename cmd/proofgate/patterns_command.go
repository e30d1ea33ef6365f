package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"proofgate/internal/patterns"
)

func newPatternsCommand() *cobra.Command {
	var category string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "patterns",
		Short:       "List the AI writing pattern catalog",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := patterns.Default()
			entries := catalog.All()
			if value := strings.TrimSpace(category); value != "" {
				parsed, ok := patterns.ParseCategory(value)
				if !ok {
					return fmt.Errorf("unknown category %q", value)
				}
				entries = catalog.ByCategory(parsed)
			}
			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, p := range entries {
				keywords := "(structural)"
				if !p.Structural() {
					keywords = fmt.Sprintf("%d", len(p.Keywords))
				}
				rows = append(rows, []string{p.ID, p.Name, string(p.Category), string(p.Severity), keywords})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]tableColumn{
				{Header: "ID"},
				{Header: "Name"},
				{Header: "Category"},
				{Header: "Severity"},
				{Header: "Keywords", Right: true},
			}, rows))
			fmt.Fprintf(out, "%d patterns\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list one category")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
