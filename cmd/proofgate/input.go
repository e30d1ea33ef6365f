package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"proofgate/internal/document"
)

// readInput reads a file argument, or stdin when the argument is "-" or
// missing.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	path := strings.TrimSpace(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

// reviewDocument is the JSON shape accepted by `proofgate review`. It mirrors
// the pipeline state handed to the gate.
type reviewDocument struct {
	Sections []document.Section `json:"sections"`
	Outline  any                `json:"outline,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// parseReviewInput accepts either a JSON review document or markdown split
// on "## " headings.
func parseReviewInput(source, content string) (reviewDocument, error) {
	trimmed := strings.TrimSpace(content)
	if strings.EqualFold(filepath.Ext(source), ".json") || strings.HasPrefix(trimmed, "{") {
		var doc reviewDocument
		if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
			return reviewDocument{}, fmt.Errorf("parse %s: %w", source, err)
		}
		doc.Sections = document.AssignIDs(doc.Sections)
		return doc, nil
	}
	return reviewDocument{Sections: document.ParseMarkdown(content)}, nil
}

func (d reviewDocument) upstreamErr() error {
	if msg := strings.TrimSpace(d.Error); msg != "" {
		return errors.New(msg)
	}
	return nil
}
