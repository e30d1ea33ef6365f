package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {label: "INFO", color: ansiBlue},
	statusOK:    {label: "OK", color: ansiGreen},
	statusWarn:  {label: "WARN", color: ansiYellow},
	statusError: {label: "ERROR", color: ansiRed},
}

const (
	minLabelWidth = 20
	statusIndent  = "  "
)

// statusLine is one "label: [KIND] message" row of command output.
type statusLine struct {
	label   string
	kind    statusKind
	message string
}

// renderStatusBlock aligns lines on their longest label.
func renderStatusBlock(lines []statusLine, colorize bool) []string {
	width := minLabelWidth
	for _, line := range lines {
		width = max(width, len(line.label)+1)
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, formatStatus(line, width, colorize))
	}
	return out
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	return renderStatusBlock([]statusLine{{label: label, kind: kind, message: message}}, colorize)[0]
}

func formatStatus(line statusLine, width int, colorize bool) string {
	style, ok := statusStyles[line.kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	badge := "[" + style.label + "]"
	if line.message != "" {
		badge += " " + line.message
	}
	text := fmt.Sprintf("%s%-*s %s", statusIndent, width, line.label+":", badge)
	if colorize {
		return style.color + text + ansiReset
	}
	return text
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		return []string{ansiBlue + line + ansiReset, ansiBlue + rule + ansiReset}
	}
	return []string{line, rule}
}

// scoreKind grades a score against its passing mark: at or above is OK and
// within a quarter of it is a warning.
func scoreKind(score, pass int) statusKind {
	switch {
	case score >= pass:
		return statusOK
	case score >= pass*3/4:
		return statusWarn
	default:
		return statusError
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
