// Package scan provides heuristic review of diffs before they are pushed.
//
// The matching rules are regex-based and inherently incomplete, so the
// scanner sits behind the DiffScanner capability interface: rule sets can be
// swapped or extended without touching the workflow sequencing that consumes
// the findings.
package scan

import (
	"context"
	"strings"
)

// Severity ranks a finding.
type Severity string

// Severity values.
const (
	// SeverityBlock findings stop the workflow until a human reviews them.
	SeverityBlock Severity = "block"
	// SeverityWarn findings are reported but do not stop the workflow.
	SeverityWarn Severity = "warn"
)

// Finding is a single match reported by a scanner.
type Finding struct {
	// Rule is the name of the rule that matched.
	Rule string `json:"rule"`
	// Severity ranks the finding.
	Severity Severity `json:"severity"`
	// File is the path the matched line belongs to.
	File string `json:"file"`
	// Line is the matched added line with sensitive content intact;
	// callers must redact before logging.
	Line string `json:"line"`
	// Description explains what the rule looks for.
	Description string `json:"description"`
}

// DiffScanner reviews a unified diff and reports findings.
// Only added lines are examined: removing a secret should never block.
type DiffScanner interface {
	// Scan examines the diff and returns findings in deterministic order.
	Scan(ctx context.Context, diff string) ([]Finding, error)

	// Name identifies the scanner in reports.
	Name() string
}

// HasBlocking reports whether any finding carries block severity.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// addedLine represents one added line of a diff with its file context.
type addedLine struct {
	file string
	text string
}

// addedLines extracts the added lines from a unified diff, tracking which
// file each belongs to. Header lines (+++) are not content.
func addedLines(diff string) []addedLine {
	var out []addedLine
	var currentFile string

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			if parts := strings.Split(line, " "); len(parts) >= 4 {
				currentFile = strings.TrimPrefix(parts[2], "a/")
			}
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasPrefix(line, "+") {
			out = append(out, addedLine{file: currentFile, text: line[1:]})
		}
	}
	return out
}
