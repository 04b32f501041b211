// Package git provides git and gh CLI operations for drover.
// This file provides working tree statistics for the changes report.
package git

import (
	"context"
	"strconv"
	"strings"
)

// Stats holds aggregated working tree statistics.
type Stats struct {
	NewFiles      int // Number of new/untracked files
	ModifiedFiles int // Number of modified files
	Additions     int // Lines added
	Deletions     int // Lines deleted
}

// FormatCompact returns a compact format like "3M +120/-45".
// Returns empty string if there are no changes.
func (s *Stats) FormatCompact() string {
	if s == nil {
		return ""
	}

	var parts []string

	fileCount := s.NewFiles + s.ModifiedFiles
	if fileCount > 0 {
		if s.NewFiles > 0 && s.ModifiedFiles > 0 {
			parts = append(parts, strconv.Itoa(s.NewFiles)+"N "+strconv.Itoa(s.ModifiedFiles)+"M")
		} else if s.NewFiles > 0 {
			parts = append(parts, strconv.Itoa(s.NewFiles)+"N")
		} else {
			parts = append(parts, strconv.Itoa(s.ModifiedFiles)+"M")
		}
	}

	if s.Additions > 0 || s.Deletions > 0 {
		parts = append(parts, "+"+strconv.Itoa(s.Additions)+"/-"+strconv.Itoa(s.Deletions))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}

// IsEmpty returns true if there are no changes tracked.
func (s *Stats) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.NewFiles == 0 && s.ModifiedFiles == 0 && s.Additions == 0 && s.Deletions == 0
}

// CollectStats runs git commands to calculate current working tree stats.
// Failures on individual commands leave the corresponding fields at zero;
// the report is informational and should not abort on partial data.
func CollectStats(ctx context.Context, workDir string) *Stats {
	stats := &Stats{}

	statusOutput, err := RunCommand(ctx, workDir, "status", "--porcelain", "-uall")
	if err == nil {
		stats.NewFiles, stats.ModifiedFiles = parseStatusForCounts(statusOutput)
	}

	// Use --numstat for easy parsing of line counts
	numstatOutput, err := RunCommand(ctx, workDir, "diff", "--numstat", "HEAD")
	if err == nil {
		add, del := parseNumstat(numstatOutput)
		stats.Additions = add
		stats.Deletions = del
	}

	return stats
}

// parseStatusForCounts parses git status --porcelain output to count new and modified files.
func parseStatusForCounts(output string) (newFiles, modifiedFiles int) {
	if output == "" {
		return 0, 0
	}

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		// Skip branch info line
		if strings.HasPrefix(line, "## ") {
			continue
		}

		indexStatus := line[0]
		workTreeStatus := line[1]

		// Untracked files (new)
		if indexStatus == '?' && workTreeStatus == '?' {
			newFiles++
			continue
		}

		// Added files (staged new)
		if indexStatus == 'A' {
			newFiles++
			continue
		}

		// Modified files
		if indexStatus == 'M' || workTreeStatus == 'M' ||
			indexStatus == 'R' || workTreeStatus == 'R' ||
			indexStatus == 'D' || workTreeStatus == 'D' {
			modifiedFiles++
		}
	}

	return newFiles, modifiedFiles
}

// parseNumstat parses git diff --numstat output to count additions and deletions.
// Each line is: additions\tdeletions\tfilename
// Binary files show "-\t-\tfilename"
func parseNumstat(output string) (additions, deletions int) {
	if output == "" {
		return 0, 0
	}

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}

		// Skip binary files (shown as "-")
		if parts[0] == "-" || parts[1] == "-" {
			continue
		}

		if add, err := strconv.Atoi(parts[0]); err == nil {
			additions += add
		}
		if del, err := strconv.Atoi(parts[1]); err == nil {
			deletions += del
		}
	}

	return additions, deletions
}
