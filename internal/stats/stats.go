// Package stats parses agent usage statistics and tracks them over time.
//
// Usage reports arrive as human-formatted text ("2.2M tokens", "$5.63").
// This package parses those into exact integer units (tokens, cents) and
// persists a history file so successive runs can report per-entry deltas.
package stats

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	droverrors "github.com/droverhq/drover/internal/errors"
)

// Entry is one named usage line, parsed into exact units.
type Entry struct {
	// Name identifies the entry (model name, category).
	Name string `json:"name"`
	// Tokens is the token count.
	Tokens int64 `json:"tokens"`
	// CostCents is the cost in cents. Cents avoid float drift when
	// accumulating across runs.
	CostCents int64 `json:"cost_cents"`
}

// CostDollars returns the cost formatted as dollars.
func (e Entry) CostDollars() string {
	return FormatCents(e.CostCents)
}

// suffixMultipliers maps magnitude suffixes on token counts.
//
//nolint:gochecknoglobals // immutable lookup table
var suffixMultipliers = map[byte]float64{
	'k': 1e3, 'K': 1e3,
	'm': 1e6, 'M': 1e6,
	'b': 1e9, 'B': 1e9,
}

// statsLineRegex matches a usage line: "name  2.2M tokens  $5.63".
var statsLineRegex = regexp.MustCompile(`^\s*(.+?)\s{2,}([\d.,]+[kKmMbB]?)\s*(?:tokens)?\s+\$([\d.,]+)\s*$`)

// ParseTokens parses a human token count ("2.2M", "950k", "1,234") into an
// exact integer count.
func ParseTokens(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, fmt.Errorf("empty token count: %w", droverrors.ErrStatsParse)
	}

	mult := 1.0
	if m, ok := suffixMultipliers[s[len(s)-1]]; ok {
		mult = m
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token count %q: %w", s, droverrors.ErrStatsParse)
	}
	return int64(math.Round(v * mult)), nil
}

// ParseCost parses a dollar amount ("$5.63", "5.63") into cents.
func ParseCost(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, fmt.Errorf("empty cost: %w", droverrors.ErrStatsParse)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q: %w", s, droverrors.ErrStatsParse)
	}
	return int64(math.Round(v * 100)), nil
}

// FormatTokens formats a token count back into compact human form.
func FormatTokens(n int64) string {
	switch {
	case n >= 1e9:
		return trimZero(fmt.Sprintf("%.1fB", float64(n)/1e9))
	case n >= 1e6:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1e6))
	case n >= 1e3:
		return trimZero(fmt.Sprintf("%.1fk", float64(n)/1e3))
	}
	return strconv.FormatInt(n, 10)
}

// FormatCents formats cents as a dollar string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// trimZero drops a trailing ".0" before the magnitude suffix.
func trimZero(s string) string {
	return strings.ReplaceAll(s, ".0", "")
}

// ParseReport parses a multi-line usage report into entries. Lines that do
// not match the expected shape are skipped; a report with no parseable
// lines is an error.
func ParseReport(text string) ([]Entry, error) {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		m := statsLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tokens, err := ParseTokens(m[2])
		if err != nil {
			continue
		}
		cents, err := ParseCost(m[3])
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:      strings.TrimSpace(m[1]),
			Tokens:    tokens,
			CostCents: cents,
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no usage lines found: %w", droverrors.ErrStatsParse)
	}
	return entries, nil
}
