// Package tui provides terminal output components for drover.
//
// Styles use AdaptiveColor throughout so output reads well on both light
// and dark terminals.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

//nolint:gochecknoglobals // package-level style constants
var (
	// ColorPrimary is blue, used for links and primary values.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for completed steps.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for skipped steps and warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failed and blocked steps.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies faint formatting.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutputStyles holds the common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
}

// NewOutputStyles creates the common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
		Header:  lipgloss.NewStyle().Bold(true),
	}
}

// StatusIcon maps a step status to its icon. Icon, color, and text are all
// present in step output so no single channel carries the meaning.
func StatusIcon(status string) string {
	switch status {
	case "ok":
		return "✓"
	case "skipped":
		return "↷"
	case "blocked":
		return "⛔"
	case "failed":
		return "✗"
	}
	return "•"
}

// StatusStyle maps a step status to its display style.
func (s *OutputStyles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "ok":
		return s.Success
	case "skipped":
		return s.Warning
	case "blocked", "failed":
		return s.Error
	}
	return s.Dim
}
