package skill

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Render renders the skill body as terminal markdown. When pretty is false
// (non-TTY or JSON output mode) the raw markdown is returned unchanged.
func Render(sk *Skill, width int, pretty bool) (string, error) {
	if !pretty {
		return sk.Body, nil
	}
	if width <= 0 {
		width = 100
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(sk.Body)
	if err != nil {
		return "", fmt.Errorf("failed to render skill: %w", err)
	}
	return out, nil
}
