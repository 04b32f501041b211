package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Confirm asks the user a yes/no question with an interactive form.
// Callers on non-interactive runs should bypass this with --yes.
func Confirm(prompt string) (bool, error) {
	var answer bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return answer, nil
}
