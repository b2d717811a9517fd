package components

import (
	"strings"

	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// Button is a key-triggered action shown in a screen's control row.
type Button struct {
	Key     string
	Label   string
	Enabled bool
}

// View renders the button. Disabled buttons are drawn dimmed.
func (b Button) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons on one line.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, "  ")
}
