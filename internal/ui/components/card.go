package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the stacked cards of a
// screen so they line up.
func ContentWidth(frameWidth int) int {
	return min(72, max(30, frameWidth-6))
}

// Card wraps content in a rounded card with an optional title line.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.Label.Render(title) + "\n" + content
	}
	return theme.Card.Width(cw).Render(content)
}

// HighlightCard is Card with a colored border, used for the section that
// needs attention.
func HighlightCard(title, content string, cw int, border color.Color) string {
	if title != "" {
		content = theme.Label.Render(title) + "\n" + content
	}
	return theme.Card.BorderForeground(border).Width(cw).Render(content)
}

// StatTile renders a big value over a small label.
func StatTile(value, label string, width int, fg color.Color) string {
	v := lipgloss.NewStyle().Bold(true).Foreground(fg).Render(value)
	l := theme.Muted.Render(label)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(v + "\n" + l)
}

// TileRow lays tiles side by side, splitting cw evenly.
func TileRow(cw int, tiles ...func(width int) string) string {
	if len(tiles) == 0 {
		return ""
	}
	w := cw / len(tiles)
	rendered := make([]string, len(tiles))
	for i, tile := range tiles {
		rendered[i] = tile(w)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Center centers block inside width x height.
func Center(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
