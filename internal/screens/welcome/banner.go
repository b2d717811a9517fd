package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

var glyphs = map[rune]string{
	'M': "███╗   ███╗\n████╗ ████║\n██╔████╔██║\n██║╚██╔╝██║\n██║ ╚═╝ ██║\n╚═╝     ╚═╝",
	'I': "██╗\n██║\n██║\n██║\n██║\n╚═╝",
	'N': "███╗   ██╗\n████╗  ██║\n██╔██╗ ██║\n██║╚██╗██║\n██║ ╚████║\n╚═╝  ╚═══╝",
	'D': "██████╗ \n██╔══██╗\n██║  ██║\n██║  ██║\n██████╔╝\n╚═════╝ ",
	'O': " ██████╗ \n██╔═══██╗\n██║   ██║\n██║   ██║\n╚██████╔╝\n ╚═════╝ ",
	'R': "██████╗ \n██╔══██╗\n██████╔╝\n██╔══██╗\n██║  ██║\n╚═╝  ╚═╝",
	'P': "██████╗ \n██╔══██╗\n██████╔╝\n██╔═══╝ \n██║     \n╚═╝     ",
	'H': "██╗  ██╗\n██║  ██║\n███████║\n██╔══██║\n██║  ██║\n╚═╝  ╚═╝",
	' ': "  \n  \n  \n  \n  \n  ",
}

const bannerCompact = "M I N D · M O R P H"

// bannerWidth is the width of the block-letter banner.
var bannerWidth = lipgloss.Width(blockText("MIND MORPH"))

func blockText(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, glyphs[r])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderBanner returns the MIND MORPH banner styled in the primary color.
// Uses a compact fallback when the block letters do not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(strings.TrimRight(blockText("MIND MORPH"), " "))
}
