package home

import (
	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

const brainHigh = `  ╭─────╮
 ( ★   ★ )
  ╰─┬─┬─╯
   ═╧═╧═`

const brainSteady = `  ╭─────╮
 ( ◉   ◉ )
  ╰─┬─┬─╯
   ═╧═╧═`

const brainDrifting = `  ╭─────╮  ?
 ( ◔   ◔ )
  ╰─┬─┬─╯
   ═╧═╧═`

const brainIdle = `  ╭─────╮  z
 ( ─   ─ )
  ╰─┬─┬─╯
   ═╧═╧═`

// renderBrain draws the focus indicator for the current pattern. An idle
// tracker shows closed eyes whatever the last score was.
func renderBrain(p focus.Pattern, active bool) string {
	art := brainSteady
	switch {
	case !active:
		art = brainIdle
	case p == focus.PatternHigh:
		art = brainHigh
	case p == focus.PatternDeclining || p == focus.PatternLow:
		art = brainDrifting
	}
	return lipgloss.NewStyle().
		Foreground(theme.PatternColor(string(p))).
		Render(art)
}
