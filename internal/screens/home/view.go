package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/dashboard"
	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// renderFocusCard shows the score, its caption and pattern, the session
// clock and the insight tip. The brain art is dropped in compact mode.
func renderFocusCard(snap dashboard.Snapshot, st focus.State, cw int, compact bool) string {
	patternColor := theme.PatternColor(string(snap.Pattern))

	score := lipgloss.NewStyle().
		Bold(true).
		Foreground(patternColor).
		Render(fmt.Sprintf("%d", int(snap.Score)))

	var status string
	switch {
	case st.Paused:
		status = theme.Muted.Render("Paused · " + layout.FormatClock(st.ClockSecs))
	case st.Active:
		status = lipgloss.NewStyle().Foreground(theme.Primary).Render("Focusing · " + layout.FormatClock(st.ClockSecs))
	default:
		status = theme.Muted.Render("Not tracking")
	}

	lines := []string{
		theme.Label.Render("FOCUS SCORE") + "  " + score + "  " + theme.Body.Render(snap.Caption),
		theme.Muted.Render("Attention: ") + lipgloss.NewStyle().Foreground(patternColor).Render(string(snap.Pattern)),
		status,
		"",
		theme.Hint.Render(snap.Insight.Tip),
	}
	text := strings.Join(lines, "\n")

	if !compact {
		text = lipgloss.JoinHorizontal(lipgloss.Center,
			renderBrain(snap.Pattern, st.Active),
			"    ",
			text,
		)
	}

	border := theme.Border
	if st.Active {
		border = patternColor
	}
	return components.HighlightCard("", text, cw, border)
}

// renderModeRow lists the learning modes with the current one highlighted.
func renderModeRow(current dashboard.Mode, cw int) string {
	parts := make([]string, 0, len(dashboard.Modes))
	for _, m := range dashboard.Modes {
		if m == current {
			parts = append(parts, theme.ButtonActive.Render(string(m)))
			continue
		}
		parts = append(parts, theme.Muted.Padding(0, 2).Render(string(m)))
	}
	row := theme.Label.Render("Mode ") + strings.Join(parts, " ")
	return lipgloss.PlaceHorizontal(cw+2, lipgloss.Center, row)
}

// renderStats shows today's numbers and, outside compact mode, the week.
func renderStats(snap dashboard.Snapshot, cw int, compact bool) string {
	s := snap.Stats
	tiles := components.TileRow(cw-6,
		func(w int) string {
			return components.StatTile(fmt.Sprint(s.TodaySessions), "sessions today", w, theme.Primary)
		},
		func(w int) string {
			return components.StatTile(fmt.Sprint(s.TodayMinutes), "min today", w, theme.Secondary)
		},
		func(w int) string {
			return components.StatTile(fmt.Sprint(s.AverageMinutes), "avg min", w, theme.Accent)
		},
		func(w int) string {
			return components.StatTile(fmt.Sprint(s.TotalMinutes), "min all time", w, theme.Success)
		},
	)
	if compact {
		return components.Card("", tiles, cw)
	}

	minutes := make([]int, len(snap.Weekly))
	for i, d := range snap.Weekly {
		minutes[i] = d.Minutes
	}
	week := theme.Muted.Render("Last 7 days ") +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(components.Sparkline(minutes))
	return components.Card("", tiles+"\n\n"+week, cw)
}
