package history

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/store"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// maxListed bounds the session list.
const maxListed = 20

type viewsLoadedMsg struct {
	Views store.PageViews
	Err   error
}

// HistoryScreen displays the weekly focus totals, recent sessions and
// today's page views.
type HistoryScreen struct {
	tracker   *focus.Tracker
	analytics store.AnalyticsRepo
	now       func() time.Time

	sessions []focus.Session // newest first
	views    map[string]int
	selected int
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. analytics may be nil.
func New(tracker *focus.Tracker, analytics store.AnalyticsRepo) *HistoryScreen {
	sessions := tracker.Sessions()
	slices.Reverse(sessions)
	if len(sessions) > maxListed {
		sessions = sessions[:maxListed]
	}
	return &HistoryScreen{
		tracker:   tracker,
		analytics: analytics,
		now:       time.Now,
		sessions:  sessions,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.analytics == nil {
		return nil
	}
	repo := s.analytics
	return func() tea.Msg {
		views, err := repo.PageViews(context.Background())
		return viewsLoadedMsg{Views: views, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Focus History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case viewsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.views = msg.Views[s.now().Format(time.DateOnly)]
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	now := s.now()

	sections := []string{
		components.Card("This week", s.renderWeek(now, cw), cw),
		components.Card("Recent sessions", s.renderSessions(), cw),
	}
	if len(s.views) > 0 {
		sections = append(sections, components.Card("Pages visited today", s.renderViews(), cw))
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *HistoryScreen) renderWeek(now time.Time, cw int) string {
	week := s.tracker.Weekly(now)
	peak := 1
	for _, d := range week {
		peak = max(peak, d.Minutes)
	}

	barWidth := max(4, cw-30)
	var b strings.Builder
	for _, d := range week {
		bar := components.NewProgressBar("", float64(d.Minutes)/float64(peak), false, barWidth)
		fmt.Fprintf(&b, "%s  %s  %s\n",
			theme.Muted.Render(d.Date.Format("Mon 02")),
			bar.View(),
			theme.Body.Render(fmt.Sprintf("%3d min %2d×", d.Minutes, d.Sessions)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *HistoryScreen) renderSessions() string {
	if len(s.sessions) == 0 {
		return theme.Hint.Render("No sessions yet. Press S on the home screen to start one.")
	}

	var b strings.Builder
	for i, sess := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			prefix,
			sess.Start.Format("Jan 02 15:04"),
			layout.FormatClock(sess.DurationSecs),
			pluralMinutes(sess.Minutes),
		)
		b.WriteString(style.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *HistoryScreen) renderViews() string {
	pages := make([]string, 0, len(s.views))
	for p := range s.views {
		pages = append(pages, p)
	}
	slices.SortFunc(pages, func(a, b string) int {
		if s.views[a] != s.views[b] {
			return s.views[b] - s.views[a]
		}
		return strings.Compare(a, b)
	})

	lines := make([]string, 0, len(pages))
	for _, p := range pages {
		lines = append(lines, fmt.Sprintf("%-14s %d", router.Route(p).Name(), s.views[p]))
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}

func pluralMinutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}
