package home

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/dashboard"
	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/screens/history"
	"github.com/mindmorph/mindmorph/internal/store"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
)

type resultsLoadedMsg struct {
	Results map[string]store.SubjectResults
	Err     error
}

// HomeScreen is the dashboard: focus score and controls, learning mode,
// statistics and the subject menu.
type HomeScreen struct {
	dash      *dashboard.Dashboard
	tracker   *focus.Tracker
	results   store.QuizRepo
	analytics store.AnalyticsRepo
	logger    *zap.Logger
	now       func() time.Time

	menu  components.Menu
	cards []dashboard.Card
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. results and analytics may be nil.
func New(dash *dashboard.Dashboard, tracker *focus.Tracker, results store.QuizRepo, analytics store.AnalyticsRepo, logger *zap.Logger) *HomeScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &HomeScreen{
		dash:      dash,
		tracker:   tracker,
		results:   results,
		analytics: analytics,
		logger:    logger,
		now:       time.Now,
	}
	h.setCards(h.dash.Cards(nil))
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadResults()
}

func (h *HomeScreen) Title() string {
	return router.RouteHome.Name()
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	st := h.tracker.State()
	focusLabel := "Start focus"
	if st.Active {
		focusLabel = "Stop focus"
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "S", Description: focusLabel},
	}
	if st.Active {
		pause := "Pause"
		if st.Paused {
			pause = "Resume"
		}
		hints = append(hints, layout.KeyHint{Key: "P", Description: pause})
	}
	return append(hints,
		layout.KeyHint{Key: "M", Description: "Mode"},
		layout.KeyHint{Key: "H", Description: "History"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		if msg.Err != nil {
			h.logger.Warn("load quiz results", zap.Error(msg.Err))
			return h, nil
		}
		h.setCards(h.dash.Cards(msg.Results))
		return h, nil

	case screen.ActivatedMsg:
		return h, h.loadResults()

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return h, h.toggleFocus()
		case "p":
			return h, h.togglePause()
		case "m":
			h.cycleMode()
			return h, nil
		case "h":
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.tracker, h.analytics)}
			}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleFocus() tea.Cmd {
	ctx := context.Background()
	if h.tracker.State().Active {
		h.tracker.Stop(ctx, h.now())
	} else {
		h.tracker.Start(ctx, h.now())
	}
	return trackerChanged
}

func (h *HomeScreen) togglePause() tea.Cmd {
	st := h.tracker.State()
	if !st.Active {
		return nil
	}
	if st.Paused {
		h.tracker.Resume(context.Background(), h.now())
	} else {
		h.tracker.Pause(context.Background(), h.now())
	}
	return trackerChanged
}

func trackerChanged() tea.Msg {
	return screen.TrackerChangedMsg{}
}

func (h *HomeScreen) cycleMode() {
	i := slices.Index(dashboard.Modes, h.dash.Mode())
	h.dash.SetMode(dashboard.Modes[(i+1)%len(dashboard.Modes)])
}

func (h *HomeScreen) loadResults() tea.Cmd {
	if h.results == nil {
		return nil
	}
	repo := h.results
	return func() tea.Msg {
		res, err := repo.QuizResults(context.Background())
		return resultsLoadedMsg{Results: res, Err: err}
	}
}

// setCards rebuilds the subject menu, keeping the selection.
func (h *HomeScreen) setCards(cards []dashboard.Card) {
	selected := h.menu.Selected
	h.cards = cards

	items := make([]components.MenuItem, 0, len(cards))
	for _, c := range cards {
		route := router.ParseRoute(string(c.Subject))
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%-14s %s", route.Name(), c.Topic),
			Hint:   cardHint(c),
			Action: func() tea.Cmd { return router.Navigate(route) },
		})
	}
	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func cardHint(c dashboard.Card) string {
	if c.Best < 0 {
		return "not started"
	}
	attempts := "attempt"
	if c.Attempts != 1 {
		attempts += "s"
	}
	return fmt.Sprintf("best %d%% · %d %s", c.Best, c.Attempts, attempts)
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to judge the
	// terminal size.
	compact := height+6 < 34 || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	snap := h.dash.Compose(h.tracker, nil, h.now())
	st := h.tracker.State()

	var sections []string
	sections = append(sections, renderFocusCard(snap, st, cw, compact))
	sections = append(sections, renderModeRow(snap.Mode, cw))
	sections = append(sections, renderStats(snap, cw, compact))
	sections = append(sections, components.Card("Modules", strings.TrimRight(h.menu.View(), "\n"), cw))

	return components.Center(strings.Join(sections, "\n"), width, height)
}
