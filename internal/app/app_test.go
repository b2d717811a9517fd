package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmorph/mindmorph/internal/config"
	"github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	quizscreen "github.com/mindmorph/mindmorph/internal/screens/quiz"
	"github.com/mindmorph/mindmorph/internal/screens/timer"
	"github.com/mindmorph/mindmorph/internal/screens/welcome"
	"github.com/mindmorph/mindmorph/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestModel(t *testing.T, s *store.Store) AppModel {
	t.Helper()
	cfg := config.Defaults()
	cfg.Focus.Seed = 7
	return newAppModel(Options{Store: s, Config: cfg})
}

func key(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// apply runs msg through the model and feeds back the resulting messages
// that are not timers.
func apply(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	for _, out := range collect(cmd) {
		switch out.(type) {
		case router.NavigateMsg, router.PushScreenMsg, router.PopScreenMsg, router.ShowMsg,
			router.BackMsg, screen.TrackerChangedMsg:
			m = apply(m, out)
		}
	}
	return m
}

// collect runs cmd and flattens batches. Ticks are skipped so tests do not
// sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func TestShortcutNavigatesAndEscGoesHome(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m = apply(m, key("2"))
	require.Equal(t, router.RouteMath, m.router.Route())
	_, isQuiz := m.router.Active().(*quizscreen.QuizScreen)
	assert.True(t, isQuiz)
	assert.Equal(t, router.RouteMath, m.nav.Current())

	m = apply(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, router.RouteHome, m.router.Route())
	assert.Equal(t, 1, m.router.Depth())
}

func TestSubjectsComeFromInjectedBanks(t *testing.T) {
	math, err := quiz.MustLoadBanks().Get(quiz.SubjectMath)
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.Focus.Seed = 7
	m := newAppModel(Options{Store: openStore(t), Config: cfg, Banks: quiz.NewBanks(math)})

	m = apply(m, key("2"))
	_, isQuiz := m.router.Active().(*quizscreen.QuizScreen)
	assert.True(t, isQuiz)

	m = apply(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = apply(m, key("3"))
	assert.Equal(t, router.RouteNotFound, m.router.Route(), "science has no bank here")
}

func TestBackspaceGoesBack(t *testing.T) {
	m := newTestModel(t, openStore(t))
	m = apply(m, key("2"))
	m = apply(m, key("3"))
	require.Equal(t, router.RouteScience, m.router.Route())

	m = apply(m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, router.RouteMath, m.router.Route())
}

func TestPageViewsRecorded(t *testing.T) {
	s := openStore(t)
	m := newTestModel(t, s)
	m = apply(m, key("4"))
	m = apply(m, key("4"))

	views, err := s.AnalyticsRepo().PageViews(context.Background())
	require.NoError(t, err)
	today := time.Now().Format(time.DateOnly)
	assert.Equal(t, 2, views[today]["english"])
}

func TestTrackerTicksAndStaleGeneration(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m = apply(m, key("s"))
	require.True(t, m.tracker.Ticking())
	assert.Equal(t, 1, m.registry.Len())

	gen := m.tracker.Generation()
	m = apply(m, clockTickMsg{gen: gen})
	assert.Equal(t, 1, m.tracker.State().ClockSecs)

	m = apply(m, clockTickMsg{gen: gen - 1})
	assert.Equal(t, 1, m.tracker.State().ClockSecs, "stale tick must be dropped")

	m = apply(m, key("p"))
	assert.Equal(t, 0, m.registry.Len(), "a paused session leaves the registry")
}

func TestBlurPausesAndFocusResumes(t *testing.T) {
	m := newTestModel(t, openStore(t))
	m = apply(m, key("s"))

	m = apply(m, tea.BlurMsg{})
	assert.True(t, m.tracker.State().Paused)

	next, cmd := m.Update(tea.FocusMsg{})
	m = next.(AppModel)
	assert.False(t, m.tracker.State().Paused)
	assert.NotNil(t, cmd, "ticks are rescheduled on focus")
}

func TestTimerPausesWithTerminal(t *testing.T) {
	m := newTestModel(t, openStore(t))

	// Life skills is not on a number key; navigate directly.
	m = apply(m, router.NavigateMsg{Route: router.RouteLifeSkills})
	m = apply(m, key("t"))
	ts, ok := m.router.Active().(*timer.TimerScreen)
	require.True(t, ok, "expected the timer screen, got %T", m.router.Active())

	m = apply(m, key("s"))
	require.True(t, ts.Timer().Ticking())

	m = apply(m, tea.BlurMsg{})
	assert.False(t, ts.Timer().Ticking())
	m = apply(m, tea.FocusMsg{})
	assert.True(t, ts.Timer().Ticking())

	// Leaving the page tears the timer down.
	m = apply(m, router.NavigateMsg{Route: router.RouteHome})
	assert.False(t, ts.Timer().Running())
	assert.Equal(t, 0, m.registry.Len())
}

func TestInputCapturingScreenKeepsDigits(t *testing.T) {
	m := newTestModel(t, openStore(t))
	m = apply(m, router.NavigateMsg{Route: router.RouteLifeSkills})
	m = apply(m, key("t"))
	m = apply(m, key("e"))

	m = apply(m, key("2"))
	assert.Equal(t, router.RouteLifeSkills, m.router.Route(), "digits go to the text field")
}

func TestShutdownPersistsAndRestores(t *testing.T) {
	s := openStore(t)
	m := newTestModel(t, s)
	m = apply(m, key("3"))
	m.tracker.Start(context.Background(), time.Now())

	m.shutdown(context.Background())

	user, err := s.UserRepo().LoadUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "science", user.CurrentPage)

	focusData, err := s.FocusRepo().LoadFocus(context.Background())
	require.NoError(t, err)
	assert.Len(t, focusData.Sessions, 1, "the running session is recorded on exit")

	again := newTestModel(t, s)
	assert.Equal(t, router.RouteScience, again.resume)
	assert.Len(t, again.tracker.Sessions(), 1)
}

func TestUnknownLastPageShowsNotFound(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.UserRepo().SaveUser(context.Background(), &store.UserData{CurrentPage: "gravity"}))

	m := newTestModel(t, s)
	m.Init()
	assert.Equal(t, router.RouteNotFound, m.router.Route())
	assert.Equal(t, router.RouteHome, m.nav.Current())
}

func TestSplashPushedFirst(t *testing.T) {
	m := newAppModel(Options{Config: config.Defaults(), Splash: true})
	m.Init()
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)
}

func TestViewHeader(t *testing.T) {
	m := newTestModel(t, openStore(t))
	m = apply(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = apply(m, key("2"))

	v := m.View()
	assert.Equal(t, "Mind Morph Learning - Mathematics", v.WindowTitle)
	assert.True(t, v.ReportFocus)
}
