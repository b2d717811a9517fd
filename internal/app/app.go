// Package app wires the focus tracker, dashboard, navigation and screens
// into the Bubble Tea program.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/config"
	"github.com/mindmorph/mindmorph/internal/dashboard"
	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/screens/home"
	"github.com/mindmorph/mindmorph/internal/screens/notfound"
	quizscreen "github.com/mindmorph/mindmorph/internal/screens/quiz"
	"github.com/mindmorph/mindmorph/internal/screens/timer"
	"github.com/mindmorph/mindmorph/internal/screens/vocab"
	"github.com/mindmorph/mindmorph/internal/screens/welcome"
	"github.com/mindmorph/mindmorph/internal/store"
	"github.com/mindmorph/mindmorph/internal/timers"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
)

// Options holds the dependencies of the program. Store may be nil, in
// which case nothing is persisted.
type Options struct {
	Store  *store.Store
	Config *config.Config
	Logger *zap.Logger
	// Banks defaults to the embedded question banks.
	Banks *quiz.Banks
	// Splash shows the intro screen before restoring the last page.
	Splash bool
}

type scoreTickMsg struct{ gen uint64 }

type clockTickMsg struct{ gen uint64 }

type autosaveTickMsg struct{}

// repos groups the persistence interfaces; any of them may be nil.
type repos struct {
	focus     store.FocusRepo
	user      store.UserRepo
	timer     store.TimerRepo
	analytics store.AnalyticsRepo
	quiz      store.QuizRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	nav      *router.Navigator
	tracker  *focus.Tracker
	pausable *focus.PausableTracker
	dash     *dashboard.Dashboard
	banks    *quiz.Banks
	registry *timers.Registry
	repos    repos
	cfg      *config.Config
	logger   *zap.Logger
	now      func() time.Time

	resume router.Route
	splash bool

	width  int
	height int
}

// newAppModel builds the model and restores persisted state.
func newAppModel(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var r repos
	if opts.Store != nil {
		r = repos{
			focus:     opts.Store.FocusRepo(),
			user:      opts.Store.UserRepo(),
			timer:     opts.Store.TimerRepo(),
			analytics: opts.Store.AnalyticsRepo(),
			quiz:      opts.Store.QuizRepo(),
		}
	}

	m := AppModel{
		registry: timers.NewRegistry(),
		repos:    r,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		splash:   opts.Splash,
		banks:    opts.Banks,
	}

	if m.banks == nil {
		m.banks = quiz.MustLoadBanks()
	}

	navOpts := []router.NavOption{router.WithNavLogger(logger.Named("nav"))}
	if r.analytics != nil {
		navOpts = append(navOpts, router.WithPageViews(r.analytics))
	}
	m.nav = router.NewNavigator(navOpts...)

	seed := cfg.Focus.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	trackerOpts := []focus.Option{
		focus.WithPerturber(focus.NewRandomWalk(seed, cfg.Focus.Spread)),
		focus.WithLogger(logger.Named("focus")),
	}
	if r.focus != nil {
		trackerOpts = append(trackerOpts, focus.WithRepo(r.focus))
	}
	if r.analytics != nil {
		nav := m.nav
		trackerOpts = append(trackerOpts, focus.WithAnalytics(r.analytics, func() string {
			return string(nav.Current())
		}))
	}
	m.tracker = focus.New(trackerOpts...)
	m.tracker.Load(context.Background(), m.now())
	m.pausable = m.tracker.Pausable(m.now)

	m.dash = dashboard.New(m.tracker.State().Score, m.banks)
	m.tracker.Subscribe(m.dash.Observe)

	homeScreen := home.New(m.dash, m.tracker, r.quiz, r.analytics, logger)
	m.router = router.New(homeScreen).WithNavigator(m.nav, m.routeScreen)

	m.resume = m.lastPage()
	return m
}

// routeScreen builds the page for a route.
func (m AppModel) routeScreen(route router.Route) screen.Screen {
	subject := quiz.Subject(route)
	bank, err := m.banks.Get(subject)
	if err != nil {
		if route.Valid() {
			m.logger.Error("load question bank", zap.String("subject", string(subject)), zap.Error(err))
		}
		return notfound.New()
	}

	var extras []quizscreen.Extra
	switch route {
	case router.RouteEnglish:
		extras = append(extras, quizscreen.Extra{Key: "v", Label: "Vocabulary", Open: func() screen.Screen {
			return vocab.New(nil)
		}})
	case router.RouteLifeSkills:
		extras = append(extras, quizscreen.Extra{Key: "t", Label: "Focus timer", Open: func() screen.Screen {
			return timer.New(m.repos.timer, m.registry, m.logger.Named("timer"), m.cfg.Timer.DefaultMinutes)
		}})
	}
	return quizscreen.New(route, bank, m.repos.quiz, m.logger.Named("quiz"), extras...)
}

// lastPage reads the page saved on the previous exit.
func (m AppModel) lastPage() router.Route {
	if m.repos.user == nil {
		return router.RouteHome
	}
	data, err := m.repos.user.LoadUser(context.Background())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return router.RouteHome
	case err != nil:
		m.logger.Warn("discarding unreadable user data", zap.Error(err))
		return router.RouteHome
	}
	return router.ParseRoute(data.CurrentPage)
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.autosaveTick()}
	switch {
	case m.splash:
		cmds = append(cmds, m.router.Push(welcome.New(m.resume)))
	case m.resume.Valid() && m.resume != router.RouteHome:
		cmds = append(cmds, router.Navigate(m.resume))
	case m.resume == router.RouteNotFound:
		cmds = append(cmds, m.router.Show(m.resume))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.BlurMsg:
		m.registry.PauseAll()
		m.logger.Debug("terminal lost focus, timers paused")
		return m, nil

	case tea.FocusMsg:
		m.registry.ResumeAll()
		m.logger.Debug("terminal regained focus, timers resumed")
		return m, tea.Batch(m.trackerTicks(), m.router.Broadcast(screen.ResumedMsg{}))

	case scoreTickMsg:
		if msg.gen != m.tracker.Generation() {
			return m, nil
		}
		if _, ok := m.tracker.Tick(); !ok {
			return m, nil
		}
		return m, m.scoreTick()

	case clockTickMsg:
		if msg.gen != m.tracker.Generation() {
			return m, nil
		}
		if _, ok := m.tracker.ClockTick(); !ok {
			return m, nil
		}
		return m, m.clockTick()

	case autosaveTickMsg:
		if err := m.tracker.Autosave(context.Background(), m.now()); err != nil {
			m.logger.Warn("autosave focus data", zap.Error(err))
		}
		return m, m.autosaveTick()

	case screen.TrackerChangedMsg:
		return m, m.syncTracker()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m, m.updateRouter(msg)
}

// handleKey applies the global key bindings. Screens with a focused text
// field only give up ctrl+c.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit, true
	}
	if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
		return nil, false
	}

	switch key {
	case "esc":
		if rs, ok := m.router.Active().(router.RouteScreen); ok {
			if rs.Route() == router.RouteHome {
				return nil, true
			}
			return router.Navigate(router.RouteHome), true
		}
		if m.router.Depth() > 1 {
			return m.updateRouter(router.PopScreenMsg{}), true
		}
		return nil, true
	case "backspace":
		return m.updateRouter(router.BackMsg{}), true
	}

	if route, ok := router.ShortcutRoute(key); ok {
		return router.Navigate(route), true
	}
	return nil, false
}

// updateRouter forwards msg and tells a newly exposed screen it is on top.
func (m AppModel) updateRouter(msg tea.Msg) tea.Cmd {
	before := m.router.Active()
	cmd := m.router.Update(msg)
	if m.router.Active() != before {
		cmd = tea.Batch(cmd, m.router.Update(screen.ActivatedMsg{}))
	}
	return cmd
}

// syncTracker keeps the registry and the tick chains in line with the
// tracker after a screen changed it.
func (m AppModel) syncTracker() tea.Cmd {
	st := m.tracker.State()
	if st.Active && !st.Paused {
		m.registry.Add(m.pausable)
	} else {
		m.registry.Remove(m.pausable)
	}
	return m.trackerTicks()
}

func (m AppModel) trackerTicks() tea.Cmd {
	if !m.tracker.Ticking() {
		return nil
	}
	return tea.Batch(m.scoreTick(), m.clockTick())
}

func (m AppModel) scoreTick() tea.Cmd {
	gen := m.tracker.Generation()
	return tea.Tick(m.cfg.Focus.ScoreInterval, func(time.Time) tea.Msg {
		return scoreTickMsg{gen: gen}
	})
}

func (m AppModel) clockTick() tea.Cmd {
	gen := m.tracker.Generation()
	return tea.Tick(m.cfg.Focus.ClockInterval, func(time.Time) tea.Msg {
		return clockTickMsg{gen: gen}
	})
}

func (m AppModel) autosaveTick() tea.Cmd {
	return tea.Tick(m.cfg.Focus.AutosaveInterval, func(time.Time) tea.Msg {
		return autosaveTickMsg{}
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.ReportFocus = true

	route := m.router.Route()
	v.WindowTitle = router.Title(route)

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	crumbs := router.Breadcrumbs(route)
	if active := m.router.Active(); active != nil {
		if _, isRoute := active.(router.RouteScreen); !isRoute && active.Title() != "" && m.router.Depth() > 1 {
			crumbs = append(crumbs, active.Title())
		}
	}

	st := m.tracker.State()
	header := layout.RenderHeader(crumbs, layout.Status{
		Score:        st.Score,
		Pattern:      string(st.Pattern),
		TodayMinutes: st.TodaySecs / 60,
		Focusing:     st.Active,
		Paused:       st.Paused,
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Pages"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// shutdown ends a running session and saves the page the user was on.
func (m AppModel) shutdown(ctx context.Context) {
	m.router.CloseAll()

	now := m.now()
	if _, stopped := m.tracker.Stop(ctx, now); !stopped {
		if err := m.tracker.Save(ctx, now); err != nil {
			m.logger.Error("save focus data", zap.Error(err))
		}
	}

	if m.repos.user == nil {
		return
	}
	st := m.tracker.State()
	err := m.repos.user.SaveUser(ctx, &store.UserData{
		CurrentPage: string(m.router.Route()),
		FocusTime:   st.TotalSecs,
		LastVisit:   now,
	})
	if err != nil {
		m.logger.Error("save user data", zap.Error(err))
	}
}

// Run starts the Bubble Tea program and persists state when it exits.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.shutdown(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
