// Package timer is the life-skills focus timer screen.
package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/countdown"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/store"
	"github.com/mindmorph/mindmorph/internal/timers"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

type tickMsg struct {
	screen *TimerScreen
	gen    uint64
}

func (m tickMsg) Target() screen.Screen { return m.screen }

// TimerScreen drives a countdown.Timer. While running, the timer is held
// in the registry so it pauses with the terminal focus.
type TimerScreen struct {
	timer    *countdown.Timer
	repo     store.TimerRepo
	registry *timers.Registry
	logger   *zap.Logger

	input   components.TextInput
	editing bool
	done    bool
	notice  string
}

var _ screen.Screen = (*TimerScreen)(nil)
var _ screen.KeyHintProvider = (*TimerScreen)(nil)
var _ screen.InputCapturer = (*TimerScreen)(nil)
var _ screen.Closer = (*TimerScreen)(nil)

// New creates the screen with the persisted length, or defaultMinutes
// when none is stored. repo and registry may be nil.
func New(repo store.TimerRepo, registry *timers.Registry, logger *zap.Logger, defaultMinutes int) *TimerScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := countdown.New(defaultMinutes)
	if repo != nil {
		var err error
		t, err = countdown.LoadOr(context.Background(), repo, defaultMinutes)
		if err != nil {
			logger.Warn("load timer length", zap.Error(err))
		}
	}
	if registry == nil {
		registry = timers.NewRegistry()
	}
	return &TimerScreen{
		timer:    t,
		repo:     repo,
		registry: registry,
		logger:   logger,
		input:    components.NewTextInput("minutes", true, 3),
	}
}

func (s *TimerScreen) Init() tea.Cmd {
	return nil
}

func (s *TimerScreen) Title() string {
	return "Focus Timer"
}

// CapturesInput is true while the length is being edited.
func (s *TimerScreen) CapturesInput() bool {
	return s.editing
}

// Timer exposes the countdown.
func (s *TimerScreen) Timer() *countdown.Timer {
	return s.timer
}

// Close stops the countdown and releases it from the registry.
func (s *TimerScreen) Close() {
	s.timer.Stop()
	s.registry.Remove(s.timer)
}

func (s *TimerScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Set"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	start := "Start"
	if s.timer.Running() {
		start = "Pause"
	}
	return []layout.KeyHint{
		{Key: "Space", Description: start},
		{Key: "R", Description: "Reset"},
		{Key: "E", Description: "Set minutes"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TimerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.onTick(msg)

	case screen.ResumedMsg:
		if s.timer.Ticking() {
			return s, s.tick()
		}
		return s, nil

	case tea.KeyMsg:
		if s.editing {
			return s, s.handleEditKey(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *TimerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "space", " ", "s":
		if s.timer.Running() {
			s.timer.Stop()
			s.registry.Remove(s.timer)
			return nil
		}
		if !s.timer.Start() {
			return nil
		}
		s.done = false
		s.notice = ""
		s.registry.Add(s.timer)
		s.logger.Debug("countdown started", zap.String("remaining", s.timer.String()))
		return s.tick()
	case "r":
		s.timer.Reset(s.timer.Length())
		s.registry.Remove(s.timer)
		s.done = false
		s.notice = ""
	case "e":
		s.editing = true
		s.input.SetValue(fmt.Sprint(s.timer.Length()))
	case "esc":
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *TimerScreen) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.editing = false
		return nil
	case "enter":
		n, err := s.input.NumericValue()
		if err != nil {
			n = 0
		}
		applied := s.timer.Reset(n)
		s.registry.Remove(s.timer)
		s.editing = false
		s.done = false
		s.notice = ""
		if applied != n {
			s.notice = fmt.Sprintf("Using %d minutes.", applied)
		}
		if s.repo != nil {
			if err := s.timer.Save(context.Background(), s.repo); err != nil {
				s.logger.Warn("save timer length", zap.Error(err))
			}
		}
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *TimerScreen) onTick(msg tickMsg) tea.Cmd {
	if msg.gen != s.timer.Generation() || !s.timer.Ticking() {
		return nil
	}
	if s.timer.TickSecond() {
		s.registry.Remove(s.timer)
		s.done = true
		s.notice = "Time's up! Take a short break."
		s.logger.Info("countdown finished", zap.Int("minutes", s.timer.Length()))
		return nil
	}
	return s.tick()
}

func (s *TimerScreen) tick() tea.Cmd {
	gen := s.timer.Generation()
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{screen: s, gen: gen}
	})
}

func (s *TimerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	clockColor := theme.Text
	switch {
	case s.done:
		clockColor = theme.Success
	case s.timer.Ticking():
		clockColor = theme.Primary
	case s.timer.Running():
		clockColor = theme.Accent
	}
	clock := lipgloss.NewStyle().
		Bold(true).
		Foreground(clockColor).
		Width(cw - 6).
		Align(lipgloss.Center).
		Render(s.timer.String())

	state := "Ready"
	switch {
	case s.timer.Ticking():
		state = "Focusing"
	case s.timer.Running():
		state = "Paused (terminal in background)"
	case s.done:
		state = "Done"
	}

	mins, secs := s.timer.Remaining()
	left := mins*60 + secs
	total := s.timer.Length() * 60
	bar := components.NewProgressBar("", 1-float64(left)/float64(total), false, cw-6)
	bar.Fill = theme.Primary

	body := clock + "\n\n" + bar.View() + "\n" + theme.Muted.Render(state)

	sections := []string{
		theme.Title.Width(cw).Render("Pomodoro"),
		components.Card(fmt.Sprintf("%d minute session", s.timer.Length()), body, cw),
	}
	if s.editing {
		sections = append(sections, "Minutes: "+s.input.View())
	}
	if s.notice != "" {
		sections = append(sections, theme.Correct.Render(s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}
