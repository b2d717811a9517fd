package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const brainArt = `    ╭─────────╮
  ╭─┤ ◉     ◉ ├─╮
  │ ╰────┬────╯ │
  ╰──────┴──────╯`

// pulse frames cycle around the brain while the intro plays
var pulseFrames = []string{"·", "•", "●", "•"}

type tickMsg struct {
	screen *WelcomeScreen
}

func (m tickMsg) Target() screen.Screen { return m.screen }

// WelcomeScreen shows a short intro on top of the home screen, then opens
// the page the user was on last time.
type WelcomeScreen struct {
	resume       router.Route
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that continues to resume when dismissed.
func New(resume router.Route) *WelcomeScreen {
	return &WelcomeScreen{resume: resume}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.tick()
}

func (w *WelcomeScreen) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{screen: w}
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, w.tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	if w.resume.Valid() {
		return router.Navigate(w.resume)
	}
	// An unknown page is shown without entering the history.
	resume := w.resume
	return func() tea.Msg {
		return router.ShowMsg{Route: resume}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(brainArt)

	// Phase 2+: pulses beside the brain
	if w.elapsed >= phase1End {
		pulse := pulseFrames[w.tickCount%len(pulseFrames)]
		left := lipgloss.NewStyle().Foreground(theme.Secondary).Render(pulse)
		right := lipgloss.NewStyle().Foreground(theme.Accent).Render(pulse)

		lines := strings.Split(rendered, "\n")
		for i := range lines {
			if i%2 == 1 {
				lines[i] = left + "  " + lines[i] + "  " + right
			} else {
				lines[i] = "   " + lines[i] + "   "
			}
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner, tagline and hint
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learning that adapts to your focus")
		sections = append(sections, tagline)

		hint := "press any key to continue"
		if w.resume != router.RouteHome && w.resume.Valid() {
			hint = "press any key to return to " + w.resume.Name()
		}
		sections = append(sections, "", theme.Hint.Render(hint))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
