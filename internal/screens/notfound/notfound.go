package notfound

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// NotFoundScreen is shown for an unknown route.
type NotFoundScreen struct{}

var _ screen.Screen = (*NotFoundScreen)(nil)
var _ router.RouteScreen = (*NotFoundScreen)(nil)

// New creates a new NotFoundScreen.
func New() *NotFoundScreen {
	return &NotFoundScreen{}
}

func (p *NotFoundScreen) Init() tea.Cmd {
	return nil
}

func (p *NotFoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return p, router.Navigate(router.RouteHome)
	}
	return p, nil
}

func (p *NotFoundScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Go home"}}
}

func (p *NotFoundScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ Page Not Found ╌╌\n\nThe page you're looking for doesn't exist.\nPress Enter to return home.")
}

func (p *NotFoundScreen) Title() string {
	return router.RouteNotFound.Name()
}

func (p *NotFoundScreen) Route() router.Route {
	return router.RouteNotFound
}
