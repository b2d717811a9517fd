package router

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/mindmorph/mindmorph/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg requests a route change through the navigator.
type NavigateMsg struct {
	Route Route
}

// ShowMsg rebuilds the stack for a route without recording navigation.
type ShowMsg struct {
	Route Route
}

// BackMsg requests navigation to the previous route.
type BackMsg struct{}

// Navigate returns a command that emits NavigateMsg.
func Navigate(r Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// RouteScreen is implemented by screens that render a route. The router
// keeps at most one of them above the home screen.
type RouteScreen interface {
	screen.Screen
	Route() Route
}

// ScreenFactory builds the screen for a route other than home.
type ScreenFactory func(Route) screen.Screen

// Router manages a stack of screens. The bottom of the stack is the home
// screen; route pages sit directly above it and overlays above those.
type Router struct {
	stack   []screen.Screen
	nav     *Navigator
	factory ScreenFactory
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// WithNavigator enables NavigateMsg and BackMsg handling.
func (r *Router) WithNavigator(nav *Navigator, factory ScreenFactory) *Router {
	r.nav = nav
	r.factory = factory
	return r
}

// Navigator returns the attached navigator, or nil.
func (r *Router) Navigator() *Navigator {
	return r.nav
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	closeScreen(r.stack[len(r.stack)-1])
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen and calls the new screen's Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	closeScreen(r.stack[len(r.stack)-1])
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot drops everything above the bottom screen.
func (r *Router) PopToRoot() {
	for i := len(r.stack) - 1; i > 0; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = r.stack[:1]
}

// CloseAll closes every screen on the stack, the root included. Used on
// exit.
func (r *Router) CloseAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Route returns the route of the topmost route page, or home.
func (r *Router) Route() Route {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if rs, ok := r.stack[i].(RouteScreen); ok {
			return rs.Route()
		}
	}
	return RouteHome
}

// Show rebuilds the stack for route without touching the navigator. Used
// for the not-found page and for restoring the last visited page.
func (r *Router) Show(route Route) tea.Cmd {
	r.PopToRoot()
	if route == RouteHome || r.factory == nil {
		return nil
	}
	return r.Push(r.factory(route))
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case NavigateMsg:
		return r.navigate(msg.Route)
	case ShowMsg:
		return r.Show(msg.Route)
	case screen.TargetedMsg:
		return r.deliver(msg)
	case BackMsg:
		if r.nav == nil {
			return nil
		}
		route, ok := r.nav.Back(context.Background())
		if !ok {
			return nil
		}
		return r.Show(route)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) deliver(msg screen.TargetedMsg) tea.Cmd {
	target := msg.Target()
	for i, s := range r.stack {
		if s == target {
			updated, cmd := s.Update(msg)
			r.stack[i] = updated
			return cmd
		}
	}
	return nil
}

func (r *Router) navigate(route Route) tea.Cmd {
	if r.nav == nil {
		return nil
	}
	if err := r.nav.Navigate(context.Background(), route); err != nil {
		return nil
	}
	return r.Show(route)
}

// Broadcast delivers msg to every screen on the stack, bottom first.
func (r *Router) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i, s := range r.stack {
		updated, cmd := s.Update(msg)
		r.stack[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
