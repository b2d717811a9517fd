package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/store"
)

// Route names a page of the application.
type Route string

const (
	RouteHome       Route = "home"
	RouteMath       Route = "math"
	RouteScience    Route = "science"
	RouteEnglish    Route = "english"
	RouteLifeSkills Route = "life-skills"
	RouteNotFound   Route = "not-found"
)

// MaxHistory caps the navigation history; older entries are dropped.
const MaxHistory = 10

// ErrInvalidRoute is returned when navigating to an unknown page.
var ErrInvalidRoute = errors.New("invalid route")

var pageNames = map[Route]string{
	RouteHome:       "Home",
	RouteMath:       "Mathematics",
	RouteScience:    "Science",
	RouteEnglish:    "English",
	RouteLifeSkills: "Life Skills",
	RouteNotFound:   "Page Not Found",
}

// Routes lists the navigable routes in menu order.
var Routes = []Route{RouteHome, RouteMath, RouteScience, RouteEnglish, RouteLifeSkills}

// Valid reports whether r is a navigable route.
func (r Route) Valid() bool {
	_, ok := pageNames[r]
	return ok && r != RouteNotFound
}

// Name returns the display name of the route.
func (r Route) Name() string {
	if name, ok := pageNames[r]; ok {
		return name
	}
	return pageNames[RouteNotFound]
}

// ParseRoute resolves "#math", "/math", "math" and "" (home). Anything
// unknown resolves to RouteNotFound.
func ParseRoute(s string) Route {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "#/")
	s = strings.TrimSuffix(s, "/")
	if s == "" || s == "index" {
		return RouteHome
	}
	r := Route(s)
	if r.Valid() {
		return r
	}
	return RouteNotFound
}

// Title returns the window title for r.
func Title(r Route) string {
	return "Mind Morph Learning - " + r.Name()
}

// Breadcrumbs returns the trail from home to r.
func Breadcrumbs(r Route) []string {
	if r == RouteHome {
		return []string{RouteHome.Name()}
	}
	return []string{RouteHome.Name(), r.Name()}
}

// ShortcutRoute maps the number keys 1-4 to their routes.
func ShortcutRoute(key string) (Route, bool) {
	switch key {
	case "1":
		return RouteHome, true
	case "2":
		return RouteMath, true
	case "3":
		return RouteScience, true
	case "4":
		return RouteEnglish, true
	}
	return "", false
}

// Navigator tracks the current page, the previous page and a short
// history, and counts page views per day.
type Navigator struct {
	current  Route
	previous Route
	history  []Route

	analytics store.AnalyticsRepo
	logger    *zap.Logger
	now       func() time.Time
}

// NavOption configures a Navigator.
type NavOption func(*Navigator)

// WithPageViews counts each navigation in repo.
func WithPageViews(repo store.AnalyticsRepo) NavOption {
	return func(n *Navigator) { n.analytics = repo }
}

// WithNavLogger sets the logger.
func WithNavLogger(l *zap.Logger) NavOption {
	return func(n *Navigator) { n.logger = l }
}

// WithClock overrides time.Now for the analytics day key.
func WithClock(now func() time.Time) NavOption {
	return func(n *Navigator) { n.now = now }
}

// NewNavigator starts at home.
func NewNavigator(opts ...NavOption) *Navigator {
	n := &Navigator{
		current: RouteHome,
		history: []Route{RouteHome},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Navigate moves to r. An unknown route is logged and leaves the
// navigator untouched.
func (n *Navigator) Navigate(ctx context.Context, r Route) error {
	if !r.Valid() {
		n.logger.Warn("ignoring navigation to invalid route", zap.String("route", string(r)))
		return fmt.Errorf("%w: %q", ErrInvalidRoute, r)
	}

	n.previous = n.current
	n.current = r
	n.history = append(n.history, r)
	if len(n.history) > MaxHistory {
		n.history = n.history[len(n.history)-MaxHistory:]
	}

	if n.analytics != nil {
		day := n.now().Format(time.DateOnly)
		if err := n.analytics.IncrementPageView(ctx, day, string(r)); err != nil {
			n.logger.Warn("record page view", zap.String("route", string(r)), zap.Error(err))
		}
	}
	n.logger.Debug("navigated", zap.String("from", string(n.previous)), zap.String("to", string(r)))
	return nil
}

// Back navigates to the previous page. It reports false when there is
// none.
func (n *Navigator) Back(ctx context.Context) (Route, bool) {
	if n.previous == "" {
		return n.current, false
	}
	target := n.previous
	if err := n.Navigate(ctx, target); err != nil {
		return n.current, false
	}
	return target, true
}

// Current returns the current route.
func (n *Navigator) Current() Route { return n.current }

// Previous returns the route before the current one, or "".
func (n *Navigator) Previous() Route { return n.previous }

// History returns a copy of the recent routes, oldest first.
func (n *Navigator) History() []Route {
	return append([]Route(nil), n.history...)
}
