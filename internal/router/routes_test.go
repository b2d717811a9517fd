package router

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmorph/mindmorph/internal/store"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"", RouteHome},
		{"#", RouteHome},
		{"/", RouteHome},
		{"#home", RouteHome},
		{"index", RouteHome},
		{"#math", RouteMath},
		{"/science", RouteScience},
		{"English", RouteEnglish},
		{"life-skills/", RouteLifeSkills},
		{"history", RouteNotFound},
		{"not-found", RouteNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRoute(tt.in), "ParseRoute(%q)", tt.in)
	}
}

func TestTitleAndBreadcrumbs(t *testing.T) {
	assert.Equal(t, "Mind Morph Learning - Home", Title(RouteHome))
	assert.Equal(t, "Mind Morph Learning - Mathematics", Title(RouteMath))
	assert.Equal(t, "Mind Morph Learning - Life Skills", Title(RouteLifeSkills))

	assert.Equal(t, []string{"Home"}, Breadcrumbs(RouteHome))
	assert.Equal(t, []string{"Home", "Science"}, Breadcrumbs(RouteScience))
}

func TestShortcutRoute(t *testing.T) {
	want := map[string]Route{"1": RouteHome, "2": RouteMath, "3": RouteScience, "4": RouteEnglish}
	for key, route := range want {
		got, ok := ShortcutRoute(key)
		assert.True(t, ok, key)
		assert.Equal(t, route, got, key)
	}
	_, ok := ShortcutRoute("5")
	assert.False(t, ok)
}

func TestNavigateInvalidIsNoop(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.Navigate(context.Background(), RouteMath))

	err := n.Navigate(context.Background(), "calculus")
	assert.ErrorIs(t, err, ErrInvalidRoute)
	assert.Equal(t, RouteMath, n.Current())
	assert.Equal(t, RouteHome, n.Previous())
	assert.Equal(t, []Route{RouteHome, RouteMath}, n.History())

	assert.ErrorIs(t, n.Navigate(context.Background(), RouteNotFound), ErrInvalidRoute)
}

func TestHistoryCapped(t *testing.T) {
	n := NewNavigator()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		require.NoError(t, n.Navigate(ctx, Routes[i%len(Routes)]))
	}
	h := n.History()
	require.Len(t, h, MaxHistory)
	assert.Equal(t, Routes[24%len(Routes)], h[len(h)-1])
}

func TestBackWithoutPrevious(t *testing.T) {
	n := NewNavigator()
	route, ok := n.Back(context.Background())
	assert.False(t, ok)
	assert.Equal(t, RouteHome, route)
}

func TestBackTogglesBetweenPages(t *testing.T) {
	n := NewNavigator()
	ctx := context.Background()
	require.NoError(t, n.Navigate(ctx, RouteMath))
	require.NoError(t, n.Navigate(ctx, RouteScience))

	route, ok := n.Back(ctx)
	require.True(t, ok)
	assert.Equal(t, RouteMath, route)
	assert.Equal(t, RouteScience, n.Previous())
}

func TestNavigateCountsPageViews(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "nav.db"))
	require.NoError(t, err)
	defer s.Close()

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	n := NewNavigator(WithPageViews(s.AnalyticsRepo()), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, n.Navigate(ctx, RouteMath))
	require.NoError(t, n.Navigate(ctx, RouteHome))
	require.NoError(t, n.Navigate(ctx, RouteMath))
	_ = n.Navigate(ctx, "bogus")

	views, err := s.AnalyticsRepo().PageViews(ctx)
	require.NoError(t, err)
	day := views["2026-03-04"]
	assert.Equal(t, 2, day["math"])
	assert.Equal(t, 1, day["home"])
	assert.Len(t, day, 2, fmt.Sprint(day))
}
