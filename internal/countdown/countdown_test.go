package countdown

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmorph/mindmorph/internal/store"
)

func TestNewFallsBack(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, 10},
		{0, DefaultMinutes},
		{-3, DefaultMinutes},
		{MaxMinutes + 1, DefaultMinutes},
	}
	for _, tt := range tests {
		if got := New(tt.in).Length(); got != tt.want {
			t.Errorf("New(%d).Length() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTickRollsOverMinutes(t *testing.T) {
	c := New(2)
	require.True(t, c.Start())

	c.TickSecond()
	m, s := c.Remaining()
	assert.Equal(t, 1, m)
	assert.Equal(t, 59, s)
	assert.Equal(t, "01:59", c.String())
}

func TestCompletion(t *testing.T) {
	c := New(1)
	c.Start()

	done := 0
	for i := 0; i < 60; i++ {
		if c.TickSecond() {
			done++
		}
	}
	assert.Equal(t, "00:00", c.String())
	assert.True(t, c.Running(), "still running until the tick that finds 0:00")

	assert.True(t, c.TickSecond())
	assert.False(t, c.Running())
	assert.False(t, c.TickSecond())
	assert.Equal(t, 0, done)

	assert.False(t, c.Start(), "cannot start at 0:00")
}

func TestPauseResume(t *testing.T) {
	c := New(5)
	c.Start()
	gen := c.Generation()

	c.Pause()
	assert.NotEqual(t, gen, c.Generation())
	assert.False(t, c.TickSecond())
	assert.Equal(t, "05:00", c.String())

	c.Resume()
	c.TickSecond()
	assert.Equal(t, "04:59", c.String())
}

func TestResetStopsAndApplies(t *testing.T) {
	c := New(5)
	c.Start()
	c.TickSecond()

	got := c.Reset(0)
	assert.Equal(t, DefaultMinutes, got)
	assert.False(t, c.Running())
	assert.Equal(t, "25:00", c.String())

	assert.Equal(t, 15, c.Reset(15))
	assert.Equal(t, "15:00", c.String())
}

func TestLoadAndSave(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "timer.db"))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()
	repo := s.TimerRepo()

	c, err := Load(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinutes, c.Length())

	c.Reset(12)
	require.NoError(t, c.Save(ctx, repo))

	again, err := Load(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 12, again.Length())

	require.NoError(t, s.KV().Set(ctx, store.KeyTimerMinutes, "twelve"))
	bad, err := Load(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinutes, bad.Length())
}

func TestLoadOrUsesFallback(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "timer.db"))
	require.NoError(t, err)
	defer s.Close()

	c, err := LoadOr(context.Background(), s.TimerRepo(), 40)
	require.NoError(t, err)
	assert.Equal(t, 40, c.Length())

	c, err = LoadOr(context.Background(), s.TimerRepo(), -3)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinutes, c.Length())
}
