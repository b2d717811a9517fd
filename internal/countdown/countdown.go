// Package countdown implements the pomodoro-style countdown timer of the
// life-skills page.
package countdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindmorph/mindmorph/internal/store"
)

// DefaultMinutes is used when no valid length is configured.
const DefaultMinutes = 25

// MaxMinutes bounds a configured length.
const MaxMinutes = 999

// Timer counts down from a configured number of minutes. Not safe for
// concurrent use; the caller ticks it once per second.
type Timer struct {
	length  int
	minutes int
	seconds int
	running bool
	paused  bool
	gen     uint64
}

// New returns a stopped timer showing minutes:00. Invalid lengths fall
// back to DefaultMinutes.
func New(minutes int) *Timer {
	t := &Timer{}
	t.set(minutes)
	return t
}

// Load returns a timer with the persisted length, or DefaultMinutes when
// none is stored or the value is unreadable.
func Load(ctx context.Context, repo store.TimerRepo) (*Timer, error) {
	return LoadOr(ctx, repo, DefaultMinutes)
}

// LoadOr is Load with a configured fallback length.
func LoadOr(ctx context.Context, repo store.TimerRepo, fallback int) (*Timer, error) {
	n, err := repo.TimerMinutes(ctx)
	switch {
	case err == nil:
		return New(n), nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrCorrupt):
		return New(fallback), nil
	default:
		return New(fallback), fmt.Errorf("load timer minutes: %w", err)
	}
}

func (t *Timer) set(minutes int) {
	if minutes <= 0 || minutes > MaxMinutes {
		minutes = DefaultMinutes
	}
	t.length = minutes
	t.minutes = minutes
	t.seconds = 0
}

// Start runs the timer. It reports false if already running or at 0:00.
func (t *Timer) Start() bool {
	if t.running || (t.minutes == 0 && t.seconds == 0) {
		return false
	}
	t.running = true
	t.paused = false
	t.gen++
	return true
}

// Stop halts the timer, keeping the remaining time.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.paused = false
	t.gen++
}

// Pause suspends a running timer. Used when the terminal loses focus.
func (t *Timer) Pause() {
	if !t.running || t.paused {
		return
	}
	t.paused = true
	t.gen++
}

// Resume continues after Pause.
func (t *Timer) Resume() {
	if !t.running || !t.paused {
		return
	}
	t.paused = false
	t.gen++
}

// Reset stops the timer and sets a new length. Invalid minutes fall back
// to DefaultMinutes. The applied length is returned for persisting.
func (t *Timer) Reset(minutes int) int {
	t.Stop()
	t.set(minutes)
	return t.length
}

// Save persists the configured length.
func (t *Timer) Save(ctx context.Context, repo store.TimerRepo) error {
	return repo.SetTimerMinutes(ctx, t.length)
}

// TickSecond counts down one second. It returns true exactly once, on the
// tick that finds the timer at 0:00, and stops the timer.
func (t *Timer) TickSecond() (done bool) {
	if !t.Ticking() {
		return false
	}
	switch {
	case t.seconds > 0:
		t.seconds--
	case t.minutes > 0:
		t.minutes--
		t.seconds = 59
	default:
		t.Stop()
		return true
	}
	return false
}

// Ticking reports whether ticks are applied.
func (t *Timer) Ticking() bool { return t.running && !t.paused }

// Running reports whether the timer was started and not stopped.
func (t *Timer) Running() bool { return t.running }

// Generation identifies the current run of ticks.
func (t *Timer) Generation() uint64 { return t.gen }

// Remaining returns the minutes and seconds left.
func (t *Timer) Remaining() (int, int) { return t.minutes, t.seconds }

// Length returns the configured minutes.
func (t *Timer) Length() int { return t.length }

// String formats the remaining time as MM:SS.
func (t *Timer) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes, t.seconds)
}
