// Package focus implements the simulated focus tracker: a random-walk
// focus score with attention labels, and the bookkeeping of focused time
// across sessions and days.
//
// The tracker is not safe for concurrent use. Callers drive it from a
// single goroutine (the Bubble Tea update loop or the headless command
// loop) and schedule Tick and ClockTick themselves at ScoreInterval and
// ClockInterval.
package focus

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/store"
)

// Default cadences.
const (
	ScoreInterval    = 2 * time.Second
	ClockInterval    = time.Second
	AutosaveInterval = 30 * time.Second
)

// Analytics event names.
const (
	EventStart  = "focus_start"
	EventStop   = "focus_stop"
	EventPause  = "focus_pause"
	EventResume = "focus_resume"
)

// State is a read-only snapshot of the tracker.
type State struct {
	Active    bool
	Paused    bool
	Score     float64
	Pattern   Pattern
	ClockSecs int
	TodaySecs int
	TotalSecs int
}

// Tracker owns the focus score, the running session and the ledger.
type Tracker struct {
	repo      store.FocusRepo
	analytics store.AnalyticsRepo
	page      func() string
	perturb   Perturber
	logger    *zap.Logger

	ledger  *Ledger
	score   float64
	pattern Pattern

	active    bool
	paused    bool
	start     time.Time
	clockSecs int

	// gen changes whenever ticking starts or stops so callers can drop
	// ticks scheduled for an earlier run.
	gen uint64

	subs    map[int]func(float64)
	nextSub int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithRepo persists the ledger through repo.
func WithRepo(repo store.FocusRepo) Option {
	return func(t *Tracker) { t.repo = repo }
}

// WithAnalytics records start/stop/pause/resume events. page reports the
// page the user is on when the event fires; it may be nil.
func WithAnalytics(repo store.AnalyticsRepo, page func() string) Option {
	return func(t *Tracker) {
		t.analytics = repo
		t.page = page
	}
}

// WithPerturber replaces the default random walk.
func WithPerturber(p Perturber) Option {
	return func(t *Tracker) { t.perturb = p }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithInitialScore overrides InitialScore.
func WithInitialScore(score float64) Option {
	return func(t *Tracker) { t.score = Clamp(score) }
}

// New creates a tracker with an empty ledger. Call Load to restore
// persisted state.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		score:  InitialScore,
		ledger: &Ledger{},
		subs:   make(map[int]func(float64)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.perturb == nil {
		t.perturb = NewRandomWalk(uint64(time.Now().UnixNano()), Spread)
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	t.pattern = Classify(t.score)
	return t
}

// Load restores the ledger from the repo. Missing or corrupt data leaves
// the ledger empty; corruption is logged, never returned.
func (t *Tracker) Load(ctx context.Context, now time.Time) {
	if t.repo == nil {
		return
	}
	data, err := t.repo.LoadFocus(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		data = nil
	case err != nil:
		t.logger.Warn("discarding unreadable focus data", zap.Error(err))
		data = nil
	}
	t.ledger = RestoreLedger(data, now)
}

// Start begins a session at now. It reports false if one is running.
func (t *Tracker) Start(ctx context.Context, now time.Time) bool {
	if t.active {
		return false
	}
	t.active = true
	t.paused = false
	t.start = now
	t.clockSecs = 0
	t.gen++
	t.track(ctx, EventStart, now, nil)
	t.logger.Info("focus session started")
	return true
}

// Stop ends the running session at now, records it and persists the
// ledger. It reports false if no session was running. A persistence
// failure is logged and does not undo the stop.
func (t *Tracker) Stop(ctx context.Context, now time.Time) (Session, bool) {
	if !t.active {
		return Session{}, false
	}

	sess := t.ledger.Record(t.start, t.Elapsed(now))

	t.active = false
	t.paused = false
	t.start = time.Time{}
	t.clockSecs = 0
	t.gen++

	if err := t.Save(ctx, now); err != nil {
		t.logger.Error("save focus data", zap.Error(err))
	}
	t.track(ctx, EventStop, now, map[string]any{
		"duration": sess.DurationSecs,
		"minutes":  sess.Minutes,
	})
	t.logger.Info("focus session stopped",
		zap.Int("duration_secs", sess.DurationSecs),
		zap.Int("minutes", sess.Minutes),
	)
	return sess, true
}

// Pause suspends ticking at now. Totals and score are untouched.
func (t *Tracker) Pause(ctx context.Context, now time.Time) {
	if !t.active || t.paused {
		return
	}
	t.paused = true
	t.gen++
	t.track(ctx, EventPause, now, nil)
}

// Resume restarts ticking after Pause.
func (t *Tracker) Resume(ctx context.Context, now time.Time) {
	if !t.active || !t.paused {
		return
	}
	t.paused = false
	t.gen++
	t.track(ctx, EventResume, now, nil)
}

// Ticking reports whether ticks are currently applied.
func (t *Tracker) Ticking() bool {
	return t.active && !t.paused
}

// Generation identifies the current run of ticks. A tick scheduled under
// an older generation must be dropped.
func (t *Tracker) Generation() uint64 {
	return t.gen
}

// Tick applies one perturbation, reclassifies and notifies subscribers.
// It returns the new score and false when ticks are not being applied.
func (t *Tracker) Tick() (float64, bool) {
	if !t.Ticking() {
		return t.score, false
	}
	t.score = Clamp(t.score + t.perturb.Perturb())
	t.pattern = Classify(t.score)
	for _, fn := range t.subs {
		fn(t.score)
	}
	return t.score, true
}

// ClockTick advances the session clock by one second.
func (t *Tracker) ClockTick() (int, bool) {
	if !t.Ticking() {
		return t.clockSecs, false
	}
	t.clockSecs++
	return t.clockSecs, true
}

// Subscribe registers fn to receive every new score. The returned
// function removes the subscription.
func (t *Tracker) Subscribe(fn func(score float64)) func() {
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() { delete(t.subs, id) }
}

// Elapsed returns the whole seconds since the session started, or 0.
func (t *Tracker) Elapsed(now time.Time) int {
	if !t.active {
		return 0
	}
	return max(0, int(now.Sub(t.start)/time.Second))
}

// Autosave persists the ledger while a session is running.
func (t *Tracker) Autosave(ctx context.Context, now time.Time) error {
	if !t.active {
		return nil
	}
	return t.Save(ctx, now)
}

// Save persists the ledger unconditionally.
func (t *Tracker) Save(ctx context.Context, now time.Time) error {
	if t.repo == nil {
		return nil
	}
	return t.repo.SaveFocus(ctx, t.ledger.Snapshot(now))
}

// State returns a snapshot of the tracker.
func (t *Tracker) State() State {
	return State{
		Active:    t.active,
		Paused:    t.paused,
		Score:     t.score,
		Pattern:   t.pattern,
		ClockSecs: t.clockSecs,
		TodaySecs: t.ledger.TodaySecs,
		TotalSecs: t.ledger.TotalSecs,
	}
}

// Stats summarizes the ledger as of now.
func (t *Tracker) Stats(now time.Time) Stats {
	return t.ledger.Stats(now)
}

// Weekly returns the trailing seven days ending today.
func (t *Tracker) Weekly(now time.Time) []DayTotal {
	return t.ledger.Weekly(now)
}

// Sessions returns a copy of the session log, oldest first.
func (t *Tracker) Sessions() []Session {
	return append([]Session(nil), t.ledger.Sessions...)
}

// Pausable adapts the tracker to a timers.Registry, stamping pause and
// resume with now. Keep the returned value: the registry compares entries
// by identity.
func (t *Tracker) Pausable(now func() time.Time) *PausableTracker {
	return &PausableTracker{tracker: t, now: now}
}

// PausableTracker is the registry view of a Tracker.
type PausableTracker struct {
	tracker *Tracker
	now     func() time.Time
}

func (p *PausableTracker) Pause()  { p.tracker.Pause(context.Background(), p.now()) }
func (p *PausableTracker) Resume() { p.tracker.Resume(context.Background(), p.now()) }

func (t *Tracker) track(ctx context.Context, event string, now time.Time, data map[string]any) {
	if t.analytics == nil {
		return
	}
	page := ""
	if t.page != nil {
		page = t.page()
	}
	err := t.analytics.AppendFocusEvent(ctx, store.FocusEvent{
		Event:       event,
		Timestamp:   now,
		CurrentPage: page,
		Data:        data,
	})
	if err != nil {
		t.logger.Warn("record focus event", zap.String("event", event), zap.Error(err))
	}
}
