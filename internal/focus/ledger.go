package focus

import (
	"time"

	"github.com/google/uuid"

	"github.com/mindmorph/mindmorph/internal/store"
)

// MaxSessions is the capacity of the session log.
const MaxSessions = 100

// Session is one finished focus interval. Immutable once recorded.
type Session struct {
	ID           string
	Start        time.Time
	DurationSecs int
	Minutes      int
}

// End returns the wall-clock end of the session.
func (s Session) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationSecs) * time.Second)
}

// Ledger holds the accumulated focus time and the bounded session log.
type Ledger struct {
	TodaySecs int
	TotalSecs int
	Sessions  []Session
}

// RestoreLedger rebuilds a ledger from persisted data. When the last save
// fell on a different local calendar day than now, today's total starts
// over while the all-time total and the log are kept. A nil data yields an
// empty ledger.
func RestoreLedger(data *store.FocusTrackerData, now time.Time) *Ledger {
	l := &Ledger{}
	if data == nil {
		return l
	}

	l.TotalSecs = max(0, data.TotalFocusTime)
	if sameDay(data.LastSave, now) {
		l.TodaySecs = max(0, data.TodayFocusTime)
	}

	for _, rec := range data.Sessions {
		l.Sessions = append(l.Sessions, Session{
			ID:           rec.ID,
			Start:        rec.Date,
			DurationSecs: rec.Duration,
			Minutes:      rec.Minutes,
		})
	}
	if n := len(l.Sessions); n > MaxSessions {
		l.Sessions = l.Sessions[n-MaxSessions:]
	}
	return l
}

// Record adds secs to both totals and appends a session, evicting the
// oldest entry once the log exceeds MaxSessions.
func (l *Ledger) Record(start time.Time, secs int) Session {
	secs = max(0, secs)
	s := Session{
		ID:           uuid.NewString(),
		Start:        start,
		DurationSecs: secs,
		Minutes:      secs / 60,
	}

	l.TodaySecs += secs
	l.TotalSecs += secs
	l.Sessions = append(l.Sessions, s)
	if len(l.Sessions) > MaxSessions {
		l.Sessions = append(l.Sessions[:0:0], l.Sessions[1:]...)
	}
	return s
}

// Snapshot converts the ledger into its persisted form stamped at now.
func (l *Ledger) Snapshot(now time.Time) *store.FocusTrackerData {
	recs := make([]store.SessionRecord, 0, len(l.Sessions))
	for _, s := range l.Sessions {
		recs = append(recs, store.SessionRecord{
			ID:        s.ID,
			Date:      s.Start,
			Duration:  s.DurationSecs,
			Minutes:   s.Minutes,
			Timestamp: s.End().UnixMilli(),
		})
	}
	return &store.FocusTrackerData{
		TotalFocusTime: l.TotalSecs,
		TodayFocusTime: l.TodaySecs,
		Sessions:       recs,
		LastSave:       now,
	}
}

// sameDay reports whether a and b fall on the same calendar day in b's
// location.
func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
