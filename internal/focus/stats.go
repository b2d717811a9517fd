package focus

import "time"

// Stats summarizes the ledger for display.
type Stats struct {
	TodaySessions   int
	TodayMinutes    int
	AverageMinutes  int
	TotalMinutes    int
	AllTimeSessions int
}

// DayTotal is one row of the weekly aggregation.
type DayTotal struct {
	Date     time.Time
	Minutes  int
	Sessions int
}

// Stats computes the summary as of now. The average is today's minutes
// floor-divided by today's session count, zero when there are none.
func (l *Ledger) Stats(now time.Time) Stats {
	today := 0
	for _, s := range l.Sessions {
		if sameDay(s.Start, now) {
			today++
		}
	}

	st := Stats{
		TodaySessions:   today,
		TodayMinutes:    l.TodaySecs / 60,
		TotalMinutes:    l.TotalSecs / 60,
		AllTimeSessions: len(l.Sessions),
	}
	if today > 0 {
		st.AverageMinutes = st.TodayMinutes / today
	}
	return st
}

// Weekly returns the trailing seven calendar days ending today, oldest
// first. Dates are local midnights.
func (l *Ledger) Weekly(now time.Time) []DayTotal {
	y, m, d := now.Date()
	week := make([]DayTotal, 7)
	for i := range week {
		day := time.Date(y, m, d-(6-i), 0, 0, 0, 0, now.Location())
		week[i].Date = day
		for _, s := range l.Sessions {
			if sameDay(s.Start, day) {
				week[i].Minutes += max(0, s.Minutes)
				week[i].Sessions++
			}
		}
	}
	return week
}
