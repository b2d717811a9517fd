package store

import (
	"context"
	"time"
)

// Persisted keys. The names match the keys the web build wrote to local
// storage so exported data stays recognizable.
const (
	KeyFocusTracker        = "focusTrackerData"
	KeyUserData            = "mindMorphUserData"
	KeyTimerMinutes        = "timerMinutes"
	KeyFocusAnalytics      = "focusAnalytics"
	KeyNavigationAnalytics = "navigationAnalytics"
	KeyQuizResults         = "quizResults"
)

// MaxFocusEvents caps the focusAnalytics log; the oldest events are dropped.
const MaxFocusEvents = 1000

// SessionRecord is one finished focus session as persisted.
type SessionRecord struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration"`
	Minutes   int       `json:"minutes"`
	Timestamp int64     `json:"timestamp"`
}

// FocusTrackerData is the focusTrackerData value.
type FocusTrackerData struct {
	TotalFocusTime int             `json:"totalFocusTime"`
	TodayFocusTime int             `json:"todayFocusTime"`
	Sessions       []SessionRecord `json:"sessions"`
	LastSave       time.Time       `json:"lastSave"`
}

// UserData is the mindMorphUserData value, written on exit.
type UserData struct {
	CurrentPage string    `json:"currentPage"`
	FocusTime   int       `json:"focusTime"`
	LastVisit   time.Time `json:"lastVisit"`
}

// FocusEvent is one entry of the focusAnalytics log.
type FocusEvent struct {
	Sequence    int64          `json:"sequence"`
	ID          string         `json:"id"`
	Event       string         `json:"event"`
	Timestamp   time.Time      `json:"timestamp"`
	CurrentPage string         `json:"currentPage,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// PageViews maps a local date (YYYY-MM-DD) to per-page visit counts.
type PageViews map[string]map[string]int

// QuizResult is one completed quiz.
type QuizResult struct {
	Subject     string    `json:"subject"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	ElapsedSecs int       `json:"elapsedSecs"`
	CompletedAt time.Time `json:"completedAt"`
}

// SubjectResults holds the best and most recent result for a subject.
type SubjectResults struct {
	Best     QuizResult `json:"best"`
	Last     QuizResult `json:"last"`
	Attempts int        `json:"attempts"`
}

// FocusRepo persists the focus tracker state.
type FocusRepo interface {
	// LoadFocus returns the stored tracker data, ErrNotFound, or a
	// wrapped ErrCorrupt.
	LoadFocus(ctx context.Context) (*FocusTrackerData, error)

	// SaveFocus replaces the stored tracker data.
	SaveFocus(ctx context.Context, data *FocusTrackerData) error
}

// UserRepo persists the last page and visit time.
type UserRepo interface {
	LoadUser(ctx context.Context) (*UserData, error)
	SaveUser(ctx context.Context, data *UserData) error
}

// TimerRepo persists the last configured countdown length.
type TimerRepo interface {
	// TimerMinutes returns the stored minutes or ErrNotFound.
	TimerMinutes(ctx context.Context) (int, error)
	SetTimerMinutes(ctx context.Context, minutes int) error
}

// AnalyticsRepo records focus and navigation analytics.
type AnalyticsRepo interface {
	// AppendFocusEvent stamps ev with the next sequence number and an ID
	// when it has none, then appends it, trimming the log to MaxFocusEvents.
	AppendFocusEvent(ctx context.Context, ev FocusEvent) error

	// FocusEvents returns the log oldest first.
	FocusEvents(ctx context.Context) ([]FocusEvent, error)

	// IncrementPageView bumps the visit counter for page on day.
	IncrementPageView(ctx context.Context, day, page string) error

	// PageViews returns all per-day counters.
	PageViews(ctx context.Context) (PageViews, error)
}

// QuizRepo records completed quizzes per subject.
type QuizRepo interface {
	RecordQuiz(ctx context.Context, r QuizResult) error
	QuizResults(ctx context.Context) (map[string]SubjectResults, error)
}
