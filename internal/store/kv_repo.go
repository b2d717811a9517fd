package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// repo implements every typed repository on top of the KV table.
type repo struct {
	s *Store
}

func (r *repo) LoadFocus(ctx context.Context) (*FocusTrackerData, error) {
	var data FocusTrackerData
	if err := r.s.kv.GetJSON(ctx, KeyFocusTracker, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *repo) SaveFocus(ctx context.Context, data *FocusTrackerData) error {
	return r.s.kv.SetJSON(ctx, KeyFocusTracker, data)
}

func (r *repo) LoadUser(ctx context.Context) (*UserData, error) {
	var data UserData
	if err := r.s.kv.GetJSON(ctx, KeyUserData, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *repo) SaveUser(ctx context.Context, data *UserData) error {
	return r.s.kv.SetJSON(ctx, KeyUserData, data)
}

func (r *repo) TimerMinutes(ctx context.Context) (int, error) {
	raw, err := r.s.kv.Get(ctx, KeyTimerMinutes)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyTimerMinutes, err)
	}
	return n, nil
}

func (r *repo) SetTimerMinutes(ctx context.Context, minutes int) error {
	return r.s.kv.Set(ctx, KeyTimerMinutes, strconv.Itoa(minutes))
}

func (r *repo) AppendFocusEvent(ctx context.Context, ev FocusEvent) error {
	r.s.rmw.Lock()
	defer r.s.rmw.Unlock()

	events, err := r.focusEvents(ctx)
	if err != nil {
		return err
	}

	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}
	ev.Sequence = seq
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	events = append(events, ev)
	if len(events) > MaxFocusEvents {
		events = events[len(events)-MaxFocusEvents:]
	}
	return r.s.kv.SetJSON(ctx, KeyFocusAnalytics, events)
}

func (r *repo) FocusEvents(ctx context.Context) ([]FocusEvent, error) {
	return r.focusEvents(ctx)
}

// focusEvents treats a missing or corrupt log as empty.
func (r *repo) focusEvents(ctx context.Context) ([]FocusEvent, error) {
	var events []FocusEvent
	err := r.s.kv.GetJSON(ctx, KeyFocusAnalytics, &events)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) IncrementPageView(ctx context.Context, day, page string) error {
	r.s.rmw.Lock()
	defer r.s.rmw.Unlock()

	views, err := r.pageViews(ctx)
	if err != nil {
		return err
	}
	if views[day] == nil {
		views[day] = make(map[string]int)
	}
	views[day][page]++
	return r.s.kv.SetJSON(ctx, KeyNavigationAnalytics, views)
}

func (r *repo) PageViews(ctx context.Context) (PageViews, error) {
	return r.pageViews(ctx)
}

func (r *repo) pageViews(ctx context.Context) (PageViews, error) {
	views := make(PageViews)
	err := r.s.kv.GetJSON(ctx, KeyNavigationAnalytics, &views)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt) {
		return make(PageViews), nil
	}
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = make(PageViews)
	}
	return views, nil
}

func (r *repo) RecordQuiz(ctx context.Context, res QuizResult) error {
	r.s.rmw.Lock()
	defer r.s.rmw.Unlock()

	results, err := r.quizResults(ctx)
	if err != nil {
		return err
	}

	cur, seen := results[res.Subject]
	cur.Attempts++
	cur.Last = res
	if !seen || res.Percentage > cur.Best.Percentage {
		cur.Best = res
	}
	results[res.Subject] = cur
	return r.s.kv.SetJSON(ctx, KeyQuizResults, results)
}

func (r *repo) QuizResults(ctx context.Context) (map[string]SubjectResults, error) {
	return r.quizResults(ctx)
}

func (r *repo) quizResults(ctx context.Context) (map[string]SubjectResults, error) {
	results := make(map[string]SubjectResults)
	err := r.s.kv.GetJSON(ctx, KeyQuizResults, &results)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt) {
		return make(map[string]SubjectResults), nil
	}
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = make(map[string]SubjectResults)
	}
	return results, nil
}
