package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/screens/summary"
	"github.com/mindmorph/mindmorph/internal/store"
)

// mockResults implements store.QuizRepo for testing.
type mockResults struct {
	recorded []store.QuizResult
}

func (m *mockResults) RecordQuiz(_ context.Context, res store.QuizResult) error {
	m.recorded = append(m.recorded, res)
	return nil
}

func (m *mockResults) QuizResults(context.Context) (map[string]store.SubjectResults, error) {
	return nil, nil
}

type failingResults struct{ mockResults }

func (f *failingResults) RecordQuiz(context.Context, store.QuizResult) error {
	return errors.New("disk full")
}

func letter(i int) tea.KeyPressMsg {
	r := rune('a' + i)
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func key(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func newTestScreen(t *testing.T, results store.QuizRepo, extras ...Extra) *QuizScreen {
	t.Helper()
	bank, err := qz.MustLoadBanks().Get(qz.SubjectMath)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	s := New(router.RouteMath, bank, results, nil, extras...)
	s.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }
	return s
}

// runCmd executes cmd and any batched commands, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestQuizScreen_RouteAndTitle(t *testing.T) {
	s := newTestScreen(t, nil)
	if s.Route() != router.RouteMath {
		t.Errorf("Route = %q, want math", s.Route())
	}
	if s.Title() == "" {
		t.Error("expected the bank title")
	}
}

func TestQuizScreen_AnswerRevealsExplanation(t *testing.T) {
	s := newTestScreen(t, nil)
	q := s.runner.Current()

	s.Update(letter(q.Correct))

	if s.runner.Phase() != qz.Answered {
		t.Fatalf("phase = %v, want answered", s.runner.Phase())
	}
	if s.runner.Progress().Score != 1 {
		t.Errorf("score = %d, want 1", s.runner.Progress().Score)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Correct!") {
		t.Error("expected the correct verdict in the view")
	}

	// A second answer is ignored.
	s.Update(letter((q.Correct + 1) % len(q.Options)))
	if s.runner.Progress().Score != 1 || s.runner.Progress().Selected != q.Correct {
		t.Error("resubmission must not change the answer")
	}
}

func TestQuizScreen_CompleteRecordsAndShowsSummary(t *testing.T) {
	results := &mockResults{}
	s := newTestScreen(t, results)

	var msgs []tea.Msg
	for i := 0; i < s.runner.Total(); i++ {
		s.Update(letter(s.runner.Current().Correct))
		_, cmd := s.Update(enter)
		msgs = runCmd(cmd)
	}

	if s.runner.Phase() != qz.Complete {
		t.Fatalf("phase = %v, want complete", s.runner.Phase())
	}
	if len(results.recorded) != 1 {
		t.Fatalf("recorded %d results, want 1", len(results.recorded))
	}
	got := results.recorded[0]
	if got.Subject != "math" || got.Percentage != 100 || got.Score != s.runner.Total() {
		t.Errorf("unexpected result %+v", got)
	}

	var pushed bool
	for _, m := range msgs {
		if p, ok := m.(router.PushScreenMsg); ok {
			if _, ok := p.Screen.(*summary.SummaryScreen); ok {
				pushed = true
			}
		}
	}
	if !pushed {
		t.Error("expected the summary screen to be pushed")
	}
}

func TestQuizScreen_SaveFailureReachesBuriedScreen(t *testing.T) {
	s := newTestScreen(t, &failingResults{})
	r := router.New(s)

	var msgs []tea.Msg
	for i := 0; i < s.runner.Total(); i++ {
		r.Update(letter(s.runner.Current().Correct))
		msgs = runCmd(r.Update(enter))
	}

	// The summary push lands before the slower write reports back.
	var saved []tea.Msg
	for _, m := range msgs {
		if _, ok := m.(router.PushScreenMsg); ok {
			r.Update(m)
			continue
		}
		saved = append(saved, m)
	}
	if _, ok := r.Active().(*summary.SummaryScreen); !ok {
		t.Fatalf("active = %T, want summary", r.Active())
	}
	if len(saved) != 1 {
		t.Fatalf("got %d save results, want 1", len(saved))
	}
	r.Update(saved[0])

	if s.saveErr == "" {
		t.Fatal("expected the quiz screen to record the failed save")
	}
	r.Pop()
	if !strings.Contains(s.View(100, 40), "Could not save your result.") {
		t.Error("expected the save failure notice in the quiz view")
	}
}

func TestQuizScreen_RestartClearsProgress(t *testing.T) {
	s := newTestScreen(t, nil)
	s.Update(letter(s.runner.Current().Correct))
	s.Update(enter)
	s.Update(elapsedTickMsg{screen: s})

	s.Update(key("r"))

	p := s.runner.Progress()
	if s.runner.Phase() != qz.InProgress || p.Index != 0 || p.Score != 0 || p.Elapsed != 0 {
		t.Errorf("expected a fresh quiz, got phase=%v progress=%+v", s.runner.Phase(), p)
	}
}

func TestQuizScreen_ElapsedTickStopsAfterClose(t *testing.T) {
	s := newTestScreen(t, nil)

	_, cmd := s.Update(elapsedTickMsg{screen: s})
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
	if s.runner.Progress().Elapsed != 1 {
		t.Errorf("elapsed = %d, want 1", s.runner.Progress().Elapsed)
	}

	s.Close()
	_, cmd = s.Update(elapsedTickMsg{screen: s})
	if cmd != nil {
		t.Error("a closed screen must not reschedule ticks")
	}
	if s.runner.Progress().Elapsed != 1 {
		t.Error("a closed screen must not count time")
	}
}

func TestQuizScreen_ExtraPushesScreen(t *testing.T) {
	opened := 0
	extra := Extra{Key: "v", Label: "Vocabulary", Open: func() screen.Screen {
		opened++
		return newTestScreen(t, nil)
	}}
	s := newTestScreen(t, nil, extra)

	_, cmd := s.Update(key("v"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", msgs[0])
	}
	if opened != 1 {
		t.Errorf("Open called %d times, want 1", opened)
	}
}

func TestQuizScreen_KeyHintsFollowPhase(t *testing.T) {
	s := newTestScreen(t, nil)
	if s.KeyHints()[0].Key != "A-D" {
		t.Errorf("first hint = %q, want A-D", s.KeyHints()[0].Key)
	}
	s.Update(letter(0))
	if s.KeyHints()[0].Description != "Next" {
		t.Errorf("first hint = %q, want Next", s.KeyHints()[0].Description)
	}
}
