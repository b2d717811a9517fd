// Package quiz is the subject page: a multiple-choice quiz over the
// subject's question bank, with optional extra activities.
package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	qz "github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/screens/summary"
	"github.com/mindmorph/mindmorph/internal/store"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
)

// Extra is an activity reachable from the subject page with a single key.
type Extra struct {
	Key   string
	Label string
	Open  func() screen.Screen
}

// QuizScreen implements screen.Screen for a subject route.
type QuizScreen struct {
	route   router.Route
	runner  *qz.Runner
	choice  components.MultiChoice
	results store.QuizRepo
	logger  *zap.Logger
	extras  []Extra
	now     func() time.Time

	saveErr string
	closed  bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ router.RouteScreen = (*QuizScreen)(nil)

// New creates the page for route over bank. results may be nil, in which
// case finished quizzes are not recorded.
func New(route router.Route, bank *qz.Bank, results store.QuizRepo, logger *zap.Logger, extras ...Extra) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &QuizScreen{
		route:   route,
		runner:  qz.NewRunner(bank),
		results: results,
		logger:  logger,
		extras:  extras,
		now:     time.Now,
	}
	s.choice = components.NewMultiChoice(s.runner.Current().Options)
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *QuizScreen) Title() string {
	return s.runner.Bank().Title
}

func (s *QuizScreen) Route() router.Route {
	return s.route
}

// Close stops the elapsed clock.
func (s *QuizScreen) Close() {
	s.closed = true
}

// Runner exposes the quiz state.
func (s *QuizScreen) Runner() *qz.Runner {
	return s.runner
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch s.runner.Phase() {
	case qz.InProgress:
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Answer"},
			layout.KeyHint{Key: "↑↓", Description: "Move"},
		)
	case qz.Answered:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	case qz.Complete:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Results"})
	}
	hints = append(hints, layout.KeyHint{Key: "R", Description: "Restart"})
	for _, e := range s.extras {
		hints = append(hints, layout.KeyHint{Key: e.Key, Description: e.Label})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case elapsedTickMsg:
		if s.closed {
			return s, nil
		}
		s.runner.TickSecond()
		return s, s.tick()

	case resultSavedMsg:
		if msg.Err != nil {
			s.saveErr = "Could not save your result."
		}
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	for _, e := range s.extras {
		if key == e.Key {
			return func() tea.Msg { return router.PushScreenMsg{Screen: e.Open()} }
		}
	}
	if key == "r" {
		s.restart()
		return nil
	}

	switch s.runner.Phase() {
	case qz.InProgress:
		var picked int
		s.choice, picked = s.choice.Update(msg)
		if picked >= 0 {
			s.runner.Select(picked)
		}
	case qz.Answered:
		if key == "enter" || key == "n" || key == "right" {
			s.runner.Advance()
			if s.runner.Phase() == qz.Complete {
				return s.finish()
			}
			s.choice = components.NewMultiChoice(s.runner.Current().Options)
		}
	case qz.Complete:
		if key == "enter" {
			return s.showSummary()
		}
	}
	return nil
}

func (s *QuizScreen) restart() {
	s.runner.Reset()
	s.choice = components.NewMultiChoice(s.runner.Current().Options)
	s.saveErr = ""
}

// finish records the result and opens the summary.
func (s *QuizScreen) finish() tea.Cmd {
	sum, _ := s.runner.Summary()
	s.logger.Info("quiz completed",
		zap.String("subject", string(sum.Subject)),
		zap.Int("score", sum.Score),
		zap.Int("total", sum.Total),
		zap.Int("elapsed_secs", sum.ElapsedSecs),
	)
	return tea.Batch(s.save(sum), s.showSummary())
}

func (s *QuizScreen) save(sum qz.Summary) tea.Cmd {
	if s.results == nil {
		return nil
	}
	res := store.QuizResult{
		Subject:     string(sum.Subject),
		Score:       sum.Score,
		Total:       sum.Total,
		Percentage:  sum.Percentage,
		ElapsedSecs: sum.ElapsedSecs,
		CompletedAt: s.now(),
	}
	repo, logger := s.results, s.logger
	return func() tea.Msg {
		err := repo.RecordQuiz(context.Background(), res)
		if err != nil {
			logger.Error("record quiz result", zap.String("subject", res.Subject), zap.Error(err))
		}
		return resultSavedMsg{screen: s, Err: err}
	}
}

func (s *QuizScreen) showSummary() tea.Cmd {
	sum, ok := s.runner.Summary()
	if !ok {
		return nil
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: summary.New(sum)} }
}

func (s *QuizScreen) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return elapsedTickMsg{screen: s}
	})
}
