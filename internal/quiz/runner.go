// Package quiz runs the per-subject multiple-choice quizzes and the
// vocabulary game.
package quiz

import "math"

// Phase is the runner state.
type Phase int

const (
	InProgress Phase = iota
	Answered
	Complete
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in-progress"
	case Answered:
		return "answered"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Progress is the mutable part of a quiz.
type Progress struct {
	Index    int
	Score    int
	Selected int // -1 when nothing is selected
	Correct  bool
	Elapsed  int
}

// Summary is the frozen result of a finished quiz.
type Summary struct {
	Subject     Subject
	Score       int
	Total       int
	Percentage  int
	ElapsedSecs int
	Verdict     string
}

// Runner advances through a bank one question at a time. Not safe for
// concurrent use.
type Runner struct {
	bank     *Bank
	phase    Phase
	progress Progress
	summary  *Summary
}

// NewRunner starts a quiz over bank.
func NewRunner(bank *Bank) *Runner {
	r := &Runner{bank: bank}
	r.Reset()
	return r
}

// Reset returns to the initial state from any phase.
func (r *Runner) Reset() {
	r.phase = InProgress
	r.progress = Progress{Selected: -1}
	r.summary = nil
}

// Select answers the current question. It reports false, changing
// nothing, unless the runner is InProgress and i names an option.
func (r *Runner) Select(i int) bool {
	if r.phase != InProgress {
		return false
	}
	q := r.Current()
	if i < 0 || i >= len(q.Options) {
		return false
	}

	r.progress.Selected = i
	r.progress.Correct = i == q.Correct
	if r.progress.Correct {
		r.progress.Score++
	}
	r.phase = Answered
	return true
}

// Advance moves past an answered question. After the last question the
// runner is Complete and the summary is frozen.
func (r *Runner) Advance() bool {
	if r.phase != Answered {
		return false
	}
	if r.progress.Index == len(r.bank.Questions)-1 {
		r.phase = Complete
		s := r.buildSummary()
		r.summary = &s
		return true
	}
	r.progress.Index++
	r.progress.Selected = -1
	r.progress.Correct = false
	r.phase = InProgress
	return true
}

// TickSecond counts one second of elapsed time in any phase.
func (r *Runner) TickSecond() {
	r.progress.Elapsed++
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.phase }

// Progress returns a copy of the progress counters.
func (r *Runner) Progress() Progress { return r.progress }

// Bank returns the question bank.
func (r *Runner) Bank() *Bank { return r.bank }

// Total returns the number of questions.
func (r *Runner) Total() int { return len(r.bank.Questions) }

// Current returns the question at the current index.
func (r *Runner) Current() Question {
	return r.bank.Questions[r.progress.Index]
}

// ExplanationVisible reports whether the current explanation is shown.
func (r *Runner) ExplanationVisible() bool {
	return r.phase == Answered
}

// Percentage returns round(score/total*100).
func (r *Runner) Percentage() int {
	return Percentage(r.progress.Score, r.Total())
}

// Performance returns the verdict for the current score.
func (r *Runner) Performance() string {
	return r.bank.Verdicts.For(r.progress.Score, r.Total())
}

// Summary returns the frozen result once Complete.
func (r *Runner) Summary() (Summary, bool) {
	if r.summary == nil {
		return Summary{}, false
	}
	return *r.summary, true
}

func (r *Runner) buildSummary() Summary {
	return Summary{
		Subject:     r.bank.Subject,
		Score:       r.progress.Score,
		Total:       r.Total(),
		Percentage:  r.Percentage(),
		ElapsedSecs: r.progress.Elapsed,
		Verdict:     r.Performance(),
	}
}

// Percentage returns round(score/total*100), 0 for an empty total.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// For picks the verdict band: all correct, at least 80%, at least 60%, or
// anything below. Bands use the exact ratio, not the rounded percentage.
func (v Verdicts) For(score, total int) string {
	switch {
	case total <= 0:
		return v.Keep
	case score == total:
		return v.Perfect
	case score*100 >= 80*total:
		return v.Strong
	case score*100 >= 60*total:
		return v.Good
	default:
		return v.Keep
	}
}
