// Package dashboard derives the home page content from the focus score,
// the focus statistics and the quiz results.
package dashboard

import (
	"time"

	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/store"
)

// Mode is the suggested learning mode.
type Mode string

const (
	ModeText        Mode = "text"
	ModeVisual      Mode = "visual"
	ModeAudio       Mode = "audio"
	ModeInteractive Mode = "interactive"
)

// Modes lists the learning modes in display order.
var Modes = []Mode{ModeText, ModeVisual, ModeAudio, ModeInteractive}

// InitialMode is the mode before any score arrives.
const InitialMode = ModeVisual

// NextMode applies the switching rule: a score below 50 suggests
// interactive content, above 80 suggests text, and anything between keeps
// the current mode.
func NextMode(current Mode, score float64) Mode {
	switch {
	case score < 50:
		return ModeInteractive
	case score > 80:
		return ModeText
	default:
		return current
	}
}

// Caption returns the short label shown under the focus score.
func Caption(score float64) string {
	switch {
	case score > 80:
		return "Excellent focus!"
	case score > 60:
		return "Good attention"
	default:
		return "Let's re-engage"
	}
}

// Insight is the threshold-based tip shown on the dashboard.
type Insight struct {
	Level string
	Tip   string
}

// InsightFor returns the tip for score.
func InsightFor(score float64) Insight {
	if score > 70 {
		return Insight{Level: "excellent", Tip: "Perfect time for challenging content!"}
	}
	return Insight{Level: "good", Tip: "Consider switching to interactive mode."}
}

// Card is one subject tile.
type Card struct {
	Subject  quiz.Subject
	Title    string
	Topic    string
	Best     int // best percentage, -1 when never completed
	Attempts int
}

// Dashboard is the state behind the home screen. It follows the focus
// tracker through Observe, which is meant to be registered with
// Tracker.Subscribe.
type Dashboard struct {
	mode  Mode
	score float64
	banks *quiz.Banks
}

// New returns a dashboard in the initial mode showing score. banks
// supplies the subject titles for the cards.
func New(score float64, banks *quiz.Banks) *Dashboard {
	return &Dashboard{mode: InitialMode, score: score, banks: banks}
}

// Observe records a new focus score and applies the mode rule.
func (d *Dashboard) Observe(score float64) {
	d.score = score
	d.mode = NextMode(d.mode, score)
}

// SetMode selects a mode by hand.
func (d *Dashboard) SetMode(m Mode) { d.mode = m }

// Mode returns the current mode.
func (d *Dashboard) Mode() Mode { return d.mode }

// Score returns the last observed score.
func (d *Dashboard) Score() float64 { return d.score }

// Caption returns the caption for the last observed score.
func (d *Dashboard) Caption() string { return Caption(d.score) }

// Insight returns the tip for the last observed score.
func (d *Dashboard) Insight() Insight { return InsightFor(d.score) }

// Snapshot is everything the home screen renders.
type Snapshot struct {
	Score   float64
	Pattern focus.Pattern
	Mode    Mode
	Caption string
	Insight Insight
	Stats   focus.Stats
	Weekly  []focus.DayTotal
	Cards   []Card
}

// Compose gathers the display data as of now.
func (d *Dashboard) Compose(tr *focus.Tracker, results map[string]store.SubjectResults, now time.Time) Snapshot {
	return Snapshot{
		Score:   d.score,
		Pattern: focus.Classify(d.score),
		Mode:    d.mode,
		Caption: d.Caption(),
		Insight: d.Insight(),
		Stats:   tr.Stats(now),
		Weekly:  tr.Weekly(now),
		Cards:   d.Cards(results),
	}
}

// Cards builds the subject tiles from the recorded quiz results.
func (d *Dashboard) Cards(results map[string]store.SubjectResults) []Card {
	cards := make([]Card, 0, len(quiz.Subjects))
	for _, subj := range quiz.Subjects {
		c := Card{Subject: subj, Best: -1}
		if b, err := d.banks.Get(subj); err == nil {
			c.Title = b.Title
			c.Topic = b.Topic
		}
		if r, ok := results[string(subj)]; ok && r.Attempts > 0 {
			c.Best = r.Best.Percentage
			c.Attempts = r.Attempts
		}
		cards = append(cards, c)
	}
	return cards
}
