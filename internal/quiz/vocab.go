package quiz

import (
	"errors"
	"strings"
)

// ErrNotStarted is returned when checking a word before Start.
var ErrNotStarted = errors.New("vocabulary game not started")

// Word is a vocabulary entry.
type Word struct {
	Word       string
	Definition string
}

// DefaultWords is the built-in word list.
var DefaultWords = []Word{
	{"serendipity", "The occurrence and development of events by chance in a happy or beneficial way"},
	{"ephemeral", "Lasting for a very short time"},
	{"ubiquitous", "Present, appearing, or found everywhere"},
	{"mellifluous", "Sweet or musical; pleasant to hear"},
	{"serene", "Calm, peaceful, and untroubled"},
	{"eloquent", "Fluent or persuasive in speaking or writing"},
	{"resilient", "Able to withstand or recover quickly from difficult conditions"},
	{"authentic", "Genuine or real"},
	{"profound", "Very great or intense; deep"},
	{"harmonious", "Forming a pleasing or consistent whole"},
}

// Vocab is the guess-the-word game: the player sees a definition and
// types the word.
type Vocab struct {
	words    []Word
	index    int
	score    int
	active   bool
	finished bool
}

// NewVocab creates a game over words, or DefaultWords when words is empty.
func NewVocab(words []Word) *Vocab {
	if len(words) == 0 {
		words = DefaultWords
	}
	return &Vocab{words: words}
}

// Start begins a fresh round.
func (v *Vocab) Start() {
	v.active = true
	v.finished = false
	v.index = 0
	v.score = 0
}

// Reset stops the game and clears progress.
func (v *Vocab) Reset() {
	v.active = false
	v.finished = false
	v.index = 0
	v.score = 0
}

// Check compares input with the current word, ignoring case and
// surrounding space. A match scores and advances; a miss changes nothing.
func (v *Vocab) Check(input string) (bool, error) {
	if !v.active {
		return false, ErrNotStarted
	}
	if !strings.EqualFold(strings.TrimSpace(input), v.words[v.index].Word) {
		return false, nil
	}
	v.score++
	v.next()
	return true, nil
}

// Skip moves to the next word without scoring.
func (v *Vocab) Skip() error {
	if !v.active {
		return ErrNotStarted
	}
	v.next()
	return nil
}

func (v *Vocab) next() {
	v.index++
	if v.index >= len(v.words) {
		v.active = false
		v.finished = true
	}
}

// Active reports whether a round is in progress.
func (v *Vocab) Active() bool { return v.active }

// Finished reports whether the last round ran through every word.
func (v *Vocab) Finished() bool { return v.finished }

// Definition returns the definition to guess, or "" when not active.
func (v *Vocab) Definition() string {
	if !v.active {
		return ""
	}
	return v.words[v.index].Definition
}

// Score returns the correct answers so far.
func (v *Vocab) Score() int { return v.score }

// Index returns the position of the current word.
func (v *Vocab) Index() int { return v.index }

// Total returns the word count.
func (v *Vocab) Total() int { return len(v.words) }

// Percentage returns round(score/total*100).
func (v *Vocab) Percentage() int { return Percentage(v.score, len(v.words)) }
