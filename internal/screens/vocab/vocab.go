// Package vocab is the English word game screen: read a definition, type
// the word.
package vocab

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/router"
	"github.com/mindmorph/mindmorph/internal/screen"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// VocabScreen runs a quiz.Vocab game.
type VocabScreen struct {
	game     *quiz.Vocab
	input    components.TextInput
	feedback string
	correct  bool
}

var _ screen.Screen = (*VocabScreen)(nil)
var _ screen.KeyHintProvider = (*VocabScreen)(nil)
var _ screen.InputCapturer = (*VocabScreen)(nil)

// New creates the screen over words, or the built-in list when empty.
func New(words []quiz.Word) *VocabScreen {
	return &VocabScreen{
		game:  quiz.NewVocab(words),
		input: components.NewTextInput("Type the word...", false, 30),
	}
}

func (s *VocabScreen) Init() tea.Cmd {
	return nil
}

func (s *VocabScreen) Title() string {
	return "Vocabulary Builder"
}

// CapturesInput is true while a round is being played.
func (s *VocabScreen) CapturesInput() bool {
	return s.game.Active()
}

// Game exposes the game state.
func (s *VocabScreen) Game() *quiz.Vocab {
	return s.game
}

func (s *VocabScreen) KeyHints() []layout.KeyHint {
	if s.game.Active() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Tab", Description: "Skip"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VocabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		if !s.game.Active() {
			s.game.Start()
			s.feedback = ""
			s.input.SetValue("")
			return s, nil
		}
		s.check()
		return s, nil
	case "tab":
		if s.game.Active() {
			_ = s.game.Skip()
			s.feedback = "Skipped."
			s.correct = false
		}
		return s, nil
	}

	if !s.game.Active() {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *VocabScreen) check() {
	answer := s.input.Value()
	ok, err := s.game.Check(answer)
	if errors.Is(err, quiz.ErrNotStarted) {
		return
	}
	s.correct = ok
	s.input.Submit(ok)
	switch {
	case s.game.Finished():
		s.feedback = fmt.Sprintf("Game finished! You scored %d/%d (%d%%).",
			s.game.Score(), s.game.Total(), s.game.Percentage())
	case ok:
		s.feedback = "Correct!"
	default:
		s.feedback = "Try again."
	}
}

func (s *VocabScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Guess the word"))

	switch {
	case s.game.Active():
		counter := theme.Muted.Render(fmt.Sprintf("Word %d of %d   Score %d",
			s.game.Index()+1, s.game.Total(), s.game.Score()))
		def := theme.Body.Width(cw - 6).Render(s.game.Definition())
		sections = append(sections,
			components.Card("Definition", def, cw),
			counter,
			"Answer: "+s.input.View(),
		)
	case s.game.Finished():
		sections = append(sections, components.Card("Results",
			theme.Body.Render(fmt.Sprintf("%d/%d correct (%d%%)",
				s.game.Score(), s.game.Total(), s.game.Percentage())), cw))
		sections = append(sections, theme.Hint.Render("Press Enter to play again."))
	default:
		sections = append(sections, theme.Hint.Render("Press Enter to start."))
	}

	if s.feedback != "" && !s.game.Finished() {
		style := theme.Incorrect
		if s.correct {
			style = theme.Correct
		}
		sections = append(sections, style.Render(s.feedback))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}
