package vocab

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/router"
)

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

var testWords = []quiz.Word{
	{Word: "serene", Definition: "Calm, peaceful, and untroubled"},
	{Word: "profound", Definition: "Very great or intense; deep"},
}

func typeText(s *VocabScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestVocabScreen_StartAndAnswer(t *testing.T) {
	s := New(testWords)
	if s.CapturesInput() {
		t.Error("idle game must not capture input")
	}

	s.Update(enter)
	if !s.game.Active() || !s.CapturesInput() {
		t.Fatal("expected the game to start on Enter")
	}
	if !strings.Contains(s.View(100, 30), "Calm, peaceful") {
		t.Error("expected the first definition in the view")
	}

	typeText(s, "Serene")
	s.Update(enter)
	if s.game.Score() != 1 || s.game.Index() != 1 {
		t.Errorf("score=%d index=%d, want 1 and 1", s.game.Score(), s.game.Index())
	}
}

func TestVocabScreen_WrongAnswerStays(t *testing.T) {
	s := New(testWords)
	s.Update(enter)

	typeText(s, "calm")
	s.Update(enter)
	if s.game.Score() != 0 || s.game.Index() != 0 {
		t.Error("a wrong answer must not advance")
	}
	if s.feedback != "Try again." {
		t.Errorf("feedback = %q", s.feedback)
	}
}

func TestVocabScreen_Finish(t *testing.T) {
	s := New(testWords)
	s.Update(enter)
	typeText(s, "serene")
	s.Update(enter)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	if !s.game.Finished() {
		t.Fatal("expected the game to finish")
	}
	if !strings.Contains(s.View(100, 30), "1/2 correct (50%)") {
		t.Error("expected the final score in the view")
	}
}

func TestVocabScreen_EscPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
