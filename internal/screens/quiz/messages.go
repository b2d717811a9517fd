package quiz

import "github.com/mindmorph/mindmorph/internal/screen"

// elapsedTickMsg counts one second of quiz time for the screen that
// scheduled it.
type elapsedTickMsg struct {
	screen *QuizScreen
}

func (m elapsedTickMsg) Target() screen.Screen { return m.screen }

// resultSavedMsg reports the outcome of persisting a finished quiz. It is
// targeted because the summary is usually on top by the time it arrives.
type resultSavedMsg struct {
	screen *QuizScreen
	Err    error
}

func (m resultSavedMsg) Target() screen.Screen { return m.screen }
