package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mindmorph/mindmorph/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is an optional interface for screens that own timers or other
// resources. The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// InputCapturer is an optional interface for screens with a text field.
// While CapturesInput reports true the app does not treat printable keys
// as global shortcuts.
type InputCapturer interface {
	CapturesInput() bool
}

// TrackerChangedMsg tells the app that a screen started, stopped, paused
// or resumed the focus tracker, so the tracker ticks must be rescheduled.
type TrackerChangedMsg struct{}

// ResumedMsg is forwarded to the active screen when the terminal regains
// focus. Screens that paused their own ticks reschedule them.
type ResumedMsg struct{}

// TargetedMsg is a message addressed to one screen. The router delivers it
// to that screen wherever it sits on the stack and drops it once the
// screen has left the stack, which ends tick chains owned by the screen.
type TargetedMsg interface {
	Target() Screen
}

// ActivatedMsg is sent to a screen when it becomes the top of the stack.
type ActivatedMsg struct{}
