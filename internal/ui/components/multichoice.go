package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

// MultiChoice renders the options of one question and moves a cursor over
// them. Answer bookkeeping stays with the caller; the component only
// reports which option was picked.
type MultiChoice struct {
	Options []string
	Cursor  int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor. It returns the picked index when the user
// presses Enter or a letter key (a-d), and -1 otherwise.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, -1
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, m.Cursor
	case "a", "b", "c", "d":
		i := int(key[0] - 'a')
		if i < len(m.Options) {
			m.Cursor = i
			return m, i
		}
	}
	return m, -1
}

// View renders the options. Once revealed, the correct option is green and
// a wrong pick red.
func (m MultiChoice) View(picked, correct int, revealed bool) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		var style lipgloss.Style
		switch {
		case revealed && i == correct:
			style = theme.Correct
		case revealed && i == picked:
			style = theme.Incorrect
		case revealed:
			style = theme.Muted
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
