package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/ui/components"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
	"github.com/mindmorph/mindmorph/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, s.renderInfoLine(cw))

	if s.runner.Phase() == qz.Complete {
		sections = append(sections, s.renderComplete(cw))
	} else {
		sections = append(sections, s.renderQuestion(cw))
		if s.runner.ExplanationVisible() {
			sections = append(sections, s.renderExplanation(cw))
		}
	}

	if s.saveErr != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.saveErr))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

// renderInfoLine shows the topic on the left and progress on the right.
func (s *QuizScreen) renderInfoLine(cw int) string {
	p := s.runner.Progress()
	bank := s.runner.Bank()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(bank.Topic)

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %s",
			p.Index+1, s.runner.Total(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			p.Score,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("T"),
			layout.FormatClock(p.Elapsed),
		))

	pad := max(1, cw-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + strings.Repeat(" ", pad) + right

	answered := p.Index
	if s.runner.Phase() != qz.InProgress {
		answered++
	}
	bar := components.NewProgressBar("", float64(answered)/float64(s.runner.Total()), false, cw)
	return line + "\n" + bar.View()
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q := s.runner.Current()
	p := s.runner.Progress()

	prompt := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)

	revealed := s.runner.Phase() == qz.Answered
	return prompt + "\n\n" + s.choice.View(p.Selected, q.Correct, revealed)
}

func (s *QuizScreen) renderExplanation(cw int) string {
	q := s.runner.Current()
	p := s.runner.Progress()

	verdict := theme.Correct.Render("Correct!")
	border := theme.Success
	if !p.Correct {
		verdict = theme.Incorrect.Render("Not quite.")
		border = theme.Error
	}
	return components.HighlightCard("", verdict+"\n"+theme.Body.Render(q.Explanation), cw, border)
}

func (s *QuizScreen) renderComplete(cw int) string {
	sum, _ := s.runner.Summary()
	body := fmt.Sprintf("%d/%d correct (%d%%) in %s\n%s",
		sum.Score, sum.Total, sum.Percentage, layout.FormatClock(sum.ElapsedSecs), sum.Verdict)
	return components.Card("Quiz complete", theme.Body.Render(body)+"\n\n"+
		theme.Hint.Render("Press R to try again or Enter to see the results."), cw)
}
