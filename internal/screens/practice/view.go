package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/session"
	"github.com/zxyasa/ai-zhao-tutor/internal/timer"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/layout"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	var body string
	switch s.state.Phase {
	case session.PhaseIdle:
		body = s.renderIdle(width)
	case session.PhaseConnecting:
		body = dim(width, "Connecting to the practice server...")
	case session.PhaseLoading:
		body = dim(width, "Loading question...")
	case session.PhasePresenting, session.PhaseSubmitting:
		body = s.renderQuestion(width, height)
	case session.PhaseExplaining:
		body = s.renderExplanation(width)
	case session.PhaseError:
		body = s.renderError(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func dim(width int, text string) string {
	return centered(width, theme.Hint, text)
}

func (s *PracticeScreen) renderIdle(width int) string {
	var b strings.Builder
	b.WriteString(centered(width, theme.Title, fmt.Sprintf("Ready to practise, %s?", s.student.Name)))
	b.WriteString("\n\n")
	completed, target := s.state.DailyProgress()
	b.WriteString(centered(width, theme.Subtitle, fmt.Sprintf("Today's goal: %d questions (%d done)", target, completed)))
	b.WriteString("\n\n")
	b.WriteString(dim(width, "Press Enter to start"))
	return b.String()
}

func (s *PracticeScreen) renderQuestion(width, height int) string {
	item := s.state.Item
	if item == nil {
		return dim(width, "Loading question...")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Difficulty %d", item.Difficulty))
	infoRight := theme.Timer.Render(timer.Format(s.state.Elapsed())) + "  "

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Question, item.QuestionText))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle(), "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	switch {
	case s.state.Phase == session.PhaseSubmitting:
		b.WriteString(dim(width, "Checking..."))
	case s.state.ShowHint && item.Hint != "":
		hint := lipgloss.NewStyle().
			Foreground(theme.Warning).
			Width(min(width-8, 70)).
			Render("Hint: " + item.Hint)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))
	case s.state.ShowHint:
		b.WriteString(dim(width, "No hint for this one."))
	case !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight):
		b.WriteString(dim(width, "Press Tab for a hint"))
	}

	return b.String()
}

func (s *PracticeScreen) renderExplanation(width int) string {
	item := s.state.Item
	if item == nil {
		return ""
	}

	var b strings.Builder
	if s.state.IsCorrect() {
		b.WriteString(centered(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
	}
	b.WriteString("\n\n")

	hintUsed := "No"
	if s.state.ShowHint {
		hintUsed = "Yes"
	}
	rows := [][2]string{
		{"Your answer", s.state.Answer},
		{"Correct answer", item.CorrectAnswer},
		{"Time spent", timer.Format(s.state.Elapsed())},
		{"Hint used", hintUsed},
	}
	var card strings.Builder
	for i, r := range rows {
		if i > 0 {
			card.WriteString("\n")
		}
		card.WriteString(theme.Label.Render(r[0]) + theme.Body.Render(r[1]))
	}
	if item.Explanation != "" {
		card.WriteString("\n\n")
		card.WriteString(theme.Body.Width(min(width-12, 64)).Render(item.Explanation))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(card.String())))
	b.WriteString("\n\n")

	if d := s.state.Daily; d != nil && d.IsCompleted {
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), "Daily goal reached!"))
		b.WriteString("\n")
	}
	b.WriteString(dim(width, "Press Enter for the next question"))
	return b.String()
}

func (s *PracticeScreen) renderError(width int) string {
	box := theme.ErrorBox.Render("Something went wrong\n\n" + s.state.ErrMsg)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box) + "\n\n" + dim(width, "Press Enter to retry")
}
