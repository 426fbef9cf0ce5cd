// Package progress shows a student's mastery per skill and unlocked badges.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
	"github.com/zxyasa/ai-zhao-tutor/internal/router"
	"github.com/zxyasa/ai-zhao-tutor/internal/screen"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/components"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/layout"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

type loadedMsg struct {
	to      *Screen
	mastery []api.Mastery
	err     error
	badges  fallback.Result[api.Achievement]
}

func (m loadedMsg) Recipient() screen.Screen { return m.to }

// Screen lists mastery bars and achievements for one student.
type Screen struct {
	gateway api.Gateway
	student api.Student
	logger  *slog.Logger

	mastery []api.Mastery
	badges  fallback.Result[api.Achievement]
	errMsg  string
	loaded  bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a progress screen for student.
func New(gw api.Gateway, student api.Student, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{gateway: gw, student: student, logger: logger}
}

func (s *Screen) Init() tea.Cmd {
	gw, id, logger := s.gateway, s.student.ID, s.logger
	return func() tea.Msg {
		ctx := context.Background()
		mastery, err := gw.Mastery(ctx, id)
		if err != nil {
			logger.Debug("fetch mastery failed", "student", id, "error", err)
		}
		badges, berr := gw.Achievements(ctx, id)
		if berr != nil {
			logger.Debug("fetch achievements failed", "student", id, "error", berr)
		}
		return loadedMsg{to: s, mastery: mastery, err: err, badges: fallback.Achievements(badges, berr)}
	}
}

func (s *Screen) Title() string {
	return s.student.Name + "'s Progress"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.mastery = msg.mastery
		s.badges = msg.badges
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = api.UserMessage(msg.err)
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	cw := min(width-4, 72)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(section(width, "Skills"))

	switch {
	case s.errMsg != "":
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
	case len(s.mastery) == 0:
		b.WriteString(center(width, theme.Hint.Render("No practice yet. Answer a few questions first!")))
	default:
		for _, m := range s.mastery {
			bar := components.NewProgressBar(m.SkillID, m.MasteryScore, true, cw)
			bar.LabelWidth = 22
			bar.Suffix = fmt.Sprintf("%-10s %d/%d", m.Level(), m.CorrectAttempts, m.TotalAttempts)
			b.WriteString(center(width, bar.View()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(section(width, "Badges"))
	if s.badges.Advisory != "" {
		b.WriteString(center(width, theme.Advisory.Render(s.badges.Advisory)))
		b.WriteString("\n")
	}
	if len(s.badges.Items) == 0 && !s.badges.Fallback {
		b.WriteString(center(width, theme.Hint.Render("No badges yet. Keep practising!")))
	}
	for _, a := range s.badges.Items {
		line := lipgloss.NewStyle().Foreground(theme.Accent).Render("★ "+a.Title) +
			"  " + theme.Hint.Render(a.Description)
		b.WriteString(center(width, line))
		b.WriteString("\n")
	}
	return b.String()
}

func section(width int, title string) string {
	return center(width, theme.Title.Render(title)) + "\n\n"
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
