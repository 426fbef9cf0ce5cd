// Package parent is the parent dashboard: today's and this week's
// summaries for every student.
package parent

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
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/layout"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

// Mode selects which report is shown.
type Mode int

const (
	Daily Mode = iota
	Weekly
)

func (m Mode) String() string {
	if m == Weekly {
		return "Weekly"
	}
	return "Daily"
}

type dailyLoadedMsg struct {
	to     *Screen
	result fallback.Result[api.ParentDailySummary]
}

func (m dailyLoadedMsg) Recipient() screen.Screen { return m.to }

type weeklyLoadedMsg struct {
	to     *Screen
	result fallback.Result[api.ParentWeeklySummary]
}

func (m weeklyLoadedMsg) Recipient() screen.Screen { return m.to }

// Screen shows parent summaries with a daily/weekly toggle.
type Screen struct {
	gateway api.Gateway
	logger  *slog.Logger
	mode    Mode

	daily    fallback.Result[api.ParentDailySummary]
	weekly   fallback.Result[api.ParentWeeklySummary]
	loaded   map[Mode]bool
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the dashboard in daily mode.
func New(gw api.Gateway, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{gateway: gw, logger: logger, loaded: map[Mode]bool{}}
}

// Mode returns the report currently shown.
func (s *Screen) Mode() Mode { return s.mode }

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	return "Parent Dashboard · " + s.mode.String()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Daily/Weekly"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) load() tea.Cmd {
	gw, logger := s.gateway, s.logger
	if s.mode == Weekly {
		return func() tea.Msg {
			items, err := gw.ParentWeeklySummaries(context.Background())
			if err != nil {
				logger.Debug("fetch weekly summaries failed", "error", err)
			}
			return weeklyLoadedMsg{to: s, result: fallback.ParentWeekly(items, err)}
		}
	}
	return func() tea.Msg {
		items, err := gw.ParentDailySummaries(context.Background())
		if err != nil {
			logger.Debug("fetch daily summaries failed", "error", err)
		}
		return dailyLoadedMsg{to: s, result: fallback.ParentDaily(items, err)}
	}
}

func (s *Screen) rows() int {
	if s.mode == Weekly {
		return len(s.weekly.Items)
	}
	return len(s.daily.Items)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dailyLoadedMsg:
		s.daily = msg.result
		s.loaded[Daily] = true
		return s, nil

	case weeklyLoadedMsg:
		s.weekly = msg.result
		s.loaded[Weekly] = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.mode = 1 - s.mode
			s.selected = 0
			if !s.loaded[s.mode] {
				return s, s.load()
			}
		case "r":
			s.loaded[s.mode] = false
			return s, s.load()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if !s.loaded[s.mode] {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading summaries...")
	}

	var advisory string
	var cards []string
	if s.mode == Weekly {
		advisory = s.weekly.Advisory
		for i, w := range s.weekly.Items {
			cards = append(cards, s.card(i, weeklyCard(w)))
		}
	} else {
		advisory = s.daily.Advisory
		for i, d := range s.daily.Items {
			cards = append(cards, s.card(i, dailyCard(d)))
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	if advisory != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Advisory.Render(advisory)))
		b.WriteString("\n\n")
	}
	for _, c := range cards {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, c))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) card(i int, body string) string {
	style := theme.Card.Width(60)
	if i == s.selected {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Render(body)
}

func heading(avatar, name, right string) string {
	left := theme.Question.Render(api.AvatarEmoji(avatar) + " " + name)
	gap := max(44-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func dailyCard(d api.ParentDailySummary) string {
	status := theme.Hint.Render("In progress")
	if d.IsCompleted {
		status = theme.Correct.Render("Completed")
	}
	lines := []string{
		heading(d.Avatar, d.StudentName, status),
		theme.Hint.Render(fmt.Sprintf("Streak %d days (best %d) · Badges %d", d.CurrentStreak, d.LongestStreak, d.BadgeCount)),
		"",
		theme.Body.Render(fmt.Sprintf("Progress %d/%d   Accuracy %.1f%%", d.CompletedQuestions, d.TargetQuestions, d.AccuracyPercent)),
		theme.Body.Render(fmt.Sprintf("Answers %d   Average time %.1fs", d.EventsTotal, d.AverageTimeSpentSeconds)),
	}
	return strings.Join(lines, "\n")
}

func weeklyCard(w api.ParentWeeklySummary) string {
	lines := []string{
		heading(w.Avatar, w.StudentName, theme.Hint.Render(fmt.Sprintf("Streak %d", w.CurrentStreak))),
		theme.Hint.Render(fmt.Sprintf("%s – %s", w.FromDate, w.ToDate)),
		"",
		theme.Body.Render(fmt.Sprintf("Goal days %d/7   Accuracy %.1f%%", w.CompletedDays, w.AccuracyPercent)),
		theme.Body.Render(fmt.Sprintf("Questions completed %d   Answers %d", w.TotalCompletedQuestions, w.TotalEvents)),
	}
	return strings.Join(lines, "\n")
}
