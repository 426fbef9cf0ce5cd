// Package picker is the root screen: choose who is practising.
package picker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
	"github.com/zxyasa/ai-zhao-tutor/internal/router"
	"github.com/zxyasa/ai-zhao-tutor/internal/screen"
	"github.com/zxyasa/ai-zhao-tutor/internal/screens/parent"
	"github.com/zxyasa/ai-zhao-tutor/internal/screens/practice"
	"github.com/zxyasa/ai-zhao-tutor/internal/store"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/components"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/layout"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

type studentsLoadedMsg struct {
	to     *Screen
	result fallback.Result[api.Student]
}

func (m studentsLoadedMsg) Recipient() screen.Screen { return m.to }

type selectedMsg struct {
	to      *Screen
	student api.Student
}

func (m selectedMsg) Recipient() screen.Screen { return m.to }

// Screen lists students and starts practice for the chosen one.
type Screen struct {
	deps     practice.Deps
	students fallback.Result[api.Student]
	menu     components.Menu
	loaded   bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the picker.
func New(deps practice.Deps) *Screen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Screen{deps: deps}
}

// Students returns the list currently shown.
func (s *Screen) Students() fallback.Result[api.Student] {
	return s.students
}

func (s *Screen) Init() tea.Cmd {
	gw, logger := s.deps.Gateway, s.deps.Logger
	return func() tea.Msg {
		items, err := gw.FetchStudents(context.Background())
		if err != nil {
			logger.Debug("fetch students failed", "error", err)
		}
		return studentsLoadedMsg{to: s, result: fallback.Students(items, err)}
	}
}

func (s *Screen) Title() string {
	return "Who's practising today?"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start practice"},
		{Key: "P", Description: "Parent"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case studentsLoadedMsg:
		s.students = msg.result
		s.menu = components.NewMenu(s.menuItems())
		s.loaded = true
		return s, nil

	case selectedMsg:
		return s, s.choose(msg.student)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "p":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: parent.New(s.deps.Gateway, s.deps.Logger)}
			}
		case "r":
			s.loaded = false
			return s, s.Init()
		}
		if s.loaded {
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *Screen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(s.students.Items))
	for _, st := range s.students.Items {
		items = append(items, components.MenuItem{
			Label:  api.AvatarEmoji(st.Avatar) + "  " + st.Name,
			Detail: fmt.Sprintf("Year %d · 🔥 %d days · %d a day", st.YearLevel, st.CurrentStreak, st.TargetDailyQuestions),
			Action: func() tea.Cmd {
				return func() tea.Msg { return selectedMsg{to: s, student: st} }
			},
		})
	}
	return items
}

// choose remembers st and opens practice for it.
func (s *Screen) choose(st api.Student) tea.Cmd {
	repo, logger := s.deps.Selections, s.deps.Logger
	next := practice.New(s.deps, st)
	return tea.Sequence(
		func() tea.Msg {
			if repo == nil {
				return nil
			}
			err := repo.Save(context.Background(), store.Selection{
				StudentID: st.ID,
				Name:      st.Name,
				YearLevel: st.YearLevel,
				Avatar:    st.Avatar,
				UpdatedAt: time.Now(),
			})
			if err != nil {
				logger.Warn("save selection failed", "student", st.ID, "error", err)
			}
			return nil
		},
		func() tea.Msg { return router.PushScreenMsg{Screen: next} },
	)
}

func (s *Screen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading students...")
	}

	sections := []string{theme.Title.Render("Who's practising today?"), ""}
	if s.students.Advisory != "" {
		sections = append(sections, theme.Advisory.Render(s.students.Advisory), "")
	}
	sections = append(sections, theme.Card.Render(strings.TrimRight(s.menu.View(), "\n")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
