package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

// MenuItem is one selectable row. Detail is rendered dimmed after the
// label.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := item.Label
		switch {
		case item.Disabled:
			b.WriteString(theme.Hint.Render("    " + label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		default:
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
