package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with MathCoach styling and an
// answer.InputMode key filter.
type TextInput struct {
	Model     textinput.Model
	Mode      answer.InputMode
	MaxWidth  int
	submitted bool
	valid     bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, mode answer.InputMode, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Mode:     mode,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Typed or pasted characters the mode does not
// accept are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyPressMsg:
		if m.Text != "" && t.filter(m.Text) != m.Text {
			return t, nil
		}
	case tea.PasteMsg:
		msg = tea.PasteMsg{Content: t.filter(m.Content)}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) filter(s string) string {
	return strings.Map(func(r rune) rune {
		if t.Mode.Accepts(r) {
			return r
		}
		return -1
	}, s)
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Reset clears the value and verdict and switches to mode for the next
// question.
func (t *TextInput) Reset(mode answer.InputMode) {
	t.Model.Reset()
	t.Mode = mode
	t.submitted = false
}
