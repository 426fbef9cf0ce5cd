package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/router"
	"github.com/zxyasa/ai-zhao-tutor/internal/screen"
	"github.com/zxyasa/ai-zhao-tutor/internal/screens/picker"
	"github.com/zxyasa/ai-zhao-tutor/internal/screens/practice"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
	"github.com/zxyasa/ai-zhao-tutor/internal/store"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/layout"
)

// Options wires the TUI to its collaborators.
type Options struct {
	Gateway    api.Gateway
	Machine    *session.Machine
	Selections store.SelectionRepo
	Logger     *slog.Logger

	// Selected skips the picker and opens practice for this student.
	// The picker stays underneath for switching.
	Selected *api.Student
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	deps     practice.Deps
	selected *api.Student
	width    int
	height   int
}

// newAppModel creates a new AppModel rooted at the student picker.
func newAppModel(opts Options) AppModel {
	deps := practice.Deps{
		Gateway:    opts.Gateway,
		Machine:    opts.Machine,
		Logger:     opts.Logger,
		Selections: opts.Selections,
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Machine == nil {
		deps.Machine = session.NewMachine()
	}
	return AppModel{
		router:   router.New(picker.New(deps)),
		deps:     deps,
		selected: opts.Selected,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.selected != nil {
		next := practice.New(m.deps, *m.selected)
		cmds = append(cmds, func() tea.Msg { return router.PushScreenMsg{Screen: next} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var status *layout.Status
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.StatusProvider); ok {
			status = p.HeaderStatus()
		}
		if p, ok := active.(screen.KeyHintProvider); ok {
			footerHints = p.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
		if m.router.Depth() > 1 {
			footerHints = append([]layout.KeyHint{{Key: "Esc", Description: "Back"}}, footerHints...)
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
