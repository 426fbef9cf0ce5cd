// Package practice is the question session screen: one item at a time,
// graded locally, recorded remotely, with the explanation in between.
package practice

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/router"
	"github.com/zxyasa/ai-zhao-tutor/internal/screen"
	"github.com/zxyasa/ai-zhao-tutor/internal/screens/parent"
	"github.com/zxyasa/ai-zhao-tutor/internal/screens/progress"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
	"github.com/zxyasa/ai-zhao-tutor/internal/store"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/components"
	"github.com/zxyasa/ai-zhao-tutor/internal/ui/layout"
)

// Deps are the collaborators shared by the practice flow.
type Deps struct {
	Gateway api.Gateway
	Machine *session.Machine
	Logger  *slog.Logger
	// Selections remembers the chosen student. Nil disables persistence.
	Selections store.SelectionRepo
}

// sessionMsg carries a session.Msg back to the screen that produced the
// effect.
type sessionMsg struct {
	to  *PracticeScreen
	msg session.Msg
}

func (m sessionMsg) Recipient() screen.Screen { return m.to }

// PracticeScreen hosts a session.Machine. Effects run as tea.Cmds and
// their outcomes come back as sessionMsg.
type PracticeScreen struct {
	deps    Deps
	driver  *session.Driver
	student api.Student
	state   session.State
	input   components.TextInput
	tick    time.Duration
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New creates a practice screen for student. The session starts idle.
func New(deps Deps, student api.Student) *PracticeScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Machine == nil {
		deps.Machine = session.NewMachine()
	}
	return &PracticeScreen{
		deps:    deps,
		driver:  session.NewDriver(deps.Gateway, deps.Logger),
		student: student,
		state:   deps.Machine.NewState(student.ID),
		input:   components.NewTextInput("Type your answer...", answer.ModeText, 24),
		tick:    time.Second,
	}
}

// State returns the current session state.
func (s *PracticeScreen) State() session.State {
	return s.state
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) HeaderStatus() *layout.Status {
	completed, target := s.state.DailyProgress()
	streak, ok := s.state.Streak()
	return &layout.Status{
		Student:   api.AvatarEmoji(s.student.Avatar) + " " + s.student.Name,
		Completed: completed,
		Target:    target,
		Streak:    streak,
		HasStreak: ok,
	}
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	common := []layout.KeyHint{
		{Key: "Ctrl+G", Description: "Progress"},
		{Key: "Ctrl+P", Description: "Parent"},
		{Key: "Ctrl+S", Description: "Switch"},
	}
	var hints []layout.KeyHint
	switch s.state.Phase {
	case session.PhaseIdle:
		hints = []layout.KeyHint{{Key: "Enter", Description: "Start"}}
	case session.PhasePresenting:
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Hint"},
		}
	case session.PhaseExplaining:
		hints = []layout.KeyHint{{Key: "Enter", Description: "Next question"}}
	case session.PhaseError:
		hints = []layout.KeyHint{{Key: "Enter", Description: "Retry"}}
	}
	return append(hints, common...)
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		if msg.msg == nil {
			return s, nil
		}
		return s, s.apply(msg.msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)

	case tea.PasteMsg:
		return s, s.edit(msg)
	}

	// Cursor blink and similar input housekeeping.
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		return s.switchStudent()
	case "ctrl+p":
		return push(parent.New(s.deps.Gateway, s.deps.Logger))
	case "ctrl+g":
		return push(progress.New(s.deps.Gateway, s.student, s.deps.Logger))
	case "tab":
		return s.apply(session.HintToggled{})
	case "enter":
		switch s.state.Phase {
		case session.PhaseIdle:
			return s.apply(session.Begin{})
		case session.PhasePresenting:
			return s.apply(session.SubmitRequested{})
		case session.PhaseExplaining:
			return s.apply(session.NextRequested{})
		case session.PhaseError:
			return s.apply(session.RetryRequested{})
		}
		return nil
	}
	return s.edit(msg)
}

// edit forwards typing to the answer field while a question is shown.
func (s *PracticeScreen) edit(msg tea.Msg) tea.Cmd {
	if s.state.Phase != session.PhasePresenting {
		return nil
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if v := s.input.Value(); v != before {
		return tea.Batch(cmd, s.apply(session.AnswerChanged{Text: v}))
	}
	return cmd
}

// apply runs msg through the machine and turns the effects into commands.
func (s *PracticeScreen) apply(msg session.Msg) tea.Cmd {
	prevItem := s.state.Item
	prevPhase := s.state.Phase

	var effects []session.Effect
	s.state, effects = s.deps.Machine.Update(s.state, msg)

	if s.state.Item != prevItem {
		mode := answer.ModeText
		if s.state.Item != nil {
			mode = answer.InputModeFor(s.state.Item.QuestionType)
		}
		s.input.Reset(mode)
	}
	if prevPhase != session.PhaseExplaining && s.state.Phase == session.PhaseExplaining {
		s.input.Submit(s.state.IsCorrect())
	}

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, s.run(eff))
	}
	return tea.Batch(cmds...)
}

func (s *PracticeScreen) run(eff session.Effect) tea.Cmd {
	if t, ok := eff.(session.ScheduleTick); ok {
		return tea.Tick(s.tick, func(time.Time) tea.Msg {
			return sessionMsg{to: s, msg: session.Tick{TimerID: t.TimerID}}
		})
	}
	driver := s.driver
	return func() tea.Msg {
		return sessionMsg{to: s, msg: driver.Execute(context.Background(), eff)}
	}
}

// switchStudent ends the session, forgets the remembered student and
// returns to the picker.
func (s *PracticeScreen) switchStudent() tea.Cmd {
	s.apply(session.Closed{})
	repo := s.deps.Selections
	logger := s.deps.Logger
	return tea.Sequence(
		func() tea.Msg {
			if repo != nil {
				if err := repo.Clear(context.Background()); err != nil {
					logger.Warn("clear selection failed", "error", err)
				}
			}
			return nil
		},
		func() tea.Msg { return router.PopToRootMsg{} },
	)
}

func push(sc screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: sc} }
}
