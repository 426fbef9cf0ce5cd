package session

import (
	"github.com/google/uuid"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/timer"
)

// Machine is the question session transition function. It holds no
// per-session state and is safe to share.
type Machine struct {
	clock       timer.Clock
	newID       func() string
	healthCheck bool
	dailyTarget int
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the wall clock.
func WithClock(c timer.Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithIDGenerator overrides event ID generation.
func WithIDGenerator(f func() string) Option {
	return func(m *Machine) { m.newID = f }
}

// WithHealthCheck enables or disables the probe before the first load.
func WithHealthCheck(enabled bool) Option {
	return func(m *Machine) { m.healthCheck = enabled }
}

// WithDailyTarget sets the target shown before the backend reports one.
func WithDailyTarget(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.dailyTarget = n
		}
	}
}

// NewMachine returns a Machine using the system clock and random UUIDs,
// with the health probe enabled.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		clock:       timer.SystemClock{},
		newID:       uuid.NewString,
		healthCheck: true,
		dailyTarget: api.DefaultDailyTarget,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewState returns an idle session for studentID carrying the machine's
// daily target default.
func (m *Machine) NewState(studentID string) State {
	s := NewState(studentID)
	s.dailyTarget = m.dailyTarget
	return s
}

// Update applies msg to s. Messages that do not apply to the current
// phase leave the state unchanged and produce no effects.
func (m *Machine) Update(s State, msg Msg) (State, []Effect) {
	switch msg := msg.(type) {
	case Begin:
		if s.Phase != PhaseIdle {
			return s, nil
		}
		if m.healthCheck {
			return m.connect(s)
		}
		return m.loadNext(s)

	case HealthChecked:
		if s.Phase != PhaseConnecting {
			return s, nil
		}
		if !msg.Reachable {
			s.Phase = PhaseError
			s.ErrMsg = ErrBackendUnreachable
			s.healthFailed = true
			return s, nil
		}
		return m.loadNext(s)

	case QuestionLoaded:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		if msg.Daily != nil {
			s.Daily = msg.Daily
		}
		if msg.Err != nil {
			s.Phase = PhaseError
			s.ErrMsg = api.UserMessage(msg.Err)
			return s, nil
		}
		if msg.Item == nil {
			s.Phase = PhaseError
			s.ErrMsg = "No question available"
			return s, nil
		}
		s.Item = msg.Item
		s.timerSeq++
		s.Timer = timer.New(s.timerSeq)
		s.Timer.Start(m.clock.Now())
		s.Phase = PhasePresenting
		return s, []Effect{ScheduleTick{TimerID: s.Timer.ID()}}

	case AnswerChanged:
		if s.Phase == PhasePresenting {
			s.Answer = msg.Text
		}
		return s, nil

	case HintToggled:
		if s.Phase == PhasePresenting {
			s.ShowHint = !s.ShowHint
		}
		return s, nil

	case SubmitRequested:
		if !s.CanSubmit() {
			return s, nil
		}
		return m.submit(s)

	case EventSubmitted:
		if s.Phase != PhaseSubmitting {
			return s, nil
		}
		if msg.Daily != nil {
			s.Daily = msg.Daily
		}
		if msg.Err != nil {
			s.Phase = PhaseError
			s.ErrMsg = api.UserMessage(msg.Err)
			return s, nil
		}
		s.ShowExplanation = true
		s.Phase = PhaseExplaining
		return s, nil

	case NextRequested:
		if s.Phase != PhaseExplaining {
			return s, nil
		}
		return m.loadNext(s)

	case RetryRequested:
		if s.Phase != PhaseError {
			return s, nil
		}
		if s.healthFailed {
			return m.connect(s)
		}
		return m.loadNext(s)

	case Tick:
		if s.Phase != PhasePresenting {
			return s, nil
		}
		if !s.Timer.Tick(msg.TimerID, m.clock.Now()) {
			return s, nil
		}
		return s, []Effect{ScheduleTick{TimerID: msg.TimerID}}

	case Closed:
		s.Timer.Stop(m.clock.Now())
		s.Phase = PhaseIdle
		return s, nil
	}
	return s, nil
}

func (m *Machine) connect(s State) (State, []Effect) {
	s.Phase = PhaseConnecting
	s.ErrMsg = ""
	s.healthFailed = false
	return s, []Effect{CheckHealth{}}
}

// loadNext resets every per-question field before the fetch is issued so
// that no stale answer, verdict or tick can leak into the next item.
func (m *Machine) loadNext(s State) (State, []Effect) {
	s.Timer.Stop(m.clock.Now())
	s.timerSeq++
	s.Timer = timer.New(s.timerSeq)

	s.Item = nil
	s.Answer = ""
	s.ShowHint = false
	s.ShowExplanation = false
	s.Correct = nil
	s.LastEvent = nil
	s.ErrMsg = ""
	s.healthFailed = false

	s.Phase = PhaseLoading
	return s, []Effect{LoadQuestion{StudentID: s.StudentID}}
}

func (m *Machine) submit(s State) (State, []Effect) {
	now := m.clock.Now()
	elapsed := s.Timer.Stop(now)
	correct := answer.Validate(s.Item.Rule(), s.Answer, s.Item.CorrectAnswer)

	ev := api.Event{
		EventID:       m.newID(),
		StudentID:     s.StudentID,
		ItemID:        s.Item.ItemID,
		AnswerGiven:   s.Answer,
		IsCorrect:     correct,
		TimeSpent:     elapsed.Seconds(),
		HintRequested: s.ShowHint,
		Timestamp:     api.NewTimestamp(now),
	}

	s.Correct = &correct
	s.LastEvent = &ev
	s.Phase = PhaseSubmitting
	return s, []Effect{SubmitEvent{Event: ev}}
}
