package session

import "github.com/zxyasa/ai-zhao-tutor/internal/api"

// Msg is an input to the Machine: a user action or the outcome of an Effect.
type Msg interface {
	sessionMsg()
}

// Begin starts the flow from Idle.
type Begin struct{}

// HealthChecked reports the advisory health probe.
type HealthChecked struct {
	Reachable bool
}

// QuestionLoaded reports the outcome of LoadQuestion. Daily is set when
// any status call succeeded, even if the item fetch failed.
type QuestionLoaded struct {
	Item  *api.Item
	Daily *api.DailySessionStatus
	Err   error
}

// AnswerChanged carries the full answer text after an edit.
type AnswerChanged struct {
	Text string
}

// HintToggled flips hint visibility.
type HintToggled struct{}

// SubmitRequested asks to grade and record the current answer.
type SubmitRequested struct{}

// EventSubmitted reports the outcome of SubmitEvent.
type EventSubmitted struct {
	Event api.Event
	Daily *api.DailySessionStatus
	Err   error
}

// NextRequested moves on from the explanation.
type NextRequested struct{}

// RetryRequested recovers from PhaseError.
type RetryRequested struct{}

// Tick is a periodic timer update for the timer with TimerID.
type Tick struct {
	TimerID uint64
}

// Closed tears the session down.
type Closed struct{}

func (Begin) sessionMsg()           {}
func (HealthChecked) sessionMsg()   {}
func (QuestionLoaded) sessionMsg()  {}
func (AnswerChanged) sessionMsg()   {}
func (HintToggled) sessionMsg()     {}
func (SubmitRequested) sessionMsg() {}
func (EventSubmitted) sessionMsg()  {}
func (NextRequested) sessionMsg()   {}
func (RetryRequested) sessionMsg()  {}
func (Tick) sessionMsg()            {}
func (Closed) sessionMsg()          {}

// Effect is work the Machine asks its host to perform.
type Effect interface {
	sessionEffect()
}

// CheckHealth probes backend reachability.
type CheckHealth struct{}

// LoadQuestion starts or refreshes the daily session and fetches the next item.
type LoadQuestion struct {
	StudentID string
}

// SubmitEvent posts a graded answer.
type SubmitEvent struct {
	Event api.Event
}

// ScheduleTick asks for a Tick carrying TimerID about one second from now.
type ScheduleTick struct {
	TimerID uint64
}

func (CheckHealth) sessionEffect()  {}
func (LoadQuestion) sessionEffect() {}
func (SubmitEvent) sessionEffect()  {}
func (ScheduleTick) sessionEffect() {}
