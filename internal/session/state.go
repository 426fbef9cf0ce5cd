package session

import (
	"strings"
	"time"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/timer"
)

// Phase is where a question session currently stands.
type Phase int

const (
	PhaseIdle       Phase = iota // nothing started, or torn down
	PhaseConnecting              // advisory health probe in flight
	PhaseLoading                 // fetching the next item
	PhasePresenting              // question on screen, timer running
	PhaseSubmitting              // event in flight
	PhaseExplaining              // verdict and explanation on screen
	PhaseError                   // step failed, waiting for retry
)

var phaseNames = [...]string{
	PhaseIdle:       "idle",
	PhaseConnecting: "connecting",
	PhaseLoading:    "loading",
	PhasePresenting: "presenting",
	PhaseSubmitting: "submitting",
	PhaseExplaining: "explaining",
	PhaseError:      "error",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// ErrBackendUnreachable is the message shown when the health probe fails.
const ErrBackendUnreachable = "cannot connect to backend server"

// State is the full state of one student's question session.
// It is a value; the Machine returns an updated copy on every message.
type State struct {
	// StudentID is the learner every request is made for.
	StudentID string

	// Phase is the current step of the flow.
	Phase Phase

	// Item is the question being answered. Nil until the first load
	// completes and again while the next one is loading.
	Item *api.Item

	// Answer is the raw text the student has typed.
	Answer string

	// ShowHint is true while the hint is revealed.
	ShowHint bool

	// ShowExplanation is true after the event was accepted.
	ShowExplanation bool

	// Correct is the verdict for the submitted answer; nil before submit.
	Correct *bool

	// Timer measures time spent on the current item.
	Timer timer.Timer

	// Daily is the latest daily status from the backend, if any.
	Daily *api.DailySessionStatus

	// LastEvent is the event built on submit.
	LastEvent *api.Event

	// ErrMsg is the user-facing message while in PhaseError.
	ErrMsg string

	dailyTarget  int
	healthFailed bool
	timerSeq     uint64
}

// NewState returns an idle session for studentID.
func NewState(studentID string) State {
	return State{StudentID: studentID, dailyTarget: api.DefaultDailyTarget}
}

// Elapsed is the time spent on the current item so far.
func (s State) Elapsed() time.Duration {
	return s.Timer.Elapsed()
}

// DailyProgress returns completed and target question counts for today.
// Before the backend reports a status the target falls back to the
// configured default.
func (s State) DailyProgress() (completed, target int) {
	target = s.dailyTarget
	if target <= 0 {
		target = api.DefaultDailyTarget
	}
	if s.Daily == nil {
		return 0, target
	}
	if s.Daily.TargetQuestions > 0 {
		target = s.Daily.TargetQuestions
	}
	return s.Daily.CompletedQuestions, target
}

// Streak returns the current streak from the latest daily status.
func (s State) Streak() (int, bool) {
	if s.Daily == nil || s.Daily.CurrentStreak == nil {
		return 0, false
	}
	return *s.Daily.CurrentStreak, true
}

// CanSubmit reports whether a SubmitRequested would be accepted.
func (s State) CanSubmit() bool {
	return s.Phase == PhasePresenting && s.Item != nil && strings.TrimSpace(s.Answer) != ""
}

// IsCorrect reports the verdict, false when nothing was submitted.
func (s State) IsCorrect() bool {
	return s.Correct != nil && *s.Correct
}
