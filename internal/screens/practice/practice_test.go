package practice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	mock_api "github.com/zxyasa/ai-zhao-tutor/internal/mocks/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/router"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
	"github.com/zxyasa/ai-zhao-tutor/internal/store"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

type fakeSelections struct {
	saved   *store.Selection
	cleared int
}

func (f *fakeSelections) Save(_ context.Context, sel store.Selection) error {
	f.saved = &sel
	return nil
}

func (f *fakeSelections) Load(context.Context) (*store.Selection, error) {
	return f.saved, nil
}

func (f *fakeSelections) Clear(context.Context) error {
	f.saved = nil
	f.cleared++
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

var jon = api.Student{ID: "jon_zhao", Name: "Jon", YearLevel: 4, Avatar: "lion", TargetDailyQuestions: 10}

func multiplication() *api.Item {
	return &api.Item{
		ItemID:         "yr4_mult_div_001_d2_ab12cd",
		SkillID:        "yr4_mult_div_001",
		QuestionText:   "What is 6 × 7?",
		QuestionType:   "numeric",
		Difficulty:     2,
		CorrectAnswer:  "42",
		Hint:           "Think of 6 groups of 7.",
		Explanation:    "6 × 7 = 42",
		ValidationRule: "numeric",
	}
}

func newTestScreen(t *testing.T, gw api.Gateway, opts ...session.Option) (*PracticeScreen, *stepClock, *fakeSelections) {
	t.Helper()
	clock := &stepClock{now: time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)}
	sel := &fakeSelections{}
	opts = append([]session.Option{
		session.WithClock(clock),
		session.WithIDGenerator(func() string { return "evt-1" }),
	}, opts...)
	s := New(Deps{
		Gateway:    gw,
		Machine:    session.NewMachine(opts...),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Selections: sel,
	}, jon)
	s.tick = 0
	return s, clock, sel
}

// collect runs cmd and flattens batches and sequences into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.IsValid() && v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil)) {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			out = append(out, collect(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drain feeds session results back into s until the flow settles. Timer
// ticks and non-session messages are returned instead of delivered.
func drain(s *PracticeScreen, cmd tea.Cmd) []tea.Msg {
	var rest []tea.Msg
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		sm, ok := msg.(sessionMsg)
		if !ok {
			rest = append(rest, msg)
			continue
		}
		if _, tick := sm.msg.(session.Tick); tick {
			rest = append(rest, msg)
			continue
		}
		_, next := s.Update(sm)
		queue = append(queue, collect(next)...)
	}
	return rest
}

func typeAnswer(s *PracticeScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func expectLoad(gw *mock_api.MockGateway, item *api.Item, status *api.DailySessionStatus) {
	gw.EXPECT().StartDailySession(gomock.Any(), "jon_zhao").Return(status, nil)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(status, nil)
	gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(item, nil)
}

func TestStartsIdle(t *testing.T) {
	s, _, _ := newTestScreen(t, mock_api.NewMockGateway(gomock.NewController(t)))

	assert.Equal(t, session.PhaseIdle, s.State().Phase)
	assert.Contains(t, s.View(100, 30), "Press Enter to start")
}

func TestEnterStartsAndPresentsQuestion(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	streak := 3
	status := &api.DailySessionStatus{CompletedQuestions: 2, TargetQuestions: 10, CurrentStreak: &streak}
	gw.EXPECT().CheckHealth(gomock.Any()).Return(true)
	expectLoad(gw, multiplication(), status)

	s, _, _ := newTestScreen(t, gw)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	rest := drain(s, cmd)

	require.Equal(t, session.PhasePresenting, s.State().Phase)
	require.Len(t, rest, 1, "expected one scheduled tick")
	tick, ok := rest[0].(sessionMsg)
	require.True(t, ok)
	assert.Equal(t, session.Tick{TimerID: s.State().Timer.ID()}, tick.msg)

	view := s.View(100, 30)
	assert.Contains(t, view, "What is 6 × 7?")
	assert.Contains(t, view, "0:00")

	st := s.HeaderStatus()
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, 10, st.Target)
	assert.Equal(t, 3, st.Streak)
	assert.True(t, st.HasStreak)
}

func TestNumericInputFiltersLetters(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	expectLoad(gw, multiplication(), nil)

	s, _, _ := newTestScreen(t, gw, session.WithHealthCheck(false))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	typeAnswer(s, "4x2")
	assert.Equal(t, "42", s.State().Answer)
}

func TestHintToggle(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	expectLoad(gw, multiplication(), nil)

	s, _, _ := newTestScreen(t, gw, session.WithHealthCheck(false))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	s.Update(specialKey(tea.KeyTab))
	assert.True(t, s.State().ShowHint)
	assert.Contains(t, s.View(100, 30), "Think of 6 groups of 7.")

	s.Update(specialKey(tea.KeyTab))
	assert.False(t, s.State().ShowHint)
}

func TestSubmitShowsExplanation(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	expectLoad(gw, multiplication(), nil)
	after := &api.DailySessionStatus{CompletedQuestions: 10, TargetQuestions: 10, IsCompleted: true}

	var sent api.Event
	gw.EXPECT().SubmitEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev api.Event) error {
		sent = ev
		return nil
	})
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(after, nil)

	s, clock, _ := newTestScreen(t, gw, session.WithHealthCheck(false))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	typeAnswer(s, "42")
	clock.now = clock.now.Add(65 * time.Second)
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	require.Equal(t, session.PhaseExplaining, s.State().Phase)
	assert.True(t, sent.IsCorrect)
	assert.Equal(t, "42", sent.AnswerGiven)
	assert.InDelta(t, 65.0, sent.TimeSpent, 1e-9)

	view := s.View(100, 40)
	for _, want := range []string{"Correct!", "Your answer", "42", "6 × 7 = 42", "1:05", "Daily goal reached!"} {
		assert.Contains(t, view, want)
	}
}

func TestWrongAnswerShowsCorrectAnswer(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	expectLoad(gw, multiplication(), nil)
	gw.EXPECT().SubmitEvent(gomock.Any(), gomock.Any()).Return(nil)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(nil, errors.New("down"))

	s, _, _ := newTestScreen(t, gw, session.WithHealthCheck(false))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)
	typeAnswer(s, "48")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	require.Equal(t, session.PhaseExplaining, s.State().Phase)
	assert.False(t, s.State().IsCorrect())
	view := s.View(100, 40)
	assert.Contains(t, view, "Not quite")
	assert.Contains(t, view, "Correct answer")
}

func TestNextQuestionClearsAnswer(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	second := multiplication()
	second.ItemID = "yr4_mult_div_001_d2_ff00aa"
	second.QuestionText = "What is 8 × 3?"
	gomock.InOrder(
		gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(multiplication(), nil),
		gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(second, nil),
	)
	gw.EXPECT().StartDailySession(gomock.Any(), "jon_zhao").Return(nil, errors.New("down")).Times(2)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(nil, errors.New("down")).Times(3)
	gw.EXPECT().SubmitEvent(gomock.Any(), gomock.Any()).Return(nil)

	s, _, _ := newTestScreen(t, gw, session.WithHealthCheck(false))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)
	typeAnswer(s, "42")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	require.Equal(t, session.PhasePresenting, s.State().Phase)
	assert.Equal(t, "What is 8 × 3?", s.State().Item.QuestionText)
	assert.Empty(t, s.State().Answer)
	assert.Empty(t, s.input.Value())
}

func TestErrorAndRetry(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	gomock.InOrder(
		gw.EXPECT().CheckHealth(gomock.Any()).Return(false),
		gw.EXPECT().CheckHealth(gomock.Any()).Return(true),
	)
	expectLoad(gw, multiplication(), nil)

	s, _, _ := newTestScreen(t, gw)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)

	require.Equal(t, session.PhaseError, s.State().Phase)
	assert.Contains(t, s.View(100, 30), "cannot connect to backend server")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	drain(s, cmd)
	assert.Equal(t, session.PhasePresenting, s.State().Phase)
}

func TestTickAdvancesTimer(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	expectLoad(gw, multiplication(), nil)

	s, clock, _ := newTestScreen(t, gw, session.WithHealthCheck(false))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	rest := drain(s, cmd)
	require.Len(t, rest, 1)

	clock.now = clock.now.Add(3 * time.Second)
	_, next := s.Update(rest[0])

	assert.Equal(t, 3*time.Second, s.State().Elapsed())
	assert.NotNil(t, next, "a live timer reschedules itself")
	assert.Contains(t, s.View(100, 30), "0:03")
}

func TestSwitchStudentClearsSelection(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	s, _, sel := newTestScreen(t, gw)
	sel.saved = &store.Selection{StudentID: "jon_zhao"}

	_, cmd := s.Update(ctrlKey('s'))
	msgs := collect(cmd)

	assert.Equal(t, 1, sel.cleared)
	assert.Nil(t, sel.saved)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopToRootMsg{}, msgs[0])
}

func TestParentAndProgressShortcuts(t *testing.T) {
	s, _, _ := newTestScreen(t, mock_api.NewMockGateway(gomock.NewController(t)))

	_, cmd := s.Update(ctrlKey('p'))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(push.Screen.Title(), "Parent Dashboard"))

	_, cmd = s.Update(ctrlKey('g'))
	msgs = collect(cmd)
	require.Len(t, msgs, 1)
	push, ok = msgs[0].(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Jon's Progress", push.Screen.Title())
}

func TestKeyHintsFollowPhase(t *testing.T) {
	s, _, _ := newTestScreen(t, mock_api.NewMockGateway(gomock.NewController(t)))

	hints := s.KeyHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Start", hints[0].Description)
}
