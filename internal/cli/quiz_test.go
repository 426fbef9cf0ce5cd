package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	mock_api "github.com/zxyasa/ai-zhao-tutor/internal/mocks/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
)

func noColor(t *testing.T) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func multiplication() *api.Item {
	return &api.Item{
		ItemID:         "mul_d2_001",
		SkillID:        "yr4_mul_001",
		QuestionText:   "What is 6 x 7?",
		QuestionType:   "numeric",
		Difficulty:     2,
		CorrectAnswer:  "42",
		Hint:           "Think of 6 groups of 7.",
		Explanation:    "6 x 7 = 42",
		ValidationRule: "numeric",
	}
}

func intPtr(n int) *int { return &n }

func runQuiz(t *testing.T, gw api.Gateway, input string, opts ...QuizOption) string {
	t.Helper()
	var out bytes.Buffer
	machine := session.NewMachine(session.WithIDGenerator(func() string { return "evt-1" }))
	opts = append([]QuizOption{WithIO(strings.NewReader(input), &out)}, opts...)
	cli := NewQuizCLI(gw, machine, quietLogger(), opts...)
	require.NoError(t, cli.Run(context.Background(), "jon_zhao"))
	return out.String()
}

func TestQuizCLI_HintThenCorrectAnswer(t *testing.T) {
	noColor(t)
	ctrl := gomock.NewController(t)
	gw := mock_api.NewMockGateway(ctrl)

	status := &api.DailySessionStatus{StudentID: "jon_zhao", CompletedQuestions: 2, TargetQuestions: 10}
	var sent api.Event
	gw.EXPECT().CheckHealth(gomock.Any()).Return(true)
	gw.EXPECT().StartDailySession(gomock.Any(), "jon_zhao").Return(status, nil).Times(2)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(status, nil).AnyTimes()
	gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(multiplication(), nil).Times(2)
	gw.EXPECT().SubmitEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev api.Event) error {
			sent = ev
			return nil
		})

	out := runQuiz(t, gw, "?\nabc\n42\n\nq\n")

	assert.Contains(t, out, "Question 3 of 10 · Difficulty 2")
	assert.Contains(t, out, "What is 6 x 7?")
	assert.Contains(t, out, "Hint: Think of 6 groups of 7.")
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "6 x 7 = 42")

	assert.Equal(t, "evt-1", sent.EventID)
	assert.Equal(t, "42", sent.AnswerGiven)
	assert.True(t, sent.IsCorrect)
	assert.True(t, sent.HintRequested)
}

func TestQuizCLI_LimitPrintsSummary(t *testing.T) {
	noColor(t)
	ctrl := gomock.NewController(t)
	gw := mock_api.NewMockGateway(ctrl)

	status := &api.DailySessionStatus{
		StudentID:          "jon_zhao",
		CompletedQuestions: 3,
		TargetQuestions:    10,
		CurrentStreak:      intPtr(2),
	}
	gw.EXPECT().CheckHealth(gomock.Any()).Return(true)
	gw.EXPECT().StartDailySession(gomock.Any(), "jon_zhao").Return(status, nil)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(status, nil).AnyTimes()
	gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(multiplication(), nil)
	gw.EXPECT().SubmitEvent(gomock.Any(), gomock.Any()).Return(nil)

	out := runQuiz(t, gw, "41\n", WithLimit(1))

	assert.Contains(t, out, "Not quite. The answer is 42")
	assert.Contains(t, out, "Answered 1 this run. Today: 3/10")
	assert.Contains(t, out, "Streak: 2 days")
}

func TestQuizCLI_UnreachableBackend(t *testing.T) {
	noColor(t)
	ctrl := gomock.NewController(t)
	gw := mock_api.NewMockGateway(ctrl)
	gw.EXPECT().CheckHealth(gomock.Any()).Return(false).Times(2)

	out := runQuiz(t, gw, "\nq\n")

	assert.Equal(t, 2, strings.Count(out, "Something went wrong: cannot connect to backend server"))
}

func TestQuizCLI_EndOfInput(t *testing.T) {
	noColor(t)
	ctrl := gomock.NewController(t)
	gw := mock_api.NewMockGateway(ctrl)
	gw.EXPECT().CheckHealth(gomock.Any()).Return(true)
	gw.EXPECT().StartDailySession(gomock.Any(), "jon_zhao").Return(nil, assert.AnError)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(nil, assert.AnError)
	gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(multiplication(), nil)

	out := runQuiz(t, gw, "")

	assert.Contains(t, out, "Question 1 of 10")
}

func TestQuizCLI_SubmitsTypedTextUnchanged(t *testing.T) {
	noColor(t)
	ctrl := gomock.NewController(t)
	gw := mock_api.NewMockGateway(ctrl)

	item := multiplication()
	item.CorrectAnswer = "32"
	var sent api.Event
	gw.EXPECT().CheckHealth(gomock.Any()).Return(true)
	gw.EXPECT().StartDailySession(gomock.Any(), "jon_zhao").Return(nil, assert.AnError)
	gw.EXPECT().DailyStatus(gomock.Any(), "jon_zhao").Return(nil, assert.AnError).AnyTimes()
	gw.EXPECT().NextItem(gomock.Any(), "jon_zhao").Return(item, nil)
	gw.EXPECT().SubmitEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev api.Event) error {
			sent = ev
			return nil
		})

	out := runQuiz(t, gw, "3e2\n1,5\n-1.5\n", WithLimit(1))

	assert.Equal(t, 2, strings.Count(out, "Numbers only, please"))
	assert.Equal(t, "-1.5", sent.AnswerGiven)
	assert.False(t, sent.IsCorrect)
	assert.Contains(t, out, "Not quite. The answer is 32")
}

func TestAcceptsAll(t *testing.T) {
	tests := []struct {
		name         string
		questionType string
		in           string
		want         bool
	}{
		{"numeric digits", "numeric", "42", true},
		{"negative decimal", "numeric", "-1.5", true},
		{"fraction", "fraction", "3/4", true},
		{"exponent rejected", "numeric", "3e2", false},
		{"comma rejected", "numeric", "1,5", false},
		{"spaces rejected in numeric", "fraction", "3 / 4", false},
		{"text passes through", "text", "forty two", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := answer.InputModeFor(tt.questionType)
			assert.Equal(t, tt.want, acceptsAll(mode, tt.in))
		})
	}
}
