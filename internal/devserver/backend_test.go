package devserver

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestBackend(t *testing.T) (*Backend, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)}
	b := NewBackend(WithClock(clock.Now), WithRand(rand.New(rand.NewPCG(1, 2))))
	return b, clock
}

func answerEvent(t *testing.T, b *Backend, studentID string, correct bool, at time.Time) api.Event {
	t.Helper()
	item, err := b.NextItem(studentID, SkillMultiplication)
	require.NoError(t, err)
	ev := api.Event{
		EventID:     "ev-" + item.ItemID,
		StudentID:   studentID,
		ItemID:      item.ItemID,
		AnswerGiven: item.CorrectAnswer,
		IsCorrect:   correct,
		TimeSpent:   4,
		Timestamp:   api.NewTimestamp(at),
	}
	require.NoError(t, b.RecordEvent(ev))
	return ev
}

func TestSeededStudentsOrderedByName(t *testing.T) {
	b, _ := newTestBackend(t)

	students := b.Students()
	require.Len(t, students, 2)
	assert.Equal(t, "Astrid", students[0].Name)
	assert.Equal(t, "Jon", students[1].Name)
	assert.Equal(t, 10, students[1].TargetDailyQuestions)
}

func TestStudentNotFound(t *testing.T) {
	b, _ := newTestBackend(t)

	_, err := b.Student("nobody")
	assert.ErrorIs(t, err, ErrStudentNotFound)
	_, err = b.DailyStatus("nobody")
	assert.ErrorIs(t, err, ErrStudentNotFound)
	_, err = b.Achievements("nobody")
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Empty(t, b.Mastery("nobody"))
}

func TestDailyStatusBeforeStart(t *testing.T) {
	b, _ := newTestBackend(t)

	status, err := b.DailyStatus("jon_zhao")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-18", status.SessionDate)
	assert.Equal(t, 0, status.CompletedQuestions)
	assert.Equal(t, 10, status.TargetQuestions)
	assert.True(t, status.StartedAt.IsZero())
	require.NotNil(t, status.CurrentStreak)
	assert.Equal(t, 0, *status.CurrentStreak)
}

func TestStartDailySessionIsIdempotent(t *testing.T) {
	b, clock := newTestBackend(t)

	first, err := b.StartDailySession("jon_zhao")
	require.NoError(t, err)
	clock.now = clock.now.Add(time.Hour)
	second, err := b.StartDailySession("jon_zhao")
	require.NoError(t, err)

	assert.True(t, first.StartedAt.Equal(second.StartedAt.Time))
}

func TestNextItemDifficultyFollowsMastery(t *testing.T) {
	b, clock := newTestBackend(t)

	item, err := b.NextItem("jon_zhao", SkillMultiplication)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Difficulty)

	for i := 0; i < 3; i++ {
		answerEvent(t, b, "jon_zhao", true, clock.now)
	}
	item, err = b.NextItem("jon_zhao", SkillMultiplication)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Difficulty)
}

func TestNextItemPicksWeakestSkill(t *testing.T) {
	b, clock := newTestBackend(t)

	answerEvent(t, b, "jon_zhao", false, clock.now)

	item, err := b.NextItem("jon_zhao", "")
	require.NoError(t, err)
	assert.Equal(t, SkillMultiplication, item.SkillID)
	assert.Equal(t, 1, item.Difficulty)
}

func TestNextItemUnknownSkill(t *testing.T) {
	b, _ := newTestBackend(t)

	_, err := b.NextItem("jon_zhao", "yr9_calculus")
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestGeneratedItemsValidateAgainstTheirAnswers(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for _, skill := range skillOrder {
		for difficulty := 1; difficulty <= 5; difficulty++ {
			item := generators[skill](r, difficulty)
			assert.True(t, strings.HasPrefix(item.ItemID, skill+"_d"), item.ItemID)
			assert.True(t, answer.Validate(item.Rule(), item.CorrectAnswer, item.CorrectAnswer),
				"%s d%d: %q", skill, difficulty, item.CorrectAnswer)
			assert.NotEmpty(t, item.QuestionText)
			assert.NotEmpty(t, item.Explanation)
		}
	}
}

func TestFractionCompareAnswerIsLarger(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for difficulty := 1; difficulty <= 5; difficulty++ {
		item := fractionCompareItem(r, difficulty)
		fracs, ok := item.Parameters["fractions"].AsList()
		require.True(t, ok)
		require.Len(t, fracs, 2)
		a, _ := fracs[0].AsString()
		c, _ := fracs[1].AsString()
		assert.True(t, item.CorrectAnswer == a || item.CorrectAnswer == c)
		assert.NotEqual(t, a, c)
	}
}

func TestRecordEventUpdatesMastery(t *testing.T) {
	b, clock := newTestBackend(t)

	answerEvent(t, b, "jon_zhao", true, clock.now)
	answerEvent(t, b, "jon_zhao", false, clock.now)

	list := b.Mastery("jon_zhao")
	require.Len(t, list, 1)
	m := list[0]
	assert.Equal(t, SkillMultiplication, m.SkillID)
	assert.Equal(t, 2, m.TotalAttempts)
	assert.Equal(t, 1, m.CorrectAttempts)
	assert.InDelta(t, 0.5, m.MasteryScore, 1e-9)
}

func TestRecordEventCompletesDailyGoal(t *testing.T) {
	b, clock := newTestBackend(t)

	for i := 0; i < 10; i++ {
		answerEvent(t, b, "astrid_zhao", false, clock.now)
	}

	status, err := b.DailyStatus("astrid_zhao")
	require.NoError(t, err)
	assert.Equal(t, 10, status.CompletedQuestions)
	assert.True(t, status.IsCompleted)
	assert.False(t, status.CompletedAt.IsZero())

	badges, err := b.Achievements("astrid_zhao")
	require.NoError(t, err)
	keys := make([]string, 0, len(badges))
	for _, a := range badges {
		keys = append(keys, a.BadgeKey)
	}
	assert.Contains(t, keys, "daily_goal")
	assert.NotContains(t, keys, "first_correct")
}

func TestStreakProgression(t *testing.T) {
	b, _ := newTestBackend(t)
	day1 := time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)

	steps := []struct {
		at       time.Time
		current  int
		longest  int
		sessions int
	}{
		{day1, 1, 1, 1},
		{day1.Add(2 * time.Hour), 1, 1, 2}, // same day
		{day1.AddDate(0, 0, 1), 2, 2, 3},
		{day1.AddDate(0, 0, 3), 1, 2, 4}, // gap resets
	}
	for _, step := range steps {
		answerEvent(t, b, "jon_zhao", true, step.at)
		s, err := b.Student("jon_zhao")
		require.NoError(t, err)
		assert.Equal(t, step.current, s.CurrentStreak, "current at %s", step.at)
		assert.Equal(t, step.longest, s.LongestStreak, "longest at %s", step.at)
		assert.Equal(t, step.sessions, s.TotalSessions, "sessions at %s", step.at)
	}
}

func TestBadgesAreNotDuplicated(t *testing.T) {
	b, clock := newTestBackend(t)

	answerEvent(t, b, "jon_zhao", true, clock.now)
	answerEvent(t, b, "jon_zhao", true, clock.now)

	badges, err := b.Achievements("jon_zhao")
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "first_correct", badges[0].BadgeKey)
}

func TestParentDailySummary(t *testing.T) {
	b, clock := newTestBackend(t)

	answerEvent(t, b, "jon_zhao", true, clock.now)
	answerEvent(t, b, "jon_zhao", true, clock.now)
	answerEvent(t, b, "jon_zhao", false, clock.now)

	sum, err := b.ParentDailySummary("jon_zhao")
	require.NoError(t, err)
	assert.Equal(t, "Jon", sum.StudentName)
	assert.Equal(t, "2026-02-18", sum.SessionDate)
	assert.Equal(t, 3, sum.EventsTotal)
	assert.Equal(t, 2, sum.CorrectAnswers)
	assert.Equal(t, 66.7, sum.AccuracyPercent)
	assert.Equal(t, 4.0, sum.AverageTimeSpentSeconds)
	assert.Equal(t, 3, sum.CompletedQuestions)
	assert.Equal(t, 1, sum.BadgeCount)

	all := b.ParentDailySummaries()
	require.Len(t, all, 2)
	assert.Equal(t, "astrid_zhao", all[0].StudentID)
	assert.Equal(t, 0.0, all[0].AccuracyPercent)
}

func TestParentWeeklySummary(t *testing.T) {
	b, clock := newTestBackend(t)

	answerEvent(t, b, "jon_zhao", true, clock.now.AddDate(0, 0, -2))
	answerEvent(t, b, "jon_zhao", false, clock.now)
	answerEvent(t, b, "jon_zhao", true, clock.now.AddDate(0, 0, -10)) // outside the window

	weekly := b.ParentWeeklySummaries()
	require.Len(t, weekly, 2)
	jon := weekly[1]
	assert.Equal(t, "2026-02-12", jon.FromDate)
	assert.Equal(t, "2026-02-18", jon.ToDate)
	assert.Equal(t, 2, jon.TotalEvents)
	assert.Equal(t, 2, jon.TotalCompletedQuestions)
	assert.Equal(t, 50.0, jon.AccuracyPercent)
	assert.Equal(t, 0, jon.CompletedDays)
}
