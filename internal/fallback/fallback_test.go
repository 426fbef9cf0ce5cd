package fallback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

var errBackend = &api.NetworkError{Err: errors.New("connection refused")}

func TestStudents(t *testing.T) {
	tests := []struct {
		name         string
		items        []api.Student
		err          error
		wantFallback bool
		wantAdvisory string
		wantIDs      []string
	}{
		{
			name:         "error substitutes local profiles",
			err:          errBackend,
			wantFallback: true,
			wantAdvisory: StudentsUnavailable,
			wantIDs:      []string{"jon_zhao", "astrid_zhao"},
		},
		{
			name:         "empty substitutes local profiles",
			items:        []api.Student{},
			wantFallback: true,
			wantAdvisory: StudentsEmpty,
			wantIDs:      []string{"jon_zhao", "astrid_zhao"},
		},
		{
			name:    "real data passes through",
			items:   []api.Student{{ID: "mia", Name: "Mia"}},
			wantIDs: []string{"mia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Students(tt.items, tt.err)
			assert.Equal(t, tt.wantFallback, got.Fallback)
			assert.Equal(t, tt.wantAdvisory, got.Advisory)

			ids := make([]string, 0, len(got.Items))
			for _, s := range got.Items {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestLocalStudentsExactRecords(t *testing.T) {
	students := LocalStudents()
	require.Len(t, students, 2)

	assert.Equal(t, api.Student{
		ID: "jon_zhao", Name: "Jon", YearLevel: 4, Avatar: "lion", TargetDailyQuestions: 10,
	}, students[0])
	assert.Equal(t, api.Student{
		ID: "astrid_zhao", Name: "Astrid", YearLevel: 3, Avatar: "unicorn", TargetDailyQuestions: 10,
	}, students[1])
}

func TestLocalDatasetsAreRebuiltEachCall(t *testing.T) {
	first := LocalStudents()
	first[0].Name = "mutated"
	assert.Equal(t, "Jon", LocalStudents()[0].Name)
}

func TestParentDaily(t *testing.T) {
	got := ParentDaily(nil, errBackend)
	require.Len(t, got.Items, 2)
	assert.Equal(t, SummariesUnavailable, got.Advisory)
	for _, s := range got.Items {
		assert.Equal(t, SampleDay, s.SessionDate)
		assert.Zero(t, s.CompletedQuestions)
		assert.Zero(t, s.EventsTotal)
		assert.Zero(t, s.AccuracyPercent)
	}

	live := []api.ParentDailySummary{{StudentID: "jon_zhao", CompletedQuestions: 4}}
	got = ParentDaily(live, nil)
	assert.False(t, got.Fallback)
	assert.Equal(t, live, got.Items)
}

func TestParentWeekly(t *testing.T) {
	got := ParentWeekly([]api.ParentWeeklySummary{}, nil)
	require.Len(t, got.Items, 2)
	assert.True(t, got.Fallback)
	assert.Equal(t, SummariesEmpty, got.Advisory)
	assert.Equal(t, "2026-02-12", got.Items[0].FromDate)
	assert.Equal(t, "2026-02-18", got.Items[0].ToDate)
	assert.Equal(t, "Astrid", got.Items[1].StudentName)
}

func TestAchievements(t *testing.T) {
	got := Achievements(nil, errBackend)
	assert.Empty(t, got.Items)
	assert.Equal(t, BadgesUnavailable, got.Advisory)

	got = Achievements([]api.Achievement{}, nil)
	assert.False(t, got.Fallback)
	assert.Empty(t, got.Advisory)
}
