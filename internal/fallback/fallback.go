// Package fallback substitutes fixed local data when a list-returning
// backend call fails or comes back empty, so list views keep rendering.
//
// A fallback is never an error: callers render Items as usual and show
// Advisory as a non-blocking banner. Datasets are rebuilt on every call;
// nothing seen from the server is cached here.
package fallback

import (
	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

// Advisory messages shown alongside substituted data.
const (
	StudentsUnavailable  = "Backend unavailable, switched to local student profiles."
	StudentsEmpty        = "No students on the server yet, showing local student profiles."
	SummariesUnavailable = "Backend unavailable, showing local sample data."
	SummariesEmpty       = "No activity on the server yet, showing local sample data."
	BadgesUnavailable    = "Can't load badges right now."
)

// Sample dates used by the parent report datasets.
const (
	SampleDay      = "2026-02-18"
	SampleWeekFrom = "2026-02-12"
)

// Result is what a list view renders.
type Result[T any] struct {
	Items    []T
	Advisory string
	Fallback bool
}

// apply returns items unchanged when the call succeeded with data, and
// the substitute dataset with the matching advisory otherwise.
func apply[T any](items []T, err error, substitute func() []T, unavailable, empty string) Result[T] {
	switch {
	case err != nil:
		return Result[T]{Items: substitute(), Advisory: unavailable, Fallback: true}
	case len(items) == 0:
		return Result[T]{Items: substitute(), Advisory: empty, Fallback: true}
	default:
		return Result[T]{Items: items}
	}
}

// Students applies the policy to a students fetch.
func Students(items []api.Student, err error) Result[api.Student] {
	return apply(items, err, LocalStudents, StudentsUnavailable, StudentsEmpty)
}

// ParentDaily applies the policy to a parent daily summary fetch.
func ParentDaily(items []api.ParentDailySummary, err error) Result[api.ParentDailySummary] {
	return apply(items, err, LocalDailySummaries, SummariesUnavailable, SummariesEmpty)
}

// ParentWeekly applies the policy to a parent weekly summary fetch.
func ParentWeekly(items []api.ParentWeeklySummary, err error) Result[api.ParentWeeklySummary] {
	return apply(items, err, LocalWeeklySummaries, SummariesUnavailable, SummariesEmpty)
}

// Achievements degrades a failed badge fetch to an empty list with an
// advisory. An empty list from the server is a legitimate answer.
func Achievements(items []api.Achievement, err error) Result[api.Achievement] {
	if err != nil {
		return Result[api.Achievement]{Advisory: BadgesUnavailable, Fallback: true}
	}
	return Result[api.Achievement]{Items: items}
}

// LocalStudents returns the built-in student profiles.
func LocalStudents() []api.Student {
	return []api.Student{
		localStudent("jon_zhao", "Jon", 4, "lion"),
		localStudent("astrid_zhao", "Astrid", 3, "unicorn"),
	}
}

func localStudent(id, name string, year int, avatar string) api.Student {
	return api.Student{
		ID:                   id,
		Name:                 name,
		YearLevel:            year,
		Avatar:               avatar,
		TargetDailyQuestions: api.DefaultDailyTarget,
	}
}

// LocalDailySummaries returns zeroed daily summaries for the local students.
func LocalDailySummaries() []api.ParentDailySummary {
	students := LocalStudents()
	out := make([]api.ParentDailySummary, 0, len(students))
	for _, s := range students {
		out = append(out, api.ParentDailySummary{
			StudentID:       s.ID,
			StudentName:     s.Name,
			Avatar:          s.Avatar,
			SessionDate:     SampleDay,
			TargetQuestions: s.TargetDailyQuestions,
		})
	}
	return out
}

// LocalWeeklySummaries returns zeroed weekly summaries for the local students.
func LocalWeeklySummaries() []api.ParentWeeklySummary {
	students := LocalStudents()
	out := make([]api.ParentWeeklySummary, 0, len(students))
	for _, s := range students {
		out = append(out, api.ParentWeeklySummary{
			StudentID:   s.ID,
			StudentName: s.Name,
			Avatar:      s.Avatar,
			FromDate:    SampleWeekFrom,
			ToDate:      SampleDay,
		})
	}
	return out
}
