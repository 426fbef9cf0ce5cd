package api

import "context"

//go:generate mockgen -source=gateway.go -destination=../mocks/api/mock_gateway.go -package=mock_api

// Gateway is the typed boundary to the practice backend.
type Gateway interface {
	FetchStudents(ctx context.Context) ([]Student, error)
	FetchStudent(ctx context.Context, studentID string) (*Student, error)

	// StartDailySession is safe to call repeatedly; it returns the existing
	// status when today's session already exists.
	StartDailySession(ctx context.Context, studentID string) (*DailySessionStatus, error)
	DailyStatus(ctx context.Context, studentID string) (*DailySessionStatus, error)

	NextItem(ctx context.Context, studentID string) (*Item, error)
	SubmitEvent(ctx context.Context, event Event) error

	Mastery(ctx context.Context, studentID string) ([]Mastery, error)
	Achievements(ctx context.Context, studentID string) ([]Achievement, error)

	ParentDailySummaries(ctx context.Context) ([]ParentDailySummary, error)
	ParentDailySummary(ctx context.Context, studentID string) (*ParentDailySummary, error)
	ParentWeeklySummaries(ctx context.Context) ([]ParentWeeklySummary, error)

	// CheckHealth reports whether the backend answered its health probe
	// with status "ok". It never returns an error.
	CheckHealth(ctx context.Context) bool
}
