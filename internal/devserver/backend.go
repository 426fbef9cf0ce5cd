// Package devserver is an in-memory implementation of the tutoring
// backend for local runs and integration tests.
package devserver

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrNoItems         = errors.New("no items available")
)

// MissingFieldsError reports an event payload without required fields.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

const dateLayout = "2006-01-02"

type dailySession struct {
	id          string
	studentID   string
	day         string
	completed   int
	target      int
	isCompleted bool
	startedAt   time.Time
	completedAt time.Time
}

type badge struct {
	key         string
	title       string
	description string
	earned      func(s *api.Student, ds *dailySession, correct bool) bool
}

var badges = []badge{
	{"first_correct", "First Correct Answer", "Answered a question correctly",
		func(_ *api.Student, _ *dailySession, correct bool) bool { return correct }},
	{"daily_goal", "Daily Goal", "Finished all of today's questions",
		func(_ *api.Student, ds *dailySession, _ bool) bool { return ds.isCompleted }},
	{"streak_3", "3-Day Streak", "Practiced three days in a row",
		func(s *api.Student, _ *dailySession, _ bool) bool { return s.CurrentStreak >= 3 }},
	{"streak_7", "7-Day Streak", "Practiced seven days in a row",
		func(s *api.Student, _ *dailySession, _ bool) bool { return s.CurrentStreak >= 7 }},
	{"sessions_20", "Dedicated Learner", "Answered 20 questions",
		func(s *api.Student, _ *dailySession, _ bool) bool { return s.TotalSessions >= 20 }},
}

// Backend holds all server state behind one mutex.
type Backend struct {
	mu  sync.Mutex
	now func() time.Time
	rng *rand.Rand

	students     map[string]*api.Student
	sessions     map[string]*dailySession // keyed by student and day
	events       []api.Event
	mastery      map[string]map[string]*api.Mastery
	achievements map[string][]api.Achievement
	issued       map[string]api.Item
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithRand sets the random source used by item generators.
func WithRand(r *rand.Rand) Option {
	return func(b *Backend) { b.rng = r }
}

// WithStudents replaces the seeded students.
func WithStudents(students ...api.Student) Option {
	return func(b *Backend) {
		b.students = make(map[string]*api.Student, len(students))
		for i := range students {
			s := students[i]
			b.students[s.ID] = &s
		}
	}
}

// NewBackend returns a backend seeded with two students.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		now:          time.Now,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		sessions:     make(map[string]*dailySession),
		mastery:      make(map[string]map[string]*api.Mastery),
		achievements: make(map[string][]api.Achievement),
		issued:       make(map[string]api.Item),
	}
	WithStudents(seedStudents(time.Now())...)(b)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func seedStudents(created time.Time) []api.Student {
	return []api.Student{
		{ID: "jon_zhao", Name: "Jon", YearLevel: 4, Avatar: "lion",
			TargetDailyQuestions: api.DefaultDailyTarget, CreatedAt: api.NewTimestamp(created)},
		{ID: "astrid_zhao", Name: "Astrid", YearLevel: 3, Avatar: "unicorn",
			TargetDailyQuestions: api.DefaultDailyTarget, CreatedAt: api.NewTimestamp(created)},
	}
}

func sessionKey(studentID, day string) string {
	return studentID + "|" + day
}

func (b *Backend) today() string {
	return b.now().Format(dateLayout)
}

// Students returns every student ordered by name.
func (b *Backend) Students() []api.Student {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedStudents()
}

func (b *Backend) sortedStudents() []api.Student {
	out := make([]api.Student, 0, len(b.students))
	for _, s := range b.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Student returns one student.
func (b *Backend) Student(id string) (api.Student, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.students[id]
	if !ok {
		return api.Student{}, ErrStudentNotFound
	}
	return *s, nil
}

// StartDailySession creates today's session if it does not exist yet.
func (b *Backend) StartDailySession(studentID string) (api.DailySessionStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.students[studentID]
	if !ok {
		return api.DailySessionStatus{}, ErrStudentNotFound
	}
	ds := b.sessionFor(s, b.now())
	return ds.status(), nil
}

// DailyStatus reports today's progress with the student's streaks. A
// student who has not started today gets a zeroed status.
func (b *Backend) DailyStatus(studentID string) (api.DailySessionStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.students[studentID]
	if !ok {
		return api.DailySessionStatus{}, ErrStudentNotFound
	}

	day := b.today()
	var status api.DailySessionStatus
	if ds, ok := b.sessions[sessionKey(studentID, day)]; ok {
		status = ds.status()
	} else {
		status = api.DailySessionStatus{
			StudentID:       studentID,
			SessionDate:     day,
			TargetQuestions: s.TargetDailyQuestions,
		}
	}
	current, longest := s.CurrentStreak, s.LongestStreak
	status.CurrentStreak = &current
	status.LongestStreak = &longest
	return status, nil
}

// sessionFor returns the session for the day containing at, creating it.
func (b *Backend) sessionFor(s *api.Student, at time.Time) *dailySession {
	day := at.Format(dateLayout)
	key := sessionKey(s.ID, day)
	ds, ok := b.sessions[key]
	if !ok {
		ds = &dailySession{
			id:        uuid.NewString(),
			studentID: s.ID,
			day:       day,
			target:    s.TargetDailyQuestions,
			startedAt: at,
		}
		b.sessions[key] = ds
	}
	return ds
}

func (ds *dailySession) status() api.DailySessionStatus {
	st := api.DailySessionStatus{
		StudentID:          ds.studentID,
		SessionDate:        ds.day,
		CompletedQuestions: ds.completed,
		TargetQuestions:    ds.target,
		IsCompleted:        ds.isCompleted,
		StartedAt:          api.NewTimestamp(ds.startedAt),
	}
	if !ds.completedAt.IsZero() {
		st.CompletedAt = api.NewTimestamp(ds.completedAt)
	}
	return st
}

// NextItem generates an item for the student. With a skill it targets
// that skill at a difficulty from its mastery score; otherwise it picks
// the weakest practiced skill, or an easy item from any skill.
func (b *Backend) NextItem(studentID, skillID string) (api.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.students[studentID]; !ok {
		return api.Item{}, ErrStudentNotFound
	}

	skills := b.mastery[studentID]
	difficulty := 1
	switch {
	case skillID != "":
		if _, ok := generators[skillID]; !ok {
			return api.Item{}, ErrNoItems
		}
		if m, ok := skills[skillID]; ok {
			difficulty = difficultyFor(m.MasteryScore)
		}
	case len(skills) > 0:
		var weakest *api.Mastery
		for _, id := range skillOrder {
			m, ok := skills[id]
			if ok && (weakest == nil || m.MasteryScore < weakest.MasteryScore) {
				weakest = m
			}
		}
		if weakest == nil {
			skillID = skillOrder[b.rng.IntN(len(skillOrder))]
		} else {
			skillID = weakest.SkillID
			difficulty = difficultyFor(weakest.MasteryScore)
		}
	default:
		skillID = skillOrder[b.rng.IntN(len(skillOrder))]
	}

	item := generators[skillID](b.rng, difficulty)
	b.issued[item.ItemID] = item
	return item, nil
}

// RecordEvent stores an answer and updates mastery, today's session,
// the student's streak and badges.
func (b *Backend) RecordEvent(ev api.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.students[ev.StudentID]
	if !ok {
		return ErrStudentNotFound
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = api.NewTimestamp(b.now())
	}
	at := ev.Timestamp.In(b.now().Location())
	b.events = append(b.events, ev)

	if item, ok := b.issued[ev.ItemID]; ok {
		b.updateMastery(ev, item.SkillID, at)
	}

	ds := b.sessionFor(s, at)
	ds.completed++
	if !ds.isCompleted && ds.completed >= ds.target {
		ds.isCompleted = true
		ds.completedAt = at
	}

	updateStreak(s, at)
	b.unlockBadges(s, ds, ev.IsCorrect, at)
	return nil
}

func (b *Backend) updateMastery(ev api.Event, skillID string, at time.Time) {
	skills, ok := b.mastery[ev.StudentID]
	if !ok {
		skills = make(map[string]*api.Mastery)
		b.mastery[ev.StudentID] = skills
	}
	m, ok := skills[skillID]
	if !ok {
		m = &api.Mastery{StudentID: ev.StudentID, SkillID: skillID}
		skills[skillID] = m
	}
	m.TotalAttempts++
	if ev.IsCorrect {
		m.CorrectAttempts++
	}
	m.MasteryScore = float64(m.CorrectAttempts) / float64(m.TotalAttempts)
	m.LastUpdated = api.NewTimestamp(at)
}

// updateStreak counts every answer as a session and extends the streak
// once per calendar day.
func updateStreak(s *api.Student, at time.Time) {
	s.TotalSessions++
	day := at.Format(dateLayout)

	if s.LastPracticeDate.Valid {
		last := s.LastPracticeDate.Time.Format(dateLayout)
		if last == day {
			return
		}
		yesterday := at.AddDate(0, 0, -1).Format(dateLayout)
		if last == yesterday {
			s.CurrentStreak++
		} else {
			s.CurrentStreak = 1
		}
	} else {
		s.CurrentStreak = 1
	}
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	s.LastPracticeDate = api.NewDate(at)
}

func (b *Backend) unlockBadges(s *api.Student, ds *dailySession, correct bool, at time.Time) {
	have := make(map[string]bool)
	for _, a := range b.achievements[s.ID] {
		have[a.BadgeKey] = true
	}
	for _, bd := range badges {
		if have[bd.key] || !bd.earned(s, ds, correct) {
			continue
		}
		b.achievements[s.ID] = append(b.achievements[s.ID], api.Achievement{
			ID:          uuid.NewString(),
			StudentID:   s.ID,
			BadgeKey:    bd.key,
			Title:       bd.title,
			Description: bd.description,
			UnlockedAt:  api.NewTimestamp(at),
		})
	}
}

// Mastery returns the student's per-skill mastery ordered by skill.
// Unknown students have no mastery.
func (b *Backend) Mastery(studentID string) []api.Mastery {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]api.Mastery, 0, len(b.mastery[studentID]))
	for _, m := range b.mastery[studentID] {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out
}

// Achievements returns the student's badges, newest first.
func (b *Backend) Achievements(studentID string) ([]api.Achievement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.students[studentID]; !ok {
		return nil, ErrStudentNotFound
	}
	out := append([]api.Achievement{}, b.achievements[studentID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnlockedAt.After(out[j].UnlockedAt.Time) })
	return out, nil
}

// ParentDailySummaries aggregates today for every student, ordered by name.
func (b *Backend) ParentDailySummaries() []api.ParentDailySummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	day := b.today()
	students := b.sortedStudents()
	out := make([]api.ParentDailySummary, 0, len(students))
	for _, s := range students {
		out = append(out, b.dailySummary(b.students[s.ID], day))
	}
	return out
}

// ParentDailySummary aggregates today for one student.
func (b *Backend) ParentDailySummary(studentID string) (api.ParentDailySummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.students[studentID]
	if !ok {
		return api.ParentDailySummary{}, ErrStudentNotFound
	}
	return b.dailySummary(s, b.today()), nil
}

func (b *Backend) dailySummary(s *api.Student, day string) api.ParentDailySummary {
	var total, correct int
	var spent float64
	for _, ev := range b.events {
		if ev.StudentID != s.ID || b.dayOf(ev) != day {
			continue
		}
		total++
		spent += ev.TimeSpent
		if ev.IsCorrect {
			correct++
		}
	}

	sum := api.ParentDailySummary{
		StudentID:       s.ID,
		StudentName:     s.Name,
		Avatar:          s.Avatar,
		SessionDate:     day,
		TargetQuestions: s.TargetDailyQuestions,
		EventsTotal:     total,
		CorrectAnswers:  correct,
		CurrentStreak:   s.CurrentStreak,
		LongestStreak:   s.LongestStreak,
		BadgeCount:      len(b.achievements[s.ID]),
	}
	if total > 0 {
		sum.AccuracyPercent = round(float64(correct)/float64(total)*100, 1)
		sum.AverageTimeSpentSeconds = round(spent/float64(total), 2)
	}
	if ds, ok := b.sessions[sessionKey(s.ID, day)]; ok {
		sum.CompletedQuestions = ds.completed
		sum.TargetQuestions = ds.target
		sum.IsCompleted = ds.isCompleted
	}
	return sum
}

// ParentWeeklySummaries aggregates the last seven days, today included.
func (b *Backend) ParentWeeklySummaries() []api.ParentWeeklySummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	to := now.Format(dateLayout)
	from := now.AddDate(0, 0, -6).Format(dateLayout)
	inRange := func(day string) bool { return day >= from && day <= to }

	students := b.sortedStudents()
	out := make([]api.ParentWeeklySummary, 0, len(students))
	for _, st := range students {
		s := b.students[st.ID]
		var total, correct int
		for _, ev := range b.events {
			if ev.StudentID == s.ID && inRange(b.dayOf(ev)) {
				total++
				if ev.IsCorrect {
					correct++
				}
			}
		}
		var completedDays, completedQuestions int
		for _, ds := range b.sessions {
			if ds.studentID != s.ID || !inRange(ds.day) {
				continue
			}
			completedQuestions += ds.completed
			if ds.isCompleted {
				completedDays++
			}
		}

		sum := api.ParentWeeklySummary{
			StudentID:               s.ID,
			StudentName:             s.Name,
			Avatar:                  s.Avatar,
			FromDate:                from,
			ToDate:                  to,
			CompletedDays:           completedDays,
			TotalCompletedQuestions: completedQuestions,
			TotalEvents:             total,
			CurrentStreak:           s.CurrentStreak,
			LongestStreak:           s.LongestStreak,
		}
		if total > 0 {
			sum.AccuracyPercent = round(float64(correct)/float64(total)*100, 1)
		}
		out = append(out, sum)
	}
	return out
}

func (b *Backend) dayOf(ev api.Event) string {
	return ev.Timestamp.In(b.now().Location()).Format(dateLayout)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Stats is a snapshot of backend counters for logging.
type Stats struct {
	Students int
	Events   int
	Issued   int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d students, %d events, %d items issued", s.Students, s.Events, s.Issued)
}

// Stats returns current counters.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{Students: len(b.students), Events: len(b.events), Issued: len(b.issued)}
}
