package api

import (
	"encoding/json"

	"github.com/zxyasa/ai-zhao-tutor/internal/answer"
)

// DefaultDailyTarget is the number of questions per day assumed when the
// backend does not say otherwise.
const DefaultDailyTarget = 10

// Student is a learner profile.
type Student struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	YearLevel            int          `json:"year_level"`
	Avatar               string       `json:"avatar"`
	TargetDailyQuestions int          `json:"target_daily_questions"`
	CurrentStreak        int          `json:"current_streak"`
	LongestStreak        int          `json:"longest_streak"`
	LastPracticeDate     NullableDate `json:"last_practice_date"`
	TotalSessions        int          `json:"total_sessions"`
	CreatedAt            Timestamp    `json:"created_at"`
}

// UnmarshalJSON fills defaults for fields older payloads omit.
func (s *Student) UnmarshalJSON(data []byte) error {
	type plain Student
	p := plain{
		Avatar:               "star",
		TargetDailyQuestions: DefaultDailyTarget,
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = NewTimestamp(nowFunc())
	}
	*s = Student(p)
	return nil
}

// Item is one question instance.
type Item struct {
	ItemID         string           `json:"item_id"`
	SkillID        string           `json:"skill_id"`
	QuestionText   string           `json:"question_text"`
	QuestionType   string           `json:"question_type"`
	Difficulty     int              `json:"difficulty"`
	Parameters     map[string]Value `json:"parameters"`
	CorrectAnswer  string           `json:"correct_answer"`
	Hint           string           `json:"hint"`
	Explanation    string           `json:"explanation"`
	ValidationRule string           `json:"validation_rule"`
}

// Rule returns the item's validation rule, defaulting to exact.
func (i Item) Rule() answer.Rule {
	return answer.ParseRule(i.ValidationRule)
}

// Event records one submitted answer.
type Event struct {
	EventID       string    `json:"event_id"`
	StudentID     string    `json:"student_id"`
	ItemID        string    `json:"item_id"`
	AnswerGiven   string    `json:"answer_given"`
	IsCorrect     bool      `json:"is_correct"`
	TimeSpent     float64   `json:"time_spent"`
	HintRequested bool      `json:"hint_requested"`
	Timestamp     Timestamp `json:"timestamp"`
}

// DailySessionStatus is a student's progress toward today's target.
type DailySessionStatus struct {
	StudentID          string    `json:"student_id"`
	SessionDate        string    `json:"session_date"`
	CompletedQuestions int       `json:"completed_questions"`
	TargetQuestions    int       `json:"target_questions"`
	IsCompleted        bool      `json:"is_completed"`
	StartedAt          Timestamp `json:"started_at"`
	CompletedAt        Timestamp `json:"completed_at"`
	CurrentStreak      *int      `json:"current_streak,omitempty"`
	LongestStreak      *int      `json:"longest_streak,omitempty"`
}

// Mastery is a student's standing on one skill.
type Mastery struct {
	StudentID       string    `json:"student_id"`
	SkillID         string    `json:"skill_id"`
	TotalAttempts   int       `json:"total_attempts"`
	CorrectAttempts int       `json:"correct_attempts"`
	MasteryScore    float64   `json:"mastery_score"`
	LastUpdated     Timestamp `json:"last_updated"`
}

// Percentage returns the mastery score as a whole percentage.
func (m Mastery) Percentage() int {
	return int(m.MasteryScore * 100)
}

// Level names the band the mastery score falls in.
func (m Mastery) Level() string {
	switch {
	case m.MasteryScore < 0.3:
		return "Beginner"
	case m.MasteryScore < 0.6:
		return "Developing"
	case m.MasteryScore < 0.8:
		return "Proficient"
	case m.MasteryScore <= 1.0:
		return "Mastered"
	default:
		return "Unknown"
	}
}

// Achievement is an unlocked badge.
type Achievement struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	BadgeKey    string    `json:"badge_key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UnlockedAt  Timestamp `json:"unlocked_at"`
}

// ParentDailySummary aggregates one student's day for a parent.
type ParentDailySummary struct {
	StudentID               string  `json:"student_id"`
	StudentName             string  `json:"student_name"`
	Avatar                  string  `json:"avatar"`
	SessionDate             string  `json:"session_date"`
	CompletedQuestions      int     `json:"completed_questions"`
	TargetQuestions         int     `json:"target_questions"`
	IsCompleted             bool    `json:"is_completed"`
	EventsTotal             int     `json:"events_total"`
	CorrectAnswers          int     `json:"correct_answers"`
	AccuracyPercent         float64 `json:"accuracy_percent"`
	AverageTimeSpentSeconds float64 `json:"average_time_spent_seconds"`
	CurrentStreak           int     `json:"current_streak"`
	LongestStreak           int     `json:"longest_streak"`
	BadgeCount              int     `json:"badge_count"`
}

// ParentWeeklySummary aggregates one student's last seven days.
type ParentWeeklySummary struct {
	StudentID               string  `json:"student_id"`
	StudentName             string  `json:"student_name"`
	Avatar                  string  `json:"avatar"`
	FromDate                string  `json:"from_date"`
	ToDate                  string  `json:"to_date"`
	CompletedDays           int     `json:"completed_days"`
	TotalCompletedQuestions int     `json:"total_completed_questions"`
	TotalEvents             int     `json:"total_events"`
	AccuracyPercent         float64 `json:"accuracy_percent"`
	CurrentStreak           int     `json:"current_streak"`
	LongestStreak           int     `json:"longest_streak"`
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string `json:"status"`
}

// AvatarEmoji maps an avatar tag to its display glyph.
func AvatarEmoji(tag string) string {
	switch tag {
	case "lion":
		return "🦁"
	case "unicorn":
		return "🦄"
	case "fox":
		return "🦊"
	case "owl":
		return "🦉"
	default:
		return "⭐"
	}
}
