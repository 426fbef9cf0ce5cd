package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
	"github.com/zxyasa/ai-zhao-tutor/internal/session"
)

// Reporter prints backend data as plain colored text.
type Reporter struct {
	stdoutWriter io.Writer
	bold         *color.Color
	dim          *color.Color
	green        *color.Color
	red          *color.Color
	yellow       *color.Color
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		stdoutWriter: out,
		bold:         color.New(color.Bold),
		dim:          color.New(color.Faint),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
		yellow:       color.New(color.FgYellow),
	}
}

func (r *Reporter) advisory(msg string) {
	if msg != "" {
		r.yellow.Fprintf(r.stdoutWriter, "⚠ %s\n\n", msg)
	}
}

// Students lists the students the picker would show.
func (r *Reporter) Students(res fallback.Result[api.Student]) {
	r.advisory(res.Advisory)
	for _, s := range res.Items {
		fmt.Fprintf(r.stdoutWriter, "%s  ", api.AvatarEmoji(s.Avatar))
		r.bold.Fprintf(r.stdoutWriter, "%-10s", s.Name)
		fmt.Fprintf(r.stdoutWriter, " Year %d · 🔥 %d days · %d a day  ", s.YearLevel, s.CurrentStreak, s.TargetDailyQuestions)
		r.dim.Fprintln(r.stdoutWriter, s.ID)
	}
}

// ParentDaily prints today's per-student summaries.
func (r *Reporter) ParentDaily(res fallback.Result[api.ParentDailySummary]) {
	r.advisory(res.Advisory)
	for _, s := range res.Items {
		r.bold.Fprintf(r.stdoutWriter, "%s %s", api.AvatarEmoji(s.Avatar), s.StudentName)
		r.dim.Fprintf(r.stdoutWriter, "  %s\n", s.SessionDate)
		fmt.Fprintf(r.stdoutWriter, "  Progress %d/%d", s.CompletedQuestions, s.TargetQuestions)
		if s.IsCompleted {
			r.green.Fprint(r.stdoutWriter, "  ✓ goal reached")
		}
		fmt.Fprintln(r.stdoutWriter)
		fmt.Fprintf(r.stdoutWriter, "  Accuracy %.1f%%   Answers %d   Average time %.1fs\n",
			s.AccuracyPercent, s.EventsTotal, s.AverageTimeSpentSeconds)
		fmt.Fprintf(r.stdoutWriter, "  Streak %d days (best %d) · Badges %d\n\n",
			s.CurrentStreak, s.LongestStreak, s.BadgeCount)
	}
}

// ParentWeekly prints the trailing seven-day summaries.
func (r *Reporter) ParentWeekly(res fallback.Result[api.ParentWeeklySummary]) {
	r.advisory(res.Advisory)
	for _, s := range res.Items {
		r.bold.Fprintf(r.stdoutWriter, "%s %s", api.AvatarEmoji(s.Avatar), s.StudentName)
		r.dim.Fprintf(r.stdoutWriter, "  %s – %s\n", s.FromDate, s.ToDate)
		fmt.Fprintf(r.stdoutWriter, "  Goal days %d/7   Accuracy %.1f%%\n", s.CompletedDays, s.AccuracyPercent)
		fmt.Fprintf(r.stdoutWriter, "  Questions completed %d   Answers %d\n", s.TotalCompletedQuestions, s.TotalEvents)
		fmt.Fprintf(r.stdoutWriter, "  Streak %d days (best %d)\n\n", s.CurrentStreak, s.LongestStreak)
	}
}

// Stats prints one student's day, skill mastery and badges. A nil daily
// status or a mastery error is reported inline.
func (r *Reporter) Stats(daily *api.DailySessionStatus, mastery []api.Mastery, masteryErr error, badges fallback.Result[api.Achievement]) {
	r.bold.Fprintln(r.stdoutWriter, "Today")
	if daily == nil {
		r.dim.Fprintln(r.stdoutWriter, "  No status available")
	} else {
		fmt.Fprintf(r.stdoutWriter, "  %d/%d questions", daily.CompletedQuestions, daily.TargetQuestions)
		if daily.IsCompleted {
			r.green.Fprint(r.stdoutWriter, "  ✓ goal reached")
		}
		fmt.Fprintln(r.stdoutWriter)
		if daily.CurrentStreak != nil {
			fmt.Fprintf(r.stdoutWriter, "  🔥 %d day streak\n", *daily.CurrentStreak)
		}
	}

	fmt.Fprintln(r.stdoutWriter)
	r.bold.Fprintln(r.stdoutWriter, "Skills")
	switch {
	case masteryErr != nil:
		r.red.Fprintf(r.stdoutWriter, "  %s\n", api.UserMessage(masteryErr))
	case len(mastery) == 0:
		r.dim.Fprintln(r.stdoutWriter, "  No practice yet")
	default:
		for _, m := range mastery {
			fmt.Fprintf(r.stdoutWriter, "  %-22s %3d%%  %-10s %d/%d\n",
				m.SkillID, m.Percentage(), m.Level(), m.CorrectAttempts, m.TotalAttempts)
		}
	}

	fmt.Fprintln(r.stdoutWriter)
	r.bold.Fprintln(r.stdoutWriter, "Badges")
	r.advisory(badges.Advisory)
	if len(badges.Items) == 0 && !badges.Fallback {
		r.dim.Fprintln(r.stdoutWriter, "  No badges yet")
	}
	for _, a := range badges.Items {
		fmt.Fprintf(r.stdoutWriter, "  🏅 %s", a.Title)
		r.dim.Fprintf(r.stdoutWriter, "  %s\n", a.Description)
	}
}

// Health prints the probe result for url.
func (r *Reporter) Health(url string, reachable bool) {
	if reachable {
		r.green.Fprintf(r.stdoutWriter, "✓ backend reachable at %s\n", url)
		return
	}
	r.red.Fprintf(r.stdoutWriter, "✗ %s (%s)\n", session.ErrBackendUnreachable, url)
}
