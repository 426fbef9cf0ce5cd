package session

import (
	"context"
	"log/slog"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
)

// Driver executes Machine effects against a Gateway.
type Driver struct {
	gateway api.Gateway
	logger  *slog.Logger
}

// NewDriver returns a Driver. A nil logger uses slog.Default().
func NewDriver(gw api.Gateway, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{gateway: gw, logger: logger}
}

// Execute performs eff and returns the message reporting its outcome.
// ScheduleTick is not executed here and yields nil; the host owns the
// tick cadence.
func (d *Driver) Execute(ctx context.Context, eff Effect) Msg {
	switch eff := eff.(type) {
	case CheckHealth:
		return HealthChecked{Reachable: d.gateway.CheckHealth(ctx)}
	case LoadQuestion:
		return d.loadQuestion(ctx, eff.StudentID)
	case SubmitEvent:
		return d.submitEvent(ctx, eff.Event)
	}
	return nil
}

// Dispatch applies msg and executes every resulting effect synchronously
// until the flow settles. ScheduleTick effects are dropped.
func (d *Driver) Dispatch(ctx context.Context, m *Machine, s State, msg Msg) State {
	queue := []Msg{msg}
	for len(queue) > 0 {
		var effects []Effect
		s, effects = m.Update(s, queue[0])
		queue = queue[1:]
		for _, eff := range effects {
			if next := d.Execute(ctx, eff); next != nil {
				queue = append(queue, next)
			}
		}
	}
	return s
}

func (d *Driver) loadQuestion(ctx context.Context, studentID string) Msg {
	var daily *api.DailySessionStatus

	// Start and status are best-effort; the item fetch decides the outcome.
	if status, err := d.gateway.StartDailySession(ctx, studentID); err != nil {
		d.logger.Debug("start daily session failed", "student", studentID, "error", err)
	} else {
		daily = status
	}
	if status, err := d.gateway.DailyStatus(ctx, studentID); err != nil {
		d.logger.Debug("fetch daily status failed", "student", studentID, "error", err)
	} else {
		daily = status
	}

	item, err := d.gateway.NextItem(ctx, studentID)
	if err != nil {
		d.logger.Warn("fetch next item failed", "student", studentID, "error", err)
		return QuestionLoaded{Daily: daily, Err: err}
	}
	if item != nil {
		d.logger.Debug("question loaded", "student", studentID, "item", item.ItemID, "skill", item.SkillID)
	}
	return QuestionLoaded{Item: item, Daily: daily}
}

func (d *Driver) submitEvent(ctx context.Context, ev api.Event) Msg {
	if err := d.gateway.SubmitEvent(ctx, ev); err != nil {
		d.logger.Warn("submit event failed", "event", ev.EventID, "error", err)
		return EventSubmitted{Event: ev, Err: err}
	}
	d.logger.Info("answer recorded",
		"student", ev.StudentID, "item", ev.ItemID, "correct", ev.IsCorrect, "time_spent", ev.TimeSpent)

	var daily *api.DailySessionStatus
	if status, err := d.gateway.DailyStatus(ctx, ev.StudentID); err != nil {
		d.logger.Debug("refresh daily status failed", "student", ev.StudentID, "error", err)
	} else {
		daily = status
	}
	return EventSubmitted{Event: ev, Daily: daily}
}
