// Package timer tracks elapsed wall-clock time for a single question.
//
// A Timer is a value owned by one question. Periodic updates are driven
// externally: whoever schedules ticks passes the timer's ID back with each
// tick, and ticks carrying any other ID are ignored. Creating a new Timer
// with a fresh ID therefore invalidates every tick still in flight for the
// previous question.
package timer

import (
	"fmt"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Timer measures elapsed time from an origin instant.
type Timer struct {
	id      uint64
	origin  time.Time
	elapsed time.Duration
	running bool
}

// New returns a stopped timer with the given ID.
func New(id uint64) Timer {
	return Timer{id: id}
}

// ID returns the timer's identity.
func (t Timer) ID() uint64 { return t.id }

// Running reports whether the timer has been started and not stopped.
func (t Timer) Running() bool { return t.running }

// Elapsed returns the last computed elapsed time.
func (t Timer) Elapsed() time.Duration { return t.elapsed }

// Start records now as the origin and resets elapsed to zero.
func (t *Timer) Start(now time.Time) {
	t.origin = now
	t.elapsed = 0
	t.running = true
}

// Tick recomputes elapsed from the origin. It returns false without
// changing anything if id is not this timer's ID or the timer is stopped.
func (t *Timer) Tick(id uint64, now time.Time) bool {
	if id != t.id || !t.running {
		return false
	}
	t.elapsed = since(t.origin, now)
	return true
}

// Stop freezes elapsed at now minus the origin and returns it.
// Stopping an already stopped timer returns the frozen value unchanged.
func (t *Timer) Stop(now time.Time) time.Duration {
	if !t.running {
		return t.elapsed
	}
	t.elapsed = since(t.origin, now)
	t.running = false
	return t.elapsed
}

func since(origin, now time.Time) time.Duration {
	d := now.Sub(origin)
	if d < 0 {
		return 0
	}
	return d
}

// Format renders d as minutes and zero-padded seconds, e.g. "1:05".
func Format(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
