package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var origin = time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)

func TestStartResetsElapsed(t *testing.T) {
	tm := New(1)
	tm.Start(origin)
	tm.Tick(1, origin.Add(5*time.Second))
	assert.Equal(t, 5*time.Second, tm.Elapsed())

	tm.Start(origin.Add(10 * time.Second))
	assert.Equal(t, time.Duration(0), tm.Elapsed())
	assert.True(t, tm.Running())
}

func TestStopComputesFromOrigin(t *testing.T) {
	tm := New(1)
	tm.Start(origin)
	tm.Tick(1, origin.Add(3*time.Second))

	// Stopping between ticks uses the precise instant, not the last tick.
	got := tm.Stop(origin.Add(3*time.Second + 400*time.Millisecond))
	assert.Equal(t, 3400*time.Millisecond, got)
	assert.False(t, tm.Running())
}

func TestStopIsIdempotent(t *testing.T) {
	tm := New(1)
	tm.Start(origin)

	first := tm.Stop(origin.Add(2 * time.Second))
	second := tm.Stop(origin.Add(9 * time.Second))

	assert.Equal(t, first, second)
	assert.Equal(t, 2*time.Second, tm.Elapsed())
}

func TestStaleTickIgnored(t *testing.T) {
	tm := New(2)
	tm.Start(origin)

	assert.False(t, tm.Tick(1, origin.Add(7*time.Second)))
	assert.Equal(t, time.Duration(0), tm.Elapsed())

	assert.True(t, tm.Tick(2, origin.Add(time.Second)))
	assert.Equal(t, time.Second, tm.Elapsed())
}

func TestTickAfterStopIgnored(t *testing.T) {
	tm := New(1)
	tm.Start(origin)
	tm.Stop(origin.Add(time.Second))

	assert.False(t, tm.Tick(1, origin.Add(4*time.Second)))
	assert.Equal(t, time.Second, tm.Elapsed())
}

func TestClockSkewClampsToZero(t *testing.T) {
	tm := New(1)
	tm.Start(origin)
	assert.Equal(t, time.Duration(0), tm.Stop(origin.Add(-time.Second)))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{65 * time.Second, "1:05"},
		{10*time.Minute + 59*time.Second + 900*time.Millisecond, "10:59"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Format(tc.d), "Format(%s)", tc.d)
	}
}
