// Package anim drives the time-based animations of the pan/zoom engine: a
// decelerating fling over pixel scroll offsets and an eased zoom step.
//
// Nothing here schedules work. The host calls Compute once per frame and the
// animation reads the current time from its Clock.
package anim

import "time"

// Clock reports the current time to animations.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Tests and headless simulations use it
// to step animations frame by frame.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Status is the lifecycle of one animation.
type Status int

const (
	// Idle means the animation was never started.
	Idle Status = iota
	Running
	Finished
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}
