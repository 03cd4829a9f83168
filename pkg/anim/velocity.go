package anim

import (
	"time"

	"scaleview/pkg/geom"
)

const (
	// velocityWindow is how far back samples count towards the velocity.
	velocityWindow = 100 * time.Millisecond
	maxSamples     = 20
)

type sample struct {
	at time.Time
	p  geom.Point
}

// VelocityTracker estimates pointer velocity from recent positions. Hosts
// without a native fling gesture feed it drag events and read the velocity
// when the drag ends.
type VelocityTracker struct {
	clock   Clock
	samples []sample
}

// NewVelocityTracker creates a tracker reading time from clock.
func NewVelocityTracker(clock Clock) *VelocityTracker {
	return &VelocityTracker{clock: clock}
}

// Reset drops every sample.
func (t *VelocityTracker) Reset() {
	t.samples = t.samples[:0]
}

// Add records the pointer at p now.
func (t *VelocityTracker) Add(p geom.Point) {
	if len(t.samples) == maxSamples {
		copy(t.samples, t.samples[1:])
		t.samples = t.samples[:maxSamples-1]
	}
	t.samples = append(t.samples, sample{at: t.clock.Now(), p: p})
}

// Velocity returns the pointer velocity in pixels per second over the
// recent window. A pointer that stopped before now has zero velocity.
func (t *VelocityTracker) Velocity() geom.Point {
	if len(t.samples) < 2 {
		return geom.Point{}
	}
	now := t.clock.Now()
	last := t.samples[len(t.samples)-1]
	if now.Sub(last.at) > velocityWindow {
		return geom.Point{}
	}

	first := last
	for i := len(t.samples) - 2; i >= 0; i-- {
		if last.at.Sub(t.samples[i].at) > velocityWindow {
			break
		}
		first = t.samples[i]
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geom.Point{}
	}
	return last.p.Sub(first.p).Scale(1 / dt)
}
