package anim

import (
	"time"

	"scaleview/pkg/geom"
)

// DefaultZoomDuration is the length of one zoom step.
const DefaultZoomDuration = 200 * time.Millisecond

// Zoomer animates one zoom step from a start scale towards
// startScale*(1+delta), easing with Decelerate.
type Zoomer struct {
	clock    Clock
	duration time.Duration
	interp   Interpolator

	status     Status
	startTime  time.Time
	startScale float64
	delta      float64
	focal      geom.Point
	current    float64
}

// NewZoomer returns an idle zoomer. A non-positive duration uses
// DefaultZoomDuration.
func NewZoomer(clock Clock, duration time.Duration) *Zoomer {
	if duration <= 0 {
		duration = DefaultZoomDuration
	}
	return &Zoomer{
		clock:    clock,
		duration: duration,
		interp:   Decelerate,
	}
}

// Start begins a zoom step, finishing any step in progress first.
// delta is the fraction of startScale to add (negative zooms out).
func (z *Zoomer) Start(startScale, delta float64, focal geom.Point) {
	z.ForceFinish()
	z.status = Running
	z.startTime = z.clock.Now()
	z.startScale = startScale
	z.delta = delta
	z.focal = focal
	z.current = 0
}

// ForceFinish stops the animation where it is.
func (z *Zoomer) ForceFinish() {
	if z.status == Running {
		z.status = Finished
	}
}

// Compute advances the animation to the current time. It returns true if the
// scale changed during this call, including the final step, and false once
// the animation is finished.
func (z *Zoomer) Compute() bool {
	if z.status != Running {
		return false
	}

	elapsed := z.clock.Now().Sub(z.startTime)
	if elapsed >= z.duration {
		z.status = Finished
		z.current = z.delta
		return true
	}

	t := float64(elapsed) / float64(z.duration)
	z.current = z.delta * z.interp(t)
	return true
}

// Scale is the scale the animation has reached.
func (z *Zoomer) Scale() float64 {
	return z.startScale * (1 + z.current)
}

// Focal is the point held stationary during the step.
func (z *Zoomer) Focal() geom.Point {
	return z.focal
}

// Status reports the lifecycle state.
func (z *Zoomer) Status() Status {
	return z.status
}

// Running reports whether a step is in progress.
func (z *Zoomer) Running() bool {
	return z.status == Running
}
