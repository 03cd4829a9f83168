package anim

import (
	"math"
	"time"

	"scaleview/pkg/geom"
)

// DefaultDeceleration is the fling friction in pixels per second squared.
const DefaultDeceleration = 2500.0

// Bounds limits the scroll offsets a fling may reach.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

func (b Bounds) clamp(p geom.Point) geom.Point {
	return geom.Point{
		X: math.Max(b.MinX, math.Min(b.MaxX, p.X)),
		Y: math.Max(b.MinY, math.Min(b.MaxY, p.Y)),
	}
}

// Flinger moves a scroll offset along a straight line with constant
// deceleration until it stops or both axes settle on their final position.
// Positions never leave the bounds, so every fling ends in a bounded time.
type Flinger struct {
	clock Clock
	decel float64

	status    Status
	startTime time.Time
	duration  time.Duration
	origin    geom.Point
	final     geom.Point
	speed     float64
	dir       geom.Point
	bounds    Bounds

	curr         geom.Point
	currVelocity float64
}

// NewFlinger returns an idle flinger. A non-positive deceleration uses
// DefaultDeceleration.
func NewFlinger(clock Clock, deceleration float64) *Flinger {
	if deceleration <= 0 {
		deceleration = DefaultDeceleration
	}
	return &Flinger{clock: clock, decel: deceleration}
}

// Start begins a fling from origin with the given velocity in pixels per
// second. The origin is first pulled inside the bounds. A zero velocity
// finishes immediately without ever running.
func (f *Flinger) Start(origin, velocity geom.Point, b Bounds) {
	f.ForceFinish()

	if b.MaxX < b.MinX {
		b.MaxX = b.MinX
	}
	if b.MaxY < b.MinY {
		b.MaxY = b.MinY
	}
	f.bounds = b
	f.origin = b.clamp(origin)
	f.curr = f.origin
	f.final = f.origin
	f.startTime = f.clock.Now()

	f.speed = velocity.Length()
	f.dir = geom.Point{}
	if f.speed == 0 {
		f.status = Finished
		f.currVelocity = 0
		f.duration = 0
		return
	}

	f.dir = velocity.Scale(1 / f.speed)
	seconds := f.speed / f.decel
	f.duration = time.Duration(seconds * float64(time.Second))
	distance := f.speed * seconds / 2
	f.final = b.clamp(f.origin.Add(f.dir.Scale(distance)))
	f.currVelocity = f.speed
	f.status = Running
}

// ForceFinish stops the fling at its current position.
func (f *Flinger) ForceFinish() {
	if f.status == Running {
		f.status = Finished
		f.currVelocity = 0
	}
}

// Compute advances the fling to the current time. It returns true if the
// position was updated during this call, including the final step, and false
// once the fling is finished.
func (f *Flinger) Compute() bool {
	if f.status != Running {
		return false
	}

	elapsed := f.clock.Now().Sub(f.startTime)
	if elapsed >= f.duration {
		f.finish()
		return true
	}

	t := elapsed.Seconds()
	travelled := f.speed*t - f.decel*t*t/2
	f.curr = f.bounds.clamp(f.origin.Add(f.dir.Scale(travelled)))
	f.currVelocity = f.speed - f.decel*t
	if f.curr == f.final {
		f.status = Finished
	}
	return true
}

func (f *Flinger) finish() {
	f.curr = f.final
	f.currVelocity = 0
	f.status = Finished
}

// Position is the current scroll offset.
func (f *Flinger) Position() geom.Point {
	return f.curr
}

// Final is where the fling will come to rest.
func (f *Flinger) Final() geom.Point {
	return f.final
}

// Velocity is the current speed in pixels per second.
func (f *Flinger) Velocity() float64 {
	return f.currVelocity
}

// Direction is the unit vector of the fling velocity.
func (f *Flinger) Direction() geom.Point {
	return f.dir
}

// Bounds returns the bounds of the current fling.
func (f *Flinger) Bounds() Bounds {
	return f.bounds
}

// Status reports the lifecycle state.
func (f *Flinger) Status() Status {
	return f.status
}

// Running reports whether a fling is in progress.
func (f *Flinger) Running() bool {
	return f.status == Running
}
