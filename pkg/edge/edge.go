// Package edge models the overscroll glow shown at a viewport edge when the
// user drags or flings past the content boundary.
//
// An Effect is pulled while a drag overshoots, absorbs the velocity of a fling
// that hits the edge, and recedes once released. The host draws it from
// Alpha and Scale until Finished reports true.
package edge

import (
	"math"
	"time"

	"scaleview/pkg/anim"
)

const (
	recedeTime    = 600 * time.Millisecond
	pullTime      = 167 * time.Millisecond
	pullDecayTime = 2000 * time.Millisecond

	maxAlpha     = 0.5
	maxGlowScale = 2.0
	glowAlphaAbs = 0.3

	pullAlphaFactor    = 0.8
	minVelocity        = 100.0
	maxVelocity        = 10000.0
	velocityGlowFactor = 6.0
)

type state int

const (
	stateIdle state = iota
	statePull
	stateAbsorb
	stateRecede
	statePullDecay
)

// Effect is the glow of one edge.
type Effect struct {
	clock anim.Clock

	state    state
	start    time.Time
	duration time.Duration

	alpha, alphaStart, alphaFinish float64
	scale, scaleStart, scaleFinish float64
	pullDistance                   float64

	width, height float64
}

// New returns a finished effect.
func New(clock anim.Clock) *Effect {
	return &Effect{clock: clock}
}

// SetSize sets the size of the glow area; height is measured away from the
// edge.
func (e *Effect) SetSize(width, height float64) {
	e.width = width
	e.height = height
}

// Finished reports whether the effect has nothing left to draw.
func (e *Effect) Finished() bool {
	return e.state == stateIdle
}

// Alpha is the current glow opacity in [0, 0.5].
func (e *Effect) Alpha() float64 {
	return e.alpha
}

// Scale is the current glow depth relative to the glow area height.
func (e *Effect) Scale() float64 {
	return e.scale
}

// OnPull accumulates a drag overshoot. delta is the overshoot distance as a
// fraction of the viewport dimension; its sign is ignored.
func (e *Effect) OnPull(delta float64) {
	now := e.clock.Now()
	if e.state == statePullDecay && now.Sub(e.start) < e.duration {
		return
	}
	e.state = statePull
	e.start = now
	e.duration = pullTime

	e.pullDistance += delta
	abs := math.Abs(delta)
	e.alpha = math.Min(maxAlpha, e.alpha+abs*pullAlphaFactor)
	e.alphaStart = e.alpha

	if e.pullDistance == 0 || e.height <= 0 {
		e.scale = 0
	} else {
		s := math.Max(0, 1-1/math.Sqrt(math.Abs(e.pullDistance)*e.height)-0.3) / 0.7
		e.scale = math.Min(s, maxGlowScale)
	}
	e.scaleStart = e.scale
	e.alphaFinish = e.alpha
	e.scaleFinish = e.scale
}

// OnRelease starts receding a pulled glow.
func (e *Effect) OnRelease() {
	e.pullDistance = 0
	if e.state != statePull && e.state != statePullDecay {
		return
	}
	e.recede()
}

// OnAbsorb converts the velocity of a fling hitting the edge, in pixels per
// second, into a glow.
func (e *Effect) OnAbsorb(velocity float64) {
	v := math.Min(math.Max(math.Abs(velocity), minVelocity), maxVelocity)

	e.state = stateAbsorb
	e.start = e.clock.Now()
	e.duration = time.Duration((0.15 + v*0.02) * float64(time.Millisecond))

	e.alphaStart = glowAlphaAbs
	e.scaleStart = math.Max(e.scale, 0)
	e.scaleFinish = math.Min(0.025+v*(v/100)*0.00015/2, 1)
	e.alphaFinish = math.Max(e.alphaStart, math.Min(v*velocityGlowFactor*0.00001, maxAlpha))
	e.alpha = e.alphaStart
	e.scale = e.scaleStart
}

// Finish drops the effect immediately.
func (e *Effect) Finish() {
	e.state = stateIdle
	e.alpha = 0
	e.scale = 0
	e.pullDistance = 0
}

// Update advances the effect to the current time and reports whether it still
// needs to be drawn.
func (e *Effect) Update() bool {
	if e.state == stateIdle {
		return false
	}

	t := 1.0
	if e.duration > 0 {
		t = math.Min(float64(e.clock.Now().Sub(e.start))/float64(e.duration), 1)
	}
	k := anim.Decelerate(t)
	e.alpha = e.alphaStart + (e.alphaFinish-e.alphaStart)*k
	e.scale = e.scaleStart + (e.scaleFinish-e.scaleStart)*k

	if t >= 0.999 {
		switch e.state {
		case stateAbsorb:
			e.recede()
		case statePull:
			e.state = statePullDecay
			e.start = e.clock.Now()
			e.duration = pullDecayTime
			e.alphaStart = e.alpha
			e.scaleStart = e.scale
			e.alphaFinish = 0
			e.scaleFinish = 0
		case statePullDecay:
			e.recede()
		case stateRecede:
			e.Finish()
		}
	}
	return e.state != stateIdle
}

func (e *Effect) recede() {
	e.state = stateRecede
	e.start = e.clock.Now()
	e.duration = recedeTime
	e.alphaStart = e.alpha
	e.scaleStart = e.scale
	e.alphaFinish = 0
	e.scaleFinish = 0
}
