package edge

import (
	"scaleview/pkg/anim"
	"scaleview/pkg/geom"
)

// Side names a viewport edge.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// Sides lists every edge in drawing order.
var Sides = [...]Side{Top, Bottom, Left, Right}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Set holds the four edge effects of a viewport together with their active
// flags. A flag is raised when its edge starts glowing and cleared when a new
// gesture begins, so a fling absorbs into each edge at most once.
type Set struct {
	effects [4]*Effect
	active  [4]bool
}

// NewSet returns four finished effects sharing clock.
func NewSet(clock anim.Clock) *Set {
	s := &Set{}
	for _, side := range Sides {
		s.effects[side] = New(clock)
	}
	return s
}

// Effect returns the effect of one edge.
func (s *Set) Effect(side Side) *Effect {
	return s.effects[side]
}

// Active reports whether the edge glowed since the last Release.
func (s *Set) Active(side Side) bool {
	return s.active[side]
}

// Resize sizes each glow area to the viewport. Left and right glows run
// along the height.
func (s *Set) Resize(width, height float64) {
	s.effects[Top].SetSize(width, height)
	s.effects[Bottom].SetSize(width, height)
	s.effects[Left].SetSize(height, width)
	s.effects[Right].SetSize(height, width)
}

// Pull feeds a drag overshoot into one edge.
func (s *Set) Pull(side Side, delta float64) {
	s.effects[side].OnPull(delta)
	s.active[side] = true
}

// Absorb feeds fling velocity into one edge unless it already glowed during
// this gesture. It reports whether the velocity was absorbed.
func (s *Set) Absorb(side Side, velocity float64) bool {
	e := s.effects[side]
	if s.active[side] || !e.Finished() {
		return false
	}
	e.OnAbsorb(velocity)
	s.active[side] = true
	return true
}

// Release clears every active flag and lets pulled glows recede.
func (s *Set) Release() {
	for _, side := range Sides {
		s.active[side] = false
		s.effects[side].OnRelease()
	}
}

// Reset drops every glow immediately.
func (s *Set) Reset() {
	for _, side := range Sides {
		s.active[side] = false
		s.effects[side].Finish()
	}
}

// Update advances all effects and reports whether any still needs drawing.
func (s *Set) Update() bool {
	animating := false
	for _, side := range Sides {
		if s.effects[side].Update() {
			animating = true
		}
	}
	return animating
}

// Glow describes how to draw one edge effect. In glow-local coordinates x
// runs along the edge over [0, Width] and y points into the viewport; Matrix
// maps those coordinates to view pixels.
type Glow struct {
	Side     Side
	Alpha    float64
	Scale    float64
	Width    float64
	Height   float64
	Origin   geom.Point
	Rotation float64 // degrees
}

// Matrix maps glow-local coordinates into view pixels.
func (g Glow) Matrix() geom.Matrix {
	return geom.RotateDeg(g.Rotation).Multiply(geom.Translate(g.Origin.X, g.Origin.Y))
}

// Glows returns the unfinished effects placed on the viewport edges.
func (s *Set) Glows(vp geom.Rect) []Glow {
	var out []Glow
	for _, side := range Sides {
		e := s.effects[side]
		if e.Finished() {
			continue
		}
		g := Glow{Side: side, Alpha: e.Alpha(), Scale: e.Scale()}
		switch side {
		case Top:
			g.Origin, g.Rotation = geom.Pt(vp.Left, vp.Top), 0
			g.Width, g.Height = vp.Width(), vp.Height()
		case Bottom:
			g.Origin, g.Rotation = geom.Pt(vp.Right, vp.Bottom), 180
			g.Width, g.Height = vp.Width(), vp.Height()
		case Left:
			g.Origin, g.Rotation = geom.Pt(vp.Left, vp.Bottom), -90
			g.Width, g.Height = vp.Height(), vp.Width()
		case Right:
			g.Origin, g.Rotation = geom.Pt(vp.Right, vp.Top), 90
			g.Width, g.Height = vp.Height(), vp.Width()
		}
		out = append(out, g)
	}
	return out
}
