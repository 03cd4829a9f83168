package gesture

import (
	"math"

	"scaleview/pkg/anim"
	"scaleview/pkg/edge"
	"scaleview/pkg/geom"
	"scaleview/pkg/transform"
)

// Each handler returns whether the event was consumed. Events arriving
// without a usable viewport or without content are not.

// OnDown starts a new touch sequence: it releases the edge glows and stops
// a running fling.
func (e *Engine) OnDown() bool {
	e.edges.Release()
	e.flinger.ForceFinish()
	return true
}

// OnScaleBegin starts a pinch. A pinch always belongs to the image, so the
// parent is asked to stop intercepting.
func (e *Engine) OnScaleBegin() bool {
	if e.opts.Parent != nil {
		e.opts.Parent.RequestDisallowIntercept(true)
	}
	return true
}

// OnScale scales the image by factor around focus, keeping the content
// under focus stationary. A running fling or zoom step is stopped first.
func (e *Engine) OnScale(focus geom.Point, factor float64) bool {
	if !e.ready() || factor <= 0 || !finite(factor, focus.X, focus.Y) {
		return false
	}
	e.flinger.ForceFinish()
	e.zoomer.ForceFinish()
	e.applyScale(focus, factor)
	return true
}

// OnDrag moves the image by the finger travel since the previous event.
// distance is previous minus current position, so a positive X moves the
// image left.
func (e *Engine) OnDrag(distanceX, distanceY float64) bool {
	if !e.ready() || !finite(distanceX, distanceY) {
		return false
	}
	e.flinger.ForceFinish()
	e.applyDrag(distanceX, distanceY)
	e.ShouldDisallowParentIntercept(distanceX, distanceY)
	return true
}

// OnDoubleTap starts a zoom-in step centered at p.
func (e *Engine) OnDoubleTap(p geom.Point) bool {
	if !e.ready() || !finite(p.X, p.Y) {
		return false
	}
	e.startZoom(e.opts.ZoomAmount, p)
	return true
}

// OnFling starts a fling after the finger lifts. The velocity is the finger
// velocity in pixels per second; the image scrolls the opposite way.
func (e *Engine) OnFling(velocityX, velocityY float64) bool {
	if !e.ready() || !finite(velocityX, velocityY) {
		return false
	}
	e.ShouldDisallowParentIntercept(-velocityX, -velocityY)
	e.fling(geom.Pt(-velocityX, -velocityY))
	return true
}

// finite reports whether every value is a real number. NaN slips through
// every clamp, so such input is refused.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ShouldDisallowParentIntercept reports whether the image can still move
// in the given scroll direction on an axis a parent is allowed to scroll.
// direction uses the drag convention: a positive X moves the image left and
// reveals its right edge. When the result is true the configured parent is
// told to stop intercepting.
func (e *Engine) ShouldDisallowParentIntercept(directionX, directionY float64) bool {
	if !e.ready() || !(e.opts.AllowParentHorizontalScroll || e.opts.AllowParentVerticalScroll) {
		return false
	}

	r := e.ImageRect()
	bound := e.layout.Margins.Box(e.layout.Viewport)
	slop := e.opts.EdgeSlop

	disallow := false
	if e.opts.AllowParentHorizontalScroll {
		if directionX > 0 && math.Abs(r.Right-bound.Right) > slop {
			disallow = true
		}
		if directionX < 0 && math.Abs(r.Left-bound.Left) > slop {
			disallow = true
		}
	}
	if e.opts.AllowParentVerticalScroll {
		if directionY > 0 && math.Abs(r.Bottom-bound.Bottom) > slop {
			disallow = true
		}
		if directionY < 0 && math.Abs(r.Top-bound.Top) > slop {
			disallow = true
		}
	}

	if disallow && e.opts.Parent != nil {
		e.opts.Parent.RequestDisallowIntercept(true)
	}
	return disallow
}

// applyScale multiplies the scale by factor around focus and validates.
func (e *Engine) applyScale(focus geom.Point, factor float64) {
	vp := e.layout.Viewport
	real := transform.RealTranslation(e.state.Translation, vp)
	real = real.Sub(focus).Scale(factor).Add(focus)
	e.state.Translation = transform.TranslationFromReal(real, vp)
	e.state.Scale *= factor
	e.validate()
}

// applyDrag offsets the translation and pulls the glow of every edge the
// unclamped rect moved past.
func (e *Engine) applyDrag(distanceX, distanceY float64) {
	vp := e.layout.Viewport
	real := transform.RealTranslation(e.state.Translation, vp)
	real = real.Sub(geom.Pt(distanceX, distanceY))
	e.state.Translation = transform.TranslationFromReal(real, vp)

	over := e.layout.OvershootOf(e.ImageRect())
	e.validate()

	if e.state.Scale <= e.state.MinScale {
		return
	}
	if over.Left > 0 {
		e.edges.Pull(edge.Left, over.Left/vp.Width())
	} else if over.Right > 0 {
		e.edges.Pull(edge.Right, over.Right/vp.Width())
	}
	if over.Top > 0 {
		e.edges.Pull(edge.Top, over.Top/vp.Height())
	} else if over.Bottom > 0 {
		e.edges.Pull(edge.Bottom, over.Bottom/vp.Height())
	}
}

// fling starts a fling of the scroll offset with the given scroll velocity.
func (e *Engine) fling(velocity geom.Point) {
	e.edges.Release()
	b := e.layout.ScrollBoundsAt(e.state.Scale)
	origin := e.layout.ScrollOffset(e.ImageRect())
	e.flinger.Start(origin, velocity, anim.Bounds{
		MinX: b.MinX, MaxX: b.MaxX,
		MinY: b.MinY, MaxY: b.MaxY,
	})
	Logger().Debug("fling started",
		"vx", velocity.X, "vy", velocity.Y,
		"status", e.flinger.Status().String())
}

// startZoom force-finishes any zoom step and starts a new one from the
// current scale.
func (e *Engine) startZoom(amount float64, focal geom.Point) {
	e.zoomer.Start(e.state.Scale, amount, focal)
	Logger().Debug("zoom started", "from", e.state.Scale, "amount", amount)
}
