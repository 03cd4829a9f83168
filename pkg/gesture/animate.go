package gesture

import (
	"scaleview/pkg/edge"
	"scaleview/pkg/geom"
)

// Tick advances the fling, the zoom step and the edge glows to the clock's
// current time. It returns true while another frame is needed. Once every
// animation has settled it changes nothing.
func (e *Engine) Tick() bool {
	if !e.ready() {
		e.stopAnimations()
		return e.edges.Update()
	}

	if e.flinger.Compute() {
		e.stepFling()
	}
	if e.zoomer.Compute() {
		factor := e.zoomer.Scale() / e.state.Scale
		e.applyScale(e.zoomer.Focal(), factor)
	}
	glowing := e.edges.Update()
	return e.Animating() || glowing
}

func (e *Engine) stepFling() {
	pos := e.flinger.Position()
	e.state.Translation = e.layout.TranslationFromScroll(e.state.Scale, pos)

	if e.state.Scale > e.state.MinScale {
		b := e.flinger.Bounds()
		dir := e.flinger.Direction()
		v := e.flinger.Velocity()
		if b.MaxX > b.MinX {
			if pos.X <= b.MinX && dir.X < 0 {
				e.absorb(edge.Left, v)
			} else if pos.X >= b.MaxX && dir.X > 0 {
				e.absorb(edge.Right, v)
			}
		}
		if b.MaxY > b.MinY {
			if pos.Y <= b.MinY && dir.Y < 0 {
				e.absorb(edge.Top, v)
			} else if pos.Y >= b.MaxY && dir.Y > 0 {
				e.absorb(edge.Bottom, v)
			}
		}
	}
	e.validate()
}

func (e *Engine) absorb(side edge.Side, velocity float64) {
	if e.edges.Absorb(side, velocity) {
		Logger().Debug("edge absorbed fling", "side", side.String(), "velocity", velocity)
	}
}

// ZoomIn zooms one step in around the viewport center.
func (e *Engine) ZoomIn() {
	if e.ready() {
		e.startZoom(e.opts.ZoomAmount, e.layout.Viewport.Center())
	}
}

// ZoomOut zooms one step out around the viewport center. The scale never
// drops below the fit scale.
func (e *Engine) ZoomOut() {
	if e.ready() {
		e.startZoom(-e.opts.ZoomAmount, e.layout.Viewport.Center())
	}
}

// PanLeft scrolls the view toward the left edge of the image.
func (e *Engine) PanLeft() {
	e.pan(geom.Pt(-e.opts.PanVelocityFactor*e.viewSize.Width, 0))
}

// PanRight scrolls the view toward the right edge of the image.
func (e *Engine) PanRight() {
	e.pan(geom.Pt(e.opts.PanVelocityFactor*e.viewSize.Width, 0))
}

// PanUp scrolls the view toward the top edge of the image.
func (e *Engine) PanUp() {
	e.pan(geom.Pt(0, -e.opts.PanVelocityFactor*e.viewSize.Height))
}

// PanDown scrolls the view toward the bottom edge of the image.
func (e *Engine) PanDown() {
	e.pan(geom.Pt(0, e.opts.PanVelocityFactor*e.viewSize.Height))
}

func (e *Engine) pan(velocity geom.Point) {
	if e.ready() {
		e.fling(velocity)
	}
}
