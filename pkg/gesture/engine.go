// Package gesture maps raw gesture primitives onto the view transform of a
// single image inside a fixed viewport.
//
// An Engine owns the viewport geometry, the transform state, the boundary
// validation, the fling and zoom animations and the four edge glows. The host
// feeds it sizes, gesture primitives and one Tick per frame, and reads back
// the transform to draw. It is not safe for concurrent use: every call must
// come from the goroutine that delivers input and frames.
package gesture

import (
	"fmt"
	"math"

	"scaleview/pkg/anim"
	"scaleview/pkg/edge"
	"scaleview/pkg/geom"
	"scaleview/pkg/transform"
	"scaleview/pkg/viewport"
)

// Engine is the pan/zoom transform engine.
type Engine struct {
	opts Options

	viewSize geom.Size
	padding  viewport.Padding

	content    geom.Size
	hasContent bool
	// pendingReset is set when content arrives before the viewport is
	// usable; the first usable layout then puts the image at rest.
	pendingReset bool

	layout transform.Layout
	state  transform.State

	flinger *anim.Flinger
	zoomer  *anim.Zoomer
	edges   *edge.Set
}

// New creates an engine with no viewport and no content.
func New(opts ...Option) *Engine {
	o := NewOptions(opts...)
	e := &Engine{opts: o}
	e.buildAnimators()
	e.relayout()
	return e
}

func (e *Engine) buildAnimators() {
	e.flinger = anim.NewFlinger(e.opts.Clock, e.opts.FlingDeceleration)
	e.zoomer = anim.NewZoomer(e.opts.Clock, e.opts.ZoomDuration)
	e.edges = edge.NewSet(e.opts.Clock)
	e.edges.Resize(e.layout.Viewport.Width(), e.layout.Viewport.Height())
}

// Options returns the current configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Configure applies options to a live engine. Running animations are
// finished and the transform is revalidated against the new geometry.
func (e *Engine) Configure(opts ...Option) {
	atRest := e.state.Scale <= e.state.MinScale
	e.opts.Apply(opts...)
	e.buildAnimators()
	e.relayout()
	switch {
	case !e.ready():
	case atRest:
		e.reset()
	default:
		e.validate()
	}
}

// SetViewportSize updates the view size and padding and returns the new
// viewport rectangle. Negative values panic.
func (e *Engine) SetViewportSize(width, height float64, padding viewport.Padding) geom.Rect {
	vp := viewport.Rect(width, height, padding)
	e.viewSize = geom.Size{Width: width, Height: height}
	e.padding = padding
	if vp == e.layout.Viewport {
		return vp
	}

	atRest := e.state.Scale <= e.state.MinScale
	e.layout.Viewport = vp
	e.relayout()
	Logger().Info("viewport changed", "width", vp.Width(), "height", vp.Height())

	switch {
	case !e.ready():
	case e.pendingReset || atRest:
		e.reset()
	default:
		e.validate()
	}
	return vp
}

// Viewport returns the viewport rectangle.
func (e *Engine) Viewport() geom.Rect {
	return e.layout.Viewport
}

// ViewSize returns the full view size, padding included.
func (e *Engine) ViewSize() geom.Size {
	return e.viewSize
}

// Measure resolves the measured size of the view from the configured minimum
// content size, the padding and the host constraints.
func (e *Engine) Measure(width, height viewport.MeasureSpec, suggestedMin geom.Size) geom.Size {
	p := e.padding
	return geom.Size{
		Width:  viewport.Measure(e.opts.MinWidth, p.Left, p.Right, suggestedMin.Width, width),
		Height: viewport.Measure(e.opts.MinHeight, p.Top, p.Bottom, suggestedMin.Height, height),
	}
}

// SetContent sets the intrinsic size of the image and puts it at rest: scale
// at the fit scale and translation at the alignment anchor. A non-positive
// size panics; use ClearContent to remove the image.
func (e *Engine) SetContent(width, height float64) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		panic(fmt.Sprintf("gesture: invalid content size %gx%g", width, height))
	}
	e.stopAnimations()
	e.edges.Reset()
	e.content = geom.Size{Width: width, Height: height}
	e.hasContent = true
	e.relayout()
	Logger().Info("content set", "width", width, "height", height)

	if e.ready() {
		e.reset()
	} else {
		e.pendingReset = true
	}
}

// ClearContent removes the image. Every transform query then reports the
// zero state and gestures are ignored.
func (e *Engine) ClearContent() {
	e.stopAnimations()
	e.edges.Reset()
	e.content = geom.Size{}
	e.hasContent = false
	e.pendingReset = false
	e.state = transform.State{}
	e.relayout()
	Logger().Info("content cleared")
}

// Content returns the intrinsic image size and whether an image is set.
func (e *Engine) Content() (geom.Size, bool) {
	return e.content, e.hasContent
}

// ResetTranslateScale puts the image back at rest.
func (e *Engine) ResetTranslateScale() {
	if !e.ready() {
		return
	}
	e.stopAnimations()
	e.reset()
}

func (e *Engine) ready() bool {
	return e.hasContent && e.layout.Ready()
}

func (e *Engine) relayout() {
	e.layout = transform.NewLayout(e.layout.Viewport, e.content, e.opts.Alignment, e.opts.Margins)
	e.state.MinScale = viewport.FitScale(e.content, e.layout.Viewport, e.opts.Margins)
	if e.edges != nil {
		e.edges.Resize(e.layout.Viewport.Width(), e.layout.Viewport.Height())
	}
}

func (e *Engine) reset() {
	e.pendingReset = false
	e.state.Scale = e.state.MinScale
	e.state.Translation = e.layout.DefaultTranslation()
}

// validate clamps scale and translation and reports whether both were
// already valid.
func (e *Engine) validate() bool {
	var scaleOK, translationOK bool
	e.state.Scale, scaleOK = transform.ValidateScale(e.state.Scale, e.state.MinScale)
	e.state.Translation, translationOK = e.layout.Clamp(e.state.Scale, e.state.Translation)
	return scaleOK && translationOK
}

func (e *Engine) stopAnimations() {
	e.flinger.ForceFinish()
	e.zoomer.ForceFinish()
}

// State returns a copy of the transform state.
func (e *Engine) State() transform.State {
	return e.state
}

// Layout returns the geometry the transform is evaluated against.
func (e *Engine) Layout() transform.Layout {
	return e.layout
}

// Scale returns the current scale.
func (e *Engine) Scale() float64 {
	return e.state.Scale
}

// MinScale returns the fit scale.
func (e *Engine) MinScale() float64 {
	return e.state.MinScale
}

// Translation returns the normalized translation.
func (e *Engine) Translation() geom.Point {
	return e.state.Translation
}

// RealTranslation returns the translation in view pixels.
func (e *Engine) RealTranslation() geom.Point {
	return transform.RealTranslation(e.state.Translation, e.layout.Viewport)
}

// ImageRect returns the bounding rect used for boundary checks.
func (e *Engine) ImageRect() geom.Rect {
	if !e.ready() {
		return geom.Rect{}
	}
	return e.layout.ImageRect(e.state.Scale, e.state.Translation)
}

// ContentRect returns where the scaled image is drawn, in view pixels.
// It is empty when there is nothing to draw.
func (e *Engine) ContentRect() geom.Rect {
	if !e.ready() {
		return geom.Rect{}
	}
	return e.layout.ContentRect(e.state.Scale, e.state.Translation)
}

// Matrix maps content coordinates, centered at the origin, to view pixels.
func (e *Engine) Matrix() geom.Matrix {
	if !e.ready() {
		return geom.Identity()
	}
	return e.layout.Matrix(e.state.Scale, e.state.Translation)
}

// ScrollOffset returns how far the image is scrolled, in pixels.
func (e *Engine) ScrollOffset() geom.Point {
	if !e.ready() {
		return geom.Point{}
	}
	return e.layout.ScrollOffset(e.ImageRect())
}

// ScrollBounds returns the scroll range at the current scale.
func (e *Engine) ScrollBounds() transform.ScrollBounds {
	if !e.ready() {
		return transform.ScrollBounds{}
	}
	return e.layout.ScrollBoundsAt(e.state.Scale)
}

// Glows returns the edge glows to draw this frame.
func (e *Engine) Glows() []edge.Glow {
	return e.edges.Glows(e.layout.Viewport)
}

// EdgeActive reports whether an edge glowed during the current gesture.
func (e *Engine) EdgeActive(side edge.Side) bool {
	return e.edges.Active(side)
}

// Animating reports whether a fling or zoom is running.
func (e *Engine) Animating() bool {
	return e.flinger.Running() || e.zoomer.Running()
}

// FlingStatus reports the lifecycle of the last fling.
func (e *Engine) FlingStatus() anim.Status {
	return e.flinger.Status()
}

// ZoomStatus reports the lifecycle of the last zoom step.
func (e *Engine) ZoomStatus() anim.Status {
	return e.zoomer.Status()
}
