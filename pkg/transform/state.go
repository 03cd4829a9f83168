// Package transform holds the mutable view transform (scale and normalized
// translation) together with the pure functions that turn it into pixel-space
// rectangles and keep it inside its bounds.
//
// Translation is stored normalized: it is the alignment anchor of the image
// rectangle divided by the viewport width and height, so that it survives
// viewport resizes. The pixel-space "real" translation is always derived from
// it and never stored.
package transform

import (
	"math"

	"scaleview/pkg/geom"
	"scaleview/pkg/viewport"
)

// State is the transform of the single image inside the viewport.
type State struct {
	Scale       float64
	MinScale    float64
	Translation geom.Point
}

// Layout is the fixed geometry the transform is evaluated against. It only
// changes on resize, content change or configuration change.
type Layout struct {
	Viewport geom.Rect
	Content  geom.Size
	Align    viewport.Alignment
	// Margins are the effective margins, see viewport.EffectiveMargins.
	Margins viewport.Margins
}

// NewLayout derives the effective margins and returns the layout.
func NewLayout(vp geom.Rect, content geom.Size, align viewport.Alignment, abs viewport.Margins) Layout {
	align = align.Normalize()
	return Layout{
		Viewport: vp,
		Content:  content,
		Align:    align,
		Margins:  viewport.EffectiveMargins(content, vp, align, abs),
	}
}

// Ready reports whether transform math can run: a positive viewport and a
// content extent are both required.
func (l Layout) Ready() bool {
	return viewport.Usable(l.Viewport) && !l.Content.Empty()
}

// RealTranslation converts a normalized translation to pixels.
func RealTranslation(t geom.Point, vp geom.Rect) geom.Point {
	return geom.Point{X: vp.Width() * t.X, Y: vp.Height() * t.Y}
}

// TranslationFromReal converts a pixel translation back to normalized form.
// The viewport must have a positive width and height.
func TranslationFromReal(real geom.Point, vp geom.Rect) geom.Point {
	return geom.Point{X: real.X / vp.Width(), Y: real.Y / vp.Height()}
}

// ValidateScale clamps scale to minScale. valid is false when it had to.
func ValidateScale(scale, minScale float64) (corrected float64, valid bool) {
	if scale < minScale {
		return minScale, false
	}
	return scale, true
}

// ImageRect returns the pixel rectangle the image occupies for the given
// scale and translation. Along each axis it is never smaller than the
// viewport minus margins, so boundary checks only ever compare edges.
func (l Layout) ImageRect(scale float64, t geom.Point) geom.Rect {
	w, h := l.imageSize(scale)
	return l.Align.RectAt(RealTranslation(t, l.Viewport), w, h)
}

func (l Layout) imageSize(scale float64) (w, h float64) {
	box := l.Margins.Box(l.Viewport)
	w = math.Max(l.Content.Width*scale, box.Width())
	h = math.Max(l.Content.Height*scale, box.Height())
	return w, h
}

// ContentRect returns where the scaled content is drawn: the image rect
// shrunk to the content size around its anchor.
func (l Layout) ContentRect(scale float64, t geom.Point) geom.Rect {
	return l.Align.Place(l.ImageRect(scale, t), l.Content.Width*scale, l.Content.Height*scale)
}

// Matrix maps content-local coordinates, with the source rectangle centered
// at the origin, into view pixels.
func (l Layout) Matrix(scale float64, t geom.Point) geom.Matrix {
	c := l.ContentRect(scale, t).Center()
	return geom.Scale(scale, scale).Multiply(geom.Translate(c.X, c.Y))
}

// SourceRect is the unscaled content rectangle centered at the origin.
func (l Layout) SourceRect() geom.Rect {
	w2, h2 := l.Content.Width/2, l.Content.Height/2
	return geom.RectLTRB(-w2, -h2, w2, h2)
}

// DefaultTranslation is the translation of an image at rest: its anchor on
// the matching anchor of the viewport shrunk by the margins.
func (l Layout) DefaultTranslation() geom.Point {
	anchor := l.Align.AnchorOf(l.Margins.Box(l.Viewport))
	return TranslationFromReal(anchor, l.Viewport)
}

// TranslationOf returns the normalized translation that reproduces r.
func (l Layout) TranslationOf(r geom.Rect) geom.Point {
	return TranslationFromReal(l.Align.AnchorOf(r), l.Viewport)
}
