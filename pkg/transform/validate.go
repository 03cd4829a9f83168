package transform

import (
	"scaleview/pkg/geom"
	"scaleview/pkg/viewport"
)

// ValidateTranslation moves r, keeping its size, so that it does not leave a
// gap larger than the margins between itself and any viewport edge. When the
// left edge is too far right it is pulled back, otherwise the right edge is
// checked; likewise top before bottom. valid is false if r was moved.
// Applying it to its own result is a no-op.
func ValidateTranslation(r, vp geom.Rect, m viewport.Margins) (corrected geom.Rect, valid bool) {
	valid = true

	contentLeft := vp.Left + m.Left
	contentRight := vp.Right - m.Right
	if r.Left > contentLeft {
		r = r.Offset(contentLeft-r.Left, 0)
		valid = false
	} else if r.Right < contentRight {
		r = r.Offset(contentRight-r.Right, 0)
		valid = false
	}

	contentTop := vp.Top + m.Top
	contentBottom := vp.Bottom - m.Bottom
	if r.Top > contentTop {
		r = r.Offset(0, contentTop-r.Top)
		valid = false
	} else if r.Bottom < contentBottom {
		r = r.Offset(0, contentBottom-r.Bottom)
		valid = false
	}
	return r, valid
}

// Clamp validates the image rect of (scale, t) and returns the translation
// of the corrected rect.
func (l Layout) Clamp(scale float64, t geom.Point) (geom.Point, bool) {
	r, valid := ValidateTranslation(l.ImageRect(scale, t), l.Viewport, l.Margins)
	if valid {
		return t, true
	}
	return l.TranslationOf(r), false
}

// Overshoot reports how far each edge of r has moved past its bound, in
// pixels. Only positive values mean the edge is out of bounds.
type Overshoot struct {
	Left, Top, Right, Bottom float64
}

// OvershootOf measures r against the viewport and margins.
func (l Layout) OvershootOf(r geom.Rect) Overshoot {
	return Overshoot{
		Left:   r.Left - (l.Viewport.Left + l.Margins.Left),
		Top:    r.Top - (l.Viewport.Top + l.Margins.Top),
		Right:  (l.Viewport.Right - l.Margins.Right) - r.Right,
		Bottom: (l.Viewport.Bottom - l.Margins.Bottom) - r.Bottom,
	}
}
