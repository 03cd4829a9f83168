// Package viewport holds the fixed geometry of the pan/zoom view: the
// viewport rectangle derived from the view size and padding, the alignment
// policy, the internal margins and the fit scale of a content extent.
//
// Everything here is a pure function of its inputs.
package viewport

import (
	"fmt"
	"math"

	"scaleview/pkg/geom"
)

// Padding is the space between the view bounds and the viewport, in pixels.
type Padding struct {
	Left, Top, Right, Bottom float64
}

// Rect returns the viewport rectangle of a view of the given size. When the
// padding is larger than the view the rectangle collapses to zero size.
// Negative sizes or padding are programmer errors and panic.
func Rect(width, height float64, p Padding) geom.Rect {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("viewport: negative view size %gx%g", width, height))
	}
	if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
		panic(fmt.Sprintf("viewport: negative padding %+v", p))
	}

	r := geom.RectLTRB(p.Left, p.Top, width-p.Right, height-p.Bottom)
	if r.Right < r.Left {
		r.Right = r.Left
	}
	if r.Bottom < r.Top {
		r.Bottom = r.Top
	}
	return r
}

// Usable reports whether r has a strictly positive width and height.
// Conversions between real and normalized translation divide by these.
func Usable(r geom.Rect) bool {
	return r.Width() > 0 && r.Height() > 0
}

// Axis names one of the two viewport axes.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// FitScale returns the largest scale at which content fits entirely inside
// the viewport minus the absolute margins: the smaller of the width and
// height ratios. It returns 0 when either side is degenerate.
func FitScale(content geom.Size, vp geom.Rect, abs Margins) float64 {
	if content.Empty() || !Usable(vp) {
		return 0
	}
	m := abs.clampTo(vp)
	sx := (vp.Width() - m.Left - m.Right) / content.Width
	sy := (vp.Height() - m.Top - m.Bottom) / content.Height
	return math.Min(sx, sy)
}

// ConstrainingAxis returns the axis along which content fills the available
// area exactly at the fit scale.
func ConstrainingAxis(content geom.Size, vp geom.Rect, abs Margins) Axis {
	if content.Empty() || !Usable(vp) {
		return Horizontal
	}
	m := abs.clampTo(vp)
	sx := (vp.Width() - m.Left - m.Right) / content.Width
	sy := (vp.Height() - m.Top - m.Bottom) / content.Height
	if sy < sx {
		return Vertical
	}
	return Horizontal
}
