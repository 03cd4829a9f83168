package viewport

import (
	"strings"

	"scaleview/pkg/geom"
)

// Alignment selects where the image is anchored inside the viewport when it is
// smaller than the viewport along an axis. The horizontal and vertical bit
// groups are independent; setting both bits of a group means center.
type Alignment uint8

const (
	AlignLeft   Alignment = 1 << 0
	AlignRight  Alignment = 1 << 1
	AlignTop    Alignment = 1 << 2
	AlignBottom Alignment = 1 << 3

	AlignCenterHorizontal = AlignLeft | AlignRight
	AlignCenterVertical   = AlignTop | AlignBottom
	AlignCenter           = AlignCenterHorizontal | AlignCenterVertical

	horizontalMask = AlignCenterHorizontal
	verticalMask   = AlignCenterVertical
)

// Normalize returns the alignment with every empty bit group replaced by its
// center value. Bits outside the two groups are dropped.
func (a Alignment) Normalize() Alignment {
	h := a & horizontalMask
	if h == 0 {
		h = AlignCenterHorizontal
	}
	v := a & verticalMask
	if v == 0 {
		v = AlignCenterVertical
	}
	return h | v
}

// Horizontal returns the normalized horizontal group.
func (a Alignment) Horizontal() Alignment {
	return a.Normalize() & horizontalMask
}

// Vertical returns the normalized vertical group.
func (a Alignment) Vertical() Alignment {
	return a.Normalize() & verticalMask
}

// String implements fmt.Stringer.
func (a Alignment) String() string {
	var h, v string
	switch a.Horizontal() {
	case AlignLeft:
		h = "left"
	case AlignRight:
		h = "right"
	default:
		h = "center"
	}
	switch a.Vertical() {
	case AlignTop:
		v = "top"
	case AlignBottom:
		v = "bottom"
	default:
		v = "center"
	}
	return h + "|" + v
}

// ParseHorizontal maps "left", "right" or "center" to a horizontal group.
// Anything else yields center and ok=false.
func ParseHorizontal(s string) (a Alignment, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return AlignLeft, true
	case "right", "end":
		return AlignRight, true
	case "center", "centre", "":
		return AlignCenterHorizontal, true
	}
	return AlignCenterHorizontal, false
}

// ParseVertical maps "top", "bottom" or "center" to a vertical group.
// Anything else yields center and ok=false.
func ParseVertical(s string) (a Alignment, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "start":
		return AlignTop, true
	case "bottom", "end":
		return AlignBottom, true
	case "center", "centre", "":
		return AlignCenterVertical, true
	}
	return AlignCenterVertical, false
}

// anchorKind is the per-axis reading of an alignment group.
type anchorKind int

const (
	anchorStart anchorKind = iota
	anchorCenter
	anchorEnd
)

func (a Alignment) kinds() (x, y anchorKind) {
	switch a.Horizontal() {
	case AlignLeft:
		x = anchorStart
	case AlignRight:
		x = anchorEnd
	default:
		x = anchorCenter
	}
	switch a.Vertical() {
	case AlignTop:
		y = anchorStart
	case AlignBottom:
		y = anchorEnd
	default:
		y = anchorCenter
	}
	return x, y
}

// anchorOffset is the distance from the low edge of a span of the given size
// to its anchor. Every alignment-dependent computation goes through it.
func anchorOffset(k anchorKind, size float64) float64 {
	switch k {
	case anchorStart:
		return 0
	case anchorEnd:
		return size
	default:
		return size / 2
	}
}

// RectAt builds a w by h rectangle whose anchor sits at the given point.
// A left-anchored rectangle extends right from the anchor, a right-anchored
// one extends left, a centered one spans it symmetrically; likewise vertically.
func (a Alignment) RectAt(anchor geom.Point, w, h float64) geom.Rect {
	kx, ky := a.kinds()
	left := anchor.X - anchorOffset(kx, w)
	top := anchor.Y - anchorOffset(ky, h)
	return geom.RectXYWH(left, top, w, h)
}

// AnchorOf returns the anchor point of r. It is the inverse of RectAt.
func (a Alignment) AnchorOf(r geom.Rect) geom.Point {
	kx, ky := a.kinds()
	return geom.Point{
		X: r.Left + anchorOffset(kx, r.Width()),
		Y: r.Top + anchorOffset(ky, r.Height()),
	}
}

// Place positions an inner span of size (w, h) inside outer according to the
// alignment. Renderers use it to put the scaled content inside the image rect.
func (a Alignment) Place(outer geom.Rect, w, h float64) geom.Rect {
	return a.RectAt(a.AnchorOf(outer), w, h)
}
