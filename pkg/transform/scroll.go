package transform

import "scaleview/pkg/geom"

// ScrollBounds is the allowed range of pixel scroll offsets.
type ScrollBounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// CanScrollX reports whether there is horizontal room to move.
func (b ScrollBounds) CanScrollX() bool {
	return b.MaxX > b.MinX
}

// CanScrollY reports whether there is vertical room to move.
func (b ScrollBounds) CanScrollY() bool {
	return b.MaxY > b.MinY
}

// ScrollOffset returns how far the image rect is scrolled: the distance from
// its top-left corner back to the viewport's.
func (l Layout) ScrollOffset(r geom.Rect) geom.Point {
	return geom.Point{X: l.Viewport.Left - r.Left, Y: l.Viewport.Top - r.Top}
}

// ScrollBoundsAt returns the scroll range at the given scale:
// [-marginLeft, maxScrollX+marginRight] horizontally and likewise vertically,
// where maxScroll is the image size minus the viewport size.
func (l Layout) ScrollBoundsAt(scale float64) ScrollBounds {
	w, h := l.imageSize(scale)
	return ScrollBounds{
		MinX: -l.Margins.Left,
		MaxX: w - l.Viewport.Width() + l.Margins.Right,
		MinY: -l.Margins.Top,
		MaxY: h - l.Viewport.Height() + l.Margins.Bottom,
	}
}

// TranslationFromScroll is the inverse of ScrollOffset: it rebuilds the
// image rect at the given offset and returns its normalized translation.
func (l Layout) TranslationFromScroll(scale float64, scroll geom.Point) geom.Point {
	w, h := l.imageSize(scale)
	r := geom.RectXYWH(l.Viewport.Left-scroll.X, l.Viewport.Top-scroll.Y, w, h)
	return l.TranslationOf(r)
}
