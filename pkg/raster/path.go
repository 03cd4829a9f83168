package raster

import (
	"golang.org/x/image/vector"

	"scaleview/pkg/geom"
)

type pathOp int

const (
	opMoveTo pathOp = iota
	opLineTo
	opQuadTo
	opClose
)

type segment struct {
	op     pathOp
	points [2]geom.Point
}

// Path is a sequence of straight and quadratic segments in view pixels.
type Path struct {
	segments []segment
	current  geom.Point
	start    geom.Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool {
	return len(p.segments) == 0
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	pt := geom.Pt(x, y)
	p.segments = append(p.segments, segment{op: opMoveTo, points: [2]geom.Point{pt}})
	p.current, p.start = pt, pt
	return p
}

// LineTo draws a line to the given point.
func (p *Path) LineTo(x, y float64) *Path {
	pt := geom.Pt(x, y)
	p.segments = append(p.segments, segment{op: opLineTo, points: [2]geom.Point{pt}})
	p.current = pt
	return p
}

// QuadTo draws a quadratic Bezier curve through control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	pt := geom.Pt(x, y)
	p.segments = append(p.segments, segment{op: opQuadTo, points: [2]geom.Point{geom.Pt(cx, cy), pt}})
	p.current = pt
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.segments = append(p.segments, segment{op: opClose})
	p.current = p.start
	return p
}

// Rect adds a closed rectangle.
func (p *Path) Rect(r geom.Rect) *Path {
	return p.MoveTo(r.Left, r.Top).
		LineTo(r.Right, r.Top).
		LineTo(r.Right, r.Bottom).
		LineTo(r.Left, r.Bottom).
		Close()
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m geom.Matrix) *Path {
	out := &Path{segments: make([]segment, len(p.segments))}
	for i, seg := range p.segments {
		out.segments[i] = segment{
			op: seg.op,
			points: [2]geom.Point{
				m.TransformPoint(seg.points[0]),
				m.TransformPoint(seg.points[1]),
			},
		}
	}
	out.current = m.TransformPoint(p.current)
	out.start = m.TransformPoint(p.start)
	return out
}

// Bounds returns the bounding box of every point, control points included.
func (p *Path) Bounds() geom.Rect {
	var b geom.Rect
	first := true
	for _, seg := range p.segments {
		n := 1
		switch seg.op {
		case opClose:
			continue
		case opQuadTo:
			n = 2
		}
		for _, pt := range seg.points[:n] {
			if first {
				b = geom.RectLTRB(pt.X, pt.Y, pt.X, pt.Y)
				first = false
				continue
			}
			b.Left = min(b.Left, pt.X)
			b.Top = min(b.Top, pt.Y)
			b.Right = max(b.Right, pt.X)
			b.Bottom = max(b.Bottom, pt.Y)
		}
	}
	return b
}

// toVector feeds the path into a rasterizer whose pixel (0, 0) sits at
// origin.
func (p *Path) toVector(r *vector.Rasterizer, origin geom.Point) {
	f := func(pt geom.Point) (float32, float32) {
		return float32(pt.X - origin.X), float32(pt.Y - origin.Y)
	}
	for _, seg := range p.segments {
		switch seg.op {
		case opMoveTo:
			r.MoveTo(f(seg.points[0]))
		case opLineTo:
			r.LineTo(f(seg.points[0]))
		case opQuadTo:
			cx, cy := f(seg.points[0])
			x, y := f(seg.points[1])
			r.QuadTo(cx, cy, x, y)
		case opClose:
			r.ClosePath()
		}
	}
}
