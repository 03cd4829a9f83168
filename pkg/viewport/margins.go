package viewport

import (
	"math"

	"scaleview/pkg/geom"
)

// Margins are distances kept between the viewport edges and the image edges.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// NonNegative returns m with every negative side replaced by zero.
func (m Margins) NonNegative() Margins {
	return Margins{
		Left:   math.Max(m.Left, 0),
		Top:    math.Max(m.Top, 0),
		Right:  math.Max(m.Right, 0),
		Bottom: math.Max(m.Bottom, 0),
	}
}

// clampTo makes m non-negative and scales opposite sides down so that their
// sum never exceeds the viewport dimension.
func (m Margins) clampTo(vp geom.Rect) Margins {
	m = m.NonNegative()
	if sum := m.Left + m.Right; sum > vp.Width() && sum > 0 {
		k := vp.Width() / sum
		m.Left *= k
		m.Right *= k
	}
	if sum := m.Top + m.Bottom; sum > vp.Height() && sum > 0 {
		k := vp.Height() / sum
		m.Top *= k
		m.Bottom *= k
	}
	return m
}

// Box returns the viewport shrunk by the margins.
func (m Margins) Box(vp geom.Rect) geom.Rect {
	return vp.Inset(m.Left, m.Top, m.Right, m.Bottom)
}

// EffectiveMargins derives the margins the boundary validator enforces.
//
// At the fit scale the content leaves some slack on each axis: exactly the
// requested margins on the constraining axis, and more on the other one. The
// slack is distributed according to the alignment: centered axes split it
// evenly, an edge-aligned axis keeps the requested margin on its own edge and
// gives the rest to the opposite edge. The result is never negative and never
// exceeds the slack.
//
// A centered axis does not keep asymmetric margins: Left 100 and Right 0
// become 50 on each side, the same as Left 50 and Right 50.
func EffectiveMargins(content geom.Size, vp geom.Rect, align Alignment, abs Margins) Margins {
	if content.Empty() || !Usable(vp) {
		return Margins{}
	}
	m := abs.clampTo(vp)
	scale := FitScale(content, vp, m)

	slackX := vp.Width() - content.Width*scale
	slackY := vp.Height() - content.Height*scale
	switch ConstrainingAxis(content, vp, m) {
	case Horizontal:
		slackX = m.Left + m.Right
	case Vertical:
		slackY = m.Top + m.Bottom
	}

	kx, ky := align.kinds()
	var out Margins
	out.Left, out.Right = distribute(kx, slackX, m.Left, m.Right)
	out.Top, out.Bottom = distribute(ky, slackY, m.Top, m.Bottom)
	return out
}

func distribute(k anchorKind, slack, absStart, absEnd float64) (start, end float64) {
	slack = math.Max(slack, 0)
	switch k {
	case anchorStart:
		start = math.Min(absStart, slack)
		end = slack - start
	case anchorEnd:
		end = math.Min(absEnd, slack)
		start = slack - end
	default:
		start = slack / 2
		end = slack - start
	}
	return math.Max(start, 0), math.Max(end, 0)
}
