package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scaleview/pkg/geom"
)

func TestRect(t *testing.T) {
	assert.Equal(t, geom.RectLTRB(10, 20, 90, 70), Rect(100, 80, Padding{Left: 10, Top: 20, Right: 10, Bottom: 10}))
	assert.Equal(t, geom.RectLTRB(60, 0, 60, 10), Rect(100, 10, Padding{Left: 60, Right: 60}))
	assert.False(t, Usable(Rect(100, 10, Padding{Left: 60, Right: 60})))
	assert.False(t, Usable(Rect(0, 0, Padding{})))

	assert.Panics(t, func() { Rect(-1, 10, Padding{}) })
	assert.Panics(t, func() { Rect(10, 10, Padding{Top: -1}) })
}

func TestAlignmentNormalize(t *testing.T) {
	tests := []struct {
		in   Alignment
		want Alignment
		str  string
	}{
		{0, AlignCenter, "center|center"},
		{AlignLeft, AlignLeft | AlignCenterVertical, "left|center"},
		{AlignBottom, AlignCenterHorizontal | AlignBottom, "center|bottom"},
		{AlignRight | AlignTop, AlignRight | AlignTop, "right|top"},
		{AlignCenter | 0xF0, AlignCenter, "center|center"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
			assert.Equal(t, tt.str, tt.in.String())
		})
	}
}

func TestParseAlignment(t *testing.T) {
	a, ok := ParseHorizontal(" Right ")
	assert.True(t, ok)
	assert.Equal(t, AlignRight, a)

	a, ok = ParseVertical("middle")
	assert.False(t, ok)
	assert.Equal(t, AlignCenterVertical, a)

	a, ok = ParseVertical("")
	assert.True(t, ok)
	assert.Equal(t, AlignCenterVertical, a)
}

func TestRectAtAnchorOfRoundTrip(t *testing.T) {
	anchor := geom.Pt(100, 200)
	for _, a := range []Alignment{
		AlignCenter,
		AlignLeft | AlignTop,
		AlignRight | AlignBottom,
		AlignLeft | AlignBottom,
		AlignRight | AlignCenterVertical,
	} {
		t.Run(a.String(), func(t *testing.T) {
			r := a.RectAt(anchor, 40, 60)
			assert.Equal(t, 40.0, r.Width())
			assert.Equal(t, 60.0, r.Height())
			assert.Equal(t, anchor, a.AnchorOf(r))
		})
	}

	assert.Equal(t, geom.RectLTRB(60, 140, 100, 200), (AlignRight | AlignBottom).RectAt(anchor, 40, 60))
	assert.Equal(t, geom.RectLTRB(80, 170, 120, 230), AlignCenter.RectAt(anchor, 40, 60))
}

func TestPlace(t *testing.T) {
	outer := geom.RectLTRB(0, 0, 100, 100)
	assert.Equal(t, geom.RectLTRB(0, 80, 50, 100), (AlignLeft | AlignBottom).Place(outer, 50, 20))
	assert.Equal(t, geom.RectLTRB(25, 40, 75, 60), AlignCenter.Place(outer, 50, 20))
}

func TestFitScale(t *testing.T) {
	vp := geom.RectLTRB(0, 0, 1000, 1000)
	assert.InDelta(t, 10.0, FitScale(geom.Size{Width: 100, Height: 100}, vp, Margins{}), 1e-9)
	assert.InDelta(t, 5.0, FitScale(geom.Size{Width: 200, Height: 100}, vp, Margins{}), 1e-9)
	assert.InDelta(t, 9.0, FitScale(geom.Size{Width: 100, Height: 100}, vp, Margins{Left: 100}), 1e-9)
	assert.Zero(t, FitScale(geom.Size{}, vp, Margins{}))
	assert.Zero(t, FitScale(geom.Size{Width: 1, Height: 1}, geom.Rect{}, Margins{}))

	assert.Equal(t, Horizontal, ConstrainingAxis(geom.Size{Width: 200, Height: 100}, vp, Margins{}))
	assert.Equal(t, Vertical, ConstrainingAxis(geom.Size{Width: 100, Height: 200}, vp, Margins{}))
}

func TestEffectiveMargins(t *testing.T) {
	vp := geom.RectLTRB(0, 0, 1000, 1000)
	wide := geom.Size{Width: 200, Height: 100}
	abs := Margins{Left: 20, Top: 30, Right: 40, Bottom: 50}

	tests := []struct {
		name  string
		align Alignment
		want  Margins
	}{
		// Fit scale is 940/200 = 4.7: 60 pixels of horizontal slack and
		// 530 of vertical slack.
		{"center", AlignCenter, Margins{Left: 30, Top: 265, Right: 30, Bottom: 265}},
		{"top", AlignTop, Margins{Left: 30, Top: 30, Right: 30, Bottom: 500}},
		{"bottom", AlignBottom, Margins{Left: 30, Top: 480, Right: 30, Bottom: 50}},
		{"left", AlignLeft | AlignCenterVertical, Margins{Left: 20, Top: 265, Right: 40, Bottom: 265}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveMargins(wide, vp, tt.align, abs)
			assert.InDelta(t, tt.want.Left, got.Left, 1e-9)
			assert.InDelta(t, tt.want.Top, got.Top, 1e-9)
			assert.InDelta(t, tt.want.Right, got.Right, 1e-9)
			assert.InDelta(t, tt.want.Bottom, got.Bottom, 1e-9)
		})
	}
}

func TestEffectiveMarginsCenterSplitsAsymmetricMargins(t *testing.T) {
	vp := geom.RectLTRB(0, 0, 1000, 1000)
	square := geom.Size{Width: 100, Height: 100}

	// Fit scale is 900/100 = 9, leaving 100 pixels of slack on each axis.
	got := EffectiveMargins(square, vp, AlignCenter, Margins{Left: 100})
	assert.InDelta(t, 50.0, got.Left, 1e-9)
	assert.InDelta(t, 50.0, got.Right, 1e-9)
	assert.InDelta(t, 50.0, got.Top, 1e-9)
	assert.InDelta(t, 50.0, got.Bottom, 1e-9)
	assert.Equal(t, got, EffectiveMargins(square, vp, AlignCenter, Margins{Left: 50, Right: 50}))

	// An edge-aligned axis keeps the requested margin on its own edge.
	got = EffectiveMargins(square, vp, AlignLeft|AlignCenterVertical, Margins{Left: 100})
	assert.InDelta(t, 100.0, got.Left, 1e-9)
	assert.InDelta(t, 0.0, got.Right, 1e-9)
}

func TestEffectiveMarginsNeverNegative(t *testing.T) {
	vp := geom.RectLTRB(0, 0, 100, 100)
	got := EffectiveMargins(geom.Size{Width: 10, Height: 10}, vp, AlignLeft|AlignTop, Margins{Left: 80, Right: 80, Top: -5})
	assert.GreaterOrEqual(t, got.Left, 0.0)
	assert.GreaterOrEqual(t, got.Right, 0.0)
	assert.GreaterOrEqual(t, got.Top, 0.0)
	assert.GreaterOrEqual(t, got.Bottom, 0.0)
	assert.LessOrEqual(t, got.Left+got.Right, 100.0)

	assert.Equal(t, Margins{}, EffectiveMargins(geom.Size{}, vp, AlignCenter, Margins{Left: 10}))
}

func TestMeasure(t *testing.T) {
	assert.Equal(t, 120.0, Measure(100, 10, 10, 0, MeasureSpec{}))
	assert.Equal(t, 80.0, Measure(100, 10, 10, 0, MeasureSpec{Mode: AtMost, Size: 80}))
	assert.Equal(t, 300.0, Measure(100, 10, 10, 0, MeasureSpec{Mode: Exactly, Size: 300}))
	assert.Equal(t, 150.0, Measure(100, 10, 10, 150, MeasureSpec{Mode: AtMost, Size: 80}))
}
