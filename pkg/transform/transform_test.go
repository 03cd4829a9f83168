package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/pkg/geom"
	"scaleview/pkg/viewport"
)

func squareLayout() Layout {
	return NewLayout(geom.RectLTRB(0, 0, 1000, 1000), geom.Size{Width: 100, Height: 100}, viewport.AlignCenter, viewport.Margins{})
}

func TestRealTranslationRoundTrip(t *testing.T) {
	for _, vp := range []geom.Rect{
		geom.RectLTRB(0, 0, 1000, 1000),
		geom.RectLTRB(13, 7, 333, 911),
		geom.RectLTRB(0, 0, 1, 3),
	} {
		for _, tr := range []geom.Point{{X: 0.5, Y: 0.5}, {X: -1.25, Y: 3}, {X: 0.1, Y: 0.7}} {
			got := TranslationFromReal(RealTranslation(tr, vp), vp)
			assert.InDelta(t, tr.X, got.X, 1e-12)
			assert.InDelta(t, tr.Y, got.Y, 1e-12)
		}
	}
	assert.Equal(t, geom.Pt(250, 100), RealTranslation(geom.Pt(0.5, 0.25), geom.RectLTRB(0, 0, 500, 400)))
}

func TestValidateScale(t *testing.T) {
	for _, s := range []float64{0, 1, 5, 9.999} {
		got, ok := ValidateScale(s, 10)
		assert.Equal(t, 10.0, got)
		assert.False(t, ok)
	}
	for _, s := range []float64{10, 10.001, 50} {
		got, ok := ValidateScale(s, 10)
		assert.Equal(t, s, got)
		assert.True(t, ok)
	}
}

func TestImageRect(t *testing.T) {
	l := squareLayout()
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 1000), l.ImageRect(10, geom.Pt(0.5, 0.5)))
	assert.Equal(t, geom.RectLTRB(-500, -500, 1500, 1500), l.ImageRect(20, geom.Pt(0.5, 0.5)))
	// Never smaller than the viewport minus margins.
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 1000), l.ImageRect(1, geom.Pt(0.5, 0.5)))
	assert.Equal(t, geom.RectLTRB(450, 450, 550, 550), l.ContentRect(1, geom.Pt(0.5, 0.5)))
}

func TestImageRectAlignment(t *testing.T) {
	l := NewLayout(geom.RectLTRB(0, 0, 1000, 1000), geom.Size{Width: 100, Height: 50}, viewport.AlignRight|viewport.AlignTop, viewport.Margins{})
	tr := l.DefaultTranslation()
	assert.Equal(t, geom.Pt(1, 0), tr)
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 500), l.ContentRect(10, tr))
	assert.Equal(t, geom.RectLTRB(-1000, 0, 1000, 1000), l.ContentRect(20, tr))
}

func TestValidateTranslation(t *testing.T) {
	vp := geom.RectLTRB(0, 0, 1000, 1000)
	m := viewport.Margins{Left: 10, Top: 20, Right: 30, Bottom: 40}

	tests := []struct {
		name  string
		in    geom.Rect
		want  geom.Rect
		valid bool
	}{
		{"inside", geom.RectLTRB(-100, -100, 1500, 1500), geom.RectLTRB(-100, -100, 1500, 1500), true},
		{"flush", geom.RectLTRB(10, 20, 970, 960), geom.RectLTRB(10, 20, 970, 960), true},
		{"past left", geom.RectLTRB(50, -100, 1550, 1500), geom.RectLTRB(10, -100, 1510, 1500), false},
		{"past right", geom.RectLTRB(-800, -100, 700, 1500), geom.RectLTRB(-530, -100, 970, 1500), false},
		{"past top", geom.RectLTRB(-100, 100, 1500, 1500), geom.RectLTRB(-100, 20, 1500, 1420), false},
		{"past bottom", geom.RectLTRB(-100, -900, 1500, 500), geom.RectLTRB(-100, -440, 1500, 960), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := ValidateTranslation(tt.in, vp, m)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)

			again, valid := ValidateTranslation(got, vp, m)
			assert.Equal(t, got, again)
			assert.True(t, valid)
		})
	}
}

func TestClamp(t *testing.T) {
	l := squareLayout()

	tr, ok := l.Clamp(20, geom.Pt(0.5, 0.5))
	assert.True(t, ok)
	assert.Equal(t, geom.Pt(0.5, 0.5), tr)

	tr, ok = l.Clamp(20, geom.Pt(1.2, -0.3))
	assert.False(t, ok)
	assert.InDelta(t, 1.0, tr.X, 1e-9)
	assert.InDelta(t, 0.0, tr.Y, 1e-9)
}

func TestOvershoot(t *testing.T) {
	l := squareLayout()
	o := l.OvershootOf(geom.RectLTRB(50, -300, 2050, 1700))
	assert.Equal(t, 50.0, o.Left)
	assert.Equal(t, -300.0, o.Top)
	assert.Equal(t, -1050.0, o.Right)
	assert.Equal(t, -700.0, o.Bottom)
}

func TestScrollRoundTrip(t *testing.T) {
	l := NewLayout(geom.RectLTRB(0, 0, 1000, 1000), geom.Size{Width: 100, Height: 100}, viewport.AlignCenter,
		viewport.Margins{Left: 50, Top: 50, Right: 50, Bottom: 50})

	b := l.ScrollBoundsAt(20)
	assert.Equal(t, ScrollBounds{MinX: -50, MaxX: 1050, MinY: -50, MaxY: 1050}, b)
	assert.True(t, b.CanScrollX())

	tr := geom.Pt(0.4, 0.6)
	off := l.ScrollOffset(l.ImageRect(20, tr))
	back := l.TranslationFromScroll(20, off)
	assert.InDelta(t, tr.X, back.X, 1e-9)
	assert.InDelta(t, tr.Y, back.Y, 1e-9)

	atFit := l.ScrollBoundsAt(9)
	require.False(t, atFit.CanScrollX())
}

func TestMatrixMapsSourceToContentRect(t *testing.T) {
	l := squareLayout()
	tr := geom.Pt(0.3, 0.8)
	got := l.SourceRect().Transform(l.Matrix(20, tr))
	want := l.ContentRect(20, tr)
	assert.InDelta(t, want.Left, got.Left, 1e-9)
	assert.InDelta(t, want.Top, got.Top, 1e-9)
	assert.InDelta(t, want.Right, got.Right, 1e-9)
	assert.InDelta(t, want.Bottom, got.Bottom, 1e-9)
}
