package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/pkg/anim"
	"scaleview/pkg/edge"
	"scaleview/pkg/geom"
	"scaleview/pkg/viewport"
)

const frame = 16 * time.Millisecond

type recordingParent struct {
	calls []bool
}

func (p *recordingParent) RequestDisallowIntercept(disallow bool) {
	p.calls = append(p.calls, disallow)
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *anim.ManualClock) {
	t.Helper()
	clock := anim.NewManualClock(time.Unix(0, 0))
	e := New(append([]Option{WithClock(clock)}, opts...)...)
	e.SetViewportSize(1000, 1000, viewport.Padding{})
	e.SetContent(100, 100)
	return e, clock
}

// settle ticks until the engine reports no more frames and returns the
// number of frames it took.
func settle(t *testing.T, e *Engine, clock *anim.ManualClock) int {
	t.Helper()
	for n := 1; n <= 1000; n++ {
		clock.Advance(frame)
		if !e.Tick() {
			return n
		}
	}
	require.FailNow(t, "animation did not settle")
	return 0
}

func TestFitScaleOnContent(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.InDelta(t, 10.0, e.MinScale(), 1e-9)
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.Pt(0.5, 0.5), e.Translation())
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 1000), e.ImageRect())
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 1000), e.ContentRect())
}

func TestScaleBelowMinimumIsCorrected(t *testing.T) {
	e, _ := newTestEngine(t)

	e.state.Scale = 5
	assert.False(t, e.validate())
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
	assert.True(t, e.validate())
}

func TestPinchAroundCenterKeepsTranslation(t *testing.T) {
	e, _ := newTestEngine(t)

	require.True(t, e.OnScale(geom.Pt(500, 500), 2))
	assert.InDelta(t, 20.0, e.Scale(), 1e-9)
	assert.InDelta(t, 0.5, e.Translation().X, 1e-9)
	assert.InDelta(t, 0.5, e.Translation().Y, 1e-9)
	assert.Equal(t, geom.RectLTRB(-500, -500, 1500, 1500), e.ImageRect())
}

func TestPinchKeepsFocusStationary(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	focus := geom.Pt(700, 300)
	before := e.Matrix().Inverse().TransformPoint(focus)
	e.OnScale(focus, 1.5)
	after := e.Matrix().Inverse().TransformPoint(focus)

	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestPinchOutStopsAtFit(t *testing.T) {
	e, _ := newTestEngine(t)

	e.OnScale(geom.Pt(100, 100), 0.25)
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 1000), e.ImageRect())
}

func TestDragPastLeftEdgeClampsAndGlows(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	// Bring the left edge flush with the viewport.
	e.OnDrag(-500, 0)
	require.InDelta(t, 0.0, e.ImageRect().Left, 1e-9)
	flush := e.Translation()
	assert.False(t, e.EdgeActive(edge.Left))

	require.True(t, e.OnDrag(-50, 0))
	assert.InDelta(t, flush.X, e.Translation().X, 1e-9)
	assert.InDelta(t, flush.Y, e.Translation().Y, 1e-9)
	assert.True(t, e.EdgeActive(edge.Left))
	assert.False(t, e.EdgeActive(edge.Right))

	glows := e.Glows()
	require.Len(t, glows, 1)
	assert.Equal(t, edge.Left, glows[0].Side)
	assert.Greater(t, glows[0].Alpha, 0.0)
}

func TestDragAtFitDoesNotGlow(t *testing.T) {
	e, _ := newTestEngine(t)

	e.OnDrag(-50, -50)
	assert.Equal(t, geom.Pt(0.5, 0.5), e.Translation())
	assert.Empty(t, e.Glows())
}

func TestOnDownReleasesEdges(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)
	e.OnDrag(0, -600)
	require.True(t, e.EdgeActive(edge.Top))

	e.OnDown()
	assert.False(t, e.EdgeActive(edge.Top))
	settle(t, e, clock)
	assert.Empty(t, e.Glows())
}

func TestDoubleTapZoomsMonotonically(t *testing.T) {
	e, clock := newTestEngine(t)
	start := e.Scale()

	require.True(t, e.OnDoubleTap(geom.Pt(500, 500)))
	assert.Equal(t, anim.Running, e.ZoomStatus())

	prev := start
	frames := 0
	for e.Animating() {
		clock.Advance(frame)
		e.Tick()
		frames++
		require.GreaterOrEqual(t, e.Scale(), prev)
		require.LessOrEqual(t, e.Scale(), start*1.5+1e-9)
		prev = e.Scale()
		require.Less(t, frames, 100)
	}
	assert.Equal(t, anim.Finished, e.ZoomStatus())
	assert.InDelta(t, start*1.5, e.Scale(), 1e-9)
	assert.LessOrEqual(t, frames, int(DefaultOptions().ZoomDuration/frame)+1)

	// Finished animations are not touched again.
	clock.Advance(time.Second)
	assert.False(t, e.Tick())
	assert.InDelta(t, start*1.5, e.Scale(), 1e-9)
}

func TestZoomOutNeverDropsBelowFit(t *testing.T) {
	e, clock := newTestEngine(t)

	e.ZoomIn()
	settle(t, e, clock)
	assert.InDelta(t, 15.0, e.Scale(), 1e-9)

	e.ZoomOut()
	settle(t, e, clock)
	assert.InDelta(t, 10.0, e.MinScale(), 1e-9)
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
}

func TestFlingWithZeroVelocityFinishes(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	require.True(t, e.OnFling(0, 0))
	assert.Equal(t, anim.Finished, e.FlingStatus())
	assert.False(t, e.Animating())
	clock.Advance(frame)
	assert.False(t, e.Tick())
}

func TestFlingStopsAtBoundAndAbsorbs(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)
	require.Equal(t, geom.Pt(500, 500), e.ScrollOffset())

	// Finger moves left, the image scrolls towards its right edge.
	e.OnFling(-3000, 0)
	require.Equal(t, anim.Running, e.FlingStatus())
	settle(t, e, clock)

	assert.Equal(t, anim.Finished, e.FlingStatus())
	assert.InDelta(t, 1000.0, e.ScrollOffset().X, 1e-6)
	assert.InDelta(t, 1000.0, e.ImageRect().Right, 1e-6)
	assert.InDelta(t, 500.0, e.ScrollOffset().Y, 1e-6)
	assert.True(t, e.EdgeActive(edge.Right))
	assert.False(t, e.EdgeActive(edge.Left))
}

func TestFlingStaysInsideBounds(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 3)
	b := e.ScrollBounds()

	e.OnFling(2500, -4000)
	for e.Animating() {
		clock.Advance(frame)
		e.Tick()
		off := e.ScrollOffset()
		require.GreaterOrEqual(t, off.X, b.MinX-1e-6)
		require.LessOrEqual(t, off.X, b.MaxX+1e-6)
		require.GreaterOrEqual(t, off.Y, b.MinY-1e-6)
		require.LessOrEqual(t, off.Y, b.MaxY+1e-6)
	}
}

func TestDragCancelsFling(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	e.OnFling(-3000, 0)
	require.True(t, e.Animating())
	e.OnDrag(1, 0)
	assert.False(t, e.Animating())
}

func TestPinchStopsFling(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	e.OnFling(-3000, 0)
	clock.Advance(frame)
	require.True(t, e.Tick())

	focus := geom.Pt(700, 300)
	require.True(t, e.OnScale(focus, 1.5))
	assert.NotEqual(t, anim.Running, e.FlingStatus())
	before := e.Matrix().Inverse().TransformPoint(focus)

	clock.Advance(frame)
	e.Tick()
	after := e.Matrix().Inverse().TransformPoint(focus)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestFlingAndZoomRunTogether(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)
	start := e.Scale()

	e.OnFling(-3000, 0)
	e.ZoomIn()
	require.Equal(t, anim.Running, e.FlingStatus())
	require.Equal(t, anim.Running, e.ZoomStatus())

	for n := 0; e.Animating(); n++ {
		require.Less(t, n, 1000, "animation did not settle")
		clock.Advance(frame)
		e.Tick()
		off, b := e.ScrollOffset(), e.ScrollBounds()
		require.GreaterOrEqual(t, off.X, b.MinX-1e-6)
		require.LessOrEqual(t, off.X, b.MaxX+1e-6)
		require.GreaterOrEqual(t, off.Y, b.MinY-1e-6)
		require.LessOrEqual(t, off.Y, b.MaxY+1e-6)
	}
	assert.InDelta(t, start*1.5, e.Scale(), 1e-9)
}

func TestNonFiniteInputIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)
	tr, scale := e.Translation(), e.Scale()

	nan, inf := math.NaN(), math.Inf(1)
	assert.False(t, e.OnDrag(nan, 0))
	assert.False(t, e.OnDrag(0, inf))
	assert.False(t, e.OnFling(inf, 0))
	assert.False(t, e.OnFling(0, nan))
	assert.False(t, e.OnScale(geom.Pt(nan, 500), 2))
	assert.False(t, e.OnScale(geom.Pt(500, 500), inf))
	assert.False(t, e.OnDoubleTap(geom.Pt(inf, inf)))

	assert.Equal(t, tr, e.Translation())
	assert.Equal(t, scale, e.Scale())
	assert.False(t, e.Animating())
}

func TestPan(t *testing.T) {
	e, clock := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	e.PanRight()
	settle(t, e, clock)
	assert.InDelta(t, 1000.0, e.ScrollOffset().X, 1e-6)

	e.PanUp()
	settle(t, e, clock)
	assert.InDelta(t, 0.0, e.ScrollOffset().Y, 1e-6)
}

func TestParentIntercept(t *testing.T) {
	parent := &recordingParent{}
	e, _ := newTestEngine(t, WithParentScroll(true, false), WithParent(parent))

	// Flush on both sides: the parent may take the gesture.
	assert.False(t, e.ShouldDisallowParentIntercept(10, 0))
	assert.Empty(t, parent.calls)

	e.OnScale(geom.Pt(500, 500), 2)
	assert.True(t, e.ShouldDisallowParentIntercept(10, 0))
	assert.True(t, e.ShouldDisallowParentIntercept(-10, 0))
	assert.False(t, e.ShouldDisallowParentIntercept(0, 10), "vertical passthrough disabled")

	e.OnDrag(-500, 0)
	assert.False(t, e.ShouldDisallowParentIntercept(-10, 0), "flush left")
	assert.True(t, e.ShouldDisallowParentIntercept(10, 0))
	assert.Equal(t, []bool{true, true, true}, parent.calls[:3])
}

func TestScaleBeginDisallowsParent(t *testing.T) {
	parent := &recordingParent{}
	e, _ := newTestEngine(t, WithParent(parent))

	assert.True(t, e.OnScaleBegin())
	assert.Equal(t, []bool{true}, parent.calls)
}

func TestNoContentIgnoresGestures(t *testing.T) {
	e := New(WithClock(anim.NewManualClock(time.Unix(0, 0))))
	e.SetViewportSize(1000, 1000, viewport.Padding{})

	assert.False(t, e.OnDrag(10, 10))
	assert.False(t, e.OnScale(geom.Pt(0, 0), 2))
	assert.False(t, e.OnDoubleTap(geom.Pt(0, 0)))
	assert.False(t, e.OnFling(100, 100))
	assert.False(t, e.Tick())
	assert.True(t, e.ContentRect().Empty())
	assert.Equal(t, geom.Identity(), e.Matrix())
}

func TestClearContent(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	e.ClearContent()
	_, ok := e.Content()
	assert.False(t, ok)
	assert.Zero(t, e.Scale())
	assert.True(t, e.ImageRect().Empty())
}

func TestContentBeforeViewport(t *testing.T) {
	e := New(WithClock(anim.NewManualClock(time.Unix(0, 0))))
	e.SetContent(100, 100)
	assert.Zero(t, e.Scale())

	e.SetViewportSize(1000, 1000, viewport.Padding{})
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.Pt(0.5, 0.5), e.Translation())
}

func TestInvalidContentPanics(t *testing.T) {
	e := New()
	assert.Panics(t, func() { e.SetContent(0, 10) })
	assert.Panics(t, func() { e.SetViewportSize(-1, 10, viewport.Padding{}) })
}

func TestResizeAtRestRefits(t *testing.T) {
	e, _ := newTestEngine(t)

	e.SetViewportSize(500, 1000, viewport.Padding{})
	assert.InDelta(t, 5.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.Pt(0.5, 0.5), e.Translation())
	assert.Equal(t, geom.RectLTRB(0, 250, 500, 750), e.ImageRect())
	assert.Equal(t, geom.RectLTRB(0, 250, 500, 750), e.ContentRect())
}

func TestResizeKeepsZoomedTransform(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)

	e.SetViewportSize(800, 800, viewport.Padding{})
	assert.InDelta(t, 20.0, e.Scale(), 1e-9)
	assert.InDelta(t, 8.0, e.MinScale(), 1e-9)
	assert.Equal(t, geom.Pt(0.5, 0.5), e.Translation())
}

func TestPaddingOffsetsViewport(t *testing.T) {
	e, _ := newTestEngine(t)

	vp := e.SetViewportSize(1100, 1050, viewport.Padding{Left: 100, Top: 50})
	assert.Equal(t, geom.RectLTRB(100, 50, 1100, 1050), vp)
	assert.Equal(t, geom.RectLTRB(100, 50, 1100, 1050), e.ImageRect())
	assert.Equal(t, geom.Size{Width: 1100, Height: 1050}, e.ViewSize())
}

func TestAlignmentAnchorsSmallAxis(t *testing.T) {
	e, _ := newTestEngine(t, WithAlignment(viewport.AlignLeft|viewport.AlignBottom))
	e.SetContent(100, 50)

	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.RectLTRB(0, 500, 1000, 1000), e.ContentRect())
}

func TestMarginsShrinkFit(t *testing.T) {
	e, _ := newTestEngine(t, WithMargins(viewport.Margins{Left: 50, Top: 50, Right: 50, Bottom: 50}))

	assert.InDelta(t, 9.0, e.MinScale(), 1e-9)
	assert.Equal(t, geom.RectLTRB(50, 50, 950, 950), e.ContentRect())

	e.OnDrag(-100, 0)
	assert.Equal(t, geom.RectLTRB(50, 50, 950, 950), e.ContentRect())
}

func TestConfigureRefitsAtRest(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Configure(WithMargins(viewport.Margins{Left: 100, Right: 100}))
	assert.InDelta(t, 8.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.RectLTRB(100, 100, 900, 900), e.ContentRect())
}

func TestMeasure(t *testing.T) {
	e, _ := newTestEngine(t, WithMinSize(250, 250))
	e.SetViewportSize(300, 200, viewport.Padding{Left: 10, Top: 10, Right: 10, Bottom: 10})

	got := e.Measure(
		viewport.MeasureSpec{Mode: viewport.Exactly, Size: 300},
		viewport.MeasureSpec{Mode: viewport.AtMost, Size: 200},
		geom.Size{},
	)
	assert.Equal(t, geom.Size{Width: 300, Height: 200}, got)

	got = e.Measure(viewport.MeasureSpec{}, viewport.MeasureSpec{}, geom.Size{Width: 400})
	assert.Equal(t, geom.Size{Width: 400, Height: 270}, got)
}
