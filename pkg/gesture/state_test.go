package gesture

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/pkg/geom"
	"scaleview/pkg/viewport"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	e.OnScale(geom.Pt(500, 500), 2)
	e.OnDrag(120, -80)
	saved := e.SaveState()

	other, _ := newTestEngine(t)
	require.True(t, other.RestoreState(saved))
	assert.InDelta(t, e.Scale(), other.Scale(), 1e-9)
	assert.InDelta(t, e.Translation().X, other.Translation().X, 1e-9)
	assert.InDelta(t, e.Translation().Y, other.Translation().Y, 1e-9)
	assert.Equal(t, e.ImageRect(), other.ImageRect())
}

func TestRestoreRevalidates(t *testing.T) {
	e, _ := newTestEngine(t)

	ok := e.RestoreState(SavedState{TranslationX: 3, TranslationY: 0.5, MinScale: 10, Scale: 5})
	require.True(t, ok)
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
	assert.Equal(t, geom.RectLTRB(0, 0, 1000, 1000), e.ImageRect())
}

func TestRestoreIgnoresInvalidScale(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.False(t, e.RestoreState(SavedState{Scale: 0}))
	assert.InDelta(t, 10.0, e.Scale(), 1e-9)
}

func TestRestoreBeforeLayout(t *testing.T) {
	e := New()
	e.SetContent(100, 100)
	require.True(t, e.RestoreState(SavedState{TranslationX: 0.25, TranslationY: 0.5, MinScale: 10, Scale: 20}))

	e.SetViewportSize(1000, 1000, viewport.Padding{})
	assert.InDelta(t, 20.0, e.Scale(), 1e-9)
	assert.InDelta(t, 0.25, e.Translation().X, 1e-9)
}

func TestOptionsNormalize(t *testing.T) {
	o := NewOptions(
		WithAlignment(viewport.AlignLeft),
		WithMargins(viewport.Margins{Left: -5, Top: 3}),
		WithEdgeSlop(-1),
		WithClock(nil),
	)
	assert.Equal(t, viewport.AlignLeft|viewport.AlignCenterVertical, o.Alignment)
	assert.Equal(t, viewport.Margins{Top: 3}, o.Margins)
	assert.Zero(t, o.EdgeSlop)
	assert.NotNil(t, o.Clock)
	assert.Equal(t, DefaultZoomAmount, o.ZoomAmount)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	e := New()
	e.SetViewportSize(100, 100, viewport.Padding{})
	e.SetContent(10, 10)
	assert.Contains(t, buf.String(), "content set")

	SetLogger(nil)
	buf.Reset()
	e.ClearContent()
	assert.Empty(t, buf.String())
}
