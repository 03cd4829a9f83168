package gui

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"scaleview/internal/config"
	"scaleview/pkg/anim"
	"scaleview/pkg/geom"
	"scaleview/pkg/gesture"
	"scaleview/pkg/raster"
	"scaleview/pkg/viewport"
)

const (
	// minFlingVelocity is the release speed, in px/s, below which a drag
	// ends without a fling.
	minFlingVelocity = 50.0

	// scrollZoomStep is the wheel distance that doubles the scale.
	scrollZoomStep = 200.0
)

// ImageViewer is a widget that shows one image with pinch, drag, fling and
// double-tap zoom driven by a gesture engine. Fyne delivers events and
// animation frames on different goroutines, so every engine call holds mu.
type ImageViewer struct {
	widget.BaseWidget

	mu       sync.Mutex
	engine   *gesture.Engine
	tracker  *anim.VelocityTracker
	renderer *raster.Renderer
	cfg      config.Config
	frames   *fyne.Animation

	raster *canvas.Raster

	// OnChanged is called with the current and minimum scale after every
	// change of the transform. It runs outside the widget lock.
	OnChanged func(scale, minScale float64)
}

// NewImageViewer creates an empty viewer configured by cfg. Extra engine
// options are applied after the configuration.
func NewImageViewer(cfg config.Config, opts ...gesture.Option) *ImageViewer {
	v := &ImageViewer{cfg: cfg}
	all := append(cfg.Options(), opts...)
	v.engine = gesture.New(all...)
	v.tracker = anim.NewVelocityTracker(v.engine.Options().Clock)
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// SetImage shows img at rest. A nil image clears the viewer.
func (v *ImageViewer) SetImage(img image.Image) {
	v.mu.Lock()
	v.stopFramesLocked()
	if img == nil || img.Bounds().Empty() {
		v.renderer = nil
		v.engine.ClearContent()
	} else {
		v.renderer = raster.NewRenderer(img)
		v.cfg.ApplyRender(v.renderer)
		b := img.Bounds()
		v.engine.SetContent(float64(b.Dx()), float64(b.Dy()))
	}
	v.mu.Unlock()
	v.changed()
}

// HasImage reports whether an image is shown.
func (v *ImageViewer) HasImage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderer != nil
}

// ApplyConfig reconfigures the live engine and renderer.
func (v *ImageViewer) ApplyConfig(cfg config.Config) {
	v.mu.Lock()
	v.cfg = cfg
	v.engine.Configure(cfg.Options()...)
	if v.renderer != nil {
		cfg.ApplyRender(v.renderer)
	}
	v.mu.Unlock()
	v.changed()
}

// Scale returns the current and minimum scale.
func (v *ImageViewer) Scale() (scale, minScale float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Scale(), v.engine.MinScale()
}

// Translation returns the normalized translation.
func (v *ImageViewer) Translation() geom.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Translation()
}

// SaveState captures the transform for persistence.
func (v *ImageViewer) SaveState() gesture.SavedState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.SaveState()
}

// RestoreState applies a saved transform.
func (v *ImageViewer) RestoreState(s gesture.SavedState) bool {
	v.mu.Lock()
	ok := v.engine.RestoreState(s)
	v.mu.Unlock()
	v.changed()
	return ok
}

// Reset puts the image back at rest.
func (v *ImageViewer) Reset() {
	v.do(func(e *gesture.Engine) { e.ResetTranslateScale() })
}

// ZoomIn zooms one step around the viewport center.
func (v *ImageViewer) ZoomIn() { v.do(func(e *gesture.Engine) { e.ZoomIn() }) }

// ZoomOut zooms out one step around the viewport center.
func (v *ImageViewer) ZoomOut() { v.do(func(e *gesture.Engine) { e.ZoomOut() }) }

// PanLeft flings the view to the left.
func (v *ImageViewer) PanLeft() { v.do(func(e *gesture.Engine) { e.PanLeft() }) }

// PanRight flings the view to the right.
func (v *ImageViewer) PanRight() { v.do(func(e *gesture.Engine) { e.PanRight() }) }

// PanUp flings the view up.
func (v *ImageViewer) PanUp() { v.do(func(e *gesture.Engine) { e.PanUp() }) }

// PanDown flings the view down.
func (v *ImageViewer) PanDown() { v.do(func(e *gesture.Engine) { e.PanDown() }) }

// do runs fn on the engine and schedules frames if it started an animation.
func (v *ImageViewer) do(fn func(e *gesture.Engine)) {
	v.mu.Lock()
	fn(v.engine)
	v.mu.Unlock()
	v.kick()
	v.changed()
}

// Resize keeps the engine viewport in sync with the widget size.
func (v *ImageViewer) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	v.mu.Lock()
	v.engine.SetViewportSize(float64(size.Width), float64(size.Height), viewport.Padding{})
	v.mu.Unlock()
	v.changed()
}

// MouseDown starts a touch sequence.
func (v *ImageViewer) MouseDown(ev *desktop.MouseEvent) {
	v.mu.Lock()
	v.engine.OnDown()
	v.tracker.Reset()
	v.tracker.Add(toPoint(ev.Position))
	v.mu.Unlock()
	v.kick()
}

// MouseUp is required by desktop.Mouseable.
func (v *ImageViewer) MouseUp(*desktop.MouseEvent) {}

// Dragged moves the image with the pointer.
func (v *ImageViewer) Dragged(ev *fyne.DragEvent) {
	v.mu.Lock()
	v.tracker.Add(toPoint(ev.Position))
	// The engine takes the distance travelled since the previous event,
	// previous minus current.
	v.engine.OnDrag(-float64(ev.Dragged.DX), -float64(ev.Dragged.DY))
	v.mu.Unlock()
	v.kick()
	v.changed()
}

// DragEnd flings the image when the pointer was released while moving.
func (v *ImageViewer) DragEnd() {
	v.mu.Lock()
	vel := v.tracker.Velocity()
	v.tracker.Reset()
	if vel.Length() >= minFlingVelocity {
		v.engine.OnFling(vel.X, vel.Y)
	}
	v.mu.Unlock()
	v.kick()
}

// Scrolled zooms around the pointer. One scroll step acts as a pinch.
func (v *ImageViewer) Scrolled(ev *fyne.ScrollEvent) {
	factor := math.Pow(2, float64(ev.Scrolled.DY)/scrollZoomStep)
	v.mu.Lock()
	v.engine.OnScaleBegin()
	v.engine.OnScale(toPoint(ev.Position), factor)
	v.mu.Unlock()
	v.kick()
	v.changed()
}

// DoubleTapped zooms one step around the tap.
func (v *ImageViewer) DoubleTapped(ev *fyne.PointEvent) {
	v.do(func(e *gesture.Engine) { e.OnDoubleTap(toPoint(ev.Position)) })
}

// Tick advances the animations by one frame and reports whether another
// frame is needed. The frame loop calls it; tests call it directly.
func (v *ImageViewer) Tick() bool {
	v.mu.Lock()
	more := v.engine.Tick()
	v.mu.Unlock()
	v.raster.Refresh()
	v.changed()
	return more
}

// kick starts the frame loop if the engine has something to animate.
func (v *ImageViewer) kick() {
	v.mu.Lock()
	if v.frames != nil || !(v.engine.Animating() || len(v.engine.Glows()) > 0) {
		v.mu.Unlock()
		v.raster.Refresh()
		return
	}
	a := fyne.NewAnimation(time.Second, func(float32) {
		if !v.Tick() {
			v.stopFrames()
		}
	})
	a.Curve = fyne.AnimationLinear
	a.RepeatCount = fyne.AnimationRepeatForever
	v.frames = a
	v.mu.Unlock()
	a.Start()
}

func (v *ImageViewer) stopFrames() {
	v.mu.Lock()
	v.stopFramesLocked()
	v.mu.Unlock()
}

func (v *ImageViewer) stopFramesLocked() {
	if v.frames != nil {
		v.frames.Stop()
		v.frames = nil
	}
}

func (v *ImageViewer) changed() {
	if v.OnChanged == nil {
		return
	}
	scale, minScale := v.Scale()
	v.OnChanged(scale, minScale)
}

// draw renders the current frame at the pixel size Fyne asks for.
func (v *ImageViewer) draw(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()

	size := v.engine.ViewSize()
	if v.renderer == nil || size.Width <= 0 || w <= 0 || h <= 0 {
		return image.NewUniform(v.background())
	}
	v.renderer.SetPixelScale(float64(w) / size.Width)
	return v.renderer.Render(v.engine)
}

func (v *ImageViewer) background() color.Color {
	if c, err := config.ParseColor(v.cfg.Render.Background); err == nil {
		return c
	}
	return color.Black
}

// CreateRenderer implements fyne.Widget.
func (v *ImageViewer) CreateRenderer() fyne.WidgetRenderer {
	return &viewerRenderer{viewer: v}
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

type viewerRenderer struct {
	viewer *ImageViewer
}

func (r *viewerRenderer) Layout(size fyne.Size) {
	r.viewer.raster.Move(fyne.NewPos(0, 0))
	r.viewer.raster.Resize(size)
}

func (r *viewerRenderer) MinSize() fyne.Size {
	v := r.viewer
	v.mu.Lock()
	defer v.mu.Unlock()
	free := viewport.MeasureSpec{Mode: viewport.Unspecified}
	s := v.engine.Measure(free, free, geom.Size{Width: 200, Height: 200})
	return fyne.NewSize(float32(s.Width), float32(s.Height))
}

func (r *viewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.raster}
}

func (r *viewerRenderer) Refresh() {
	r.viewer.raster.Refresh()
}

func (r *viewerRenderer) Destroy() {
	r.viewer.stopFrames()
}
