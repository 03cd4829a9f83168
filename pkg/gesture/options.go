package gesture

import (
	"time"

	"scaleview/pkg/anim"
	"scaleview/pkg/viewport"
)

const (
	// DefaultZoomAmount is the fraction of the current scale added by one
	// zoom step.
	DefaultZoomAmount = 0.5

	// DefaultPanVelocityFactor is the fling velocity of a programmatic pan,
	// in view widths (or heights) per second.
	DefaultPanVelocityFactor = 2.0

	// DefaultEdgeSlop is the distance, in pixels, within which the image
	// counts as flush against an edge.
	DefaultEdgeSlop = 12.0
)

// ParentInterceptor is implemented by a scrollable container embedding the
// view. The engine asks it to stop intercepting touches while the image
// still has room to move in the gesture direction.
type ParentInterceptor interface {
	RequestDisallowIntercept(disallow bool)
}

// Options configures an Engine.
type Options struct {
	// Alignment anchors an image smaller than the viewport.
	// Default: center on both axes
	Alignment viewport.Alignment

	// Margins are the absolute margins kept around the image at rest.
	// Default: none
	Margins viewport.Margins

	// AllowParentHorizontalScroll lets a horizontally scrolling parent take
	// over the gesture once the image is flush with the edge.
	// Default: false
	AllowParentHorizontalScroll bool

	// AllowParentVerticalScroll is the vertical counterpart.
	// Default: false
	AllowParentVerticalScroll bool

	// EdgeSlop is the flush tolerance for parent scroll passthrough.
	// Default: 12
	EdgeSlop float64

	// ZoomAmount is the scale fraction of one double-tap or zoom step.
	// Default: 0.5
	ZoomAmount float64

	// ZoomDuration is the length of one zoom step.
	// Default: 200ms
	ZoomDuration time.Duration

	// PanVelocityFactor drives PanLeft and friends.
	// Default: 2
	PanVelocityFactor float64

	// FlingDeceleration is the fling friction in px/s².
	// Default: 2500
	FlingDeceleration float64

	// MinWidth and MinHeight are the minimum content size requested when
	// the host measures the view.
	MinWidth, MinHeight float64

	// Clock drives every animation.
	// Default: wall clock
	Clock anim.Clock

	// Parent receives intercept requests. May be nil.
	Parent ParentInterceptor
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Alignment:         viewport.AlignCenter,
		EdgeSlop:          DefaultEdgeSlop,
		ZoomAmount:        DefaultZoomAmount,
		ZoomDuration:      anim.DefaultZoomDuration,
		PanVelocityFactor: DefaultPanVelocityFactor,
		FlingDeceleration: anim.DefaultDeceleration,
		Clock:             anim.SystemClock{},
	}
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// WithAlignment sets the alignment. Empty groups fall back to center.
func WithAlignment(a viewport.Alignment) Option {
	return func(o *Options) {
		o.Alignment = a
	}
}

// WithMargins sets the absolute margins.
func WithMargins(m viewport.Margins) Option {
	return func(o *Options) {
		o.Margins = m
	}
}

// WithParentScroll sets the parent scroll passthrough flags.
func WithParentScroll(horizontal, vertical bool) Option {
	return func(o *Options) {
		o.AllowParentHorizontalScroll = horizontal
		o.AllowParentVerticalScroll = vertical
	}
}

// WithEdgeSlop sets the flush tolerance.
func WithEdgeSlop(slop float64) Option {
	return func(o *Options) {
		o.EdgeSlop = slop
	}
}

// WithZoomAmount sets the zoom step fraction.
func WithZoomAmount(amount float64) Option {
	return func(o *Options) {
		o.ZoomAmount = amount
	}
}

// WithZoomDuration sets the zoom step length.
func WithZoomDuration(d time.Duration) Option {
	return func(o *Options) {
		o.ZoomDuration = d
	}
}

// WithPanVelocityFactor sets the programmatic pan speed.
func WithPanVelocityFactor(f float64) Option {
	return func(o *Options) {
		o.PanVelocityFactor = f
	}
}

// WithFlingDeceleration sets the fling friction.
func WithFlingDeceleration(d float64) Option {
	return func(o *Options) {
		o.FlingDeceleration = d
	}
}

// WithMinSize sets the minimum content size used by Measure.
func WithMinSize(width, height float64) Option {
	return func(o *Options) {
		o.MinWidth = width
		o.MinHeight = height
	}
}

// WithClock sets the animation clock.
func WithClock(c anim.Clock) Option {
	return func(o *Options) {
		o.Clock = c
	}
}

// WithParent sets the parent interceptor.
func WithParent(p ParentInterceptor) Option {
	return func(o *Options) {
		o.Parent = p
	}
}

// NewOptions creates options from functional options.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	o.Apply(opts...)
	return o
}

// Apply applies functional options to existing options and normalizes the
// result.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
	o.normalize()
}

// normalize silently corrects values that would break the engine.
func (o *Options) normalize() {
	if norm := o.Alignment.Normalize(); norm != o.Alignment {
		Logger().Debug("alignment corrected", "from", uint8(o.Alignment), "to", norm.String())
		o.Alignment = norm
	}
	o.Margins = o.Margins.NonNegative()
	if o.EdgeSlop < 0 {
		o.EdgeSlop = 0
	}
	if o.Clock == nil {
		o.Clock = anim.SystemClock{}
	}
}
