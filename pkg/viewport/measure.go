package viewport

import "math"

// MeasureMode tells how a parent constrains a measured dimension.
type MeasureMode int

const (
	// Unspecified lets the view take any size.
	Unspecified MeasureMode = iota
	// AtMost caps the size.
	AtMost
	// Exactly forces the size.
	Exactly
)

// MeasureSpec is a constraint handed down by the host layout system.
type MeasureSpec struct {
	Mode MeasureMode
	Size float64
}

// ResolveSize reconciles a desired size with a constraint.
func ResolveSize(desired float64, spec MeasureSpec) float64 {
	switch spec.Mode {
	case AtMost:
		return math.Min(desired, spec.Size)
	case Exactly:
		return spec.Size
	default:
		return desired
	}
}

// Measure returns the measured size of one dimension: the requested minimum
// content size plus padding, resolved against spec, and never smaller than
// the host's suggested minimum.
func Measure(minContent, paddingStart, paddingEnd, suggestedMin float64, spec MeasureSpec) float64 {
	return math.Max(suggestedMin, ResolveSize(minContent+paddingStart+paddingEnd, spec))
}
