package anim

// Interpolator maps linear progress in [0,1] to eased progress in [0,1].
type Interpolator func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// Decelerate starts fast and eases into the end: 1-(1-t)^2.
// It is monotonic and never overshoots 1.
func Decelerate(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
