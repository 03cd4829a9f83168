package gesture

import "scaleview/pkg/geom"

// SavedState is the logical view state worth persisting across restarts.
type SavedState struct {
	TranslationX float64 `yaml:"translation_x" toml:"translation_x"`
	TranslationY float64 `yaml:"translation_y" toml:"translation_y"`
	MinScale     float64 `yaml:"min_scale" toml:"min_scale"`
	Scale        float64 `yaml:"scale" toml:"scale"`
}

// SaveState captures the current transform.
func (e *Engine) SaveState() SavedState {
	return SavedState{
		TranslationX: e.state.Translation.X,
		TranslationY: e.state.Translation.Y,
		MinScale:     e.state.MinScale,
		Scale:        e.state.Scale,
	}
}

// RestoreState applies a saved transform verbatim and then revalidates it
// against the current geometry, which may differ from when it was saved.
// A state with a non-positive scale is ignored.
func (e *Engine) RestoreState(s SavedState) bool {
	if !(s.Scale > 0) {
		Logger().Warn("ignoring saved state", "scale", s.Scale)
		return false
	}

	e.stopAnimations()
	e.state.Translation = geom.Pt(s.TranslationX, s.TranslationY)
	e.state.MinScale = s.MinScale
	e.state.Scale = s.Scale

	if !e.ready() {
		// The layout that arrives later keeps the restored transform.
		e.pendingReset = false
		return true
	}
	e.relayout()
	if !e.validate() {
		Logger().Debug("restored state corrected", "scale", e.state.Scale)
	}
	return true
}
