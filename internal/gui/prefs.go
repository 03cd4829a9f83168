package gui

import (
	"crypto/sha1"
	"encoding/hex"

	"fyne.io/fyne/v2"

	"scaleview/internal/store"
	"scaleview/pkg/gesture"
)

const (
	prefLastFile = "last_file"
	prefView     = "view."
)

// viewKey maps an image path to a short preference key prefix.
func viewKey(imagePath string) string {
	sum := sha1.Sum([]byte(store.Key(imagePath)))
	return prefView + hex.EncodeToString(sum[:8]) + "."
}

// saveView stores the view state of an image in the app preferences.
func saveView(p fyne.Preferences, imagePath string, s gesture.SavedState) {
	k := viewKey(imagePath)
	p.SetFloat(k+"tx", s.TranslationX)
	p.SetFloat(k+"ty", s.TranslationY)
	p.SetFloat(k+"min", s.MinScale)
	p.SetFloat(k+"scale", s.Scale)
}

// loadView returns the stored view state of an image, if any.
func loadView(p fyne.Preferences, imagePath string) (gesture.SavedState, bool) {
	k := viewKey(imagePath)
	s := gesture.SavedState{
		TranslationX: p.Float(k + "tx"),
		TranslationY: p.Float(k + "ty"),
		MinScale:     p.Float(k + "min"),
		Scale:        p.Float(k + "scale"),
	}
	return s, s.Scale > 0
}
