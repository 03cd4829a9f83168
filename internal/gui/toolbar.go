package gui

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar provides file, zoom and pan controls.
type Toolbar struct {
	container *fyne.Container

	// Callbacks
	OnOpen    func()
	OnZoomIn  func()
	OnZoomOut func()
	OnReset   func()
	OnPan     func(dir string)

	// Controls that need an image
	controls []*widget.Button
}

// NewToolbar creates a new toolbar.
func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.build()
	return t
}

func call(fn *func()) func() {
	return func() {
		if *fn != nil {
			(*fn)()
		}
	}
}

func (t *Toolbar) pan(dir string) func() {
	return func() {
		if t.OnPan != nil {
			t.OnPan(dir)
		}
	}
}

func (t *Toolbar) build() {
	openBtn := widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), call(&t.OnOpen))

	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), call(&t.OnZoomOut))
	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), call(&t.OnZoomIn))
	resetBtn := widget.NewButtonWithIcon("Fit", theme.ViewRestoreIcon(), call(&t.OnReset))

	leftBtn := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), t.pan("left"))
	upBtn := widget.NewButtonWithIcon("", theme.MoveUpIcon(), t.pan("up"))
	downBtn := widget.NewButtonWithIcon("", theme.MoveDownIcon(), t.pan("down"))
	rightBtn := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), t.pan("right"))

	t.controls = []*widget.Button{zoomOutBtn, zoomInBtn, resetBtn, leftBtn, upBtn, downBtn, rightBtn}

	t.container = container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		zoomOutBtn,
		zoomInBtn,
		resetBtn,
		widget.NewSeparator(),
		leftBtn,
		upBtn,
		downBtn,
		rightBtn,
	)
	t.Disable()
}

// Container returns the toolbar container.
func (t *Toolbar) Container() *fyne.Container {
	return t.container
}

// Enable enables the controls that act on an image.
func (t *Toolbar) Enable() {
	for _, b := range t.controls {
		b.Enable()
	}
}

// Disable disables the controls that act on an image.
func (t *Toolbar) Disable() {
	for _, b := range t.controls {
		b.Disable()
	}
}

// StatusBar provides status information.
type StatusBar struct {
	container *fyne.Container
	label     *widget.Label
	zoomLabel *widget.Label
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{
		label:     widget.NewLabel("Ready"),
		zoomLabel: widget.NewLabel("-"),
	}

	s.container = container.NewHBox(
		s.label,
		widget.NewSeparator(),
		s.zoomLabel,
	)

	return s
}

// Container returns the status bar container.
func (s *StatusBar) Container() *fyne.Container {
	return s.container
}

// SetStatus sets the status message.
func (s *StatusBar) SetStatus(msg string) {
	s.label.SetText(msg)
}

// SetZoom shows the scale relative to the fit scale.
func (s *StatusBar) SetZoom(scale, minScale float64) {
	s.zoomLabel.SetText(zoomText(scale, minScale))
}

// zoomText formats a scale as a percentage of the fit scale.
func zoomText(scale, minScale float64) string {
	if !(minScale > 0) {
		return "-"
	}
	return fmt.Sprintf("%d%%", int(math.Round(scale/minScale*100)))
}
