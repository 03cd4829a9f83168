// Package gui provides a native desktop image viewer using Fyne.
package gui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"scaleview/internal/config"
	"scaleview/pkg/gesture"
	"scaleview/pkg/raster"
)

const appID = "io.scaleview.viewer"

// App represents the image viewer application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	configPath string

	viewer    *ImageViewer
	toolbar   *Toolbar
	statusBar *StatusBar

	currentFile string
	stopWatch   context.CancelFunc
}

// NewApp creates a new viewer application. configPath may be empty.
func NewApp(configPath string) (*App, error) {
	return newApp(app.NewWithID(appID), configPath)
}

func newApp(fa fyne.App, configPath string, opts ...gesture.Option) (*App, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	a := &App{
		fyneApp:    fa,
		configPath: configPath,
		viewer:     NewImageViewer(cfg, opts...),
		toolbar:    NewToolbar(),
		statusBar:  NewStatusBar(),
	}

	a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	a.mainWindow = a.fyneApp.NewWindow("ScaleView")
	a.mainWindow.Resize(fyne.NewSize(900, 700))
	a.buildUI()
	return a, nil
}

// Run starts the application with the last opened file, if it still loads.
func (a *App) Run() {
	a.start()
	if last := a.fyneApp.Preferences().String(prefLastFile); last != "" {
		if err := a.loadFile(last); err != nil {
			slog.Debug("last file not reopened", "path", last, "err", err)
		}
	}
	a.mainWindow.ShowAndRun()
}

// RunWithFile starts the application with a file already loaded.
func (a *App) RunWithFile(path string) {
	a.start()
	if err := a.loadFile(path); err != nil {
		dialog.ShowError(err, a.mainWindow)
	}
	a.mainWindow.ShowAndRun()
}

func (a *App) start() {
	a.watchConfig()
	a.mainWindow.SetOnClosed(a.shutdown)
}

// buildUI constructs the user interface.
func (a *App) buildUI() {
	a.toolbar.OnOpen = a.openFile
	a.toolbar.OnZoomIn = a.viewer.ZoomIn
	a.toolbar.OnZoomOut = a.viewer.ZoomOut
	a.toolbar.OnReset = a.viewer.Reset
	a.toolbar.OnPan = a.pan

	a.viewer.OnChanged = a.statusBar.SetZoom

	content := container.NewBorder(
		container.NewPadded(a.toolbar.Container()),
		a.statusBar.Container(),
		nil,
		nil,
		a.viewer,
	)
	a.mainWindow.SetContent(content)
	a.mainWindow.Canvas().SetOnTypedKey(a.handleKey)
}

// handleKey handles keyboard zoom and pan.
func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyPlus, fyne.KeyEqual:
		a.viewer.ZoomIn()
	case fyne.KeyMinus:
		a.viewer.ZoomOut()
	case fyne.Key0, fyne.KeyHome:
		a.viewer.Reset()
	case fyne.KeyLeft:
		a.viewer.PanLeft()
	case fyne.KeyRight:
		a.viewer.PanRight()
	case fyne.KeyUp:
		a.viewer.PanUp()
	case fyne.KeyDown:
		a.viewer.PanDown()
	}
}

func (a *App) pan(dir string) {
	switch dir {
	case "left":
		a.viewer.PanLeft()
	case "right":
		a.viewer.PanRight()
	case "up":
		a.viewer.PanUp()
	case "down":
		a.viewer.PanDown()
	}
}

// openFile shows a file dialog and loads the selected image.
func (a *App) openFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if reader == nil {
			return // Cancelled
		}
		defer reader.Close()

		path := reader.URI().Path()
		if err := a.loadFile(path); err != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	}, a.mainWindow)
}

// loadFile loads an image and restores the view it was last left in.
func (a *App) loadFile(path string) error {
	img, format, err := raster.DecodeFile(path)
	if err != nil {
		return err
	}

	a.saveCurrentView()
	a.viewer.SetImage(img)
	a.currentFile = path

	prefs := a.fyneApp.Preferences()
	if s, ok := loadView(prefs, path); ok {
		a.viewer.RestoreState(s)
	}
	prefs.SetString(prefLastFile, path)

	b := img.Bounds()
	a.mainWindow.SetTitle(fmt.Sprintf("ScaleView - %s", filepath.Base(path)))
	a.statusBar.SetStatus(fmt.Sprintf("%s  %d × %d %s", filepath.Base(path), b.Dx(), b.Dy(), format))
	a.toolbar.Enable()
	return nil
}

// saveCurrentView remembers the view of the open image.
func (a *App) saveCurrentView() {
	if a.currentFile == "" || !a.viewer.HasImage() {
		return
	}
	saveView(a.fyneApp.Preferences(), a.currentFile, a.viewer.SaveState())
}

// watchConfig reapplies the configuration file whenever it changes.
func (a *App) watchConfig() {
	if a.configPath == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	go func() {
		err := config.Watch(ctx, a.configPath, func(cfg config.Config, err error) {
			if err != nil {
				a.statusBar.SetStatus(fmt.Sprintf("Config error: %v", err))
				return
			}
			a.viewer.ApplyConfig(cfg)
			a.statusBar.SetStatus("Configuration reloaded")
		})
		if err != nil && ctx.Err() == nil {
			slog.Warn("config watch stopped", "path", a.configPath, "err", err)
		}
	}()
}

func (a *App) shutdown() {
	a.saveCurrentView()
	if a.stopWatch != nil {
		a.stopWatch()
	}
}
