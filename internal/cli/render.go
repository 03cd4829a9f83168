package cli

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"time"

	"scaleview/internal/config"
	"scaleview/internal/store"
	"scaleview/pkg/anim"
	"scaleview/pkg/geom"
	"scaleview/pkg/gesture"
	"scaleview/pkg/raster"
	"scaleview/pkg/viewport"
)

// Render paints one view of an image to a PNG file.
func Render(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(w)
	var c common
	c.register(fs)
	output := fs.String("o", "output.png", "output PNG")
	zoom := fs.Float64("zoom", 1, "zoom relative to the fit scale")
	focus := fs.String("focus", "", "zoom focus X,Y (default viewport center)")
	pan := fs.String("pan", "", "drag distance DX,DY applied after zooming")
	statePath := fs.String("state", "", "restore the view saved for this image in a state file")
	quality := fs.String("quality", "", "fast, smooth or best (default from config, best without one)")

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	cfg, size, err := c.setup()
	if err != nil {
		return err
	}
	if *zoom <= 0 {
		return fmt.Errorf("bad zoom %g", *zoom)
	}

	img, _, err := raster.DecodeFile(path)
	if err != nil {
		return err
	}
	e := newEngine(cfg, size, img, anim.NewManualClock(time.Unix(0, 0)))

	if *statePath != "" {
		st, err := store.Open(*statePath)
		if err != nil {
			return err
		}
		saved, err := st.Get(store.Key(path))
		switch {
		case errors.Is(err, store.ErrNotFound):
			fmt.Fprintf(w, "No saved view for %s, rendering at rest\n", path)
		case err != nil:
			return err
		default:
			e.RestoreState(saved)
		}
	}

	if *zoom != 1 {
		p := e.Viewport().Center()
		if *focus != "" {
			if p, err = ParsePoint(*focus); err != nil {
				return err
			}
		}
		e.OnScale(p, *zoom)
	}
	if *pan != "" {
		d, err := ParsePoint(*pan)
		if err != nil {
			return err
		}
		e.OnDrag(d.X, d.Y)
	}

	r := newRenderer(cfg, img)
	if *quality != "" {
		q, ok := raster.ParseQuality(*quality)
		if !ok {
			return fmt.Errorf("bad quality %q", *quality)
		}
		r.SetQuality(q)
	} else if c.configPath == "" {
		r.SetQuality(raster.QualityBest)
	}

	frame := r.Render(e)
	if err := raster.SavePNG(*output, frame); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Saved %s (%dx%d pixels, scale %.4f)\n", *output, frame.Bounds().Dx(), frame.Bounds().Dy(), e.Scale())
	return nil
}

// newEngine builds an engine for a headless run. Headless runs always use a
// manual clock so results do not depend on wall time.
func newEngine(cfg config.Config, size geom.Size, img image.Image, clock *anim.ManualClock) *gesture.Engine {
	opts := append(cfg.Options(), gesture.WithClock(clock))
	e := gesture.New(opts...)
	fitView(e, size, img)
	return e
}

// fitView sizes the viewport and, when img is set, the content of e.
func fitView(e *gesture.Engine, size geom.Size, img image.Image) {
	e.SetViewportSize(size.Width, size.Height, viewport.Padding{})
	if img != nil {
		b := img.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			e.SetContent(float64(b.Dx()), float64(b.Dy()))
		}
	}
}

func newRenderer(cfg config.Config, img image.Image) *raster.Renderer {
	r := raster.NewRenderer(img)
	cfg.ApplyRender(r)
	return r
}
