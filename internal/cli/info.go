package cli

import (
	"flag"
	"fmt"
	"io"

	"scaleview/pkg/geom"
	"scaleview/pkg/raster"
	"scaleview/pkg/transform"
	"scaleview/pkg/viewport"
)

// Info prints an image's dimensions and how it fits a viewport.
func Info(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(w)
	var c common
	c.register(fs)

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	cfg, size, err := c.setup()
	if err != nil {
		return err
	}

	img, format, err := raster.DecodeConfigFile(path)
	if err != nil {
		return err
	}

	content := geom.Size{Width: float64(img.Width), Height: float64(img.Height)}
	vp := viewport.Rect(size.Width, size.Height, viewport.Padding{})
	align := cfg.AlignmentValue()
	abs := cfg.MarginsValue()
	layout := transform.NewLayout(vp, content, align, abs)
	fit := viewport.FitScale(content, vp, abs)
	rest := layout.ContentRect(fit, layout.DefaultTranslation())

	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintln(w, "────────────────────────────────────────")
	fmt.Fprintf(w, "Format: %s\n", format)
	fmt.Fprintf(w, "Size: %d × %d pixels\n", img.Width, img.Height)
	fmt.Fprintf(w, "\nViewport %.0f × %.0f (%s):\n", size.Width, size.Height, align)
	fmt.Fprintf(w, "  Fit scale: %.4f (%s axis constrains)\n", fit, viewport.ConstrainingAxis(content, vp, abs))
	em := layout.Margins
	fmt.Fprintf(w, "  Effective margins: left %.1f, top %.1f, right %.1f, bottom %.1f\n", em.Left, em.Top, em.Right, em.Bottom)
	fmt.Fprintf(w, "  At rest: [%.1f %.1f %.1f %.1f]\n", rest.Left, rest.Top, rest.Right, rest.Bottom)
	return nil
}
