// Package cli implements the headless commands shared by both binaries.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"scaleview/internal/config"
	"scaleview/pkg/gesture"
	"scaleview/pkg/geom"
)

// Usage prints the command overview. withGUI adds the viewer commands.
func Usage(w io.Writer, withGUI bool) {
	fmt.Fprint(w, `
  scaleview - pan and zoom a single image

Usage:
  scaleview <command> [arguments]

Commands:
  info <image> [options]              Show image size and how it fits a viewport
  render <image> [options]            Render one view of an image to PNG
  simulate <script> [options]         Replay a gesture script headlessly
`)
	if withGUI {
		fmt.Fprint(w, `  gui [image]                         Open the viewer
  <image>                             Open an image in the viewer (shortcut)
`)
	}
	fmt.Fprint(w, `
Common options:
  -size WxH        Viewport size (default 1080x1920)
  -config <file>   TOML configuration
  -v               Debug logging on stderr

Examples:
  scaleview info photo.jpg -size 800x600
  scaleview render photo.jpg -zoom 2 -focus 400,300 -o zoomed.png
  scaleview simulate gestures.txt -image photo.jpg -o final.png
`)
}

// common holds the options every command accepts.
type common struct {
	size       string
	configPath string
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.size, "size", "1080x1920", "viewport size WxH")
	fs.StringVar(&c.configPath, "config", "", "TOML configuration file")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
}

// setup loads the configuration and enables logging.
func (c *common) setup() (config.Config, geom.Size, error) {
	if c.verbose {
		gesture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	size, err := ParseSize(c.size)
	if err != nil {
		return config.Config{}, geom.Size{}, err
	}

	cfg := config.Default()
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
		if err != nil {
			return config.Config{}, geom.Size{}, err
		}
	}
	return cfg, size, nil
}

// parseArgs splits a leading positional argument from the flags that
// follow it, so "render photo.jpg -o out.png" works like the flag-first form.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	var positional string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positional, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if positional == "" && fs.NArg() > 0 {
		positional = fs.Arg(0)
	}
	if positional == "" {
		return "", fmt.Errorf("%s: missing argument", fs.Name())
	}
	return positional, nil
}

// ParseSize parses "WxH".
func ParseSize(s string) (geom.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("bad size %q, want WxH", s)
	}
	width, err1 := strconv.ParseFloat(w, 64)
	height, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return geom.Size{}, fmt.Errorf("bad size %q, want WxH", s)
	}
	return geom.Size{Width: width, Height: height}, nil
}

// ParsePoint parses "X,Y".
func ParsePoint(s string) (geom.Point, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("bad point %q, want X,Y", s)
	}
	px, err1 := strconv.ParseFloat(strings.TrimSpace(x), 64)
	py, err2 := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err1 != nil || err2 != nil {
		return geom.Point{}, fmt.Errorf("bad point %q, want X,Y", s)
	}
	return geom.Pt(px, py), nil
}

func printState(w io.Writer, e *gesture.Engine) {
	t := e.Translation()
	r := e.ContentRect()
	fmt.Fprintf(w, "scale=%.4f min=%.4f translation=(%.4f, %.4f) content=[%.1f %.1f %.1f %.1f]",
		e.Scale(), e.MinScale(), t.X, t.Y, r.Left, r.Top, r.Right, r.Bottom)
	if glows := e.Glows(); len(glows) > 0 {
		sides := make([]string, len(glows))
		for i, g := range glows {
			sides[i] = fmt.Sprintf("%s:%.2f", g.Side, g.Alpha)
		}
		fmt.Fprintf(w, " glow=%s", strings.Join(sides, ","))
	}
	fmt.Fprintln(w)
}
