// Package config loads viewer settings from a TOML file and turns them into
// engine options.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"scaleview/pkg/anim"
	"scaleview/pkg/gesture"
	"scaleview/pkg/raster"
	"scaleview/pkg/viewport"
)

var (
	// ErrInvalidMargin is returned when a margin is negative.
	ErrInvalidMargin = errors.New("margin must not be negative")
	// ErrInvalidAnimation is returned for non-positive animation settings.
	ErrInvalidAnimation = errors.New("invalid animation setting")
)

// Duration is a time.Duration read from a TOML string such as "200ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Alignment holds the two alignment names.
type Alignment struct {
	Horizontal string `toml:"horizontal"`
	Vertical   string `toml:"vertical"`
}

// Margins are the absolute margins in pixels.
type Margins struct {
	Left   float64 `toml:"left"`
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
}

// ParentScroll holds the parent scroll passthrough flags.
type ParentScroll struct {
	Horizontal bool `toml:"horizontal"`
	Vertical   bool `toml:"vertical"`
}

// Animation tunes gestures and animations.
type Animation struct {
	ZoomAmount        float64  `toml:"zoom_amount"`
	ZoomDuration      Duration `toml:"zoom_duration"`
	FlingDeceleration float64  `toml:"fling_deceleration"`
	PanVelocityFactor float64  `toml:"pan_velocity_factor"`
	EdgeSlop          float64  `toml:"edge_slop"`
}

// Render configures frame painting.
type Render struct {
	Quality    string `toml:"quality"`
	Background string `toml:"background"`
	GlowColor  string `toml:"glow_color"`
}

// Config is the whole configuration file.
type Config struct {
	Alignment    Alignment    `toml:"alignment"`
	Margins      Margins      `toml:"margins"`
	ParentScroll ParentScroll `toml:"parent_scroll"`
	Animation    Animation    `toml:"animation"`
	Render       Render       `toml:"render"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Alignment: Alignment{Horizontal: "center", Vertical: "center"},
		Animation: Animation{
			ZoomAmount:        gesture.DefaultZoomAmount,
			ZoomDuration:      Duration{anim.DefaultZoomDuration},
			FlingDeceleration: anim.DefaultDeceleration,
			PanVelocityFactor: gesture.DefaultPanVelocityFactor,
			EdgeSlop:          gesture.DefaultEdgeSlop,
		},
		Render: Render{
			Quality:    "smooth",
			Background: "#000000",
			GlowColor:  "#33b5e5",
		},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot use. Unknown alignment names
// are not errors; they fall back to center.
func (c Config) Validate() error {
	m := c.Margins
	for _, side := range []struct {
		name string
		v    float64
	}{{"left", m.Left}, {"top", m.Top}, {"right", m.Right}, {"bottom", m.Bottom}} {
		if side.v < 0 {
			return fmt.Errorf("%s margin %g: %w", side.name, side.v, ErrInvalidMargin)
		}
	}

	a := c.Animation
	switch {
	case a.ZoomDuration.Duration <= 0:
		return fmt.Errorf("zoom_duration %s: %w", a.ZoomDuration, ErrInvalidAnimation)
	case a.FlingDeceleration <= 0:
		return fmt.Errorf("fling_deceleration %g: %w", a.FlingDeceleration, ErrInvalidAnimation)
	case a.ZoomAmount <= 0:
		return fmt.Errorf("zoom_amount %g: %w", a.ZoomAmount, ErrInvalidAnimation)
	case a.PanVelocityFactor <= 0:
		return fmt.Errorf("pan_velocity_factor %g: %w", a.PanVelocityFactor, ErrInvalidAnimation)
	case a.EdgeSlop < 0:
		return fmt.Errorf("edge_slop %g: %w", a.EdgeSlop, ErrInvalidAnimation)
	}

	if _, err := ParseColor(c.Render.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := ParseColor(c.Render.GlowColor); err != nil {
		return fmt.Errorf("glow_color: %w", err)
	}
	return nil
}

// AlignmentValue combines the two alignment names into a mask.
func (c Config) AlignmentValue() viewport.Alignment {
	h, _ := viewport.ParseHorizontal(c.Alignment.Horizontal)
	v, _ := viewport.ParseVertical(c.Alignment.Vertical)
	return h | v
}

// MarginsValue returns the margins in engine form.
func (c Config) MarginsValue() viewport.Margins {
	return viewport.Margins{
		Left:   c.Margins.Left,
		Top:    c.Margins.Top,
		Right:  c.Margins.Right,
		Bottom: c.Margins.Bottom,
	}
}

// Options converts the configuration into engine options.
func (c Config) Options() []gesture.Option {
	return []gesture.Option{
		gesture.WithAlignment(c.AlignmentValue()),
		gesture.WithMargins(c.MarginsValue()),
		gesture.WithParentScroll(c.ParentScroll.Horizontal, c.ParentScroll.Vertical),
		gesture.WithZoomAmount(c.Animation.ZoomAmount),
		gesture.WithZoomDuration(c.Animation.ZoomDuration.Duration),
		gesture.WithFlingDeceleration(c.Animation.FlingDeceleration),
		gesture.WithPanVelocityFactor(c.Animation.PanVelocityFactor),
		gesture.WithEdgeSlop(c.Animation.EdgeSlop),
	}
}

// ApplyRender configures a renderer from the [render] section.
func (c Config) ApplyRender(r *raster.Renderer) {
	q, _ := raster.ParseQuality(c.Render.Quality)
	r.SetQuality(q)
	if bg, err := ParseColor(c.Render.Background); err == nil {
		r.SetBackground(bg)
	}
	if glow, err := ParseColor(c.Render.GlowColor); err == nil {
		r.SetGlowColor(glow)
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
