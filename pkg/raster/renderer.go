package raster

import (
	"image"
	"image/color"
	"math"

	"scaleview/pkg/edge"
	"scaleview/pkg/geom"
)

// View is the read side of a pan/zoom engine.
type View interface {
	ViewSize() geom.Size
	Viewport() geom.Rect
	ContentRect() geom.Rect
	Matrix() geom.Matrix
	Glows() []edge.Glow
}

// DefaultGlowColor is the overscroll glow tint.
var DefaultGlowColor = color.NRGBA{R: 0x33, G: 0xb5, B: 0xe5, A: 0xff}

// Renderer paints views of one source image.
type Renderer struct {
	src image.Image

	quality    Quality
	background color.Color
	glowColor  color.NRGBA
	pixelScale float64
}

// NewRenderer creates a renderer for src.
func NewRenderer(src image.Image) *Renderer {
	return &Renderer{
		src:        src,
		quality:    QualitySmooth,
		background: color.Black,
		glowColor:  DefaultGlowColor,
		pixelScale: 1,
	}
}

// SetQuality sets the resampling quality.
func (r *Renderer) SetQuality(q Quality) {
	r.quality = q
}

// SetBackground sets the color outside the content.
func (r *Renderer) SetBackground(c color.Color) {
	r.background = c
}

// SetGlowColor sets the overscroll glow tint. Its alpha is ignored.
func (r *Renderer) SetGlowColor(c color.Color) {
	r.glowColor = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// SetPixelScale sets the number of output pixels per view unit. Hosts with
// a display scale above 1 render at that density.
func (r *Renderer) SetPixelScale(s float64) {
	if s > 0 {
		r.pixelScale = s
	}
}

// Source returns the source image.
func (r *Renderer) Source() image.Image {
	return r.src
}

// Render paints v into a new frame the size of the view.
func (r *Renderer) Render(v View) *image.RGBA {
	size := v.ViewSize()
	w := int(math.Ceil(size.Width * r.pixelScale))
	h := int(math.Ceil(size.Height * r.pixelScale))
	c := NewCanvas(w, h)
	r.RenderTo(c, v)
	return c.Image()
}

// RenderTo clears c and paints v into it.
func (r *Renderer) RenderTo(c *Canvas, v View) {
	c.SetBackground(r.background)
	c.Clear()

	px := geom.Scale(r.pixelScale, r.pixelScale)
	clip := v.Viewport().Transform(px)
	if r.src != nil && !v.ContentRect().Empty() {
		c.DrawImageTransformed(r.src, v.Matrix().Multiply(px), clip, r.quality)
	}
	for _, g := range v.Glows() {
		r.drawGlow(c, g, px)
	}
}

// glowPath is the glow shape in glow-local coordinates: a shallow arc along
// the edge bulging into the viewport by depth.
func glowPath(width, depth float64) *Path {
	return NewPath().
		MoveTo(0, 0).
		LineTo(width, 0).
		QuadTo(width/2, 2*depth, 0, 0).
		Close()
}

// GlowDepth is how far a glow of scale s reaches into a viewport whose edge
// is width long and whose perpendicular extent is height.
func GlowDepth(width, height, s float64) float64 {
	return math.Min(height, width*0.25) * math.Max(s, 0) * 0.5
}

func (r *Renderer) drawGlow(c *Canvas, g edge.Glow, px geom.Matrix) {
	if g.Alpha <= 0 || g.Width <= 0 {
		return
	}
	depth := GlowDepth(g.Width, g.Height, g.Scale)
	if depth <= 0 {
		depth = 1
	}
	col := r.glowColor
	col.A = uint8(math.Round(math.Min(g.Alpha, 1) * 255))
	c.Fill(glowPath(g.Width, depth).Transform(g.Matrix().Multiply(px)), col)
}
