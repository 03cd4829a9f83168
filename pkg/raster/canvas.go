// Package raster paints a pan/zoom view of an image into RGBA frames: the
// content placed by the view's matrix and clipped to its viewport, followed
// by the overscroll glows.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"scaleview/pkg/geom"
)

// Quality selects the resampling kernel used when scaling content.
type Quality int

const (
	// QualityFast uses nearest-neighbor sampling.
	QualityFast Quality = iota
	// QualitySmooth uses bilinear sampling. Suited to interactive frames.
	QualitySmooth
	// QualityBest uses Catmull-Rom. Suited to exported frames.
	QualityBest
)

func (q Quality) interpolator() draw.Interpolator {
	switch q {
	case QualityBest:
		return draw.CatmullRom
	case QualitySmooth:
		return draw.ApproxBiLinear
	default:
		return draw.NearestNeighbor
	}
}

func (q Quality) String() string {
	switch q {
	case QualityBest:
		return "best"
	case QualitySmooth:
		return "smooth"
	default:
		return "fast"
	}
}

// ParseQuality maps "fast", "smooth" or "best" to a Quality.
func ParseQuality(s string) (Quality, bool) {
	switch s {
	case "fast":
		return QualityFast, true
	case "smooth", "":
		return QualitySmooth, true
	case "best":
		return QualityBest, true
	}
	return QualitySmooth, false
}

// Canvas represents a drawing surface for rasterization.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	background color.Color
}

// NewCanvas creates a canvas filled with black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: color.Black,
	}
	c.Clear()
	return c
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// SetBackground sets the background color.
func (c *Canvas) SetBackground(col color.Color) {
	c.background = col
}

// Fill fills a path with the given color, blending over what is already
// drawn.
func (c *Canvas) Fill(p *Path, col color.Color) {
	if p.Empty() {
		return
	}
	r := &vector.Rasterizer{}
	r.Reset(c.width, c.height)
	r.DrawOp = draw.Over
	p.toVector(r, geom.Point{})
	r.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{})
}

// DrawImageTransformed draws src through m, which maps source coordinates
// centered at the origin into canvas pixels. Nothing is drawn outside clip.
func (c *Canvas) DrawImageTransformed(src image.Image, m geom.Matrix, clip geom.Rect, q Quality) {
	dst, ok := c.subImage(clip)
	if !ok {
		return
	}

	sb := src.Bounds()
	center := geom.Translate(
		-float64(sb.Min.X)-float64(sb.Dx())/2,
		-float64(sb.Min.Y)-float64(sb.Dy())/2,
	)
	s2d := center.Multiply(m)
	aff := f64.Aff3{
		s2d[0], s2d[2], s2d[4],
		s2d[1], s2d[3], s2d[5],
	}
	q.interpolator().Transform(dst, aff, src, sb, draw.Over, nil)
}

// subImage returns the part of the canvas inside r, rounded outwards to
// whole pixels.
func (c *Canvas) subImage(r geom.Rect) (*image.RGBA, bool) {
	px := image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	).Intersect(c.img.Bounds())
	if px.Empty() {
		return nil, false
	}
	return c.img.SubImage(px).(*image.RGBA), true
}

// At returns the color of one pixel, or transparent outside the canvas.
func (c *Canvas) At(x, y int) color.Color {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.img.At(x, y)
	}
	return color.Transparent
}
