package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Palette used across panels.
var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorPanel      = color.RGBA{248, 250, 252, 255}
	colorBorder     = color.RGBA{214, 220, 228, 255}
	colorAxis       = color.RGBA{120, 130, 140, 255}
	colorText       = color.RGBA{30, 30, 30, 255}
	colorMuted      = color.RGBA{100, 110, 120, 255}
	colorBand       = color.RGBA{190, 226, 238, 255}

	series = []color.RGBA{
		{30, 136, 169, 255},
		{240, 140, 60, 255},
		{90, 170, 90, 255},
		{200, 70, 90, 255},
		{140, 100, 190, 255},
	}
)

func seriesColor(i int) color.RGBA {
	return series[i%len(series)]
}

// canvas draws primitives onto an RGBA image.
type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	return &canvas{img: img}
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) outline(r image.Rectangle, col color.Color) {
	c.line(r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, col)
	c.line(r.Min.X, r.Max.Y-1, r.Max.X-1, r.Max.Y-1, col)
	c.line(r.Min.X, r.Min.Y, r.Min.X, r.Max.Y-1, col)
	c.line(r.Max.X-1, r.Min.Y, r.Max.X-1, r.Max.Y-1, col)
}

// line draws a one pixel Bresenham line.
func (c *canvas) line(x0, y0, x1, y1 int, col color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.img.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// dot draws a filled square marker centred on (x, y).
func (c *canvas) dot(x, y, r int, col color.Color) {
	c.fill(image.Rect(x-r, y-r, x+r+1, y+r+1), col)
}

// text draws s with its baseline at y.
func (c *canvas) text(x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// clip shortens s with an ellipsis to fit within w pixels.
func clip(s string, w int) string {
	if textWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && textWidth(string(r)+"..") > w {
		r = r[:len(r)-1]
	}
	return string(r) + ".."
}

// scale maps a data range linearly onto a pixel range.
type scale struct {
	min, max float64
	lo, hi   int
}

func newScale(min, max float64, lo, hi int) scale {
	if math.IsNaN(min) || math.IsNaN(max) || min == max {
		min, max = min-1, max+1
	}
	return scale{min: min, max: max, lo: lo, hi: hi}
}

func (s scale) at(v float64) int {
	t := (v - s.min) / (s.max - s.min)
	return s.lo + int(math.Round(t*float64(s.hi-s.lo)))
}

// extent returns the min and max across every slice.
func extent(values ...[]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	return lo, hi
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
