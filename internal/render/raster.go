package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RasterCanvas is the pure Go Canvas backend, used when creating the
// imagick canvas fails at run time. It draws directly into an
// image.RGBA buffer with basic Bresenham/midpoint-circle algorithms.
type RasterCanvas struct {
	img *image.RGBA
	w, h int
}

// NewRasterCanvas allocates a width x height canvas filled black.
func NewRasterCanvas(width, height int) *RasterCanvas {
	return &RasterCanvas{img: image.NewRGBA(image.Rect(0, 0, width, height)), w: width, h: height}
}

func (c *RasterCanvas) Width() int  { return c.w }
func (c *RasterCanvas) Height() int { return c.h }

func (c *RasterCanvas) SetPixel(x, y int, rgb RGB) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.img.Set(x, y, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255})
}

// FillCircle draws a filled disk centered at (cx, cy), per the renderer's
// star/planet markers.
func (c *RasterCanvas) FillCircle(cx, cy, radius int, rgb RGB) {
	if radius <= 0 {
		c.SetPixel(cx, cy, rgb)
		return
	}
	rSq := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= rSq {
				c.SetPixel(cx+dx, cy+dy, rgb)
			}
		}
	}
}

// DrawCircleOutline draws the field-radius boundary using the midpoint
// circle algorithm.
func (c *RasterCanvas) DrawCircleOutline(cx, cy, radius int, rgb RGB) {
	x, y := radius, 0
	err := 0
	for x >= y {
		c.plotOctants(cx, cy, x, y, rgb)
		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func (c *RasterCanvas) plotOctants(cx, cy, x, y int, rgb RGB) {
	points := [8][2]int{
		{cx + x, cy + y}, {cx + y, cy + x},
		{cx - y, cy + x}, {cx - x, cy + y},
		{cx - x, cy - y}, {cx - y, cy - x},
		{cx + y, cy - x}, {cx + x, cy - y},
	}
	for _, p := range points {
		c.SetPixel(p[0], p[1], rgb)
	}
}

// DrawLine draws a line segment with Bresenham's algorithm, used for the
// off-field directional arrow.
func (c *RasterCanvas) DrawLine(x0, y0, x1, y1 int, rgb RGB) {
	dx := abs(x1 - x0)
	sx := step(x0, x1)
	dy := -abs(y1 - y0)
	sy := step(y0, y1)
	err := dx + dy

	x, y := x0, y0
	for {
		c.SetPixel(x, y, rgb)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawLabel renders text using a fixed bitmap font (golang.org/x/image's
// basicfont.Face7x13), anchored with its baseline at (x, y).
func (c *RasterCanvas) DrawLabel(x, y int, text string, rgb RGB) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{C: color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Bytes returns the canvas as a row-major RGB buffer (no alpha channel),
// matching the Canvas interface contract shared with the imagick backend.
func (c *RasterCanvas) Bytes() []byte {
	out := make([]byte, c.w*c.h*3)
	i := 0
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			r, g, b, _ := c.img.At(x, y).RGBA()
			out[i] = byte(r >> 8)
			out[i+1] = byte(g >> 8)
			out[i+2] = byte(b >> 8)
			i += 3
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(a, b int) int {
	if a < b {
		return 1
	}
	return -1
}
