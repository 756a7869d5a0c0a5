// Package render draws the 240x240 starfield raster from a gnomonic
// projection of the nearby object set, plus the navigation overlay.
package render

// RGB is a single 8-bit-per-channel color.
type RGB struct {
	R, G, B byte
}

var (
	ColorWhite  = RGB{255, 255, 255}
	ColorYellow = RGB{255, 220, 60}
	ColorRed    = RGB{220, 40, 40}
	ColorGray   = RGB{120, 120, 120}
)

// Canvas is a drawable raster surface. Two implementations exist: an
// ImageMagick-backed canvas (the primary backend) and a pure image.RGBA
// fallback used when creating the imagick canvas fails at run time.
type Canvas interface {
	Width() int
	Height() int
	SetPixel(x, y int, c RGB)
	FillCircle(cx, cy, radius int, c RGB)
	DrawCircleOutline(cx, cy, radius int, c RGB)
	DrawLine(x0, y0, x1, y1 int, c RGB)
	DrawLabel(x, y int, text string, c RGB)
	Bytes() []byte // row-major RGB, len = Width()*Height()*3
}
