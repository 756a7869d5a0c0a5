package render

import (
	"fmt"

	"gopkg.in/gographics/imagick.v3/imagick"
)

// ImagickCanvas is the primary Canvas backend: a MagickWand plus a
// DrawingWand accumulating vector operations, flattened to pixels on
// Bytes(). Initialize/Terminate bracket every wand's lifetime, mirroring
// the convert-wrapper's usage pattern.
type ImagickCanvas struct {
	mw *imagick.MagickWand
	dw *imagick.DrawingWand
	pw *imagick.PixelWand
	w, h int
}

// NewImagickCanvas allocates a width x height black canvas and its
// drawing wand. Callers must call Destroy when finished.
func NewImagickCanvas(width, height int) (*ImagickCanvas, error) {
	imagick.Initialize()

	mw := imagick.NewMagickWand()
	pw := imagick.NewPixelWand()
	pw.SetColor("black")
	if err := mw.NewImage(uint(width), uint(height), pw); err != nil {
		mw.Destroy()
		return nil, fmt.Errorf("new canvas image: %w", err)
	}

	return &ImagickCanvas{mw: mw, dw: imagick.NewDrawingWand(), pw: pw, w: width, h: height}, nil
}

// Destroy releases the wands and the process-wide imagick environment.
// Call exactly once per canvas the renderer creates.
func (c *ImagickCanvas) Destroy() {
	c.dw.Destroy()
	c.pw.Destroy()
	c.mw.Destroy()
	imagick.Terminate()
}

func (c *ImagickCanvas) Width() int  { return c.w }
func (c *ImagickCanvas) Height() int { return c.h }

func (c *ImagickCanvas) setStroke(rgb RGB) {
	color := imagick.NewPixelWand()
	defer color.Destroy()
	color.SetColor(hexColor(rgb))
	c.dw.SetStrokeColor(color)
	c.dw.SetFillColor(color)
}

func hexColor(rgb RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

func (c *ImagickCanvas) SetPixel(x, y int, rgb RGB) {
	c.setStroke(rgb)
	c.dw.Point(float64(x), float64(y))
	c.flush()
}

func (c *ImagickCanvas) FillCircle(cx, cy, radius int, rgb RGB) {
	c.setStroke(rgb)
	c.dw.Circle(float64(cx), float64(cy), float64(cx+radius), float64(cy))
	c.flush()
}

func (c *ImagickCanvas) DrawCircleOutline(cx, cy, radius int, rgb RGB) {
	color := imagick.NewPixelWand()
	defer color.Destroy()
	color.SetColor(hexColor(rgb))
	c.dw.SetStrokeColor(color)

	none := imagick.NewPixelWand()
	defer none.Destroy()
	none.SetColor("none")
	c.dw.SetFillColor(none)

	c.dw.Circle(float64(cx), float64(cy), float64(cx+radius), float64(cy))
	c.flush()
}

func (c *ImagickCanvas) DrawLine(x0, y0, x1, y1 int, rgb RGB) {
	c.setStroke(rgb)
	c.dw.Line(float64(x0), float64(y0), float64(x1), float64(y1))
	c.flush()
}

func (c *ImagickCanvas) DrawLabel(x, y int, text string, rgb RGB) {
	c.setStroke(rgb)
	c.dw.SetFontSize(13)
	c.dw.Annotation(float64(x), float64(y), text)
	c.flush()
}

// flush draws the accumulated drawing-wand operations onto the canvas.
// Called after every primitive so later FillCircle/Annotation calls build
// up incrementally, matching how the raster fallback mutates in place.
func (c *ImagickCanvas) flush() {
	c.mw.DrawImage(c.dw)
}

// Bytes exports the canvas as a row-major RGB buffer.
func (c *ImagickCanvas) Bytes() []byte {
	raw, _ := c.mw.ExportImagePixels(0, 0, uint(c.w), uint(c.h), "RGB", imagick.PIXEL_CHAR)
	out := make([]byte, c.w*c.h*3)
	if pixels, ok := raw.([]byte); ok {
		copy(out, pixels)
	}
	return out
}
