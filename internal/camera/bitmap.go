package camera

import (
	"fmt"
	"time"

	"gopkg.in/gographics/imagick.v3/imagick"

	"skyscope/internal/obscontext"
)

// LoadBitmapFrame decodes the still image at path into a grayscale Frame
// via ImageMagick, for use as the Fake driver's single replayed capture.
// This is the fake camera's bitmap backend: load once at start-up, serve
// a copy of the decoded pixels on every subsequent Capture.
func LoadBitmapFrame(path string, width, height int) (obscontext.Frame, error) {
	imagick.Initialize()
	defer imagick.Terminate()

	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	if err := mw.ReadImage(path); err != nil {
		return obscontext.Frame{}, fmt.Errorf("read bitmap %s: %w", path, err)
	}
	if err := mw.ResizeImage(uint(width), uint(height), imagick.FILTER_LANCZOS); err != nil {
		return obscontext.Frame{}, fmt.Errorf("resize bitmap %s: %w", path, err)
	}
	if err := mw.SetImageColorspace(imagick.COLORSPACE_GRAY); err != nil {
		return obscontext.Frame{}, fmt.Errorf("grayscale bitmap %s: %w", path, err)
	}

	raw, err := mw.ExportImagePixels(0, 0, uint(width), uint(height), "I", imagick.PIXEL_CHAR)
	if err != nil {
		return obscontext.Frame{}, fmt.Errorf("export bitmap pixels %s: %w", path, err)
	}

	bytePixels, ok := raw.([]byte)
	if !ok {
		return obscontext.Frame{}, fmt.Errorf("unexpected pixel storage type %T for %s", raw, path)
	}
	out := make([]byte, len(bytePixels))
	copy(out, bytePixels)

	return obscontext.Frame{
		Pixels:     out,
		Width:      width,
		Height:     height,
		Channels:   1,
		CapturedAt: time.Now(),
	}, nil
}

// SyntheticFrame builds a deterministic grayscale starfield frame without
// any bitmap file, for environments that ship no sample image: a dim sky
// background with a fixed grid of brighter "stars" at reproducible
// positions so the fake solver's hint FOV and the Focus screen's noise
// readout both see plausible, stable input.
func SyntheticFrame(width, height int) obscontext.Frame {
	pixels := make([]byte, width*height)
	for i := range pixels {
		pixels[i] = 12 // dim sky background
	}
	const spacing = 17
	for y := spacing / 2; y < height; y += spacing {
		for x := spacing / 2; x < width; x += spacing {
			idx := y*width + x
			if idx >= 0 && idx < len(pixels) {
				pixels[idx] = 230
			}
		}
	}
	return obscontext.Frame{
		Pixels:     pixels,
		Width:      width,
		Height:     height,
		Channels:   1,
		CapturedAt: time.Now(),
	}
}
