package render

import (
	"fmt"
	"math"

	"skyscope/internal/obscontext"
	"skyscope/internal/transform"
)

// CanvasSize is the fixed starfield raster dimension in pixels.
const CanvasSize = 240

// labelGridCells quantizes the canvas into an N x N grid; at most one
// label is drawn per cell, so crowded fields never overlap labels.
const labelGridCells = 16

// TargetPointing is the currently selected navigation target, if any.
type TargetPointing struct {
	RA, Dec float64
	Set     bool
}

// Input is everything the starfield renderer needs to produce one frame.
// Render is a pure function of Input: it never reads shared context
// directly, so callers take their own short critical section to build it.
type Input struct {
	CenterRA, CenterDec float64
	Roll                float64
	FieldRadiusDeg      float64
	Zoom                float64
	Objects             []obscontext.CelestialObject
	Target              TargetPointing
}

// Render draws the field boundary, cardinal labels, projected objects, and
// navigation overlay onto canvas.
func Render(canvas Canvas, in Input) {
	cx, cy := canvas.Width()/2, canvas.Height()/2
	radiusPx := min(cx, cy) - 2

	canvas.DrawCircleOutline(cx, cy, radiusPx, ColorGray)
	drawCardinals(canvas, cx, cy, radiusPx)

	used := make(map[[2]int]bool)
	for _, obj := range in.Objects {
		drawObject(canvas, in, obj, cx, cy, radiusPx, used)
	}

	if in.Target.Set {
		drawTargetOverlay(canvas, in, cx, cy, radiusPx)
	}
}

func drawCardinals(canvas Canvas, cx, cy, radiusPx int) {
	canvas.DrawLabel(cx-4, cy-radiusPx+12, "N", ColorGray)
	canvas.DrawLabel(cx-4, cy+radiusPx-4, "S", ColorGray)
	canvas.DrawLabel(cx+radiusPx-12, cy+4, "E", ColorGray)
	canvas.DrawLabel(cx-radiusPx+2, cy+4, "W", ColorGray)
}

func drawObject(canvas Canvas, in Input, obj obscontext.CelestialObject, cx, cy, radiusPx int, usedCells map[[2]int]bool) {
	proj, ok := transform.GnomonicProject(obj.RA, obj.Dec, in.CenterRA, in.CenterDec, in.FieldRadiusDeg, in.Roll)
	if !ok {
		return
	}

	px := cx + int(proj.X*float64(radiusPx))
	py := cy + int(proj.Y*float64(radiusPx))

	if obj.IsPlanet {
		drawPlanet(canvas, obj, px, py)
		return
	}

	zoomScale := in.Zoom
	if zoomScale <= 0 {
		zoomScale = 1
	}
	diameter := clampF(25-2*obj.Magnitude, 1, 15) / zoomScale
	radius := int(diameter / 2)
	canvas.FillCircle(px, py, radius, ColorWhite)

	if obj.Magnitude < 6 {
		cell := [2]int{px * labelGridCells / canvas.Width(), py * labelGridCells / canvas.Height()}
		if !usedCells[cell] {
			usedCells[cell] = true
			canvas.DrawLabel(px+radius+2, py, obj.Name, ColorWhite)
		}
	}
}

func drawPlanet(canvas Canvas, obj obscontext.CelestialObject, px, py int) {
	canvas.FillCircle(px, py, 4, ColorYellow)
	canvas.DrawLabel(px+6, py, obj.Name, ColorYellow)
}

// drawTargetOverlay draws a crosshair at the target's projected position
// when it falls within the field, or a directional arrow from the field
// center toward the target's bearing when it does not.
func drawTargetOverlay(canvas Canvas, in Input, cx, cy, radiusPx int) {
	proj, inside := transform.GnomonicProject(in.Target.RA, in.Target.Dec, in.CenterRA, in.CenterDec, in.FieldRadiusDeg, in.Roll)
	if inside {
		px := cx + int(proj.X*float64(radiusPx))
		py := cy + int(proj.Y*float64(radiusPx))
		drawCrosshair(canvas, px, py)
		return
	}

	bearing := bearingDeg(in.CenterRA, in.CenterDec, in.Target.RA, in.Target.Dec) - in.Roll
	rad := bearing * math.Pi / 180
	edgeX := cx + int(math.Sin(rad)*float64(radiusPx-10))
	edgeY := cy - int(math.Cos(rad)*float64(radiusPx-10))
	canvas.DrawLine(cx, cy, edgeX, edgeY, ColorRed)
}

func drawCrosshair(canvas Canvas, px, py int) {
	const armLen = 8
	canvas.DrawLine(px-armLen, py, px+armLen, py, ColorRed)
	canvas.DrawLine(px, py-armLen, px, py+armLen, ColorRed)
}

// bearingDeg returns the initial great-circle bearing from (ra0, dec0) to
// (ra, dec), measured clockwise from north.
func bearingDeg(ra0, dec0, ra, dec float64) float64 {
	lat1 := dec0 * math.Pi / 180
	lat2 := dec * math.Pi / 180
	deltaLon := (ra - ra0) * math.Pi / 180

	y := math.Sin(deltaLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLon)
	theta := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(theta+360, 360)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ObjectLabel is exposed for the Info screen, which lists the nearby set
// as text rather than drawing it.
func ObjectLabel(obj obscontext.CelestialObject) string {
	return fmt.Sprintf("%s (mag %.1f)", obj.Name, obj.Magnitude)
}
