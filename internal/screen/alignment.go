package screen

import (
	"fmt"

	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

// alignmentStep is the cursor's per-press movement, in pixels.
const alignmentStep = 4

// alignmentScreen lets the operator pick the pixel the solver should
// report the sky coordinate of, using the (row=y, col=x) axis convention.
type alignmentScreen struct {
	cursor *obscontext.PixelCoord
}

func (s *alignmentScreen) ID() ID { return Alignment }

func (s *alignmentScreen) Bindings() map[Event]Handler {
	move := func(dRow, dCol int) Handler {
		return func(*obscontext.Context) (ID, bool) {
			s.cursor.Row = clampInt(s.cursor.Row+dRow, 0, render240-1)
			s.cursor.Col = clampInt(s.cursor.Col+dCol, 0, render240-1)
			return 0, false
		}
	}
	return map[Event]Handler{
		{Button: ButtonU, Kind: Press}: move(-alignmentStep, 0),
		{Button: ButtonD, Kind: Press}: move(alignmentStep, 0),
		{Button: ButtonL, Kind: Press}: move(0, -alignmentStep),
		{Button: ButtonR, Kind: Press}: move(0, alignmentStep),
		{Button: ButtonC, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			ctx.Solver.SetTargetPixel(*s.cursor)
			return MainMenu, true
		},
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return MainMenu, true },
	}
}

func (s *alignmentScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	canvas.DrawLabel(10, 20, "ALIGNMENT", render.ColorWhite)
	canvas.DrawLabel(10, render240-10, fmt.Sprintf("row %d col %d", s.cursor.Row, s.cursor.Col), render.ColorGray)

	x, y := s.cursor.Col, s.cursor.Row
	canvas.DrawLine(x-6, y, x+6, y, render.ColorRed)
	canvas.DrawLine(x, y-6, x, y+6, render.ColorRed)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
