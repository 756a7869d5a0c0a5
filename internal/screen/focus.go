package screen

import (
	"fmt"

	"skyscope/internal/analyzer"
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

// focusScreen surfaces the analyzer's rolling FWHM/noise readout and lets
// the operator nudge exposure manually while chasing focus.
type focusScreen struct {
	analyzer *analyzer.Analyzer
}

func (s *focusScreen) ID() ID { return Focus }

func (s *focusScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return MainMenu, true },
		{Button: ButtonU, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			ctx.Camera.AdjustExposure(100_000)
			return 0, false
		},
		{Button: ButtonD, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			ctx.Camera.AdjustExposure(-100_000)
			return 0, false
		},
	}
}

func (s *focusScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	canvas.DrawLabel(10, 30, "FOCUS", render.ColorWhite)
	canvas.DrawLabel(10, 60, fmt.Sprintf("exposure: %d us", ctx.Camera.Exposure()), render.ColorGray)

	if s.analyzer == nil {
		return
	}
	snap := s.analyzer.Snapshot()
	canvas.DrawLabel(10, 90, fmt.Sprintf("FWHM: %.2f", snap.FWHM), render.ColorGray)
	canvas.DrawLabel(10, 110, fmt.Sprintf("noise: %.2f", snap.Noise), render.ColorGray)
	canvas.DrawLabel(10, 130, fmt.Sprintf("background: %.2f", snap.Background), render.ColorGray)
	for i, w := range snap.Warnings {
		canvas.DrawLabel(10, 160+i*20, w, render.ColorRed)
	}
}
