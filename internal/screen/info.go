package screen

import (
	"fmt"

	"skyscope/internal/analyzer"
	"skyscope/internal/fsutil"
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

type infoScreen struct {
	analyzer *analyzer.Analyzer
}

func (s *infoScreen) ID() ID { return Info }

func (s *infoScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return MainMenu, true },
	}
}

func (s *infoScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	canvas.DrawLabel(10, 20, "INFO", render.ColorWhite)

	y := 50
	line := func(text string) {
		canvas.DrawLabel(10, y, text, render.ColorGray)
		y += 20
	}

	line(fmt.Sprintf("exposure: %d us", ctx.Camera.Exposure()))
	line(fmt.Sprintf("gain: %.1f", ctx.Camera.Gain()))
	line(fmt.Sprintf("speed: %.3f deg/s", ctx.Telescope.Speed()))
	line(fmt.Sprintf("last solved: %s", fsutil.HumanAgo(ctx.Telescope.LastSolved())))

	if s.analyzer != nil {
		snap := s.analyzer.Snapshot()
		line(fmt.Sprintf("fwhm: %.2f  noise: %.2f", snap.FWHM, snap.Noise))
	}
}
