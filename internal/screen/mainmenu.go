package screen

import (
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

type mainMenuScreen struct{}

func (s *mainMenuScreen) ID() ID { return MainMenu }

func (s *mainMenuScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonA, Kind: Press}: func(*obscontext.Context) (ID, bool) { return Navigation, true },
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return TargetList, true },
		{Button: ButtonC, Kind: Press}: func(*obscontext.Context) (ID, bool) { return Info, true },
		{Button: ButtonR, Kind: Press}: func(*obscontext.Context) (ID, bool) { return Focus, true },
		{Button: ButtonL, Kind: Press}: func(*obscontext.Context) (ID, bool) { return Alignment, true },
	}
}

func (s *mainMenuScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	canvas.DrawLabel(20, 40, "SKYSCOPE", render.ColorWhite)
	canvas.DrawLabel(20, 70, "A: Navigate", render.ColorGray)
	canvas.DrawLabel(20, 90, "B: Targets", render.ColorGray)
	canvas.DrawLabel(20, 110, "C: Info", render.ColorGray)
	canvas.DrawLabel(20, 130, "R: Focus", render.ColorGray)
	canvas.DrawLabel(20, 150, "L: Alignment", render.ColorGray)

	if ra, dec, ok := ctx.Telescope.Position(); ok {
		canvas.DrawLabel(20, 190, formatRADec(ra, dec), render.ColorYellow)
	} else {
		canvas.DrawLabel(20, 190, "Awaiting first solve…", render.ColorGray)
	}
}
