package screen

import (
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

type targetSelectScreen struct {
	state *searchState
}

func (s *targetSelectScreen) ID() ID { return TargetSelect }

func (s *targetSelectScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonA, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			if s.state == nil || s.state.selected >= len(s.state.results) {
				return TargetList, true
			}
			obj := s.state.results[s.state.selected]
			ctx.Target.SetTarget(obj.Name, obj.RA, obj.Dec)
			return Navigation, true
		},
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return TargetList, true },
	}
}

func (s *targetSelectScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	canvas.DrawLabel(10, 20, "CONFIRM TARGET", render.ColorWhite)
	if s.state == nil || s.state.selected >= len(s.state.results) {
		canvas.DrawLabel(10, 50, "no selection", render.ColorGray)
		return
	}
	obj := s.state.results[s.state.selected]
	canvas.DrawLabel(10, 50, render.ObjectLabel(obj), render.ColorYellow)
	canvas.DrawLabel(10, 70, formatRADec(obj.RA, obj.Dec), render.ColorGray)
	canvas.DrawLabel(10, 100, "A: confirm  B: back", render.ColorGray)
}
