package screen

import (
	"skyscope/internal/catalog"
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

const targetListPageSize = 8

// filterToKind maps a TargetState catalog filter to the catalog's object
// kind for browsing. Solar-system targets are not browsed from the star
// catalog; TargetList shows only stars/DSOs here, matching its primary use.
func filterToKind(f obscontext.CatalogFilter) obscontext.ObjectKind {
	if f == obscontext.FilterDSOs {
		return obscontext.KindDSO
	}
	return obscontext.KindStar
}

type targetListScreen struct {
	catalog *catalog.Catalog
	state   *searchState
	loaded  bool
}

func (s *targetListScreen) ID() ID { return TargetList }

func (s *targetListScreen) ensureLoaded(ctx *obscontext.Context) {
	if s.loaded || s.catalog == nil {
		return
	}
	kind := filterToKind(ctx.Target.Filter())
	results, err := s.catalog.Browse(kind, 50)
	if err == nil {
		s.state.results = results
	}
	s.state.selected = 0
	s.loaded = true
}

func (s *targetListScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonU, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			s.ensureLoaded(ctx)
			if s.state.selected > 0 {
				s.state.selected--
			}
			return 0, false
		},
		{Button: ButtonD, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			s.ensureLoaded(ctx)
			if s.state.selected < len(s.state.results)-1 {
				s.state.selected++
			}
			return 0, false
		},
		{Button: ButtonA, Kind: Press}: func(ctx *obscontext.Context) (ID, bool) {
			s.ensureLoaded(ctx)
			if len(s.state.results) == 0 {
				return 0, false
			}
			return TargetSelect, true
		},
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return MainMenu, true },
	}
}

func (s *targetListScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	s.ensureLoaded(ctx)
	canvas.DrawLabel(10, 20, "TARGETS: "+ctx.Target.Filter().String(), render.ColorWhite)

	start := s.state.selected - s.state.selected%targetListPageSize
	end := start + targetListPageSize
	if end > len(s.state.results) {
		end = len(s.state.results)
	}
	for i := start; i < end; i++ {
		color := render.ColorGray
		if i == s.state.selected {
			color = render.ColorYellow
		}
		canvas.DrawLabel(10, 45+(i-start)*20, render.ObjectLabel(s.state.results[i]), color)
	}
}
