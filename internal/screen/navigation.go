package screen

import (
	"time"

	"skyscope/internal/catalog"
	"skyscope/internal/fsutil"
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
	"skyscope/internal/transform"
)

// navigationScreen is the primary starfield view with target overlay.
type navigationScreen struct {
	altAz     transform.AltAzConverter
	catalog   *catalog.Catalog
	ephemeris *catalog.EphemerisCache
}

func (s *navigationScreen) ID() ID { return Navigation }

func (s *navigationScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return MainMenu, true },
		{Button: ButtonC, Kind: Press}: func(*obscontext.Context) (ID, bool) { return Directions, true },
	}
}

func (s *navigationScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	ra, dec, ok := ctx.Telescope.Position()
	if !ok {
		canvas.DrawLabel(10, 20, "Awaiting first solve…", render.ColorGray)
		return
	}
	roll := ctx.Telescope.Roll()
	optics := ctx.Optics()

	in := render.Input{
		CenterRA:       ra,
		CenterDec:      dec,
		Roll:           roll,
		FieldRadiusDeg: optics.FieldRadius(),
		Zoom:           optics.Zoom,
	}

	if name, tra, tdec, ok := ctx.Target.Target(); ok {
		_ = name
		in.Target = render.TargetPointing{RA: tra, Dec: tdec, Set: true}
	}

	if s.catalog != nil {
		var planets []obscontext.CelestialObject
		if s.ephemeris != nil {
			planets, _ = s.ephemeris.Positions(time.Now())
		}
		if objs, err := s.catalog.FieldOfView(ra, dec, in.FieldRadiusDeg, optics.LimitingMagnitude(), planets); err == nil {
			in.Objects = objs
		}
	}

	render.Render(canvas, in)
	canvas.DrawLabel(10, canvas.Height()-12, "Last solve "+fsutil.HumanAgo(ctx.Telescope.LastSolved()), render.ColorGray)
}
