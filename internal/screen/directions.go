package screen

import (
	"fmt"

	"skyscope/internal/fsutil"
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
	"skyscope/internal/transform"
)

// directionsScreen gives textual up/down/left/right guidance toward the
// current target, derived from the alt/az delta between the telescope's
// pointing and the target.
type directionsScreen struct {
	altAz transform.AltAzConverter
}

func (s *directionsScreen) ID() ID { return Directions }

func (s *directionsScreen) Bindings() map[Event]Handler {
	return map[Event]Handler{
		{Button: ButtonB, Kind: Press}: func(*obscontext.Context) (ID, bool) { return Navigation, true },
	}
}

func (s *directionsScreen) Render(ctx *obscontext.Context, canvas render.Canvas) {
	canvas.DrawLabel(10, 20, "DIRECTIONS", render.ColorWhite)

	name, tra, tdec, ok := ctx.Target.Target()
	if !ok {
		canvas.DrawLabel(10, 50, "no target set", render.ColorGray)
		return
	}
	ra, dec, solved := ctx.Telescope.Position()
	if !solved {
		canvas.DrawLabel(10, 50, "Awaiting first solve…", render.ColorGray)
		return
	}

	loc := ctx.Environment.Location()
	now := ctx.Environment.Now()
	curAlt, curAz := s.altAz.RadecToAltAz(ra, dec, now, loc.LatDeg, loc.LonDeg)
	targetAlt, targetAz := s.altAz.RadecToAltAz(tra, tdec, now, loc.LatDeg, loc.LonDeg)

	canvas.DrawLabel(10, 50, "target: "+name, render.ColorYellow)
	canvas.DrawLabel(10, 75, fmt.Sprintf("alt %s %.1f deg", verticalDirection(targetAlt-curAlt), abs64(targetAlt-curAlt)), render.ColorGray)
	canvas.DrawLabel(10, 95, fmt.Sprintf("az %s %.1f deg", horizontalDirection(targetAz-curAz), abs64(targetAz-curAz)), render.ColorGray)
	canvas.DrawLabel(10, 120, "Last solve "+fsutil.HumanAgo(ctx.Telescope.LastSolved()), render.ColorGray)
}

func verticalDirection(delta float64) string {
	if delta >= 0 {
		return "up"
	}
	return "down"
}

func horizontalDirection(delta float64) string {
	if delta >= 0 {
		return "right"
	}
	return "left"
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
