package screen

import (
	"strings"
	"testing"
	"time"

	"skyscope/internal/obscontext"
	"skyscope/internal/render"
	"skyscope/internal/transform"
)

func testContext() *obscontext.Context {
	env := obscontext.NewEnvironment(obscontext.Location{LatDeg: 40, LonDeg: -105}, 10)
	return obscontext.New(env, obscontext.DefaultOptics())
}

// recordingCanvas wraps a RasterCanvas and records every label drawn, so
// tests can assert on the literal user-visible strings a screen renders.
type recordingCanvas struct {
	*render.RasterCanvas
	labels []string
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{RasterCanvas: render.NewRasterCanvas(render.CanvasSize, render.CanvasSize)}
}

func (c *recordingCanvas) DrawLabel(x, y int, text string, rgb render.RGB) {
	c.labels = append(c.labels, text)
	c.RasterCanvas.DrawLabel(x, y, text, rgb)
}

func (c *recordingCanvas) hasLabelContaining(substr string) bool {
	for _, l := range c.labels {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestMachineTransitionsOnBinding(t *testing.T) {
	deps := Deps{AltAz: transform.StandardAltAz{}}
	factory := NewDefaultFactory(deps)
	m := NewMachine(testContext(), factory, MainMenu)

	if m.Current() != MainMenu {
		t.Fatalf("expected to start at MainMenu, got %v", m.Current())
	}

	m.Dispatch(Event{Button: ButtonA, Kind: Press})
	if m.Current() != Navigation {
		t.Fatalf("expected transition to Navigation, got %v", m.Current())
	}
}

func TestMachineResetsBindingsOnTransition(t *testing.T) {
	deps := Deps{AltAz: transform.StandardAltAz{}}
	factory := NewDefaultFactory(deps)
	m := NewMachine(testContext(), factory, MainMenu)

	m.Dispatch(Event{Button: ButtonA, Kind: Press}) // -> Navigation
	// Navigation has no binding for ButtonA; dispatching it must no-op,
	// not fall through to MainMenu's old A binding.
	m.Dispatch(Event{Button: ButtonA, Kind: Press})
	if m.Current() != Navigation {
		t.Fatalf("expected to remain on Navigation, got %v", m.Current())
	}
}

func TestAlignmentCursorUsesRowColConvention(t *testing.T) {
	ctx := testContext()
	cursor := &obscontext.PixelCoord{Row: 100, Col: 100}
	s := &alignmentScreen{cursor: cursor}

	bindings := s.Bindings()
	bindings[Event{Button: ButtonR, Kind: Press}](ctx)
	if cursor.Col != 104 || cursor.Row != 100 {
		t.Fatalf("ButtonR should move column (x), got row=%d col=%d", cursor.Row, cursor.Col)
	}

	bindings[Event{Button: ButtonD, Kind: Press}](ctx)
	if cursor.Row != 104 {
		t.Fatalf("ButtonD should move row (y), got row=%d", cursor.Row)
	}

	bindings[Event{Button: ButtonC, Kind: Press}](ctx)
	pix, ok := ctx.Solver.TargetPixel()
	if !ok {
		t.Fatalf("expected target pixel to be set on confirm")
	}
	if pix.Row != 104 || pix.Col != 104 {
		t.Fatalf("confirmed pixel mismatch: %+v", pix)
	}
}

func TestMainMenuRenderDoesNotPanic(t *testing.T) {
	ctx := testContext()
	s := &mainMenuScreen{}
	canvas := render.NewRasterCanvas(render.CanvasSize, render.CanvasSize)
	s.Render(ctx, canvas)
}

func TestMainMenuShowsAwaitingFirstSolveBeforeAnySolve(t *testing.T) {
	ctx := testContext()
	s := &mainMenuScreen{}
	canvas := newRecordingCanvas()
	s.Render(ctx, canvas)
	if !canvas.hasLabelContaining("Awaiting first solve…") {
		t.Fatalf("expected \"Awaiting first solve…\" label, got %v", canvas.labels)
	}
}

func TestNavigationShowsAwaitingFirstSolveBeforeAnySolve(t *testing.T) {
	ctx := testContext()
	s := &navigationScreen{altAz: transform.StandardAltAz{}}
	canvas := newRecordingCanvas()
	s.Render(ctx, canvas)
	if !canvas.hasLabelContaining("Awaiting first solve…") {
		t.Fatalf("expected \"Awaiting first solve…\" label, got %v", canvas.labels)
	}
}

func TestNavigationShowsLastSolveAgeOnceSolved(t *testing.T) {
	ctx := testContext()
	ctx.Telescope.ApplySolveResult(
		obscontext.SolveResult{RA: 10, Dec: 20, Timestamp: time.Now(), Probability: 0.9},
		nil, nil, transform.StandardAltAz{}, ctx.Environment.Location(),
	)
	s := &navigationScreen{altAz: transform.StandardAltAz{}}
	canvas := newRecordingCanvas()
	s.Render(ctx, canvas)
	if !canvas.hasLabelContaining("Last solve ") {
		t.Fatalf("expected a \"Last solve …\" readout, got %v", canvas.labels)
	}
}

func TestDirectionsScreenHandlesNoTarget(t *testing.T) {
	ctx := testContext()
	s := &directionsScreen{altAz: transform.StandardAltAz{}}
	canvas := render.NewRasterCanvas(render.CanvasSize, render.CanvasSize)
	s.Render(ctx, canvas) // must not panic with no target/unsolved telescope
}

func TestDirectionsShowsAwaitingFirstSolveWhenUnsolved(t *testing.T) {
	ctx := testContext()
	ctx.Target.SetTarget("Vega", 279.2347, 38.7837)
	s := &directionsScreen{altAz: transform.StandardAltAz{}}
	canvas := newRecordingCanvas()
	s.Render(ctx, canvas)
	if !canvas.hasLabelContaining("Awaiting first solve…") {
		t.Fatalf("expected \"Awaiting first solve…\" label, got %v", canvas.labels)
	}
}

func TestDirectionsShowsLastSolveAgeOnceSolved(t *testing.T) {
	ctx := testContext()
	ctx.Target.SetTarget("Vega", 279.2347, 38.7837)
	ctx.Telescope.ApplySolveResult(
		obscontext.SolveResult{RA: 10, Dec: 20, Timestamp: time.Now(), Probability: 0.9},
		nil, nil, transform.StandardAltAz{}, ctx.Environment.Location(),
	)
	s := &directionsScreen{altAz: transform.StandardAltAz{}}
	canvas := newRecordingCanvas()
	s.Render(ctx, canvas)
	if !canvas.hasLabelContaining("Last solve ") {
		t.Fatalf("expected a \"Last solve …\" readout, got %v", canvas.labels)
	}
}
