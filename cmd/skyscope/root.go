// Command skyscope runs the astrophotography capture/solve/navigation
// assistant: it wires the observation context, camera and solver
// collaborators, the star catalog and ephemeris cache, the pipeline
// orchestrator, the screen state machine, and the external broadcast and
// dashboard servers behind a small cobra CLI.
package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"skyscope/internal/camera"
	"skyscope/internal/catalog"
	"skyscope/internal/config"
	"skyscope/internal/logging"
	"skyscope/internal/obscontext"
	"skyscope/internal/persistence"
	"skyscope/internal/pipeline"
	"skyscope/internal/screen"
	"skyscope/internal/solver"
	"skyscope/internal/storage"
	"skyscope/internal/transform"
)

// frameWidth and frameHeight size both the fake camera's replayed frame
// and the starfield canvas; the rendered screen is fixed at 240x240.
const (
	frameWidth  = 240
	frameHeight = 240
)

// Root bundles every collaborator a subcommand might need. Building it is
// the CLI's one fallible start-up step; subcommands differ only in which
// of these pieces they start running.
type Root struct {
	cfg *config.Config
	log *slog.Logger

	obsCtx *obscontext.Context
	altAz  transform.AltAzConverter

	cat       *catalog.Catalog
	ephemeris *catalog.EphemerisCache

	cam  camera.Driver
	solv solver.Solver

	pipe  *pipeline.Pipeline
	store *storage.Store

	screens map[screen.ID]func() screen.Screen
	machine *screen.Machine
}

// buildRoot loads configuration and constructs every collaborator. A
// failure here is always an InitFailure: the process cannot usefully
// start without a readable config, catalog, and optics settings.
func buildRoot() (*Root, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: load config: %v", obscontext.ErrInitFailure, err)
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	settings, err := persistence.LoadSettings(cfg.Paths.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: load settings: %v", obscontext.ErrInitFailure, err)
	}
	cal, err := persistence.LoadOffset(cfg.Paths.OffsetFile)
	if err != nil {
		return nil, fmt.Errorf("%w: load offset: %v", obscontext.ErrInitFailure, err)
	}

	env := obscontext.NewEnvironment(
		obscontext.Location{LatDeg: cfg.Site.LatDeg, LonDeg: cfg.Site.LonDeg},
		cfg.Site.MinVisibleAltitude,
	)
	optics := settings.ToOptics(obscontext.DefaultOptics())
	obsCtx := obscontext.New(env, optics)

	if cal.HasTarget {
		obsCtx.Solver.SetTargetPixel(cal.TargetPixel)
	}
	offset := settings.ToCameraOffset()
	obsCtx.SetCameraOffset(&offset)

	altAz := transform.StandardAltAz{}

	cat, err := catalog.Open(cfg.Paths.CatalogDB)
	if err != nil {
		return nil, fmt.Errorf("%w: open catalog: %v", obscontext.ErrInitFailure, err)
	}

	ephemeris := catalog.NewEphemerisCache(noopEphemeris{}, cfg.Ephemeris.RefreshInterval())

	frame := camera.SyntheticFrame(frameWidth, frameHeight)
	if cfg.Paths.FakeFrameBitmap != "" {
		if loaded, err := camera.LoadBitmapFrame(cfg.Paths.FakeFrameBitmap, frameWidth, frameHeight); err != nil {
			log.Warn("falling back to synthetic frame", "path", cfg.Paths.FakeFrameBitmap, "error", err.Error())
		} else {
			frame = loaded
		}
	}
	cam := camera.NewFake(frame)
	solv := solver.NewFake(obscontext.SolveResult{RA: 0, Dec: 0, Probability: 0.9})

	pipe := pipeline.New(log, cam, solv, obsCtx, altAz, 0)

	var store *storage.Store
	if cfg.Paths.DiagnosticsDB != "" {
		store, err = storage.New(cfg.Paths.DiagnosticsDB)
		if err != nil {
			log.Warn("diagnostics store unavailable", "error", err.Error())
			store = nil
		} else {
			pipe.SetDiagnostics(store)
		}
	}

	factory := screen.NewDefaultFactory(screen.Deps{
		Catalog:   cat,
		Ephemeris: ephemeris,
		Analyzer:  pipe.Analyzer(),
		AltAz:     altAz,
	})
	machine := screen.NewMachine(obsCtx, factory, screen.MainMenu)

	return &Root{
		cfg:       cfg,
		log:       log,
		obsCtx:    obsCtx,
		altAz:     altAz,
		cat:       cat,
		ephemeris: ephemeris,
		cam:       cam,
		solv:      solv,
		pipe:      pipe,
		store:     store,
		screens:   factory,
		machine:   machine,
	}, nil
}

// machineAt builds a fresh Machine starting at startID, sharing this
// Root's context and screen factory. Used by the render subcommand to
// render the Navigation screen without disturbing a running Machine's
// current screen.
func (r *Root) machineAt(startID screen.ID) *screen.Machine {
	return screen.NewMachine(r.obsCtx, r.screens, startID)
}

// Close releases the collaborators that hold OS resources.
func (r *Root) Close() {
	if r.cat != nil {
		r.cat.Close()
	}
	if r.store != nil {
		r.store.Close()
	}
}

// noopEphemeris reports no solar-system bodies; the exact ephemeris file
// format is out of scope. A richer source can be substituted without
// touching the cache or its callers.
type noopEphemeris struct{}

func (noopEphemeris) Positions(t time.Time) ([]obscontext.CelestialObject, error) {
	return nil, nil
}

// newRootCmd builds the skyscope root command and attaches its
// subcommands.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skyscope",
		Short: "Capture, plate-solve, and navigate the night sky",
		Long: `skyscope runs a concurrent capture -> solve -> state pipeline for a
telescope-mounted camera, drives a small screen UI, and broadcasts the
resolved pointing to Stellarium-compatible planetarium software.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var uiFlag, stelFlag bool
	cmd.PersistentFlags().BoolVar(&uiFlag, "ui", false, "render a single frame and exit (equivalent to the render subcommand)")
	cmd.PersistentFlags().BoolVar(&stelFlag, "stel", false, "run broadcast-only mode (equivalent to the stellarium subcommand)")

	runCmd := newRunCmd()
	cmd.RunE = func(c *cobra.Command, args []string) error {
		switch {
		case uiFlag:
			return newRenderCmd().RunE(c, args)
		case stelFlag:
			return newStellariumCmd().RunE(c, args)
		default:
			return runCmd.RunE(c, args)
		}
	}

	cmd.AddCommand(runCmd)
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newStellariumCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}
