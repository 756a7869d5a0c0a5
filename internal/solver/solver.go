// Package solver defines the plate-solver contract: an opaque oracle that
// maps a captured frame to celestial coordinates. The star-pattern
// matching algorithm itself is out of scope; this package only specifies
// the interface and a fake implementation for development and testing, in
// the style of the astrometry-client example's thin wrapper over an
// external solve-field binary.
package solver

import (
	"context"
	"errors"

	"skyscope/internal/obscontext"
)

// ErrNoSolution indicates the solver could not match the frame against the
// catalog. It is not propagated up the pipeline; it feeds the Adjuster.
var ErrNoSolution = errors.New("no solution found")

// Solver maps a captured frame to a SolveResult. hintFOV is the solver's
// current field-of-view estimate; targetPixel, if set, asks the solver to
// report the sky coordinate of that pixel rather than the frame center.
type Solver interface {
	Solve(ctx context.Context, frame obscontext.Frame, hintFOV float64, targetPixel *obscontext.PixelCoord) (obscontext.SolveResult, error)
}
