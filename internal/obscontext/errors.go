// Package obscontext holds the shared observation state: environment,
// camera, telescope, optics, solver, and target. Each struct owns a single
// mutex and is mutated through methods that keep their critical sections
// short, per the lock-per-struct policy the rest of the pipeline depends on.
package obscontext

import "errors"

var (
	// ErrNoTarget indicates TargetState has no ra/dec set.
	ErrNoTarget = errors.New("no target set")

	// ErrNotSolved indicates TelescopeState has no position yet.
	ErrNotSolved = errors.New("telescope not yet solved")

	// ErrStaleResult indicates a solve result older than the last applied one.
	ErrStaleResult = errors.New("stale solve result")

	// ErrInitFailure indicates catalog or ephemeris data could not be loaded at start-up.
	ErrInitFailure = errors.New("initialization failure")

	// ErrPersistence indicates settings or the coordinate log could not be written.
	ErrPersistence = errors.New("persistence failure")
)
