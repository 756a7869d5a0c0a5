// Package logging wraps log/slog with the domain-specific lifecycle helpers
// the pipeline, solver, and broadcast packages log through, so call sites
// read as what happened rather than how to format it.
package logging

import (
	"os"
	"strings"
	"time"

	"log/slog"

	"github.com/mattn/go-isatty"
)

// New returns a slog.Logger for the given level (debug, info, warn, error)
// and format ("json" or "text"). An empty format auto-detects: text for an
// interactive terminal, json otherwise (log aggregators expect json).
func New(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if resolveFormat(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func resolveFormat(format string) string {
	format = strings.ToLower(format)
	if format == "" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			return "text"
		}
		return "json"
	}
	return format
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogCaptureFailure logs a recovered camera capture error. Capture
// failures never stop the pipeline; they are logged and counted.
func LogCaptureFailure(logger *slog.Logger, err error) {
	logger.Warn("capture failed", "error", err.Error())
}

// LogSolveAttempt logs a solver invocation's outcome.
func LogSolveAttempt(logger *slog.Logger, ok bool, duration time.Duration, err error) {
	if ok {
		logger.Debug("solve attempt succeeded", "duration_ms", duration.Milliseconds())
		return
	}
	attrs := []any{"duration_ms", duration.Milliseconds()}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	logger.Debug("solve attempt failed", attrs...)
}

// LogStateApplied logs a successfully applied solve result.
func LogStateApplied(logger *slog.Logger, ra, dec, roll float64) {
	logger.Info("telescope state updated", "ra", ra, "dec", dec, "roll", roll)
}

// LogStateDiscarded logs a stale solve result that the applier rejected.
func LogStateDiscarded(logger *slog.Logger, resultTime, lastSolved time.Time) {
	logger.Debug("discarded stale solve result", "result_time", resultTime, "last_solved", lastSolved)
}

// LogBroadcastUpdate logs a position sent to the planetarium endpoint.
func LogBroadcastUpdate(logger *slog.Logger, ra, dec float64) {
	logger.Debug("broadcast position update", "ra", ra, "dec", dec)
}

// LogBroadcastError logs a recovered broadcast I/O failure.
func LogBroadcastError(logger *slog.Logger, err error) {
	logger.Warn("broadcast error", "error", err.Error())
}

// LogAdjusterChange logs an adaptive-exposure adjustment.
func LogAdjusterChange(logger *slog.Logger, deltaMicros int64, newExposure int64) {
	logger.Info("exposure adjusted", "delta_us", deltaMicros, "exposure_us", newExposure)
}

// LogPersistenceError logs a recovered settings/offset/log I/O failure.
func LogPersistenceError(logger *slog.Logger, op string, err error) {
	logger.Error("persistence error", "operation", op, "error", err.Error())
}

// LogScreenTransition logs a UI screen-state-machine transition.
func LogScreenTransition(logger *slog.Logger, from, to string) {
	logger.Debug("screen transition", "from", from, "to", to)
}

// LogShutdown logs a graceful pipeline stop, including how long workers
// took to drain.
func LogShutdown(logger *slog.Logger, drainDuration time.Duration) {
	logger.Info("pipeline stopped", "drain_ms", drainDuration.Milliseconds())
}
