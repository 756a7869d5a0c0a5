// Package fsutil collects small filesystem path and formatting helpers
// shared by config loading, persistence, and the Info screen.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// ExpandUser expands a leading "~" in path to the current user's home
// directory, the way shells do. A path without a leading "~" is returned
// unchanged.
func ExpandUser(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if path == "~" {
		return home, nil
	}

	return filepath.Join(home, path[2:]), nil
}

// HumanAgo formats how long ago t was, for display on the Navigation,
// Directions, and Info screens' "last solved" readouts. Within the last
// minute it renders as "Ns ago" (the freshness readout the operator
// actually watches during live solving); beyond that it falls back to
// go-humanize's coarser "5 minutes ago" style, since second-level
// precision stops being useful once a solve is stale.
func HumanAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if elapsed := time.Since(t); elapsed < time.Minute {
		return fmt.Sprintf("%ds ago", int(elapsed.Round(time.Second).Seconds()))
	}
	return humanize.Time(t)
}
