package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"skyscope/internal/obscontext"
)

func main() {
	cmd := newRootCmd()
	err := cmd.ExecuteContext(context.Background())
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process's exit-code taxonomy: 0
// clean stop, 1 init failure (catalog/ephemeris/config unreadable), 2 any
// other fatal error reaching main.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "skyscope:", err)
	if errors.Is(err, obscontext.ErrInitFailure) {
		return 1
	}
	return 2
}
