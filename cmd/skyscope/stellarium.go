package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"skyscope/internal/broadcast"
)

// newStellariumCmd implements the --stel broadcast-only mode: the
// pipeline runs, but only the Stellarium TCP broadcaster is started, not
// the dashboard, coordinate log, or settings watcher.
func newStellariumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stellarium",
		Short: "Run the pipeline with only the Stellarium broadcast server",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := buildRoot()
			if err != nil {
				return err
			}
			defer root.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := root.pipe.Start(ctx); err != nil {
				return err
			}
			defer root.pipe.Stop(context.Background())

			bsrv := broadcast.New(root.log, root.pipe, root.cfg.Network.BroadcastPort)
			root.log.Info("stellarium broadcast running", "port", root.cfg.Network.BroadcastPort)
			bsrv.Run(ctx)
			return nil
		},
	}
}
