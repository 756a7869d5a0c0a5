package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"skyscope/internal/broadcast"
	"skyscope/internal/dashboard"
	"skyscope/internal/persistence"
)

// newRunCmd runs the full pipeline: capture/solve/analyze workers, the
// Stellarium broadcaster, the debug dashboard, the coordinate log, and a
// hot-reload watcher on settings.txt, until interrupted.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full capture, solve, and broadcast pipeline (default)",
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

			coordLog, err := persistence.OpenCoordLog(root.cfg.Paths.CoordLogFile)
			if err != nil {
				root.log.Warn("coordinate log unavailable", "error", err.Error())
			} else {
				defer coordLog.Close()
				go logPositionUpdates(ctx, root, coordLog)
			}

			watcher, err := persistence.NewSettingsWatcher(root.log, root.cfg.Paths.SettingsFile, func(s persistence.Settings) {
				root.obsCtx.SetOptics(s.ToOptics(root.obsCtx.Optics()))
				offset := s.ToCameraOffset()
				root.obsCtx.SetCameraOffset(&offset)
			})
			if err != nil {
				root.log.Warn("settings watcher unavailable", "error", err.Error())
			} else {
				defer watcher.Close()
			}

			if root.cfg.Network.EnableBroadcast {
				bsrv := broadcast.New(root.log, root.pipe, root.cfg.Network.BroadcastPort)
				go bsrv.Run(ctx)
			}

			if root.cfg.Network.EnableDashboard {
				dsrv := dashboard.New(root.log, root.obsCtx, root.store, root.cfg.Network.DashboardPort)
				go func() {
					if err := dsrv.Run(ctx); err != nil {
						root.log.Error("dashboard server stopped", "error", err.Error())
					}
				}()
			}

			root.log.Info("skyscope running", "broadcast_port", root.cfg.Network.BroadcastPort, "dashboard_port", root.cfg.Network.DashboardPort)
			<-ctx.Done()
			root.log.Info("shutting down")
			return nil
		},
	}
}

// logPositionUpdates subscribes to the pipeline's applied positions and
// appends each one to the coordinate log, until ctx is cancelled.
func logPositionUpdates(ctx context.Context, root *Root, coordLog *persistence.CoordLog) {
	updates, unsubscribe := root.pipe.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := coordLog.Append(u.Timestamp, u.RA, u.Dec); err != nil {
				root.log.Warn("coordinate log append failed", "error", err.Error())
			}
		}
	}
}
