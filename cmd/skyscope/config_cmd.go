package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skyscope/internal/config"
)

// newConfigCmd shows and validates the loaded JSON configuration.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or validate the loaded configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Printf("Logging:    level=%s format=%s\n", cfg.Logging.Level, cfg.Logging.Format)
			fmt.Printf("Network:    broadcast=:%d (enabled=%v) dashboard=:%d (enabled=%v)\n",
				cfg.Network.BroadcastPort, cfg.Network.EnableBroadcast, cfg.Network.DashboardPort, cfg.Network.EnableDashboard)
			fmt.Printf("Paths:      catalog=%s diagnostics=%s settings=%s offset=%s coord_log=%s\n",
				cfg.Paths.CatalogDB, cfg.Paths.DiagnosticsDB, cfg.Paths.SettingsFile, cfg.Paths.OffsetFile, cfg.Paths.CoordLogFile)
			fmt.Printf("Ephemeris:  refresh=%s\n", cfg.Ephemeris.RefreshInterval())
			fmt.Printf("Site:       lat=%.4f lon=%.4f min_altitude=%.1f\n", cfg.Site.LatDeg, cfg.Site.LonDeg, cfg.Site.MinVisibleAltitude)
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report whether it parses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(); err != nil {
				return err
			}
			fmt.Println("configuration is valid")
			return nil
		},
	}

	cmd.AddCommand(showCmd, validateCmd)
	return cmd
}
