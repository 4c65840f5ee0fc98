package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fleet/internal/version"
	"github.com/example/fleet/internal/wire"
)

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the fleet overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				dashboard, err := a.DashboardAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				dashboard.Render(ctx)
				return nil
			})
		},
	}
}

// FleetCmd returns the fleet command
func FleetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fleet",
		Aliases: []string{"vessels"},
		Short:   "Show missions grouped by vessel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				fleet, err := a.FleetAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				fleet.Render(ctx)
				return nil
			})
		},
	}
}

// AnalyticsCmd returns the analytics command
func AnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show mission statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				analytics, err := a.AnalyticsAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				analytics.Render(ctx)
				return nil
			})
		},
	}
}

// VersionCmd returns the version command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
