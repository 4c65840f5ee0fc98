package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/fleet/internal/cli"
	"github.com/example/fleet/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "fleet",
		Short:   "fleet - mission board for a maritime fleet",
		Version: version.String(),
		Long: `fleet manages missions for the vessels of a fleet.
Each invocation is one session: missions are seeded from fixtures and kept in memory.`,
		SilenceUsage: true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	// Screens
	rootCmd.AddCommand(cli.DashboardCmd())
	rootCmd.AddCommand(cli.MissionCmd())
	rootCmd.AddCommand(cli.FleetCmd())
	rootCmd.AddCommand(cli.AnalyticsCmd())
	rootCmd.AddCommand(cli.SessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
