package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/fleet/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .fleet/config.json",
		Long: `Write .fleet/config.json in the config directory with the current settings.

Flags given here (and the global --fixtures/--id-strategy) are stored; anything
left unset keeps its default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := configDir(cmd)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, ".fleet", "config.json")

			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("recent-limit") {
				cfg.RecentLimit, _ = cmd.Flags().GetInt("recent-limit")
			}
			if cmd.Flags().Changed("due-soon-days") {
				cfg.DueSoonDays, _ = cmd.Flags().GetInt("due-soon-days")
			}

			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Config written to %s\n", path)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  fleet dashboard")
			fmt.Fprintln(out, "  fleet session")
			return nil
		},
	}
	cmd.Flags().Int("recent-limit", 5, "Missions listed on the overview")
	cmd.Flags().Int("due-soon-days", 7, "Analytics due-soon window in days")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	return cmd
}
