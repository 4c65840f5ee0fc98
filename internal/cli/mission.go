package cli

import (
	"context"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/fleet/internal/adapters/cli"
	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/wire"
)

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Create, list and inspect missions",
	}
	cmd.AddCommand(missionCreateCmd())
	cmd.AddCommand(missionListCmd())
	cmd.AddCommand(missionShowCmd())
	return cmd
}

func missionCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new mission",
		Long: `Create a new mission for a fleet vessel.

The mission only lives for this invocation's session; use "fleet session" to
create several missions and watch the dashboard update.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := cliadapter.MissionForm{Title: args[0]}
			form.Description, _ = cmd.Flags().GetString("description")
			form.Vessel, _ = cmd.Flags().GetString("vessel")
			form.Due, _ = cmd.Flags().GetString("due")
			form.Status, _ = cmd.Flags().GetString("status")

			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				adapter, err := a.MissionAdapter(cmd.OutOrStdout(), true)
				if err != nil {
					return err
				}
				_, err = adapter.Create(ctx, form)
				return err
			})
		},
	}
	cmd.Flags().StringP("description", "d", "", "Mission description")
	cmd.Flags().String("vessel", "", "Vessel name (must be in the fleet)")
	cmd.Flags().String("due", "", "Due date (2006-01-02 or RFC3339)")
	cmd.Flags().StringP("status", "s", "", "Initial status (pending, in_progress, completed, cancelled)")
	return cmd
}

func missionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List missions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter coremission.MissionFilter
			filter.Status, _ = cmd.Flags().GetString("status")
			filter.Vessel, _ = cmd.Flags().GetString("vessel")
			filter.Limit, _ = cmd.Flags().GetInt("limit")
			compact, _ := cmd.Flags().GetBool("compact")

			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				adapter, err := a.MissionAdapter(cmd.OutOrStdout(), false)
				if err != nil {
					return err
				}
				adapter.List(ctx, filter, compact)
				return nil
			})
		},
	}
	cmd.Flags().StringP("status", "s", "", "Filter by status")
	cmd.Flags().String("vessel", "", "Filter by vessel")
	cmd.Flags().IntP("limit", "n", 0, "Show at most n missions")
	cmd.Flags().Bool("compact", false, "Narrow two-line layout for small terminals")
	return cmd
}

func missionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [mission-id]",
		Short: "Show mission details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				adapter, err := a.MissionAdapter(cmd.OutOrStdout(), false)
				if err != nil {
					return err
				}
				_, err = adapter.Show(ctx, args[0])
				return err
			})
		},
	}
}
