package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/fleet/internal/adapters/cli"
	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/wire"
)

const sessionHelp = `Commands:
  add <title> | <vessel> | <due> [| <status> [| <description>]]
  list [status]        missions, newest first
  mobile [status]      compact list
  show <mission-id>    mission details
  dashboard            redraw the overview
  fleet                missions per vessel
  analytics            statistics
  help                 this text
  quit                 end the session`

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive session with a live dashboard",
		Long: `Start an interactive session. Missions added here stay in memory until
the session ends; the dashboard is redrawn after every add.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			return withApp(cmd, func(ctx context.Context, a *wire.App) error {
				if metricsAddr != "" {
					stop, err := serveMetrics(a, metricsAddr, cmd.OutOrStdout())
					if err != nil {
						return err
					}
					defer stop()
				}
				return runSession(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

// serveMetrics exposes the session's metrics until stop is called.
func serveMetrics(a *wire.App, addr string, out io.Writer) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics().Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()

	fmt.Fprintf(out, "Metrics on http://%s/metrics\n", ln.Addr())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// sessionScreens bundles the adapters the loop dispatches to.
type sessionScreens struct {
	missions  *cliadapter.MissionAdapter
	dashboard *cliadapter.DashboardAdapter
	fleet     *cliadapter.FleetAdapter
	analytics *cliadapter.AnalyticsAdapter
}

func runSession(ctx context.Context, a *wire.App, in io.Reader, out io.Writer) error {
	var (
		screens sessionScreens
		err     error
	)
	// The live dashboard redraws after a create, so the form does not render it again.
	if screens.missions, err = a.MissionAdapter(out, false); err != nil {
		return err
	}
	if screens.dashboard, err = a.DashboardAdapter(out); err != nil {
		return err
	}
	if screens.fleet, err = a.FleetAdapter(out); err != nil {
		return err
	}
	if screens.analytics, err = a.AnalyticsAdapter(out); err != nil {
		return err
	}

	fmt.Fprintln(out, "Type 'help' for commands.")
	screens.dashboard.Render(ctx)
	live := screens.dashboard.Mount()
	defer live.Close()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "fleet> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		quit, err := screens.dispatch(ctx, scanner.Text(), out)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
		}
		if quit {
			return nil
		}
	}
}

func (s sessionScreens) dispatch(ctx context.Context, line string, out io.Writer) (quit bool, err error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "":
		return false, nil
	case "add":
		form, err := parseAddLine(rest)
		if err != nil {
			return false, err
		}
		_, err = s.missions.Create(ctx, form)
		return false, err
	case "list", "ls":
		s.missions.List(ctx, coremission.MissionFilter{Status: rest}, false)
	case "mobile":
		s.missions.List(ctx, coremission.MissionFilter{Status: rest}, true)
	case "show":
		if rest == "" {
			return false, errors.New("usage: show <mission-id>")
		}
		_, err := s.missions.Show(ctx, rest)
		return false, err
	case "dashboard":
		s.dashboard.Render(ctx)
	case "fleet":
		s.fleet.Render(ctx)
	case "analytics":
		s.analytics.Render(ctx)
	case "help":
		fmt.Fprintln(out, sessionHelp)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", verb)
	}
	return false, nil
}

// parseAddLine splits "title | vessel | due | status | description".
func parseAddLine(rest string) (cliadapter.MissionForm, error) {
	if rest == "" {
		return cliadapter.MissionForm{}, errors.New("usage: add <title> | <vessel> | <due> [| <status> [| <description>]]")
	}
	parts := strings.SplitN(rest, "|", 5)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) < 5 {
		parts = append(parts, "")
	}
	return cliadapter.MissionForm{
		Title:       parts[0],
		Vessel:      parts[1],
		Due:         parts[2],
		Status:      parts[3],
		Description: parts[4],
	}, nil
}
