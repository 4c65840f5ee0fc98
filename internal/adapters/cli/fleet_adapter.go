package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
)

// FleetAdapter renders missions grouped per vessel.
type FleetAdapter struct {
	store  primary.MissionStore
	screen ScreenContext
	out    io.Writer
}

// NewFleetAdapter creates a new FleetAdapter.
func NewFleetAdapter(store primary.MissionStore, screen ScreenContext, out io.Writer) *FleetAdapter {
	return &FleetAdapter{store: store, screen: screen, out: out}
}

// Render draws one block per vessel.
func (a *FleetAdapter) Render(ctx context.Context) {
	now := a.screen.now()
	groups := coremission.GroupByVessel(a.store.GetMissions(ctx), a.screen.Fleet, now)

	fmt.Fprintln(a.out)
	for _, g := range groups {
		name := g.Vessel.Name
		if name == "" {
			name = "(unassigned)"
		}
		header := color.New(color.Bold).Sprint(name)
		if g.Vessel.Class != "" {
			header += fmt.Sprintf(" [%s, %s]", g.Vessel.Class, g.Vessel.HomePort)
		}
		fmt.Fprintf(a.out, "%s  %d open", header, g.Open)
		if g.Overdue > 0 {
			fmt.Fprint(a.out, color.New(color.FgRed).Sprintf(" · %d overdue", g.Overdue))
		}
		fmt.Fprintln(a.out)

		if len(g.Missions) == 0 {
			fmt.Fprintln(a.out, "  └── (idle)")
		}
		for i, m := range g.Missions {
			prefix := "├──"
			if i == len(g.Missions)-1 {
				prefix = "└──"
			}
			fmt.Fprintf(a.out, "  %s %s %s %s\n", prefix, colorizeID(m.ID), colorizeStatus(m.Status, 0), m.Title)
		}
		fmt.Fprintln(a.out)
	}
}
