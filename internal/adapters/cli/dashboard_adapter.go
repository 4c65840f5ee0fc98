package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
)

// DashboardAdapter renders the fleet overview: counts plus the newest missions.
type DashboardAdapter struct {
	store  primary.MissionStore
	screen ScreenContext
	out    io.Writer
	mu     sync.Mutex
}

// NewDashboardAdapter creates a new DashboardAdapter.
func NewDashboardAdapter(store primary.MissionStore, screen ScreenContext, out io.Writer) *DashboardAdapter {
	return &DashboardAdapter{
		store:  store,
		screen: screen,
		out:    out,
	}
}

// Render draws the overview from a fresh snapshot.
func (a *DashboardAdapter) Render(ctx context.Context) {
	missions := a.store.GetMissions(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.drawLocked(missions)
}

// Mount keeps the overview live: it redraws from the event snapshot after every add.
// Closing the returned subscription unmounts it.
func (a *DashboardAdapter) Mount() primary.Subscription {
	return a.store.Subscribe(func(ev primary.MissionEvent) {
		a.mu.Lock()
		defer a.mu.Unlock()
		fmt.Fprintf(a.out, "\n↻ %s added\n", colorizeID(ev.Mission.ID))
		a.drawLocked(ev.Missions)
	})
}

func (a *DashboardAdapter) drawLocked(missions []coremission.Mission) {
	now := a.screen.now()
	open, overdue := 0, 0
	for _, m := range missions {
		if !coremission.IsClosed(m.Status) {
			open++
		}
		if coremission.IsOverdue(m, now) {
			overdue++
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "⚓ Fleet overview")
	fmt.Fprintf(a.out, "   %d missions · %d open · %d overdue · %d vessels\n",
		len(missions), open, overdue, len(a.screen.Fleet))
	fmt.Fprintln(a.out)

	if len(missions) == 0 {
		fmt.Fprintln(a.out, "No missions found")
		return
	}

	recent := missions
	if limit := a.screen.recentLimit(); len(recent) > limit {
		recent = recent[:limit]
	}
	fmt.Fprintln(a.out, "Recent missions:")
	writeMissionTable(a.out, recent, now)
	fmt.Fprintln(a.out)
}
