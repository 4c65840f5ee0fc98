package cli

import (
	"context"
	"fmt"
	"io"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
)

// AnalyticsAdapter renders aggregate figures for the current snapshot.
type AnalyticsAdapter struct {
	store  primary.MissionStore
	screen ScreenContext
	out    io.Writer
}

// NewAnalyticsAdapter creates a new AnalyticsAdapter.
func NewAnalyticsAdapter(store primary.MissionStore, screen ScreenContext, out io.Writer) *AnalyticsAdapter {
	return &AnalyticsAdapter{store: store, screen: screen, out: out}
}

// Render prints the summary and returns it for callers that want the numbers.
func (a *AnalyticsAdapter) Render(ctx context.Context) coremission.Summary {
	window := a.screen.dueSoon()
	s := coremission.Summarize(a.store.GetMissions(ctx), a.screen.now(), window)

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "📊 Mission analytics")
	fmt.Fprintf(a.out, "   Total:      %d\n", s.Total)
	fmt.Fprintf(a.out, "   Overdue:    %d\n", s.Overdue)
	fmt.Fprintf(a.out, "   Due soon:   %d (within %d days)\n", s.DueSoon, int(window.Hours()/24))
	fmt.Fprintf(a.out, "   Completion: %.0f%%\n", s.CompletionRate*100)

	fmt.Fprintln(a.out, "\nBy status:")
	for _, status := range coremission.SortedKeys(s.ByStatus) {
		fmt.Fprintf(a.out, "   %s %d\n", colorizeStatus(status, 12), s.ByStatus[status])
	}
	fmt.Fprintln(a.out, "\nBy vessel:")
	for _, vessel := range coremission.SortedKeys(s.ByVessel) {
		fmt.Fprintf(a.out, "   %-22s %d\n", vessel, s.ByVessel[vessel])
	}
	fmt.Fprintln(a.out)

	return s
}
