// Package wire provides dependency injection for the fleet application.
// An App is one session: it is built per command invocation and closed when
// the command ends, so nothing here is a package-level singleton.
package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/fleet/internal/adapters/audit"
	cliadapter "github.com/example/fleet/internal/adapters/cli"
	"github.com/example/fleet/internal/adapters/fixtures"
	"github.com/example/fleet/internal/adapters/metrics"
	"github.com/example/fleet/internal/app"
	"github.com/example/fleet/internal/config"
	"github.com/example/fleet/internal/ports/primary"
	"github.com/example/fleet/internal/ports/secondary"
)

// Options configure NewApp. Zero values fall back to config.Default() and the system clock.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  secondary.Clock
}

// App holds one open session and the adapters that render it.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	clock    secondary.Clock
	session  *app.Session
	recorder *metrics.Recorder
	metrics  primary.Subscription
}

// NewApp wires the store, opens the session and attaches the metrics recorder.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := opts.Clock
	if clock == nil {
		clock = app.SystemClock{}
	}

	// Create secondary adapters
	idGen := newIDGenerator(cfg.IDStrategy)
	auditLog := audit.NewLogWriterAdapter(logger)
	loader := fixtures.NewLoader(cfg.FixturesPath)

	// Create the store and the session that owns it
	store := app.NewMissionStore(idGen, clock, auditLog, logger.With("component", "store"))
	session := app.NewSession(store, loader, clock, logger)

	if err := session.Open(session.Context(ctx)); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		session:  session,
		recorder: metrics.NewRecorder(),
	}
	a.metrics = a.recorder.Attach(store)
	return a, nil
}

func newIDGenerator(strategy string) secondary.IDGenerator {
	if strategy == config.IDStrategyUUID {
		return app.UUIDGenerator{}
	}
	return app.NewSequenceIDGenerator()
}

// Context returns ctx tagged with the session id.
func (a *App) Context(ctx context.Context) context.Context {
	return a.session.Context(ctx)
}

// Store returns the session's store. It fails once the app is closed.
func (a *App) Store() (primary.MissionStore, error) {
	return a.session.Store()
}

// Metrics returns the session's metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.recorder
}

// Screen returns the facts screens render against.
func (a *App) Screen() cliadapter.ScreenContext {
	return cliadapter.ScreenContext{
		Fleet:       a.session.Vessels(),
		StartedAt:   a.session.StartedAt(),
		Clock:       a.clock,
		RecentLimit: a.cfg.RecentLimit,
		DueSoon:     a.cfg.DueSoon(),
	}
}

// MissionAdapter returns a new MissionAdapter writing to out.
// When withOverview is set, a successful create returns to the dashboard.
func (a *App) MissionAdapter(out io.Writer, withOverview bool) (*cliadapter.MissionAdapter, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	var overview *cliadapter.DashboardAdapter
	if withOverview {
		overview = cliadapter.NewDashboardAdapter(store, a.Screen(), out)
	}
	return cliadapter.NewMissionAdapter(store, a.Screen(), overview, out), nil
}

// DashboardAdapter returns a new DashboardAdapter writing to out.
func (a *App) DashboardAdapter(out io.Writer) (*cliadapter.DashboardAdapter, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewDashboardAdapter(store, a.Screen(), out), nil
}

// FleetAdapter returns a new FleetAdapter writing to out.
func (a *App) FleetAdapter(out io.Writer) (*cliadapter.FleetAdapter, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewFleetAdapter(store, a.Screen(), out), nil
}

// AnalyticsAdapter returns a new AnalyticsAdapter writing to out.
func (a *App) AnalyticsAdapter(out io.Writer) (*cliadapter.AnalyticsAdapter, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewAnalyticsAdapter(store, a.Screen(), out), nil
}

// Close detaches the metrics recorder and closes the session.
func (a *App) Close() error {
	a.metrics.Close()
	return a.session.Close()
}
