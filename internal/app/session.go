package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ctxutil"
	"github.com/example/fleet/internal/ports/primary"
	"github.com/example/fleet/internal/ports/secondary"
)

// Session owns one mission store for the lifetime of a running application.
// The store is seeded on Open and discarded on Close; nothing survives a session.
type Session struct {
	id       string
	store    *MissionStore
	fixtures secondary.FixtureSource
	clock    secondary.Clock
	logger   *slog.Logger

	mu        sync.Mutex
	opened    bool
	closed    bool
	startedAt time.Time
	vessels   []coremission.Vessel
}

// NewSession creates an unopened session around store.
func NewSession(
	store *MissionStore,
	fixtures secondary.FixtureSource,
	clock secondary.Clock,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := "SESSION-" + uuid.Must(uuid.NewV7()).String()
	return &Session{
		id:       id,
		store:    store,
		fixtures: fixtures,
		clock:    clock,
		logger:   logger.With("session", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Open seeds the store from fixtures. A session can be opened once.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return &coremission.ConfigurationError{Reason: "session already opened"}
	}
	if s.closed {
		return &coremission.ConfigurationError{Reason: "session already closed"}
	}

	// 1. Load fixtures
	vesselRecords, err := s.fixtures.LoadVessels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load vessel fixtures: %w", err)
	}
	missionRecords, err := s.fixtures.LoadMissions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mission fixtures: %w", err)
	}

	// 2. Seed the store as of the session start
	now := s.clock.Now()
	if err := s.store.Seed(missionRecords, now); err != nil {
		return fmt.Errorf("failed to seed mission store: %w", err)
	}

	s.vessels = make([]coremission.Vessel, len(vesselRecords))
	for i, v := range vesselRecords {
		s.vessels[i] = coremission.Vessel{Name: v.Name, Class: v.Class, HomePort: v.HomePort}
	}
	s.startedAt = now
	s.opened = true

	s.logger.Info("session opened", "missions", s.store.Len(), "vessels", len(s.vessels))
	return nil
}

// Store returns the session's mission store.
// Fails with *mission.ConfigurationError outside Open..Close.
func (s *Session) Store() (primary.MissionStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := coremission.CanAccessStore(coremission.SessionContext{Opened: s.opened, Closed: s.closed}); err != nil {
		return nil, err
	}
	return s.store, nil
}

// Vessels returns the fleet loaded at Open.
func (s *Session) Vessels() []coremission.Vessel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]coremission.Vessel, len(s.vessels))
	copy(out, s.vessels)
	return out
}

// StartedAt returns the time the session was opened.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// Context returns ctx tagged with the session ID for audit logging.
func (s *Session) Context(ctx context.Context) context.Context {
	return ctxutil.WithSessionID(ctx, s.id)
}

// Close releases every subscription and ends the session. Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.store.Close()

	s.logger.Info("session closed")
	return nil
}
