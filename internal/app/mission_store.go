package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
	"github.com/example/fleet/internal/ports/secondary"
)

// MissionStore implements the MissionStore interface.
// It owns the session's mission collection; every other component holds snapshots.
type MissionStore struct {
	// mu guards the collection; publishMu serializes insert+notify so observers
	// see events in insertion order.
	mu        sync.RWMutex
	publishMu sync.Mutex

	missions  []coremission.Mission // oldest first; reads reverse it
	ids       map[string]struct{}
	seeded    bool
	lastStamp time.Time
	observers []*subscription
	closed    bool

	idGen  secondary.IDGenerator
	clock  secondary.Clock
	audit  secondary.LogWriter
	logger *slog.Logger
}

// NewMissionStore creates an empty MissionStore with injected dependencies.
func NewMissionStore(
	idGen secondary.IDGenerator,
	clock secondary.Clock,
	audit secondary.LogWriter,
	logger *slog.Logger,
) *MissionStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MissionStore{
		ids:    make(map[string]struct{}),
		idGen:  idGen,
		clock:  clock,
		audit:  audit,
		logger: logger,
	}
}

// Seed loads the fixture missions once. Fixtures are ordered by CreatedAt; equal
// stamps keep fixture order with later entries treated as newer. A fixture
// created after asOf is rejected so new missions are never stamped in the future.
func (s *MissionStore) Seed(records []*secondary.MissionRecord, asOf time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return &coremission.ConfigurationError{Reason: "store already seeded"}
	}

	seed := make([]coremission.Mission, 0, len(records))
	ids := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			return &coremission.ValidationError{Field: "id", Reason: fmt.Sprintf("fixture mission %d has no id", i)}
		}
		if _, dup := ids[r.ID]; dup {
			return &coremission.ValidationError{Field: "id", Reason: fmt.Sprintf("duplicate fixture id %s", r.ID)}
		}
		if r.CreatedAt.After(asOf) {
			return &coremission.ValidationError{
				Field:  "created_at",
				Reason: fmt.Sprintf("fixture %s created at %s, after %s", r.ID, r.CreatedAt.Format(time.RFC3339), asOf.Format(time.RFC3339)),
			}
		}
		m := recordToMission(r)
		if result := coremission.CanAddMission(m.Draft()); !result.Allowed {
			return &coremission.ValidationError{Field: result.Field, Reason: fmt.Sprintf("%s (fixture %s)", result.Reason, r.ID)}
		}
		ids[r.ID] = struct{}{}
		seed = append(seed, m)
	}

	sort.SliceStable(seed, func(a, b int) bool {
		return seed[a].CreatedAt.Before(seed[b].CreatedAt)
	})

	for _, m := range seed {
		s.idGen.Observe(m.ID)
		if m.CreatedAt.After(s.lastStamp) {
			s.lastStamp = m.CreatedAt
		}
	}
	s.missions = seed
	s.ids = ids
	s.seeded = true

	s.logger.Debug("mission store seeded", "missions", len(seed))
	return nil
}

// GetMissions returns the current collection, newest first.
func (s *MissionStore) GetMissions(ctx context.Context) []coremission.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of missions currently held.
func (s *MissionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.missions)
}

// AddMission inserts a new mission and notifies every subscriber once.
func (s *MissionStore) AddMission(ctx context.Context, draft coremission.Draft) (*coremission.Mission, error) {
	// 1. Guard check (pure, no lock needed)
	if result := coremission.CanAddMission(draft); !result.Allowed {
		return nil, result.Error()
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	// 2. Insert under the write lock so readers never see a half-built collection
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, &coremission.ConfigurationError{Reason: "store used after the session was closed"}
	}

	now := s.clock.Now()
	if now.Before(s.lastStamp) {
		now = s.lastStamp
	}
	mission := coremission.NewMission(s.nextUniqueIDLocked(), draft, now)

	s.missions = append(s.missions, mission)
	s.ids[mission.ID] = struct{}{}
	s.lastStamp = now
	snapshot := s.snapshotLocked()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	// 3. Audit + notify outside the data lock so observers may read the store
	if s.audit != nil {
		if err := s.audit.LogCreate(ctx, "mission", mission.ID); err != nil {
			s.logger.Warn("audit log write failed", "mission", mission.ID, "error", err)
		}
	}
	s.logger.Debug("mission added", "mission", mission.ID, "observers", len(observers))

	for _, o := range observers {
		if !o.active.Load() {
			continue
		}
		o.fn(primary.MissionEvent{
			Mission:  mission,
			Missions: slices.Clone(snapshot),
		})
	}

	created := mission
	return &created, nil
}

// Subscribe registers an observer called after every AddMission.
func (s *MissionStore) Subscribe(fn primary.Observer) primary.Subscription {
	sub := &subscription{store: s, fn: fn}
	sub.active.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.active.Store(false)
		return sub
	}
	s.observers = append(s.observers, sub)
	return sub
}

// Close releases every subscription and rejects further writes.
func (s *MissionStore) Close() {
	s.mu.Lock()
	observers := s.observers
	s.observers = nil
	s.closed = true
	s.mu.Unlock()

	for _, o := range observers {
		o.active.Store(false)
	}
	s.logger.Debug("mission store closed", "released_subscriptions", len(observers))
}

// Helper methods

func (s *MissionStore) snapshotLocked() []coremission.Mission {
	out := make([]coremission.Mission, len(s.missions))
	for i, m := range s.missions {
		out[len(s.missions)-1-i] = m
	}
	return out
}

func (s *MissionStore) nextUniqueIDLocked() string {
	for {
		id := s.idGen.NextID()
		if _, taken := s.ids[id]; !taken {
			return id
		}
		s.logger.Warn("generated mission id already in use, retrying", "mission", id)
	}
}

func (s *MissionStore) unsubscribe(target *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(o *subscription) bool {
		return o == target
	})
}

func recordToMission(r *secondary.MissionRecord) coremission.Mission {
	updated := r.UpdatedAt
	if updated.IsZero() {
		updated = r.CreatedAt
	}
	return coremission.Mission{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Vessel:      r.Vessel,
		DueAt:       r.DueAt,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updated,
	}
}

// subscription is one observer registration.
type subscription struct {
	store  *MissionStore
	fn     primary.Observer
	active atomic.Bool
}

// Close unregisters the observer. Safe to call more than once and from inside the observer.
func (sub *subscription) Close() {
	if sub.active.Swap(false) {
		sub.store.unsubscribe(sub)
	}
}

// Ensure MissionStore implements the interface
var _ primary.MissionStore = (*MissionStore)(nil)
