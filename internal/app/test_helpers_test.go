package app

import (
	"context"
	"sync"
	"time"

	"github.com/example/fleet/internal/ctxutil"
	"github.com/example/fleet/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

var baseTime = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

// stepClock returns a time that advances by step on every call.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{now: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// fixedClock always returns the same time.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// mockFixtureSource implements secondary.FixtureSource for testing.
type mockFixtureSource struct {
	missions   []*secondary.MissionRecord
	vessels    []*secondary.VesselRecord
	missionErr error
	vesselErr  error
}

func newMockFixtureSource() *mockFixtureSource {
	return &mockFixtureSource{
		missions: []*secondary.MissionRecord{
			{ID: "MISSION-001", Title: "Annual class survey", Vessel: "MV Northern Star", Status: "completed", CreatedAt: baseTime.Add(-72 * time.Hour)},
			{ID: "MISSION-002", Title: "Ballast water audit", Vessel: "MV Coral Bay", Status: "in_progress", CreatedAt: baseTime.Add(-48 * time.Hour)},
			{ID: "MISSION-003", Title: "Lifeboat drill", Vessel: "MV Northern Star", Status: "pending", CreatedAt: baseTime.Add(-24 * time.Hour)},
		},
		vessels: []*secondary.VesselRecord{
			{Name: "MV Northern Star", Class: "Container ship", HomePort: "Rotterdam"},
			{Name: "MV Coral Bay", Class: "Bulk carrier", HomePort: "Singapore"},
		},
	}
}

func (m *mockFixtureSource) LoadMissions(ctx context.Context) ([]*secondary.MissionRecord, error) {
	if m.missionErr != nil {
		return nil, m.missionErr
	}
	out := make([]*secondary.MissionRecord, len(m.missions))
	for i, r := range m.missions {
		c := *r
		out[i] = &c
	}
	return out, nil
}

func (m *mockFixtureSource) LoadVessels(ctx context.Context) ([]*secondary.VesselRecord, error) {
	if m.vesselErr != nil {
		return nil, m.vesselErr
	}
	return m.vessels, nil
}

// auditEntry is one recorded LogCreate call.
type auditEntry struct {
	entityType string
	entityID   string
	sessionID  string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	mu      sync.Mutex
	entries []auditEntry
	err     error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{entityType, entityID, ctxutil.SessionFromContext(ctx)})
	return m.err
}

// fixedIDGenerator replays ids from a list, then falls back to a sequence.
type fixedIDGenerator struct {
	ids  []string
	next *SequenceIDGenerator
}

func (g *fixedIDGenerator) Observe(id string) { g.next.Observe(id) }

func (g *fixedIDGenerator) NextID() string {
	if len(g.ids) > 0 {
		id := g.ids[0]
		g.ids = g.ids[1:]
		return id
	}
	return g.next.NextID()
}

// newTestStore returns a store seeded with the default mock fixtures.
func newTestStore() (*MissionStore, *mockLogWriter) {
	audit := &mockLogWriter{}
	store := NewMissionStore(NewSequenceIDGenerator(), newStepClock(baseTime, time.Second), audit, nil)
	fixtures := newMockFixtureSource()
	records, _ := fixtures.LoadMissions(context.Background())
	if err := store.Seed(records, baseTime); err != nil {
		panic(err)
	}
	return store, audit
}
