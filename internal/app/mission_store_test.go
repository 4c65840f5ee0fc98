package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/primary"
	"github.com/example/fleet/internal/ports/secondary"
)

func validDraft(title string) coremission.Draft {
	return coremission.Draft{
		Title:       title,
		Description: "d",
		Vessel:      "MV Northern Star",
		DueAt:       time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
		Status:      coremission.StatusPending,
	}
}

// ============================================================================
// Seed Tests
// ============================================================================

func TestMissionStore_Seed_NewestFirst(t *testing.T) {
	store, _ := newTestStore()

	missions := store.GetMissions(context.Background())

	require.Len(t, missions, 3)
	assert.Equal(t, "MISSION-003", missions[0].ID)
	assert.Equal(t, "MISSION-002", missions[1].ID)
	assert.Equal(t, "MISSION-001", missions[2].ID)
}

func TestMissionStore_Seed_DefaultsUpdatedAt(t *testing.T) {
	store, _ := newTestStore()

	for _, m := range store.GetMissions(context.Background()) {
		assert.Equal(t, m.CreatedAt, m.UpdatedAt, "fixture %s", m.ID)
	}
}

func TestMissionStore_Seed_EqualStampsKeepFixtureOrder(t *testing.T) {
	store := NewMissionStore(NewSequenceIDGenerator(), fixedClock{baseTime}, nil, nil)
	err := store.Seed([]*secondary.MissionRecord{
		{ID: "A", Title: "first", CreatedAt: baseTime},
		{ID: "B", Title: "second", CreatedAt: baseTime},
	}, baseTime)
	require.NoError(t, err)

	missions := store.GetMissions(context.Background())
	assert.Equal(t, "B", missions[0].ID)
	assert.Equal(t, "A", missions[1].ID)
}

func TestMissionStore_Seed_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		records []*secondary.MissionRecord
	}{
		{
			name:    "duplicate id",
			records: []*secondary.MissionRecord{{ID: "MISSION-001", Title: "a"}, {ID: "MISSION-001", Title: "b"}},
		},
		{
			name:    "missing id",
			records: []*secondary.MissionRecord{{Title: "a"}},
		},
		{
			name:    "empty title",
			records: []*secondary.MissionRecord{{ID: "MISSION-001"}},
		},
		{
			name:    "created after the session start",
			records: []*secondary.MissionRecord{{ID: "MISSION-001", Title: "a", CreatedAt: baseTime.Add(time.Hour)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMissionStore(NewSequenceIDGenerator(), fixedClock{baseTime}, nil, nil)
			err := store.Seed(tt.records, baseTime)
			require.Error(t, err)
			assert.True(t, coremission.IsValidationError(err))
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestMissionStore_Seed_Once(t *testing.T) {
	tests := []struct {
		name  string
		first []*secondary.MissionRecord
	}{
		{name: "after fixtures", first: []*secondary.MissionRecord{{ID: "MISSION-001", Title: "a"}}},
		{name: "after an empty fixture set", first: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMissionStore(NewSequenceIDGenerator(), fixedClock{baseTime}, nil, nil)
			require.NoError(t, store.Seed(tt.first, baseTime))

			err := store.Seed([]*secondary.MissionRecord{{ID: "MISSION-002", Title: "b"}}, baseTime)

			assert.True(t, coremission.IsConfigurationError(err))
			assert.Equal(t, len(tt.first), store.Len())
		})
	}
}

func TestMissionStore_AddMission_StampsCurrentTimeAfterFixtures(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	mission, err := store.AddMission(ctx, validDraft("now"))

	require.NoError(t, err)
	assert.True(t, mission.CreatedAt.After(store.GetMissions(ctx)[1].CreatedAt))
	assert.False(t, mission.CreatedAt.Before(baseTime), "stamped from the clock, not clamped to a fixture")
}

// ============================================================================
// AddMission Tests
// ============================================================================

func TestMissionStore_AddMission_EndToEnd(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	k := store.Len()

	_, err := store.AddMission(ctx, validDraft("Test Mission 1700000000000"))
	require.NoError(t, err)

	missions := store.GetMissions(ctx)
	assert.Equal(t, "Test Mission 1700000000000", missions[0].Title)
	assert.Len(t, missions, k+1)
}

func TestMissionStore_AddMission_FieldPreservation(t *testing.T) {
	store, _ := newTestStore()
	draft := validDraft("Engine overhaul")

	mission, err := store.AddMission(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, draft, mission.Draft())
	assert.NotEmpty(t, mission.ID)
	assert.False(t, mission.CreatedAt.IsZero())
	assert.Equal(t, mission.CreatedAt, mission.UpdatedAt)
}

func TestMissionStore_AddMission_SequenceContinuesAfterFixtures(t *testing.T) {
	store, _ := newTestStore()

	mission, err := store.AddMission(context.Background(), validDraft("next"))

	require.NoError(t, err)
	assert.Equal(t, "MISSION-004", mission.ID)
}

func TestMissionStore_AddMission_Uniqueness(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	const n = 250

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		m, err := store.AddMission(ctx, validDraft(fmt.Sprintf("mission %d", i)))
		require.NoError(t, err)
		assert.False(t, seen[m.ID], "id %s generated twice", m.ID)
		seen[m.ID] = true
	}

	all := store.GetMissions(ctx)
	ids := make(map[string]bool, len(all))
	for _, m := range all {
		ids[m.ID] = true
	}
	assert.Len(t, ids, len(all), "collection holds duplicate ids")
	assert.Len(t, all, 3+n)
}

func TestMissionStore_AddMission_HugeFixtureNumberKeepsFormat(t *testing.T) {
	store := NewMissionStore(NewSequenceIDGenerator(), fixedClock{baseTime}, nil, nil)
	require.NoError(t, store.Seed([]*secondary.MissionRecord{
		{ID: "MISSION-9223372036854775807", Title: "imported", CreatedAt: baseTime.Add(-time.Hour)},
	}, baseTime))

	mission, err := store.AddMission(context.Background(), validDraft("next"))

	require.NoError(t, err)
	assert.Equal(t, "MISSION-001", mission.ID)
}

func TestMissionStore_AddMission_UUIDStrategy(t *testing.T) {
	store := NewMissionStore(UUIDGenerator{}, SystemClock{}, nil, nil)
	ctx := context.Background()

	a, err := store.AddMission(ctx, validDraft("a"))
	require.NoError(t, err)
	b, err := store.AddMission(ctx, validDraft("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, -1, coremission.ParseMissionNumber(a.ID))
	assert.Contains(t, a.ID, "MISSION-")
}

func TestMissionStore_AddMission_RegeneratesTakenID(t *testing.T) {
	gen := &fixedIDGenerator{ids: []string{"MISSION-002"}, next: NewSequenceIDGenerator()}
	store := NewMissionStore(gen, fixedClock{baseTime}, nil, nil)
	records, _ := newMockFixtureSource().LoadMissions(context.Background())
	require.NoError(t, store.Seed(records, baseTime))

	mission, err := store.AddMission(context.Background(), validDraft("collides first"))

	require.NoError(t, err)
	assert.Equal(t, "MISSION-004", mission.ID)
}

func TestMissionStore_AddMission_NewestFirst(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	a, err := store.AddMission(ctx, validDraft("A"))
	require.NoError(t, err)
	b, err := store.AddMission(ctx, validDraft("B"))
	require.NoError(t, err)

	missions := store.GetMissions(ctx)
	assert.Equal(t, b.ID, missions[0].ID)
	assert.Equal(t, a.ID, missions[1].ID)
}

func TestMissionStore_AddMission_CreatedAtMonotonic(t *testing.T) {
	// Clock runs backwards relative to the newest fixture and between calls.
	clock := newStepClock(baseTime.Add(-100*time.Hour), -time.Minute)
	store := NewMissionStore(NewSequenceIDGenerator(), clock, nil, nil)
	records, _ := newMockFixtureSource().LoadMissions(context.Background())
	require.NoError(t, store.Seed(records, baseTime))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.AddMission(ctx, validDraft(fmt.Sprintf("m%d", i)))
		require.NoError(t, err)
	}

	missions := store.GetMissions(ctx)
	for i := 1; i < len(missions); i++ {
		assert.False(t, missions[i-1].CreatedAt.Before(missions[i].CreatedAt),
			"%s created before older %s", missions[i-1].ID, missions[i].ID)
	}
}

func TestMissionStore_AddMission_ValidationRejection(t *testing.T) {
	store, audit := newTestStore()
	ctx := context.Background()
	before := store.GetMissions(ctx)

	notified := 0
	sub := store.Subscribe(func(primary.MissionEvent) { notified++ })
	defer sub.Close()

	mission, err := store.AddMission(ctx, validDraft(""))

	require.Error(t, err)
	assert.Nil(t, mission)
	var ve *coremission.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)

	assert.Equal(t, before, store.GetMissions(ctx))
	assert.Equal(t, 0, notified)
	assert.Empty(t, audit.entries)
}

func TestMissionStore_AddMission_WhitespaceTitleKept(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	k := store.Len()

	mission, err := store.AddMission(ctx, validDraft("   "))

	require.NoError(t, err)
	assert.Equal(t, "   ", mission.Title)
	assert.Equal(t, "   ", store.GetMissions(ctx)[0].Title)
	assert.Equal(t, k+1, store.Len())
}

func TestMissionStore_AddMission_Audit(t *testing.T) {
	store, audit := newTestStore()
	session := &Session{id: "SESSION-test"}

	mission, err := store.AddMission(session.Context(context.Background()), validDraft("audited"))
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, auditEntry{"mission", mission.ID, "SESSION-test"}, audit.entries[0])
}

func TestMissionStore_AddMission_AuditFailureDoesNotFail(t *testing.T) {
	store, audit := newTestStore()
	audit.err = errors.New("disk full")

	_, err := store.AddMission(context.Background(), validDraft("still added"))

	require.NoError(t, err)
	assert.Equal(t, 4, store.Len())
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestMissionStore_GetMissions_SnapshotStability(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	snapshot := store.GetMissions(ctx)
	firstID := snapshot[0].ID

	_, err := store.AddMission(ctx, validDraft("later"))
	require.NoError(t, err)

	assert.Len(t, snapshot, 3)
	assert.Equal(t, firstID, snapshot[0].ID)
}

func TestMissionStore_GetMissions_CallerMutationIsolated(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	snapshot := store.GetMissions(ctx)
	snapshot[0].Title = "scribbled"

	assert.NotEqual(t, "scribbled", store.GetMissions(ctx)[0].Title)
}

// ============================================================================
// Subscription Tests
// ============================================================================

func TestMissionStore_Subscribe_FiresOncePerAdd(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	var events []primary.MissionEvent
	sub := store.Subscribe(func(ev primary.MissionEvent) { events = append(events, ev) })
	defer sub.Close()

	a, err := store.AddMission(ctx, validDraft("A"))
	require.NoError(t, err)
	b, err := store.AddMission(ctx, validDraft("B"))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, a.ID, events[0].Mission.ID)
	assert.Len(t, events[0].Missions, 4)
	assert.Equal(t, a.ID, events[0].Missions[0].ID)
	assert.Equal(t, b.ID, events[1].Mission.ID)
	assert.Len(t, events[1].Missions, 5)
}

func TestMissionStore_Subscribe_ObserverCanRead(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	var seen int
	sub := store.Subscribe(func(ev primary.MissionEvent) {
		seen = len(store.GetMissions(ctx))
	})
	defer sub.Close()

	_, err := store.AddMission(ctx, validDraft("A"))
	require.NoError(t, err)
	assert.Equal(t, 4, seen)
}

func TestMissionStore_Subscribe_CloseStopsDelivery(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	calls := 0
	sub := store.Subscribe(func(primary.MissionEvent) { calls++ })

	_, err := store.AddMission(ctx, validDraft("A"))
	require.NoError(t, err)
	sub.Close()
	sub.Close()
	_, err = store.AddMission(ctx, validDraft("B"))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestMissionStore_Subscribe_CloseInsideObserver(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	calls := 0
	var sub primary.Subscription
	sub = store.Subscribe(func(primary.MissionEvent) {
		calls++
		sub.Close()
	})

	for i := 0; i < 3; i++ {
		_, err := store.AddMission(ctx, validDraft(fmt.Sprintf("m%d", i)))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestMissionStore_Subscribe_EventsAreIsolated(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	first := store.Subscribe(func(ev primary.MissionEvent) { ev.Missions[0].Title = "scribbled" })
	defer first.Close()
	var got string
	second := store.Subscribe(func(ev primary.MissionEvent) { got = ev.Missions[0].Title })
	defer second.Close()

	_, err := store.AddMission(ctx, validDraft("clean"))
	require.NoError(t, err)
	assert.Equal(t, "clean", got)
}

func TestMissionStore_Close(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	calls := 0
	store.Subscribe(func(primary.MissionEvent) { calls++ })
	store.Close()

	_, err := store.AddMission(ctx, validDraft("after close"))
	require.Error(t, err)
	assert.True(t, coremission.IsConfigurationError(err))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 3, store.Len(), "reads still serve the final snapshot")

	late := store.Subscribe(func(primary.MissionEvent) { calls++ })
	late.Close()
}

func TestMissionStore_ConcurrentAddsAreOrdered(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	const writers, perWriter = 8, 25

	var mu sync.Mutex
	var order []string
	sub := store.Subscribe(func(ev primary.MissionEvent) {
		mu.Lock()
		order = append(order, ev.Mission.ID)
		mu.Unlock()
	})
	defer sub.Close()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := store.AddMission(ctx, validDraft(fmt.Sprintf("w%d-%d", w, i)))
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	missions := store.GetMissions(ctx)
	require.Len(t, order, writers*perWriter)
	// Notification order matches insertion order (newest-first reversed).
	for i, id := range order {
		assert.Equal(t, missions[len(order)-1-i].ID, id)
	}
}
