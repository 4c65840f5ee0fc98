package app

import (
	"sync"

	"github.com/google/uuid"

	coremission "github.com/example/fleet/internal/core/mission"
	"github.com/example/fleet/internal/ports/secondary"
)

// SequenceIDGenerator hands out MISSION-NNN ids above every number it has observed.
type SequenceIDGenerator struct {
	mu      sync.Mutex
	current int
}

// NewSequenceIDGenerator creates a generator whose first id is MISSION-001.
func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

// Observe raises the counter past a sequential id already in use.
func (g *SequenceIDGenerator) Observe(id string) {
	n := coremission.ParseMissionNumber(id)
	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.current {
		g.current = n
	}
}

// NextID returns the next sequential id.
func (g *SequenceIDGenerator) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := coremission.GenerateMissionID(g.current)
	g.current++
	return id
}

// UUIDGenerator hands out MISSION-<uuidv7> ids. Time-ordered, collision resistant.
type UUIDGenerator struct{}

// Observe is a no-op: uuid ids never collide with seed data.
func (UUIDGenerator) Observe(string) {}

// NextID returns a fresh uuid-based id.
func (UUIDGenerator) NextID() string {
	return coremission.TokenMissionID(uuid.Must(uuid.NewV7()).String())
}

var (
	_ secondary.IDGenerator = (*SequenceIDGenerator)(nil)
	_ secondary.IDGenerator = UUIDGenerator{}
)
