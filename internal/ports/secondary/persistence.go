// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// FixtureSource defines the secondary port for the read-only seed data of a session.
type FixtureSource interface {
	// LoadMissions returns the seed missions.
	LoadMissions(ctx context.Context) ([]*MissionRecord, error)

	// LoadVessels returns the fleet.
	LoadVessels(ctx context.Context) ([]*VesselRecord, error)
}

// MissionRecord represents a mission as held in fixture data.
type MissionRecord struct {
	ID          string
	Title       string
	Description string
	Vessel      string
	DueAt       time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VesselRecord represents a vessel as held in fixture data.
type VesselRecord struct {
	Name     string
	Class    string
	HomePort string
}

// IDGenerator defines the secondary port for mission identity.
type IDGenerator interface {
	// Observe tells the generator about an id already in use (seed data).
	Observe(id string)

	// NextID returns a fresh id.
	NextID() string
}

// Clock defines the secondary port for wall time.
type Clock interface {
	Now() time.Time
}
