// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	coremission "github.com/example/fleet/internal/core/mission"
)

// MissionStore defines the primary port for the session's mission collection.
// Screens read snapshots and subscribe; only the creation screen writes.
type MissionStore interface {
	// GetMissions returns the current collection, newest first.
	// The returned slice is a snapshot: later additions never change it.
	GetMissions(ctx context.Context) []coremission.Mission

	// AddMission inserts a new mission built from draft and returns it.
	// Fails with *mission.ValidationError when the title is empty.
	AddMission(ctx context.Context, draft coremission.Draft) (*coremission.Mission, error)

	// Subscribe registers fn to be called synchronously after every AddMission.
	// fn must not call AddMission itself.
	Subscribe(fn Observer) Subscription

	// Len returns the number of missions currently held.
	Len() int
}

// Observer receives one event per added mission.
type Observer func(MissionEvent)

// MissionEvent describes a completed insertion.
type MissionEvent struct {
	Mission  coremission.Mission   // the record that was inserted
	Missions []coremission.Mission // full snapshot after the insertion, newest first
}

// Subscription is an open observer registration. Close releases it and is idempotent.
type Subscription interface {
	Close()
}
