// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import "time"

// Mission is a unit of work assigned to a vessel.
// ID, CreatedAt and UpdatedAt are assigned by the store; everything else comes from a Draft.
type Mission struct {
	ID          string
	Title       string
	Description string
	Vessel      string
	DueAt       time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft is the caller-supplied part of a mission.
type Draft struct {
	Title       string `validate:"required"`
	Description string
	Vessel      string
	DueAt       time.Time
	Status      string
}

// Vessel is a ship of the fleet. Vessels are fixture data and never mutated.
type Vessel struct {
	Name     string
	Class    string
	HomePort string
}

// NewMission builds the record inserted for a draft.
// Draft fields are copied unchanged; both timestamps are set to now.
func NewMission(id string, draft Draft, now time.Time) Mission {
	return Mission{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Vessel:      draft.Vessel,
		DueAt:       draft.DueAt,
		Status:      draft.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Draft returns the caller-owned fields of the mission.
func (m Mission) Draft() Draft {
	return Draft{
		Title:       m.Title,
		Description: m.Description,
		Vessel:      m.Vessel,
		DueAt:       m.DueAt,
		Status:      m.Status,
	}
}
