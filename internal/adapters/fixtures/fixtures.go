// Package fixtures provides the read-only seed data of a session.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/fleet/internal/ports/secondary"
)

//go:embed missions.yaml
var defaultFixtures []byte

// File is the on-disk layout of a fixture set.
type File struct {
	Vessels  []VesselFixture  `yaml:"vessels"`
	Missions []MissionFixture `yaml:"missions"`
}

// VesselFixture is one vessel entry.
type VesselFixture struct {
	Name     string `yaml:"name"`
	Class    string `yaml:"class,omitempty"`
	HomePort string `yaml:"home_port,omitempty"`
}

// MissionFixture is one mission entry. Times are RFC3339.
type MissionFixture struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	Vessel      string    `yaml:"vessel"`
	DueAt       time.Time `yaml:"due_at,omitempty"`
	Status      string    `yaml:"status"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at,omitempty"`
}

// Loader implements secondary.FixtureSource over a YAML fixture file.
// An empty path selects the fixture set compiled into the binary.
type Loader struct {
	path string

	once sync.Once
	file *File
	err  error
}

// NewLoader creates a Loader for path ("" for the built-in fixtures).
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Parse decodes a fixture set.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, v := range f.Vessels {
		if v.Name == "" {
			return nil, fmt.Errorf("vessel %d has no name", i)
		}
	}
	return &f, nil
}

// LoadMissions returns the seed missions in file order.
func (l *Loader) LoadMissions(ctx context.Context) ([]*secondary.MissionRecord, error) {
	f, err := l.load()
	if err != nil {
		return nil, err
	}
	records := make([]*secondary.MissionRecord, len(f.Missions))
	for i, m := range f.Missions {
		records[i] = &secondary.MissionRecord{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Vessel:      m.Vessel,
			DueAt:       m.DueAt,
			Status:      m.Status,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		}
	}
	return records, nil
}

// LoadVessels returns the fleet in file order.
func (l *Loader) LoadVessels(ctx context.Context) ([]*secondary.VesselRecord, error) {
	f, err := l.load()
	if err != nil {
		return nil, err
	}
	records := make([]*secondary.VesselRecord, len(f.Vessels))
	for i, v := range f.Vessels {
		records[i] = &secondary.VesselRecord{Name: v.Name, Class: v.Class, HomePort: v.HomePort}
	}
	return records, nil
}

func (l *Loader) load() (*File, error) {
	l.once.Do(func() {
		data := defaultFixtures
		if l.path != "" {
			var err error
			data, err = os.ReadFile(l.path)
			if err != nil {
				l.err = fmt.Errorf("failed to read fixtures: %w", err)
				return
			}
		}
		l.file, l.err = Parse(data)
	})
	return l.file, l.err
}

// Ensure Loader implements the interface
var _ secondary.FixtureSource = (*Loader)(nil)
