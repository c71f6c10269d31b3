// Package agency defines the records service of the Interplanetary Space
// Travel Agency: the Store contract, write inputs, validation and the
// errors every Store implementation returns.
//
// This package has no I/O dependencies. Implementations live in
// internal/iosqlite (SQLite) and internal/iogorm (PostgreSQL).
package agency

import (
	"context"

	"github.com/gnames/gnspace/pkg/schema"
)

// Store persists scientists, planets and missions.
//
// Every write validates its input before touching the database and
// commits as a single transaction. Failed writes leave prior state
// unchanged.
type Store interface {
	// CreateScientist validates and inserts a new scientist.
	CreateScientist(context.Context, ScientistInput) (*schema.Scientist, error)

	// GetScientist returns a scientist with missions and the planets of
	// those missions loaded. Returns NotFoundError for unknown ids.
	GetScientist(ctx context.Context, id int64) (*schema.Scientist, error)

	// ListScientists returns all scientists ordered by id, without
	// missions.
	ListScientists(context.Context) ([]schema.Scientist, error)

	// UpdateScientist changes only the fields present in the patch and
	// returns the scientist loaded as by GetScientist.
	UpdateScientist(ctx context.Context, id int64, p ScientistPatch) (*schema.Scientist, error)

	// DeleteScientist removes a scientist together with all its missions.
	DeleteScientist(ctx context.Context, id int64) error

	// CreatePlanet validates and inserts a new planet.
	CreatePlanet(context.Context, PlanetInput) (*schema.Planet, error)

	// GetPlanet returns a planet without missions.
	GetPlanet(ctx context.Context, id int64) (*schema.Planet, error)

	// ListPlanets returns all planets ordered by id, without missions.
	ListPlanets(context.Context) ([]schema.Planet, error)

	// DeletePlanet removes a planet together with all its missions.
	DeletePlanet(ctx context.Context, id int64) error

	// CreateMission validates and inserts a new mission. Ids that do not
	// resolve to existing rows give ReferenceError. The returned mission
	// has its Scientist and Planet loaded.
	CreateMission(context.Context, MissionInput) (*schema.Mission, error)

	// ListMissions returns all missions ordered by id.
	ListMissions(context.Context) ([]schema.Mission, error)

	// Close releases database resources.
	Close() error
}

// ScientistInput contains fields of a new scientist.
type ScientistInput struct {
	Name         string `json:"name" yaml:"name"`
	FieldOfStudy string `json:"field_of_study" yaml:"field_of_study"`
}

// ScientistPatch contains fields to change. Nil fields are left
// untouched.
type ScientistPatch struct {
	Name         *string `json:"name"`
	FieldOfStudy *string `json:"field_of_study"`
}

// IsEmpty is true when the patch changes nothing.
func (p ScientistPatch) IsEmpty() bool {
	return p.Name == nil && p.FieldOfStudy == nil
}

// Apply copies present fields of the patch to the scientist.
func (p ScientistPatch) Apply(s *schema.Scientist) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.FieldOfStudy != nil {
		s.FieldOfStudy = *p.FieldOfStudy
	}
}

// PlanetInput contains fields of a new planet.
type PlanetInput struct {
	Name              string `json:"name" yaml:"name"`
	DistanceFromEarth int    `json:"distance_from_earth" yaml:"distance_from_earth"`
	NearestStar       string `json:"nearest_star" yaml:"nearest_star"`
}

// MissionInput contains fields of a new mission.
type MissionInput struct {
	Name        string `json:"name"`
	ScientistID int64  `json:"scientist_id"`
	PlanetID    int64  `json:"planet_id"`
}
