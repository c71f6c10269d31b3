package iohttp

import "github.com/gnames/gnspace/pkg/schema"

// Views are the JSON shapes of responses. A mission nested in a
// scientist has no scientist field, and the scientist nested in a
// mission has no missions field, so relationship cycles cannot be
// serialized.

// ScientistSummary is a scientist without relationships.
type ScientistSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FieldOfStudy string `json:"field_of_study"`
}

// ScientistDetail is a scientist with its missions expanded.
type ScientistDetail struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	FieldOfStudy string             `json:"field_of_study"`
	Missions     []ScientistMission `json:"missions"`
}

// ScientistMission is a mission seen from its scientist.
type ScientistMission struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	ScientistID int64       `json:"scientist_id"`
	PlanetID    int64       `json:"planet_id"`
	Planet      *PlanetView `json:"planet,omitempty"`
}

// PlanetView is a planet without relationships.
type PlanetView struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	DistanceFromEarth int    `json:"distance_from_earth"`
	NearestStar       string `json:"nearest_star"`
}

// MissionDetail is a mission with its scientist and planet.
type MissionDetail struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	ScientistID int64             `json:"scientist_id"`
	PlanetID    int64             `json:"planet_id"`
	Scientist   *ScientistSummary `json:"scientist,omitempty"`
	Planet      *PlanetView       `json:"planet,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

type errorsBody struct {
	Errors []string `json:"errors"`
}

func newScientistSummary(s *schema.Scientist) ScientistSummary {
	return ScientistSummary{
		ID:           s.ID,
		Name:         s.Name,
		FieldOfStudy: s.FieldOfStudy,
	}
}

func newScientistDetail(s *schema.Scientist) ScientistDetail {
	res := ScientistDetail{
		ID:           s.ID,
		Name:         s.Name,
		FieldOfStudy: s.FieldOfStudy,
		Missions:     make([]ScientistMission, len(s.Missions)),
	}
	for i := range s.Missions {
		m := &s.Missions[i]
		res.Missions[i] = ScientistMission{
			ID:          m.ID,
			Name:        m.Name,
			ScientistID: m.ScientistID,
			PlanetID:    m.PlanetID,
			Planet:      newPlanetViewPtr(m.Planet),
		}
	}
	return res
}

func newPlanetView(p *schema.Planet) PlanetView {
	return PlanetView{
		ID:                p.ID,
		Name:              p.Name,
		DistanceFromEarth: p.DistanceFromEarth,
		NearestStar:       p.NearestStar,
	}
}

func newPlanetViewPtr(p *schema.Planet) *PlanetView {
	if p == nil {
		return nil
	}
	res := newPlanetView(p)
	return &res
}

func newMissionDetail(m *schema.Mission) MissionDetail {
	res := MissionDetail{
		ID:          m.ID,
		Name:        m.Name,
		ScientistID: m.ScientistID,
		PlanetID:    m.PlanetID,
		Planet:      newPlanetViewPtr(m.Planet),
	}
	if m.Scientist != nil {
		sci := newScientistSummary(m.Scientist)
		res.Scientist = &sci
	}
	return res
}
