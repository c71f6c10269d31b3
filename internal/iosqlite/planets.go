package iosqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/schema"
)

// CreatePlanet validates and inserts a new planet.
func (s *Store) CreatePlanet(
	ctx context.Context,
	in agency.PlanetInput,
) (*schema.Planet, error) {
	if err := agency.ValidatePlanet(in); err != nil {
		return nil, err
	}

	res := schema.Planet{
		Name:              in.Name,
		DistanceFromEarth: in.DistanceFromEarth,
		NearestStar:       in.NearestStar,
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		q := `INSERT INTO planets (name, distance_from_earth, nearest_star)
		VALUES (?, ?, ?)`
		r, err := tx.ExecContext(ctx, q,
			res.Name, res.DistanceFromEarth, res.NearestStar)
		if err != nil {
			return agency.StoreError("insert planet", err)
		}
		res.ID, err = r.LastInsertId()
		if err != nil {
			return agency.StoreError("insert planet", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetPlanet returns a planet without missions.
func (s *Store) GetPlanet(
	ctx context.Context,
	id int64,
) (*schema.Planet, error) {
	return getPlanet(ctx, s.sqlDB, id)
}

func getPlanet(
	ctx context.Context,
	q querier,
	id int64,
) (*schema.Planet, error) {
	var res schema.Planet
	err := q.QueryRowContext(ctx,
		`SELECT id, name, distance_from_earth, nearest_star
		FROM planets WHERE id = ?`, id,
	).Scan(&res.ID, &res.Name, &res.DistanceFromEarth, &res.NearestStar)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, agency.NotFoundError("Planet", id)
	}
	if err != nil {
		return nil, agency.StoreError("select planet", err)
	}
	return &res, nil
}

// ListPlanets returns all planets without missions.
func (s *Store) ListPlanets(ctx context.Context) ([]schema.Planet, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, distance_from_earth, nearest_star
		FROM planets ORDER BY id`)
	if err != nil {
		return nil, agency.StoreError("select planets", err)
	}
	defer rows.Close()

	var res []schema.Planet
	for rows.Next() {
		var p schema.Planet
		err = rows.Scan(&p.ID, &p.Name, &p.DistanceFromEarth, &p.NearestStar)
		if err != nil {
			return nil, agency.StoreError("scan planet", err)
		}
		res = append(res, p)
	}
	if err = rows.Err(); err != nil {
		return nil, agency.StoreError("select planets", err)
	}
	return res, nil
}

// DeletePlanet removes a planet and all missions to it.
func (s *Store) DeletePlanet(ctx context.Context, id int64) error {
	return s.deleteWithMissions(ctx, "Planet", "planets", "planet_id", id)
}
