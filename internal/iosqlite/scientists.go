package iosqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/schema"
)

// CreateScientist validates and inserts a new scientist.
func (s *Store) CreateScientist(
	ctx context.Context,
	in agency.ScientistInput,
) (*schema.Scientist, error) {
	if err := agency.ValidateScientist(in); err != nil {
		return nil, err
	}

	res := schema.Scientist{Name: in.Name, FieldOfStudy: in.FieldOfStudy}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		q := `INSERT INTO scientists (name, field_of_study) VALUES (?, ?)`
		r, err := tx.ExecContext(ctx, q, res.Name, res.FieldOfStudy)
		if err != nil {
			return agency.StoreError("insert scientist", err)
		}
		res.ID, err = r.LastInsertId()
		if err != nil {
			return agency.StoreError("insert scientist", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetScientist returns a scientist with missions and their planets.
func (s *Store) GetScientist(
	ctx context.Context,
	id int64,
) (*schema.Scientist, error) {
	return getScientist(ctx, s.sqlDB, id)
}

func getScientist(
	ctx context.Context,
	q querier,
	id int64,
) (*schema.Scientist, error) {
	var res schema.Scientist
	err := q.QueryRowContext(ctx,
		`SELECT id, name, field_of_study FROM scientists WHERE id = ?`, id,
	).Scan(&res.ID, &res.Name, &res.FieldOfStudy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, agency.NotFoundError("Scientist", id)
	}
	if err != nil {
		return nil, agency.StoreError("select scientist", err)
	}

	res.Missions, err = selectMissions(ctx, q,
		`WHERE scientist_id = ?`, id)
	if err != nil {
		return nil, err
	}

	if err = attachPlanets(ctx, q, res.Missions); err != nil {
		return nil, err
	}
	return &res, nil
}

// attachPlanets loads the planet of every mission.
func attachPlanets(
	ctx context.Context,
	q querier,
	missions []schema.Mission,
) error {
	cache := make(map[int64]*schema.Planet)
	for i := range missions {
		pid := missions[i].PlanetID
		if p, ok := cache[pid]; ok {
			missions[i].Planet = p
			continue
		}
		p, err := getPlanet(ctx, q, pid)
		if err != nil {
			return err
		}
		cache[pid] = p
		missions[i].Planet = p
	}
	return nil
}

// ListScientists returns all scientists without missions.
func (s *Store) ListScientists(
	ctx context.Context,
) ([]schema.Scientist, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, field_of_study FROM scientists ORDER BY id`)
	if err != nil {
		return nil, agency.StoreError("select scientists", err)
	}
	defer rows.Close()

	var res []schema.Scientist
	for rows.Next() {
		var sci schema.Scientist
		if err = rows.Scan(&sci.ID, &sci.Name, &sci.FieldOfStudy); err != nil {
			return nil, agency.StoreError("scan scientist", err)
		}
		res = append(res, sci)
	}
	if err = rows.Err(); err != nil {
		return nil, agency.StoreError("select scientists", err)
	}
	return res, nil
}

// UpdateScientist changes fields present in the patch.
func (s *Store) UpdateScientist(
	ctx context.Context,
	id int64,
	p agency.ScientistPatch,
) (*schema.Scientist, error) {
	if err := agency.ValidateScientistPatch(p); err != nil {
		return nil, err
	}

	var res *schema.Scientist
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		sci, err := getScientist(ctx, tx, id)
		if err != nil {
			return err
		}
		if p.IsEmpty() {
			res = sci
			return nil
		}

		p.Apply(sci)
		_, err = tx.ExecContext(ctx,
			`UPDATE scientists SET name = ?, field_of_study = ? WHERE id = ?`,
			sci.Name, sci.FieldOfStudy, id)
		if err != nil {
			return agency.StoreError("update scientist", err)
		}
		res = sci
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteScientist removes a scientist and all its missions.
func (s *Store) DeleteScientist(ctx context.Context, id int64) error {
	return s.deleteWithMissions(ctx, "Scientist", "scientists",
		"scientist_id", id)
}

// deleteWithMissions removes dependent missions and then the parent
// row in one transaction.
func (s *Store) deleteWithMissions(
	ctx context.Context,
	entity, table, fk string,
	id int64,
) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM missions WHERE `+fk+` = ?`, id)
		if err != nil {
			return agency.StoreError("delete missions", err)
		}

		r, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE id = ?`, id)
		if err != nil {
			return agency.StoreError("delete "+table, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return agency.StoreError("delete "+table, err)
		}
		if n == 0 {
			return agency.NotFoundError(entity, id)
		}
		return nil
	})
}
