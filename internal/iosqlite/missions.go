package iosqlite

import (
	"context"
	"database/sql"

	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/schema"
)

// CreateMission validates and inserts a new mission. The foreign keys
// are enforced by SQLite; a violation becomes agency.ReferenceError.
func (s *Store) CreateMission(
	ctx context.Context,
	in agency.MissionInput,
) (*schema.Mission, error) {
	if err := agency.ValidateMission(in); err != nil {
		return nil, err
	}

	res := schema.Mission{
		Name:        in.Name,
		ScientistID: in.ScientistID,
		PlanetID:    in.PlanetID,
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		q := `INSERT INTO missions (name, scientist_id, planet_id)
		VALUES (?, ?, ?)`
		r, err := tx.ExecContext(ctx, q,
			res.Name, res.ScientistID, res.PlanetID)
		if isForeignKeyViolation(err) {
			return missingReferences(ctx, tx, in)
		}
		if err != nil {
			return agency.StoreError("insert mission", err)
		}
		if res.ID, err = r.LastInsertId(); err != nil {
			return agency.StoreError("insert mission", err)
		}

		var sci schema.Scientist
		err = tx.QueryRowContext(ctx,
			`SELECT id, name, field_of_study FROM scientists WHERE id = ?`,
			res.ScientistID,
		).Scan(&sci.ID, &sci.Name, &sci.FieldOfStudy)
		if err != nil {
			return agency.StoreError("select scientist", err)
		}
		res.Scientist = &sci

		res.Planet, err = getPlanet(ctx, tx, res.PlanetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// missingReferences finds out which foreign keys of a rejected
// mission do not resolve. SQLite does not name the failed constraint.
func missingReferences(
	ctx context.Context,
	tx *sql.Tx,
	in agency.MissionInput,
) error {
	refs := []struct {
		table, field string
		id           int64
	}{
		{"scientists", "scientist_id", in.ScientistID},
		{"planets", "planet_id", in.PlanetID},
	}

	var msgs []string
	for _, v := range refs {
		var found bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM `+v.table+` WHERE id = ?)`, v.id,
		).Scan(&found)
		if err != nil {
			return agency.StoreError("check "+v.field, err)
		}
		if !found {
			msgs = append(msgs, agency.MissingReference(v.field, v.id))
		}
	}

	if len(msgs) == 0 {
		msgs = append(msgs, "mission references a missing record")
	}
	return agency.ReferenceError(msgs...)
}

// ListMissions returns all missions.
func (s *Store) ListMissions(ctx context.Context) ([]schema.Mission, error) {
	return selectMissions(ctx, s.sqlDB, "", nil)
}

// selectMissions reads missions matching an optional WHERE clause.
// Rows are closed before returning, so callers may issue further
// queries on the same connection.
func selectMissions(
	ctx context.Context,
	q querier,
	where string,
	arg any,
) ([]schema.Mission, error) {
	query := `SELECT id, name, scientist_id, planet_id FROM missions ` +
		where + ` ORDER BY id`
	var args []any
	if arg != nil {
		args = append(args, arg)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, agency.StoreError("select missions", err)
	}
	defer rows.Close()

	res := []schema.Mission{}
	for rows.Next() {
		var m schema.Mission
		err = rows.Scan(&m.ID, &m.Name, &m.ScientistID, &m.PlanetID)
		if err != nil {
			return nil, agency.StoreError("scan mission", err)
		}
		res = append(res, m)
	}
	if err = rows.Err(); err != nil {
		return nil, agency.StoreError("select missions", err)
	}
	return res, nil
}
