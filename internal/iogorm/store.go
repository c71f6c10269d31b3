// Package iogorm implements agency.Store on PostgreSQL with GORM.
// This is an impure I/O package; it shares the GORM handle of an
// ioschema.Manager.
package iogorm

import (
	"context"
	"errors"
	"strings"

	"github.com/gnames/gnspace/internal/ioschema"
	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/schema"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE of a broken
// foreign key.
const foreignKeyViolation = "23503"

type store struct {
	mgr *ioschema.Manager
	db  *gorm.DB
}

// New creates a Store sharing the GORM handle of the schema manager.
// Closing the Store closes the manager and its operator.
func New(mgr *ioschema.Manager) (agency.Store, error) {
	gormDB, err := mgr.DB()
	if err != nil {
		return nil, err
	}
	return &store{mgr: mgr, db: gormDB}, nil
}

func (s *store) CreateScientist(
	ctx context.Context,
	in agency.ScientistInput,
) (*schema.Scientist, error) {
	if err := agency.ValidateScientist(in); err != nil {
		return nil, err
	}

	res := schema.Scientist{Name: in.Name, FieldOfStudy: in.FieldOfStudy}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&res).Error
	if err != nil {
		return nil, agency.StoreError("insert scientist", err)
	}
	return &res, nil
}

func (s *store) GetScientist(
	ctx context.Context,
	id int64,
) (*schema.Scientist, error) {
	return getScientist(s.db.WithContext(ctx), id)
}

func getScientist(tx *gorm.DB, id int64) (*schema.Scientist, error) {
	var res schema.Scientist
	err := tx.Preload("Missions", func(db *gorm.DB) *gorm.DB {
		return db.Order("missions.id")
	}).First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, agency.NotFoundError("Scientist", id)
	}
	if err != nil {
		return nil, agency.StoreError("select scientist", err)
	}

	if err = attachPlanets(tx, res.Missions); err != nil {
		return nil, err
	}
	return &res, nil
}

// attachPlanets loads planets of the missions with one query.
func attachPlanets(tx *gorm.DB, missions []schema.Mission) error {
	if len(missions) == 0 {
		return nil
	}

	ids := make([]int64, len(missions))
	for i := range missions {
		ids[i] = missions[i].PlanetID
	}

	var planets []schema.Planet
	if err := tx.Where("id IN ?", ids).Find(&planets).Error; err != nil {
		return agency.StoreError("select planets", err)
	}

	byID := make(map[int64]*schema.Planet, len(planets))
	for i := range planets {
		byID[planets[i].ID] = &planets[i]
	}
	for i := range missions {
		missions[i].Planet = byID[missions[i].PlanetID]
	}
	return nil
}

func (s *store) ListScientists(
	ctx context.Context,
) ([]schema.Scientist, error) {
	var res []schema.Scientist
	if err := s.db.WithContext(ctx).Order("id").Find(&res).Error; err != nil {
		return nil, agency.StoreError("select scientists", err)
	}
	return res, nil
}

func (s *store) UpdateScientist(
	ctx context.Context,
	id int64,
	p agency.ScientistPatch,
) (*schema.Scientist, error) {
	if err := agency.ValidateScientistPatch(p); err != nil {
		return nil, err
	}

	var res *schema.Scientist
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sci schema.Scientist
		err := tx.First(&sci, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return agency.NotFoundError("Scientist", id)
		}
		if err != nil {
			return agency.StoreError("select scientist", err)
		}

		if !p.IsEmpty() {
			p.Apply(&sci)
			err = tx.Model(&schema.Scientist{ID: id}).Updates(map[string]any{
				"name":           sci.Name,
				"field_of_study": sci.FieldOfStudy,
			}).Error
			if err != nil {
				return agency.StoreError("update scientist", err)
			}
		}

		res, err = getScientist(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *store) DeleteScientist(ctx context.Context, id int64) error {
	return s.deleteWithMissions(ctx, &schema.Scientist{}, "Scientist",
		"scientist_id", id)
}

// deleteWithMissions removes a parent row and its missions in one
// transaction.
func (s *store) deleteWithMissions(
	ctx context.Context,
	model any,
	entity, fk string,
	id int64,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(model, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return agency.NotFoundError(entity, id)
		}
		if err != nil {
			return agency.StoreError("select "+strings.ToLower(entity), err)
		}

		err = tx.Where(fk+" = ?", id).Delete(&schema.Mission{}).Error
		if err != nil {
			return agency.StoreError("delete missions", err)
		}

		if err = tx.Delete(model, id).Error; err != nil {
			return agency.StoreError("delete "+strings.ToLower(entity), err)
		}
		return nil
	})
}

func (s *store) CreatePlanet(
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
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&res).Error
	if err != nil {
		return nil, agency.StoreError("insert planet", err)
	}
	return &res, nil
}

func (s *store) GetPlanet(
	ctx context.Context,
	id int64,
) (*schema.Planet, error) {
	return getPlanet(s.db.WithContext(ctx), id)
}

func getPlanet(tx *gorm.DB, id int64) (*schema.Planet, error) {
	var res schema.Planet
	err := tx.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, agency.NotFoundError("Planet", id)
	}
	if err != nil {
		return nil, agency.StoreError("select planet", err)
	}
	return &res, nil
}

func (s *store) ListPlanets(ctx context.Context) ([]schema.Planet, error) {
	var res []schema.Planet
	if err := s.db.WithContext(ctx).Order("id").Find(&res).Error; err != nil {
		return nil, agency.StoreError("select planets", err)
	}
	return res, nil
}

func (s *store) DeletePlanet(ctx context.Context, id int64) error {
	return s.deleteWithMissions(ctx, &schema.Planet{}, "Planet",
		"planet_id", id)
}

func (s *store) CreateMission(
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
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Create(&res).Error
		if err != nil {
			if refErr := referenceError(err, in); refErr != nil {
				return refErr
			}
			return agency.StoreError("insert mission", err)
		}

		var sci schema.Scientist
		if err = tx.First(&sci, res.ScientistID).Error; err != nil {
			return agency.StoreError("select scientist", err)
		}
		res.Scientist = &sci

		res.Planet, err = getPlanet(tx, res.PlanetID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// referenceError converts a foreign key violation to
// agency.ReferenceError. The constraint name tells which parent is
// missing: GORM names them fk_scientists_missions and
// fk_planets_missions.
func referenceError(err error, in agency.MissionInput) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return nil
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "scientist"):
		return agency.ReferenceError(
			agency.MissingReference("scientist_id", in.ScientistID))
	case strings.Contains(pgErr.ConstraintName, "planet"):
		return agency.ReferenceError(
			agency.MissingReference("planet_id", in.PlanetID))
	default:
		return agency.ReferenceError(pgErr.Detail)
	}
}

func (s *store) ListMissions(ctx context.Context) ([]schema.Mission, error) {
	var res []schema.Mission
	if err := s.db.WithContext(ctx).Order("id").Find(&res).Error; err != nil {
		return nil, agency.StoreError("select missions", err)
	}
	return res, nil
}

func (s *store) Close() error {
	return s.mgr.Close()
}
