package iosqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnspace/internal/iosqlite"
	"github.com/gnames/gnspace/internal/iotesting"
	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/gnames/gnspace/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	iotesting.RunStoreSuite(t, func(t *testing.T) agency.Store {
		return iotesting.NewSQLiteStore(t)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("creates file and tables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "space.db")
		st, err := iosqlite.Open(ctx, path)
		require.NoError(t, err)
		defer st.Close()

		assert.Equal(t, path, st.Path())
		_, err = os.Stat(path)
		assert.NoError(t, err)

		ok, err := st.HasTables(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := iosqlite.Open(ctx, "  ")
		require.Error(t, err)
		assert.Equal(t, errcode.SQLiteOpenError, agency.Code(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no", "such", "dir", "x.db")
		_, err := iosqlite.Open(ctx, path)
		require.Error(t, err)
		assert.Equal(t, errcode.SQLiteOpenError, agency.Code(err))
	})

	t.Run("reopen keeps data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "space.db")
		st, err := iosqlite.Open(ctx, path)
		require.NoError(t, err)
		_, err = st.CreatePlanet(ctx, agency.PlanetInput{
			Name: "Mars", DistanceFromEarth: 0, NearestStar: "Sun",
		})
		require.NoError(t, err)
		require.NoError(t, st.Close())

		st, err = iosqlite.Open(ctx, path)
		require.NoError(t, err)
		defer st.Close()
		list, err := st.ListPlanets(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Mars", list[0].Name)
	})
}

func TestDropAllTables(t *testing.T) {
	ctx := context.Background()
	st := iotesting.NewSQLiteStore(t)

	require.NoError(t, st.DropAllTables(ctx))
	ok, err := st.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.CreateTables(ctx))
	ok, err = st.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMissionsOfScientist(t *testing.T) {
	ctx := context.Background()
	st := iotesting.NewSQLiteStore(t)

	sci, err := st.CreateScientist(ctx, agency.ScientistInput{
		Name: "Ann", FieldOfStudy: "Orbits",
	})
	require.NoError(t, err)

	planets := make([]*schema.Planet, 2)
	for i, name := range []string{"Kepler-22b", "Proxima b"} {
		planets[i], err = st.CreatePlanet(ctx, agency.PlanetInput{
			Name: name, DistanceFromEarth: 600 + i, NearestStar: "Star",
		})
		require.NoError(t, err)
	}

	// two missions share a planet
	for _, pid := range []int64{planets[0].ID, planets[1].ID, planets[0].ID} {
		_, err = st.CreateMission(ctx, agency.MissionInput{
			Name: "Survey", ScientistID: sci.ID, PlanetID: pid,
		})
		require.NoError(t, err)
	}

	got, err := st.GetScientist(ctx, sci.ID)
	require.NoError(t, err)
	require.Len(t, got.Missions, 3)
	assert.Less(t, got.Missions[0].ID, got.Missions[1].ID)
	assert.Equal(t, "Kepler-22b", got.Missions[0].Planet.Name)
	assert.Equal(t, "Proxima b", got.Missions[1].Planet.Name)
	assert.Equal(t, "Kepler-22b", got.Missions[2].Planet.Name)
	for _, m := range got.Missions {
		assert.Nil(t, m.Scientist)
	}
}

func TestMissionWithTwoMissingReferences(t *testing.T) {
	ctx := context.Background()
	st := iotesting.NewSQLiteStore(t)

	_, err := st.CreateMission(ctx, agency.MissionInput{
		Name: "Nowhere", ScientistID: 3, PlanetID: 4,
	})
	require.Error(t, err)
	assert.Equal(t, errcode.ReferenceError, agency.Code(err))
	assert.Equal(t, []string{
		"scientist_id 3 does not reference an existing scientist",
		"planet_id 4 does not reference an existing planet",
	}, agency.Messages(err))
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "space.db")

	st, err := iosqlite.Connect(ctx, path)
	require.NoError(t, err)
	defer st.Close()

	ok, err := st.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.CreateTables(ctx))
	ok, err = st.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
