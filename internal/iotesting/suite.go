package iotesting

import (
	"context"
	"testing"

	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/gnames/gnspace/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreSuite checks behavior every agency.Store implementation must
// share. newStore has to return an empty store.
func RunStoreSuite(t *testing.T, newStore func(*testing.T) agency.Store) {
	ctx := context.Background()

	t.Run("create and get scientist", func(t *testing.T) {
		st := newStore(t)
		sci, err := st.CreateScientist(ctx, agency.ScientistInput{
			Name: "Mel T. Valent", FieldOfStudy: "Xenobiology",
		})
		require.NoError(t, err)
		assert.Positive(t, sci.ID)

		got, err := st.GetScientist(ctx, sci.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mel T. Valent", got.Name)
		assert.Equal(t, "Xenobiology", got.FieldOfStudy)
		assert.Empty(t, got.Missions)
	})

	t.Run("invalid scientist is not stored", func(t *testing.T) {
		st := newStore(t)
		_, err := st.CreateScientist(ctx, agency.ScientistInput{
			FieldOfStudy: "Orbits",
		})
		require.Error(t, err)
		assert.Equal(t, errcode.ValidationError, agency.Code(err))
		assert.Equal(t, []string{"name cannot be empty"}, agency.Messages(err))

		list, err := st.ListScientists(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("unknown scientist", func(t *testing.T) {
		st := newStore(t)
		_, err := st.GetScientist(ctx, 999999)
		assert.True(t, agency.IsNotFound(err))

		_, err = st.UpdateScientist(ctx, 999999, agency.ScientistPatch{})
		assert.True(t, agency.IsNotFound(err))

		err = st.DeleteScientist(ctx, 999999)
		assert.True(t, agency.IsNotFound(err))
	})

	t.Run("list scientists", func(t *testing.T) {
		st := newStore(t)
		for _, name := range []string{"Ann", "Bob", "Cid"} {
			_, err := st.CreateScientist(ctx, agency.ScientistInput{
				Name: name, FieldOfStudy: "Astronomy",
			})
			require.NoError(t, err)
		}

		list, err := st.ListScientists(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Ann", list[0].Name)
		assert.Equal(t, "Cid", list[2].Name)
		assert.Less(t, list[0].ID, list[1].ID)
	})

	t.Run("partial update", func(t *testing.T) {
		st := newStore(t)
		sci, err := st.CreateScientist(ctx, agency.ScientistInput{
			Name: "Ann", FieldOfStudy: "Orbits",
		})
		require.NoError(t, err)

		field := "Astrophysics"
		upd, err := st.UpdateScientist(ctx, sci.ID,
			agency.ScientistPatch{FieldOfStudy: &field})
		require.NoError(t, err)
		assert.Equal(t, "Ann", upd.Name)
		assert.Equal(t, "Astrophysics", upd.FieldOfStudy)

		got, err := st.GetScientist(ctx, sci.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, "Astrophysics", got.FieldOfStudy)
	})

	t.Run("invalid update changes nothing", func(t *testing.T) {
		st := newStore(t)
		sci, err := st.CreateScientist(ctx, agency.ScientistInput{
			Name: "Ann", FieldOfStudy: "Orbits",
		})
		require.NoError(t, err)

		name, field := "Bob", ""
		_, err = st.UpdateScientist(ctx, sci.ID, agency.ScientistPatch{
			Name: &name, FieldOfStudy: &field,
		})
		require.Error(t, err)
		assert.True(t, agency.IsInvalid(err))

		got, err := st.GetScientist(ctx, sci.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, "Orbits", got.FieldOfStudy)
	})

	t.Run("create mission", func(t *testing.T) {
		st := newStore(t)
		sci, pl := seedPair(t, st)

		m, err := st.CreateMission(ctx, agency.MissionInput{
			Name: "Explore Kepler", ScientistID: sci.ID, PlanetID: pl.ID,
		})
		require.NoError(t, err)
		assert.Positive(t, m.ID)
		require.NotNil(t, m.Scientist)
		require.NotNil(t, m.Planet)
		assert.Equal(t, sci.Name, m.Scientist.Name)
		assert.Equal(t, pl.NearestStar, m.Planet.NearestStar)

		got, err := st.GetScientist(ctx, sci.ID)
		require.NoError(t, err)
		require.Len(t, got.Missions, 1)
		assert.Equal(t, "Explore Kepler", got.Missions[0].Name)
		require.NotNil(t, got.Missions[0].Planet)
		assert.Equal(t, pl.Name, got.Missions[0].Planet.Name)
	})

	t.Run("mission with unknown scientist", func(t *testing.T) {
		st := newStore(t)
		_, pl := seedPair(t, st)

		_, err := st.CreateMission(ctx, agency.MissionInput{
			Name: "Lost", ScientistID: 999999, PlanetID: pl.ID,
		})
		require.Error(t, err)
		assert.Equal(t, errcode.ReferenceError, agency.Code(err))
		assert.Equal(t,
			[]string{"scientist_id 999999 does not reference an existing scientist"},
			agency.Messages(err))

		ms, err := st.ListMissions(ctx)
		require.NoError(t, err)
		assert.Empty(t, ms)
	})

	t.Run("mission with unknown planet", func(t *testing.T) {
		st := newStore(t)
		sci, _ := seedPair(t, st)

		_, err := st.CreateMission(ctx, agency.MissionInput{
			Name: "Lost", ScientistID: sci.ID, PlanetID: 999999,
		})
		require.Error(t, err)
		assert.Equal(t, errcode.ReferenceError, agency.Code(err))
		assert.Contains(t, agency.Messages(err)[0], "planet_id 999999")
	})

	t.Run("mission without name", func(t *testing.T) {
		st := newStore(t)
		sci, pl := seedPair(t, st)

		_, err := st.CreateMission(ctx, agency.MissionInput{
			ScientistID: sci.ID, PlanetID: pl.ID,
		})
		require.Error(t, err)
		assert.Equal(t, errcode.ValidationError, agency.Code(err))
	})

	t.Run("delete scientist cascades", func(t *testing.T) {
		st := newStore(t)
		sci, pl := seedPair(t, st)
		other, err := st.CreateScientist(ctx, agency.ScientistInput{
			Name: "Bob", FieldOfStudy: "Geology",
		})
		require.NoError(t, err)

		for _, name := range []string{"One", "Two", "Three"} {
			_, err = st.CreateMission(ctx, agency.MissionInput{
				Name: name, ScientistID: sci.ID, PlanetID: pl.ID,
			})
			require.NoError(t, err)
		}
		_, err = st.CreateMission(ctx, agency.MissionInput{
			Name: "Keep", ScientistID: other.ID, PlanetID: pl.ID,
		})
		require.NoError(t, err)

		require.NoError(t, st.DeleteScientist(ctx, sci.ID))

		_, err = st.GetScientist(ctx, sci.ID)
		assert.True(t, agency.IsNotFound(err))

		ms, err := st.ListMissions(ctx)
		require.NoError(t, err)
		require.Len(t, ms, 1)
		assert.Equal(t, "Keep", ms[0].Name)
	})

	t.Run("delete planet cascades", func(t *testing.T) {
		st := newStore(t)
		sci, pl := seedPair(t, st)
		_, err := st.CreateMission(ctx, agency.MissionInput{
			Name: "Gone", ScientistID: sci.ID, PlanetID: pl.ID,
		})
		require.NoError(t, err)

		require.NoError(t, st.DeletePlanet(ctx, pl.ID))

		_, err = st.GetPlanet(ctx, pl.ID)
		assert.True(t, agency.IsNotFound(err))

		got, err := st.GetScientist(ctx, sci.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Missions)

		err = st.DeletePlanet(ctx, pl.ID)
		assert.True(t, agency.IsNotFound(err))
	})

	t.Run("planets", func(t *testing.T) {
		st := newStore(t)
		_, err := st.CreatePlanet(ctx, agency.PlanetInput{Name: "Nowhere"})
		require.Error(t, err)
		assert.Equal(t,
			[]string{"nearest_star cannot be empty"}, agency.Messages(err))

		_, pl := seedPair(t, st)
		list, err := st.ListPlanets(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, pl.ID, list[0].ID)
		assert.Equal(t, "TauCeti E", list[0].Name)
		assert.Equal(t, 1234567, list[0].DistanceFromEarth)
		assert.Equal(t, "TauCeti", list[0].NearestStar)
	})
}

func seedPair(
	t *testing.T,
	st agency.Store,
) (*schema.Scientist, *schema.Planet) {
	t.Helper()
	ctx := context.Background()

	sci, err := st.CreateScientist(ctx, agency.ScientistInput{
		Name: "Ann", FieldOfStudy: "Orbits",
	})
	require.NoError(t, err)

	pl, err := st.CreatePlanet(ctx, agency.PlanetInput{
		Name: "TauCeti E", DistanceFromEarth: 1234567, NearestStar: "TauCeti",
	})
	require.NoError(t, err)
	return sci, pl
}
