package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/gnspace/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScientistTableDDL tests DDL generation for Scientist model
func TestScientistTableDDL(t *testing.T) {
	ddl := schema.Scientist{}.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS scientists")
	assert.Contains(t, ddl, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, ddl, "name TEXT NOT NULL")
	assert.Contains(t, ddl, "field_of_study TEXT NOT NULL")

	// relationships are not columns
	assert.NotContains(t, ddl, "missions")
}

// TestPlanetTableDDL tests DDL generation for Planet model
func TestPlanetTableDDL(t *testing.T) {
	ddl := schema.Planet{}.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS planets")
	assert.Contains(t, ddl, "distance_from_earth INTEGER NOT NULL")
	assert.Contains(t, ddl, "nearest_star TEXT NOT NULL")
}

// TestMissionTableDDL tests foreign keys of Mission model
func TestMissionTableDDL(t *testing.T) {
	m := schema.Mission{}
	ddl := m.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS missions")
	assert.Contains(t, ddl,
		"scientist_id INTEGER NOT NULL REFERENCES scientists(id) ON DELETE CASCADE")
	assert.Contains(t, ddl,
		"planet_id INTEGER NOT NULL REFERENCES planets(id) ON DELETE CASCADE")
	assert.NotContains(t, ddl, "scientist INTEGER")

	idx := m.IndexDDL()
	require.Len(t, idx, 2)
	assert.Contains(t, idx[0], "missions(scientist_id)")
	assert.Contains(t, idx[1], "missions(planet_id)")
}

// TestSQLiteDDLOrder verifies parent tables are created first.
func TestSQLiteDDLOrder(t *testing.T) {
	stmts := schema.SQLiteDDL()
	require.Len(t, stmts, 5)

	var tables []string
	for _, s := range stmts {
		if !strings.HasPrefix(s, "CREATE TABLE") {
			continue
		}
		for _, name := range schema.TableNames() {
			if strings.Contains(s, "EXISTS "+name+" ") {
				tables = append(tables, name)
			}
		}
	}
	assert.Equal(t, []string{"scientists", "planets", "missions"}, tables)
}

func TestColumns(t *testing.T) {
	tests := []struct {
		msg   string
		model any
		res   []string
	}{
		{"scientist", schema.Scientist{},
			[]string{"id", "name", "field_of_study"}},
		{"planet", &schema.Planet{},
			[]string{"id", "name", "distance_from_earth", "nearest_star"}},
		{"mission", schema.Mission{},
			[]string{"id", "name", "scientist_id", "planet_id"}},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, schema.Columns(v.model), v.msg)
	}
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 3)
	assert.IsType(t, &schema.Scientist{}, models[0])
	assert.IsType(t, &schema.Mission{}, models[2])
}
