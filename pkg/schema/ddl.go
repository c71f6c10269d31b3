package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns the column names of a model in declaration order.
func Columns(model interface{}) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Scientist DDL methods
func (s Scientist) TableDDL() string {
	return generateDDL(s, "scientists")
}

func (s Scientist) IndexDDL() []string {
	return []string{}
}

func (s Scientist) TableName() string {
	return "scientists"
}

// Planet DDL methods
func (p Planet) TableDDL() string {
	return generateDDL(p, "planets")
}

func (p Planet) IndexDDL() []string {
	return []string{}
}

func (p Planet) TableName() string {
	return "planets"
}

// Mission DDL methods
func (m Mission) TableDDL() string {
	return generateDDL(m, "missions")
}

func (m Mission) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_missions_scientist_id ON missions(scientist_id);",
		"CREATE INDEX IF NOT EXISTS idx_missions_planet_id ON missions(planet_id);",
	}
}

func (m Mission) TableName() string {
	return "missions"
}

// generators lists models in the order their tables have to be created.
func generators() []DDLGenerator {
	return []DDLGenerator{Scientist{}, Planet{}, Mission{}}
}

// SQLiteDDL returns all statements needed to create the schema in
// SQLite. Parent tables come before the tables referencing them.
func SQLiteDDL() []string {
	var res []string
	for _, g := range generators() {
		res = append(res, g.TableDDL())
		res = append(res, g.IndexDDL()...)
	}
	return res
}

// TableNames returns table names with parents first.
// Drop them in reverse order.
func TableNames() []string {
	gg := generators()
	res := make([]string, len(gg))
	for i, g := range gg {
		res[i] = g.TableName()
	}
	return res
}
