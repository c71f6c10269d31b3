// Package schema provides database models for GNspace.
// The same structs drive GORM AutoMigrate on PostgreSQL and the
// tag-generated DDL used by the SQLite store.
package schema

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Scientist is a person who takes part in missions.
type Scientist struct {
	// ID is generated by the database.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT" gorm:"primaryKey"`

	// Name of the scientist, cannot be empty.
	Name string `db:"name" ddl:"TEXT NOT NULL" gorm:"not null"`

	// FieldOfStudy is the scientist's discipline, cannot be empty.
	FieldOfStudy string `db:"field_of_study" ddl:"TEXT NOT NULL" gorm:"not null"`

	// Missions the scientist owns. Deleting the scientist deletes them.
	Missions []Mission `gorm:"foreignKey:ScientistID;constraint:OnDelete:CASCADE"`
}

// Planet is a destination of missions.
type Planet struct {
	// ID is generated by the database.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT" gorm:"primaryKey"`

	// Name of the planet, cannot be empty.
	Name string `db:"name" ddl:"TEXT NOT NULL" gorm:"not null"`

	// DistanceFromEarth in light years.
	DistanceFromEarth int `db:"distance_from_earth" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// NearestStar is the name of the star closest to the planet.
	NearestStar string `db:"nearest_star" ddl:"TEXT NOT NULL" gorm:"not null"`

	// Missions to the planet. Deleting the planet deletes them.
	Missions []Mission `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE"`
}

// Mission links a scientist to a planet.
type Mission struct {
	// ID is generated by the database.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT" gorm:"primaryKey"`

	// Name of the mission, cannot be empty.
	Name string `db:"name" ddl:"TEXT NOT NULL" gorm:"not null"`

	ScientistID int64 `db:"scientist_id" ddl:"INTEGER NOT NULL REFERENCES scientists(id) ON DELETE CASCADE" gorm:"not null;index"`

	PlanetID int64 `db:"planet_id" ddl:"INTEGER NOT NULL REFERENCES planets(id) ON DELETE CASCADE" gorm:"not null;index"`

	// Scientist and Planet are filled by stores on demand and are never
	// persisted through the mission.
	Scientist *Scientist `gorm:"-"`
	Planet    *Planet    `gorm:"-"`
}
