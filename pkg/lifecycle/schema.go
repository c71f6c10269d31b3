// Package lifecycle defines how commands manage the tables of a store
// backend, independent of the database engine.
package lifecycle

import "context"

// SchemaManager creates and drops the scientists, planets and
// missions tables.
//
// Implementations: iosqlite.Store and ioschema.Manager.
type SchemaManager interface {
	// HasTables is true when any of the service tables exists.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables removes the tables together with their data.
	DropAllTables(ctx context.Context) error

	// CreateTables creates missing tables, foreign keys and indexes.
	// It is safe to run on an existing schema.
	CreateTables(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}
