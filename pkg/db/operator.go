package db

import (
	"context"

	"github.com/gnames/gnspace/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic PostgreSQL management
// operations. It provides connection lifecycle management and exposes
// the pgxpool.Pool for the schema manager and the GORM store, which
// open their own handles on top of it.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.StoreConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
