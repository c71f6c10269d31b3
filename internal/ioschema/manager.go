// Package ioschema creates the PostgreSQL schema. This is an impure
// I/O package that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/gnames/gnspace/pkg/db"
	"github.com/gnames/gnspace/pkg/lifecycle"
	"github.com/gnames/gnspace/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager creates and drops PostgreSQL tables. It owns the single GORM
// handle opened on the operator's pool.
type Manager struct {
	operator db.Operator
	gormDB   *gorm.DB
}

var _ lifecycle.SchemaManager = (*Manager)(nil)

// NewManager creates a new schema Manager.
func NewManager(op db.Operator) *Manager {
	return &Manager{operator: op}
}

// DB returns the GORM handle on top of the operator's pool, opening it
// on first use. Later calls return the same handle.
// GORM's own logger is silenced, errors are reported by callers.
func (m *Manager) DB() (*gorm.DB, error) {
	if m.gormDB != nil {
		return m.gormDB, nil
	}

	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, GORMConnectionError(err)
	}
	m.gormDB = gormDB
	return gormDB, nil
}

// Create creates missing tables, foreign keys and indexes
// using GORM AutoMigrate. Existing tables are left intact.
func (m *Manager) Create(ctx context.Context) error {
	gormDB, err := m.DB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return nil
}

// CreateTables is Create under the lifecycle.SchemaManager name.
func (m *Manager) CreateTables(ctx context.Context) error {
	return m.Create(ctx)
}

// HasTables checks if the database has any tables.
func (m *Manager) HasTables(ctx context.Context) (bool, error) {
	return m.operator.HasTables(ctx)
}

// DropAllTables drops all tables of the public schema.
func (m *Manager) DropAllTables(ctx context.Context) error {
	return m.operator.DropAllTables(ctx)
}

// Close closes the operator's connection pool.
func (m *Manager) Close() error {
	if m.gormDB != nil {
		if sqlDB, err := m.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		m.gormDB = nil
	}
	return m.operator.Close()
}
