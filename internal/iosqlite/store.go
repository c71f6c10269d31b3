// Package iosqlite implements agency.Store on a local SQLite file.
// This is an impure I/O package built on modernc.org/sqlite, so it
// does not need cgo.
package iosqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/schema"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists scientists, planets and missions in SQLite.
type Store struct {
	path  string
	sqlDB *sql.DB
}

var _ agency.Store = (*Store)(nil)

// Open opens a SQLite database and creates missing tables.
func Open(ctx context.Context, path string) (*Store, error) {
	res, err := Connect(ctx, path)
	if err != nil {
		return nil, err
	}
	if err = res.CreateTables(ctx); err != nil {
		_ = res.Close()
		return nil, err
	}
	return res, nil
}

// Connect opens a SQLite database without touching its tables.
// The file is created if it does not exist.
func Connect(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, OpenError(path, errors.New("database path is required"))
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, OpenError(cleanPath, err)
	}
	// SQLite allows one writer; one connection keeps writes serialized
	// and pragmas applied.
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, OpenError(cleanPath, err)
	}
	return &Store{path: cleanPath, sqlDB: sqlDB}, nil
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// CreateTables creates tables and indexes that do not exist yet.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range schema.SQLiteDDL() {
		if _, err := s.sqlDB.ExecContext(ctx, stmt); err != nil {
			return SchemaError(err)
		}
	}
	return nil
}

// HasTables checks if any of the service tables exist.
func (s *Store) HasTables(ctx context.Context) (bool, error) {
	var count int
	q := `SELECT count(*) FROM sqlite_master
	WHERE type = 'table' AND name IN (?, ?, ?)`
	names := schema.TableNames()
	err := s.sqlDB.QueryRowContext(ctx, q, names[0], names[1], names[2]).
		Scan(&count)
	if err != nil {
		return false, agency.StoreError("check tables", err)
	}
	return count > 0, nil
}

// DropAllTables drops service tables, children first.
func (s *Store) DropAllTables(ctx context.Context) error {
	names := schema.TableNames()
	for i := len(names) - 1; i >= 0; i-- {
		q := fmt.Sprintf("DROP TABLE IF EXISTS %s", names[i])
		if _, err := s.sqlDB.ExecContext(ctx, q); err != nil {
			return agency.StoreError("drop "+names[i], err)
		}
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// inTx runs fn in a transaction. The transaction is committed only if
// fn returns nil.
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return agency.StoreError("begin transaction", err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return agency.StoreError("commit transaction", err)
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return strings.Contains(strings.ToLower(err.Error()),
		"foreign key constraint failed")
}
