// Package iotesting provides shared test utilities for store and HTTP
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/gnspace/internal/iodb"
	"github.com/gnames/gnspace/internal/iosqlite"
	"github.com/gnames/gnspace/pkg/config"
	"github.com/gnames/gnspace/pkg/db"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration
	// tests. It ensures tests never run against a production database.
	TestDatabaseName = "gnspace_test"
)

// NewSQLiteStore opens a store in a fresh temporary directory.
// The store is closed when the test finishes.
func NewSQLiteStore(t *testing.T) *iosqlite.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gnspace_test.db")
	st, err := iosqlite.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open SQLite store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// PostgresConfig returns store settings for integration tests.
// Defaults can be changed with GNSPACE_STORE_HOST, GNSPACE_STORE_PORT,
// GNSPACE_STORE_USER and GNSPACE_STORE_PASSWORD. The database name is
// always TestDatabaseName.
func PostgresConfig() *config.StoreConfig {
	cfg := config.New()
	opts := []config.Option{
		config.OptStoreDriver(config.DriverPostgres),
		config.OptStoreDatabase(TestDatabaseName),
	}
	if s := os.Getenv("GNSPACE_STORE_HOST"); s != "" {
		opts = append(opts, config.OptStoreHost(s))
	}
	if s := os.Getenv("GNSPACE_STORE_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptStorePort(i))
		}
	}
	if s := os.Getenv("GNSPACE_STORE_USER"); s != "" {
		opts = append(opts, config.OptStoreUser(s))
	}
	if s := os.Getenv("GNSPACE_STORE_PASSWORD"); s != "" {
		opts = append(opts, config.OptStorePassword(s))
	}
	cfg.Update(opts)
	return &cfg.Store
}

// ConnectPostgres connects to the integration test database. The test
// is skipped in short mode or when PostgreSQL is not reachable.
func ConnectPostgres(t *testing.T) db.Operator {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(context.Background(), PostgresConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}
