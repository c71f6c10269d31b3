package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/internal/iodb"
	"github.com/gnames/gnspace/internal/iogorm"
	"github.com/gnames/gnspace/internal/ioschema"
	"github.com/gnames/gnspace/internal/iosqlite"
	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/config"
	"github.com/gnames/gnspace/pkg/db"
	"github.com/gnames/gnspace/pkg/lifecycle"
)

func connectPostgres(
	ctx context.Context,
	c *config.Config,
) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &c.Store); err != nil {
		return nil, err
	}
	gn.Info("Connected to PostgreSQL <em>%s@%s:%d/%s</em>",
		c.Store.User, c.Store.Host, c.Store.Port, c.Store.Database)
	return op, nil
}

// openTables connects to the backend without changing its schema.
func openTables(
	ctx context.Context,
	c *config.Config,
) (lifecycle.SchemaManager, error) {
	if c.Store.Driver == config.DriverPostgres {
		op, err := connectPostgres(ctx, c)
		if err != nil {
			return nil, err
		}
		return ioschema.NewManager(op), nil
	}

	path := c.SQLitePath()
	st, err := iosqlite.Connect(ctx, path)
	if err != nil {
		return nil, err
	}
	gn.Info("Opened SQLite database <em>%s</em>", path)
	return st, nil
}

// openStore connects to the backend and creates missing tables.
func openStore(ctx context.Context, c *config.Config) (agency.Store, error) {
	if c.Store.Driver == config.DriverPostgres {
		op, err := connectPostgres(ctx, c)
		if err != nil {
			return nil, err
		}
		mgr := ioschema.NewManager(op)
		if err = mgr.Create(ctx); err != nil {
			_ = mgr.Close()
			return nil, err
		}
		st, err := iogorm.New(mgr)
		if err != nil {
			_ = mgr.Close()
			return nil, err
		}
		return st, nil
	}

	path := c.SQLitePath()
	st, err := iosqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	gn.Info("Opened SQLite database <em>%s</em>", path)
	return st, nil
}
