package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gnspace/internal/iodb"
	"github.com/gnames/gnspace/internal/ioschema"
	"github.com/gnames/gnspace/internal/iotesting"
	"github.com/gnames/gnspace/pkg/agency"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	require.NotNil(t, mgr)

	err := mgr.Create(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, agency.Code(err))
}

func TestCreate(t *testing.T) {
	op := iotesting.ConnectPostgres(t)
	ctx := context.Background()

	require.NoError(t, op.DropAllTables(ctx))

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	for _, table := range []string{"scientists", "planets", "missions"} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	// running it again keeps existing tables
	require.NoError(t, mgr.CreateTables(ctx))
	ok, err := mgr.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mgr.DropAllTables(ctx))
	ok, err = mgr.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDB_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	_, err := mgr.DB()
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, agency.Code(err))
}

func TestDB_Shared(t *testing.T) {
	op := iotesting.ConnectPostgres(t)
	mgr := ioschema.NewManager(op)

	first, err := mgr.DB()
	require.NoError(t, err)
	require.NoError(t, mgr.Create(context.Background()))

	second, err := mgr.DB()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
