package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	host := "localhost"
	port := 5432
	database := "test"
	user := "postgres"
	originalErr := errors.New("connection refused")

	err := ConnectionError(host, port, database, user,
		originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5,
		"Should have 5 vars: host, port, database, user, database")
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestErrors_Codes(t *testing.T) {
	originalErr := errors.New("query failed")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"table check", TableCheckError(originalErr), errcode.DBTableCheckError},
		{"table exists", TableExistsCheckError("missions", originalErr),
			errcode.DBTableExistsCheckError},
		{"query tables", QueryTablesError(originalErr), errcode.DBQueryTablesError},
		{"scan table", ScanTableError(originalErr), errcode.DBScanTableError},
		{"drop table", DropTableError("missions", originalErr),
			errcode.DBDropTableError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.ErrorIs(t, gnErr.Err, originalErr, v.msg)
	}
}

func TestNotConnectedError(t *testing.T) {
	gnErr, ok := NotConnectedError().(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
