package iosqlite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
)

// OpenError is returned when the SQLite file cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open SQLite database <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory exists and is writable
  2. Set 'store.path' in the configuration or GNSPACE_STORE_PATH`

	return &gn.Error{
		Code: errcode.SQLiteOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open sqlite db %s: %w", path, err),
	}
}

// SchemaError is returned when tables cannot be created.
func SchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SQLiteSchemaError,
		Msg:  "Cannot create SQLite tables",
		Err:  fmt.Errorf("cannot apply schema: %w", err),
	}
}
