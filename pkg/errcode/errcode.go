package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Record errors
	NotFoundError
	ValidationError
	ReferenceError
	StoreError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// SQLite errors
	SQLiteOpenError
	SQLiteSchemaError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Seed errors
	SeedReadError
	SeedWriteError

	// HTTP server errors
	ServerError
)
