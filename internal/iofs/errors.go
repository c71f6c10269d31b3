package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
)

// CreateDirError reports a config, data or log directory that could
// not be created.
func CreateDirError(dir string, err error) error {
	return pathError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", dir,
		"cannot create directory", err)
}

// CopyFileError reports a failure to write the default config.yaml.
func CopyFileError(file string, err error) error {
	return pathError(errcode.CopyFileError,
		"Cannot write default config to <em>%s</em>", file,
		"cannot copy file", err)
}

// ReadFileError reports a config file that exists but cannot be read
// or parsed.
func ReadFileError(path string, err error) error {
	return pathError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", path,
		"cannot read "+path, err)
}

// pathError records the function that called the exported
// constructor, so runtime.Caller skips two frames.
func pathError(
	code gn.ErrorCode,
	msg, path, detail string,
	err error,
) error {
	caller := "unknown"
	if pc, _, _, ok := runtime.Caller(2); ok {
		caller = runtime.FuncForPC(pc).Name()
	}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: %s: %w", caller, detail, err),
	}
}
