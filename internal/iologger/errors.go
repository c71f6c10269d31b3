package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
)

// CreateLogFileError is returned by Init when the log destination is
// "file" and gnspace.log cannot be opened.
func CreateLogFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open log file <em>%s</em>, check the log directory",
		Vars: []any{path},
		Err:  fmt.Errorf("iologger.Init: cannot open %s: %w", path, err),
	}
}
