package iohttp

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
)

// ServerError is returned when the HTTP server cannot start or stop.
func ServerError(addr string, err error) error {
	msg := `HTTP server at <em>%s</em> failed

<em>How to fix:</em>
  1. Check that the port is not used by another program
  2. Choose another port with 'gnspace serve --port'`

	return &gn.Error{
		Code: errcode.ServerError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("http server %s: %w", addr, err),
	}
}
