package ioseed

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
)

// ReadError is returned when seed data cannot be parsed or refers to
// records it does not define.
func ReadError(err error) error {
	return &gn.Error{
		Code: errcode.SeedReadError,
		Msg:  "Cannot read seed data",
		Err:  fmt.Errorf("cannot read seed data: %w", err),
	}
}

// WriteError is returned when a seed record cannot be stored.
func WriteError(entity, name string, err error) error {
	msg := "Cannot store %s <em>%s</em>"
	return &gn.Error{
		Code: errcode.SeedWriteError,
		Msg:  msg,
		Vars: []any{entity, name},
		Err:  fmt.Errorf("cannot store %s %q: %w", entity, name, err),
	}
}
