package agency

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
)

// NotFoundError is returned when a record with the given id does not
// exist. Entity is a capitalized record type, e.g. "Scientist".
func NotFoundError(entity string, id int64) error {
	msg := "<em>%s</em> with id <em>%d</em> not found"
	vars := []any{entity, id}
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s %d not found",
			strings.ToLower(entity), id),
	}
}

// ValidationError is returned when required fields are empty.
// Each message describes one failed field.
func ValidationError(msgs ...string) error {
	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  "Invalid record: %s",
		Vars: []any{strings.Join(msgs, "; ")},
		Err:  joinMessages(msgs),
	}
}

// ReferenceError is returned when a mission refers to a scientist or a
// planet that does not exist.
func ReferenceError(msgs ...string) error {
	return &gn.Error{
		Code: errcode.ReferenceError,
		Msg:  "Broken reference: %s",
		Vars: []any{strings.Join(msgs, "; ")},
		Err:  joinMessages(msgs),
	}
}

// MissingReference formats the message of a foreign key that does not
// resolve.
func MissingReference(field string, id int64) string {
	entity := strings.TrimSuffix(field, "_id")
	return fmt.Sprintf("%s %d does not reference an existing %s",
		field, id, entity)
}

// StoreError wraps unexpected failures of a storage backend.
func StoreError(op string, err error) error {
	msg := "Database operation <em>%s</em> failed"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s failed: %w",
			fn.Name(), op, err),
	}
}

func joinMessages(msgs []string) error {
	errs := make([]error, len(msgs))
	for i := range msgs {
		errs[i] = errors.New(msgs[i])
	}
	return errors.Join(errs...)
}

// Code returns the error code of err, or errcode.UnknownError if err
// does not carry one.
func Code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}

// IsNotFound is true for errors created by NotFoundError.
func IsNotFound(err error) bool {
	return Code(err) == errcode.NotFoundError
}

// IsInvalid is true for validation and reference errors. Callers of
// the store are not expected to tell them apart.
func IsInvalid(err error) bool {
	code := Code(err)
	return code == errcode.ValidationError ||
		code == errcode.ReferenceError
}

// Messages returns human-readable messages of an error, one per failed
// field for validation and reference errors.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		err = gnErr.Err
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var res []string
		for _, e := range joined.Unwrap() {
			res = append(res, e.Error())
		}
		return res
	}
	return []string{err.Error()}
}
