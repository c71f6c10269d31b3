package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		msg    string
		err    error
		code   gn.ErrorCode
		path   string
		errStr string
	}{
		{"create dir", CreateDirError("/a/dir", cause),
			errcode.CreateDirError, "/a/dir", "cannot create directory"},
		{"copy file", CopyFileError("/a/config.yaml", cause),
			errcode.CopyFileError, "/a/config.yaml", "cannot copy file"},
		{"read file", ReadFileError("/a/seed.yaml", cause),
			errcode.ReadFileError, "/a/seed.yaml", "cannot read /a/seed.yaml"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(v.err, &gnErr))
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			assert.Equal(t, []any{v.path}, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), v.errStr)
			assert.Contains(t, gnErr.Err.Error(), "from ")
		})
	}
}
