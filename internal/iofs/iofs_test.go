package iofs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// second call must not fail on existing dirs
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	dirs := []string{
		filepath.Join(home, ".config", "gnspace"),
		filepath.Join(home, ".local", "share", "gnspace"),
		filepath.Join(home, ".local", "share", "gnspace", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	}
}

func TestEnsureDirs_Error(t *testing.T) {
	home := t.TempDir()
	// a file where a directory is expected
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config"), nil, 0644))

	err := EnsureDirs(home)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
}

func TestTouchDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, touchDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, touchDir(dir))
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	path := filepath.Join(home, ".config", "gnspace", "config.yaml")

	require.NoError(t, EnsureConfigFile(home))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	custom := "server:\n  port: 8080\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(home))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestEnsureConfigFile_NoDir(t *testing.T) {
	err := EnsureConfigFile(t.TempDir())
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CopyFileError, gnErr.Code)
}

func TestConfigYAML(t *testing.T) {
	for _, section := range []string{"store:", "server:", "log:"} {
		assert.Contains(t, ConfigYAML, section)
	}
}
