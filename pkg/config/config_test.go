package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gnspace/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnspace"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "gnspace"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnspace", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnspace", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Store defaults
		assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
		assert.Empty(t, cfg.Store.Path)
		assert.Equal(t, "localhost", cfg.Store.Host)
		assert.Equal(t, 5432, cfg.Store.Port)
		assert.Equal(t, "postgres", cfg.Store.User)
		assert.Equal(t, "gnspace", cfg.Store.Database)
		assert.Equal(t, "disable", cfg.Store.SSLMode)

		// Server defaults
		assert.Equal(t, 5555, cfg.Server.Port)
		assert.Equal(t, 10, cfg.Server.ReadTimeout)
		assert.Equal(t, 10, cfg.Server.WriteTimeout)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestSQLitePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/ann")})
	assert.Equal(t,
		filepath.Join("/home/ann", ".local", "share", "gnspace", "gnspace.db"),
		cfg.SQLitePath())

	cfg.Update([]config.Option{config.OptStorePath("/tmp/space.db")})
	assert.Equal(t, "/tmp/space.db", cfg.SQLitePath())
}

func TestOptionStoreDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets postgres",
			input:    "postgres",
			expected: "postgres",
		},
		{
			name:     "normalizes to lowercase",
			input:    " SQLite ",
			expected: "sqlite",
		},
		{
			name:     "ignores invalid value",
			input:    "mysql",
			expected: "sqlite", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptStoreDriver(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Store.Driver)
		})
	}
}

func TestOptionStoreHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptStoreHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Store.Host)
		})
	}
}

func TestOptionServerPort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    8080,
			expected: 8080,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5555,
		},
		{
			name:     "ignores out of range",
			input:    70000,
			expected: 5555,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptServerPort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Server.Port)
		})
	}
}

func TestOptionStoreSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "normalizes to lowercase",
			input:    "VERIFY-FULL",
			expected: "verify-full",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptStoreSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Store.SSLMode)
		})
	}
}

func TestOptionLog(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("trace"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("stdin"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptStoreDriver("postgres"),
		config.OptStorePath("/data/space.db"),
		config.OptStoreHost("db.example.org"),
		config.OptStorePort(6543),
		config.OptServerPort(8000),
		config.OptServerWriteTimeout(30),
		config.OptLogLevel("warn"),
		config.OptHomeDir("/home/ann"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Store, dst.Store)
	assert.Equal(t, src.Server, dst.Server)
	assert.Equal(t, src.Log, dst.Log)
	assert.Empty(t, dst.HomeDir, "HomeDir is runtime-only")
}
