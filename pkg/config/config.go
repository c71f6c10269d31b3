// Package config provides configuration management for GNspace.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Store: driver, path, host, port, user, password, database, ssl_mode
//   - Server: port, read_timeout, write_timeout
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNSPACE_ prefix with underscores for nesting:
//
//	GNSPACE_STORE_DRIVER=postgres
//	GNSPACE_STORE_HOST=localhost
//	GNSPACE_SERVER_PORT=5555
//	GNSPACE_LOG_LEVEL=info
package config

import "path/filepath"

const (
	// DriverSQLite keeps data in a local SQLite file.
	DriverSQLite = "sqlite"
	// DriverPostgres keeps data in a PostgreSQL database.
	DriverPostgres = "postgres"
)

// Config represents the complete GNspace configuration.
type Config struct {
	// Store selects and configures the database backend.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StoreConfig contains database connection parameters.
// Path is used by the sqlite driver, the rest by the postgres driver.
type StoreConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path to the SQLite database file. Empty means
	// a gnspace.db file in the data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port the HTTP server listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// ReadTimeout in seconds for reading a whole request.
	ReadTimeout int `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout in seconds for writing a response.
	WriteTimeout int `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Store: StoreConfig{
			Driver:   DriverSQLite,
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gnspace",
			SSLMode:  "disable",
		},
		Server: ServerConfig{
			Port:         5555,
			ReadTimeout:  10,
			WriteTimeout: 10,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
	}

	return res
}

// SQLitePath returns the SQLite database file location.
func (c *Config) SQLitePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(c.HomeDir), AppName+".db")
}
