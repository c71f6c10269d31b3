/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/internal/iofs"
	"github.com/gnames/gnspace/internal/iologger"
	gnspace "github.com/gnames/gnspace/pkg"
	"github.com/gnames/gnspace/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd creates the gnspace command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			gnspace.Version, gnspace.Build),
		Use:   "gnspace",
		Short: "Records service of the Interplanetary Space Travel Agency",
		Long: `GNspace keeps scientists, planets and missions in SQLite or
PostgreSQL and serves them as a JSON REST API.

Configuration is read from ~/.config/gnspace/config.yaml and can be
overridden by GNSPACE_* environment variables and command flags.

Examples:
  gnspace create
  gnspace seed
  gnspace serve --port 8080`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for gnspace")

	rootCmd.AddCommand(getServeCmd(), getCreateCmd(), getSeedCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Logging with defaults until the user's settings are known.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Store.Driver,
	)
	return nil
}

// Execute runs the gnspace command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envVars maps config keys to the environment variables that override
// them. They match the fields of config.ToOptions().
var envVars = map[string]string{
	"store.driver":         "GNSPACE_STORE_DRIVER",
	"store.path":           "GNSPACE_STORE_PATH",
	"store.host":           "GNSPACE_STORE_HOST",
	"store.port":           "GNSPACE_STORE_PORT",
	"store.user":           "GNSPACE_STORE_USER",
	"store.password":       "GNSPACE_STORE_PASSWORD",
	"store.database":       "GNSPACE_STORE_DATABASE",
	"store.ssl_mode":       "GNSPACE_STORE_SSL_MODE",
	"server.port":          "GNSPACE_SERVER_PORT",
	"server.read_timeout":  "GNSPACE_SERVER_READ_TIMEOUT",
	"server.write_timeout": "GNSPACE_SERVER_WRITE_TIMEOUT",
	"log.level":            "GNSPACE_LOG_LEVEL",
	"log.format":           "GNSPACE_LOG_FORMAT",
	"log.destination":      "GNSPACE_LOG_DESTINATION",
}

func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("GNSPACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, env := range envVars {
		_ = v.BindEnv(key, env)
	}

	v.AutomaticEnv()
}
