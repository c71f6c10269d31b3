package cmd

import (
	"github.com/gnames/gnspace/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

// applyFlags updates the configuration with flags the user set
// explicitly. Flags take precedence over config.yaml and environment.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	var opts []config.Option
	for _, f := range flags {
		opts = append(opts, f(cmd)...)
	}
	cfg.Update(opts)
}

func portFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("port") {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	return []config.Option{config.OptServerPort(port)}
}

func storePathFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("db") {
		return nil
	}
	path, _ := cmd.Flags().GetString("db")
	return []config.Option{
		config.OptStoreDriver(config.DriverSQLite),
		config.OptStorePath(path),
	}
}
