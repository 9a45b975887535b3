package cli

import (
	"github.com/spf13/cobra"

	"hycu-check/src/config"
	"hycu-check/src/logging"
)

const (
	flagOutput   = "output"
	flagLogLevel = "log-level"
)

// addGlobalFlags adds the connection, threshold and output flags to the root
// command.
func addGlobalFlags(cmd *cobra.Command) {
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringP(flagOutput, "o", "checkmk", "Output format: checkmk|json")
	cmd.PersistentFlags().String(flagLogLevel, logging.LevelError, "Log level on stderr: error|info|debug")
}

// getConfig reads global flags, the config file and the environment into a
// validated configuration.
func getConfig(cmd *cobra.Command, d *deps) (config.Config, error) {
	return config.FromFlags(cmd.Root().PersistentFlags(), d.lookupEnv)
}
