// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// TripOptions selects the trip and logging for every command.
type TripOptions struct {
	Trip     string
	LogLevel string
}

// AddTripArgs registers the persistent trip flags on the root command.
func AddTripArgs(cmd *cobra.Command, o *TripOptions) {
	cmd.PersistentFlags().StringVarP(&o.Trip, "trip", "t", "",
		"Trip to work on. Defaults to the configured trip.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error. Defaults to the configured level.")
}
