package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ostafen/growtable/internal/env"
)

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     env.AppName,
		Short:   env.AppName + " - growable chained hash table with pluggable key strategies",
		Version: env.Version,
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().Bool("no-log", false, "disable logging")

	rootCmd.AddCommand(
		DefineDemoCommand(),
		DefineLoadCommand(),
		DefineMountCommand(),
		DefineStrategiesCommand(),
	)
	return rootCmd
}
