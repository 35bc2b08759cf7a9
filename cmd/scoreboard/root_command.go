package main

import (
	"github.com/spf13/cobra"

	"github.com/swift502/MagChess/scoreboard/pkg/config"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "scoreboard",
		Short:         "Build the MagChess scoreboard site",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "Path to the site config file")

	cmd.AddCommand(
		newGenerateCommand(opts),
		newServeCommand(opts),
		newGamesCommand(opts),
		newFormatCommand(),
	)

	return cmd
}
