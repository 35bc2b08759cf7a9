package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
)

var errInvalidInput = errors.New("some timestamps could not be formatted")

func newFormatCommand() *cobra.Command {
	var (
		tooltip  bool
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "format TIMESTAMP...",
		Short: "Print timestamps the way the scoreboard shows them",
		Example: `  scoreboard format 2024-03-05T08:30:00
  scoreboard format --tooltip --timezone Europe/Prague 2024-03-05T07:30:00Z`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("error loading time zone %q: %w", timezone, err)
			}

			formatter, err := timestamp.NewFormatter(timestamp.Locale, location)
			if err != nil {
				return err
			}

			format := formatter.Short
			if tooltip {
				format = formatter.Tooltip
			}

			failed := false

			for _, ts := range args {
				formatted, err := format(ts)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					fmt.Fprintln(cmd.OutOrStdout(), timestamp.InvalidDate)
					failed = true

					continue
				}

				fmt.Fprintln(cmd.OutOrStdout(), formatted)
			}

			if failed {
				return errInvalidInput
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&tooltip, "tooltip", "t", false, "Print the long tooltip form instead of the short form")
	cmd.Flags().StringVar(&timezone, "timezone", "UTC", "Time zone to show the timestamps in")

	return cmd
}
