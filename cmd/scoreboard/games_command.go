package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGamesCommand(opts *rootOptions) *cobra.Command {
	var standings bool

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List the games of the scoreboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSite(opts.configFile)
			if err != nil {
				return err
			}
			defer func() { _ = s.logger.Sync() }()

			if standings {
				fmt.Fprintln(cmd.OutOrStdout(), standingsTable(s))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), gamesTable(s))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&standings, "standings", "s", false, "List the standings instead of the games")

	return cmd
}

func gamesTable(s *site) string {
	rows := make([][]string, 0, len(s.board.Games))

	for _, g := range s.board.Games {
		rows = append(rows, []string{
			s.formatter.ShortTime(g.PlayedAt),
			s.formatter.TooltipTime(g.PlayedAt),
			g.White,
			g.Black,
			string(g.Result),
			strconv.Itoa(g.Moves),
			g.Termination,
		})
	}

	return renderTable([]column{
		{"PLAYED", alignLeft},
		{"EXACT", alignLeft},
		{"WHITE", alignLeft},
		{"BLACK", alignLeft},
		{"RESULT", alignLeft},
		{"MOVES", alignRight},
		{"TERMINATION", alignLeft},
	}, rows)
}

func standingsTable(s *site) string {
	standings := s.board.Standings()
	rows := make([][]string, 0, len(standings))

	for _, st := range standings {
		rows = append(rows, []string{
			st.Player,
			strconv.Itoa(st.Played),
			strconv.Itoa(st.Wins),
			strconv.Itoa(st.Draws),
			strconv.Itoa(st.Losses),
			strconv.FormatFloat(st.Points(), 'f', -1, 64),
		})
	}

	return renderTable([]column{
		{"PLAYER", alignLeft},
		{"GAMES", alignRight},
		{"WINS", alignRight},
		{"DRAWS", alignRight},
		{"LOSSES", alignRight},
		{"POINTS", alignRight},
	}, rows)
}
