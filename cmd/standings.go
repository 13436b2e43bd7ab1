package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cnc-league/cnc/internal/cli"
	"github.com/cnc-league/cnc/internal/errors"
	"github.com/cnc-league/cnc/internal/league"
	"github.com/cnc-league/cnc/internal/logger"
	"github.com/cnc-league/cnc/internal/ranking"
)

var (
	standingsDataDir  string
	standingsByRating bool

	standingsCmd = &cobra.Command{
		Use:   "standings",
		Short: "Print the maturity league standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(standingsDataDir, "maturity.csv")
			matches, err := league.LoadMatches(path)
			if err != nil {
				return errors.NewMatchLogError(path, err)
			}

			grid := league.BuildGrid(matches)
			if standingsByRating {
				logger.User.Info(ratingsTable(grid))
				return nil
			}

			standings := ranking.AggregateStandings(league.Results(matches), grid.Participants())
			table := cli.NewTable("#", "Player", "W", "L", "D", "Score")
			for i, s := range standings {
				table.AddRow(
					strconv.Itoa(i+1),
					s.Name,
					strconv.Itoa(s.Wins),
					strconv.Itoa(s.Losses),
					strconv.Itoa(s.Draws),
					fmt.Sprintf("%.1f", s.Score),
				)
			}
			logger.User.Info(table.String())
			return nil
		},
	}
)

// ratingsTable renders the Elo view of the league.
func ratingsTable(grid league.Grid) string {
	stats := league.ComputeStats(grid, grid.Participants())
	league.SortByRating(stats)

	table := cli.NewTable("#", "Player", "Elo", "W", "L", "Matches")
	for i, s := range stats {
		table.AddRow(
			strconv.Itoa(i+1),
			s.Name,
			fmt.Sprintf("%.0f", s.Elo),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.TotalMatches),
		)
	}
	return table.String()
}

func init() {
	standingsCmd.Flags().StringVar(&standingsDataDir, "data-dir", "data", "Directory holding maturity.csv")
	standingsCmd.Flags().BoolVar(&standingsByRating, "by-rating", false, "Show the Elo ratings table instead of the win/loss standings")
	rootCmd.AddCommand(standingsCmd)
}
