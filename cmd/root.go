package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cnc-league/cnc/internal/errors"
	"github.com/cnc-league/cnc/internal/logger"
)

var (
	debug    bool
	verbose  bool
	jsonLogs bool
	quiet    bool
	version  = "v0.1.0"

	rootCmd = &cobra.Command{
		Use:           "cnc",
		Short:         "Club competition reports for the maturity league and hive games",
		Long:          `Generates the static competition report site: the maturity league match matrix with Elo ratings and tiered rankings, and the hivegame.com matchup matrix built from the local game cache.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(verbose || debug, jsonLogs, quiet)
		},
	}
)

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, errors.FormatForCLI(err))
	}
	return err
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
}
