package cmd

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/cnc-league/cnc/internal/config"
	"github.com/cnc-league/cnc/internal/errors"
	"github.com/cnc-league/cnc/internal/ranking"
	"github.com/cnc-league/cnc/internal/report"
)

var (
	buildDataDir string
	buildOutput  string

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Generate the static report site",
		Long:  `Loads the match log, roster, and game cache from the data directory and renders the full site into the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := &report.Builder{DataDir: buildDataDir, OutputDir: buildOutput}
			if err := builder.Build(); err != nil {
				return wrapBuildError(builder.ConfigPath(), err)
			}
			return nil
		},
	}
)

// wrapBuildError upgrades known build failures to structured CLI errors.
func wrapBuildError(configPath string, err error) error {
	var cycleErr *ranking.CycleError
	if stderrors.As(err, &cycleErr) {
		return errors.NewRankingCycleError(err)
	}
	var unknownErr *ranking.UnknownParticipantError
	if stderrors.As(err, &unknownErr) {
		return errors.NewUnknownParticipantError(err)
	}
	if wrapped := wrapConfigError(configPath, err); wrapped != nil {
		return wrapped
	}
	return err
}

// wrapConfigError upgrades configuration failures to structured CLI errors.
// It returns nil when err is not a configuration error.
func wrapConfigError(path string, err error) error {
	switch {
	case stderrors.Is(err, config.ErrInvalidConfig):
		return errors.NewConfigInvalidError(path, err)
	case stderrors.Is(err, config.ErrLoadConfig):
		return errors.NewConfigLoadError(path, err)
	}
	return nil
}

func init() {
	buildCmd.Flags().StringVar(&buildDataDir, "data-dir", "data", "Directory holding hive.toml, maturity.csv, and the game cache")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "build", "Output directory for the generated site")
	rootCmd.AddCommand(buildCmd)
}
