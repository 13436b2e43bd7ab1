package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cnc-league/cnc/internal/cli"
	"github.com/cnc-league/cnc/internal/errors"
	"github.com/cnc-league/cnc/internal/logger"
	"github.com/cnc-league/cnc/internal/want"
)

var (
	wantJSON   bool
	wantDryRun bool
	wantYes    bool

	wantCmd = &cobra.Command{
		Use:   "want tool[@version]...",
		Short: "Plan and install missing tools via mise",
		Long:  `Builds an installation plan for the requested tools, shows it, and installs the missing ones through mise.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var plan want.Plan
			for _, spec := range args {
				plan.AddStep(want.ParseToolSpec(spec))
			}

			if wantJSON {
				data, err := plan.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			display, err := plan.Display()
			if err != nil {
				return wrapPlanError(err)
			}

			pending := plan.Unsatisfied()
			if len(pending) == 0 {
				logger.User.Info(cli.Success("All requirements are already satisfied"))
				return nil
			}
			logger.User.Info(display)

			if wantDryRun {
				return nil
			}

			ok, err := cli.Confirm(os.Stdin, cmd.OutOrStdout(), wantYes,
				fmt.Sprintf("\nThis will install %d item(s) using mise. Proceed?", len(pending)))
			if err != nil {
				return err
			}
			if !ok {
				logger.User.Info("Aborted")
				return nil
			}

			if err := plan.Execute(cmd.Context(), want.MiseInstaller{}); err != nil {
				return errors.NewPlanError(errors.CodePlanExec, err)
			}
			logger.User.Info(cli.Success("Installation plan completed"))
			return nil
		},
	}
)

func wrapPlanError(err error) error {
	if stderrors.Is(err, want.ErrPlanCycle) {
		return errors.NewPlanError(errors.CodePlanCycle, err)
	}
	return err
}

func init() {
	wantCmd.Flags().BoolVar(&wantJSON, "json", false, "Print the installation plan as JSON instead of executing it")
	wantCmd.Flags().BoolVar(&wantDryRun, "dry-run", false, "Show the plan without installing anything")
	wantCmd.Flags().BoolVarP(&wantYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(wantCmd)
}
