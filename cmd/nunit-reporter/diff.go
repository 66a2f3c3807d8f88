package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/romanresh/test-runner-nunit-reporter/internal/report"
	"github.com/romanresh/test-runner-nunit-reporter/pkg/diff"
	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

func newDiffCmd() *cobra.Command {
	var exitOnChange bool

	cmd := &cobra.Command{
		Use:   "diff <old-report> <new-report>",
		Short: "Compare two reports, ignoring timestamps, durations and host details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := os.ReadFile(args[0])
			if err != nil {
				return reporterrors.NewParseError(args[0], 0, err)
			}
			updated, err := os.ReadFile(args[1])
			if err != nil {
				return reporterrors.NewParseError(args[1], 0, err)
			}

			out, stats := diff.Lines(report.Normalize(old), report.Normalize(updated), args[0], args[1])
			if !stats.Changed() {
				fmt.Fprintln(cmd.OutOrStdout(), "reports are equivalent")
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			fmt.Fprintf(cmd.OutOrStdout(), "%d added, %d removed\n", stats.Added, stats.Removed)
			if exitOnChange {
				return &exitError{code: exitFailure, msg: "reports differ", silent: true}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitOnChange, "exit-code", false, "Exit with status 1 when the reports differ")
	return cmd
}
