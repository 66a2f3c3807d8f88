package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "nunit-reporter",
		Short:         "Convert test runner results into an NUnit 2 XML report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Load NUNIT_REPORTER_* settings from a .env file")

	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
