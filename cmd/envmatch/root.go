package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/envmatch/envmatch/internal/logger"
)

type rootFlags struct {
	catalogPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "envmatch",
		Short:         "Envmatch places node requirements onto SKU catalogs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.catalogPath, "catalog", "skus.yaml", "Path to the SKU catalog")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newMinCmd(flags))
	cmd.AddCommand(newMatchCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newLogger(flags *rootFlags) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:  flags.logLevel,
		Pretty: term.IsTerminal(int(os.Stderr.Fd())),
	})
}
