// Package cmd holds the loancalc command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"loan-calculator/config"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

func Execute() error {
	root := newRootCmd()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loancalc",
		Short:         "Home loan calculator: EMI, principal/interest split and schedules",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				loaded.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("log-format") {
				loaded.LogFormat, _ = flags.GetString("log-format")
			}
			if err := loaded.Validate(); err != nil {
				return err
			}

			l, err := loaded.NewLogger(os.Stderr)
			if err != nil {
				return err
			}
			slog.SetDefault(l)
			cfg, logger = loaded, l
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")

	root.AddCommand(serveCmd(), calcCmd())
	return root
}
