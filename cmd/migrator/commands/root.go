// Package commands holds the migrator CLI.
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/config"
)

var (
	configPath string
	cfg        config.Config
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "migrator",
		Short:         "AIA token migration portal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Get(configPath)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (defaults apply when empty)")

	root.AddCommand(serveCmd(), tuiCmd(), historyCmd(), watchCmd())
	return root.Execute()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
