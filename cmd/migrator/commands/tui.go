package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/app"
	"github.com/aiachain/migrator/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the portal in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// log lines would tear the forms apart
			logger := zap.NewNop()
			if cfg.Debug {
				var err error
				if logger, err = newLogger(true); err != nil {
					return err
				}
				defer logger.Sync()
			}

			portal, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer portal.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return tui.Run(ctx, portal, os.Stdout)
		},
	}
}
