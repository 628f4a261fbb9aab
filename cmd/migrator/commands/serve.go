package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aiachain/migrator/internal/app"
	"github.com/aiachain/migrator/internal/domain"
	"github.com/aiachain/migrator/internal/web"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				cfg.ListenAddr = listen
			}

			logger, err := newLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			portal, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer portal.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := web.NewServer(cfg.ListenAddr, portal.Workflow, portal.Connector, portal, portal.Events, logger.Named("web"))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Start(ctx)
			})
			g.Go(func() error {
				logTransitions(ctx, portal, logger.Named("events"))
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides the config")
	return cmd
}

// logTransitions writes one line per status change until ctx is done.
func logTransitions(ctx context.Context, portal *app.Portal, logger *zap.Logger) {
	sub := portal.Events.Subscribe()
	defer portal.Events.Unsubscribe(sub)

	last := domain.StatusIdle
	connected := false
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-sub:
			if snap.Connected != connected {
				connected = snap.Connected
				logger.Info("wallet session changed",
					zap.Bool("connected", snap.Connected),
					zap.String("provider", snap.Provider),
					zap.String("address", snap.ShortAddress))
			}
			if snap.Status != last {
				last = snap.Status
				logger.Info("migration status",
					zap.String("status", snap.Status.String()),
					zap.String("legacy", snap.Legacy),
					zap.String("native", snap.Native))
			}
		}
	}
}
