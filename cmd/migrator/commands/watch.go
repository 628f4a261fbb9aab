package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/domain"
	"github.com/aiachain/migrator/internal/tui"
	"github.com/aiachain/migrator/internal/web"
)

func watchCmd() *cobra.Command {
	var (
		url   string
		conns int
		dur   time.Duration
		ramp  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the snapshot stream of a running portal",
		Long: "Follow the snapshot stream of a running portal. With --conns above 1 it\n" +
			"holds that many streams open and reports delivery counts instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if dur > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, dur)
				defer cancel()
			}

			out := cmd.OutOrStdout()
			if conns <= 1 {
				return web.Follow(ctx, nil, url, func(s domain.Snapshot) {
					line := tui.StatusLine(s)
					if line == "" {
						line = s.Action
					}
					fmt.Fprintf(out, "%s  legacy=%s native=%s  %s\n",
						s.Timestamp.Local().Format(time.TimeOnly), s.Legacy, s.Native, line)
				})
			}

			logger, err := newLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if ramp == 0 && conns > 100 {
				// 1s per 500 connections
				ramp = max(time.Duration(conns/500)*time.Second, time.Second)
				logger.Info("using default ramp-up", zap.Duration("ramp", ramp))
			}

			stats, err := web.Load(ctx, url, conns, ramp, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "done: connected=%d connect_errs=%d stream_errs=%d events=%d elapsed=%s events/s=%.2f\n",
				stats.Connected, stats.ConnectErrs, stats.StreamErrs, stats.Events,
				stats.Elapsed.Truncate(time.Millisecond), stats.EventsPerSecond())
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/api/stream", "portal stream URL")
	cmd.Flags().IntVar(&conns, "conns", 1, "number of concurrent streams")
	cmd.Flags().DurationVar(&dur, "dur", 0, "stop after this long (0 runs until interrupted)")
	cmd.Flags().DurationVar(&ramp, "ramp", 0, "spread stream starts across this window")
	return cmd
}
