package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/midpoint/internal/cliconfig"
	"github.com/bft-labs/midpoint/internal/server"
	"github.com/bft-labs/midpoint/pkg/log"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator form, JSON API and charts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaultX, defaultY := c.cfg.X, c.cfg.Y
			if defaultX == "" && defaultY == "" {
				defaultX, defaultY = cliconfig.DefaultX, cliconfig.DefaultY
			}

			srv, err := server.New(server.Config{
				Addr:            c.cfg.Addr,
				ShutdownTimeout: c.cfg.ShutdownTimeout,
				MaxPoints:       c.cfg.MaxPoints,
				MaxBodyBytes:    int64(c.cfg.MaxBodyBytes),
				Precision:       c.cfg.Precision,
				Chart:           c.cfg.ChartOptions(),
				DefaultX:        defaultX,
				DefaultY:        defaultY,
			}, c.logger, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(c.logger)
			defer cancel()
			return srv.Start(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.cfg.Addr, "addr", c.cfg.Addr, "listen address")
	f.DurationVar(&c.cfg.ShutdownTimeout, "shutdown-timeout", c.cfg.ShutdownTimeout, "graceful shutdown timeout")
	f.IntVar(&c.cfg.MaxPoints, "max-points", c.cfg.MaxPoints, "maximum samples per series")
	f.IntVar(&c.cfg.MaxBodyBytes, "max-body-bytes", c.cfg.MaxBodyBytes, "maximum request body size")
	return cmd
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(logger log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			logger.Info("received signal, stopping...", log.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
