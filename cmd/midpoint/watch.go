package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/midpoint/internal/adapters/fs"
	"github.com/bft-labs/midpoint/internal/app"
	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/internal/ports"
	"github.com/bft-labs/midpoint/internal/watch"
	"github.com/bft-labs/midpoint/pkg/log"
)

func newWatchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the integral whenever the data file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.DataFile == "" {
				return errors.New("watch needs a data file (--file)")
			}

			var sink ports.ChartSink
			if c.cfg.ChartPath != "" {
				sink = fs.NewChartFile(c.cfg.ChartPath, c.cfg.ChartOptions())
			}

			out := cmd.OutOrStdout()
			calc := app.NewCalculator(app.CalculatorConfig{Precision: c.cfg.Precision}, c.logger, nil)
			w := watch.New(watch.Config{
				Path:     c.cfg.DataFile,
				Debounce: c.cfg.Debounce,
			}, calc, sink, c.logger, func(res app.Result, err error) {
				if err != nil {
					c.logger.Error(input.Message(err), log.String("path", c.cfg.DataFile))
					return
				}
				fmt.Fprintf(out, "Integral: %s\n", res.Formatted)
			})

			ctx, cancel := signalContext(c.logger)
			defer cancel()
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "quiet period after a change before recomputing")
	return cmd
}
