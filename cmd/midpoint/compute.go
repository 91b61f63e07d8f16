package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/midpoint/internal/adapters/fs"
	"github.com/bft-labs/midpoint/internal/app"
	"github.com/bft-labs/midpoint/internal/cliconfig"
	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/pkg/integrate"
	"github.com/bft-labs/midpoint/pkg/log"
)

type jsonResult struct {
	Result    float64             `json:"result"`
	Formatted string              `json:"formatted"`
	Ascending bool                `json:"ascending"`
	Segments  []integrate.Segment `json:"segments"`
}

func runCompute(c *cli, out io.Writer) error {
	calc := app.NewCalculator(app.CalculatorConfig{Precision: c.cfg.Precision}, c.logger, nil)

	res, err := calculate(c, calc)
	if err != nil {
		return errors.New(input.Message(err))
	}

	if c.cfg.ChartPath != "" {
		chart := fs.NewChartFile(c.cfg.ChartPath, c.cfg.ChartOptions())
		if err := chart.Save(context.Background(), res.Series, res.Estimate); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		c.logger.Info("chart written", log.String("path", chart.Path()))
	}

	if c.cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResult{
			Result:    res.Value(),
			Formatted: res.Formatted,
			Ascending: res.Ascending,
			Segments:  res.Estimate.Segments,
		})
	}
	_, err = fmt.Fprintf(out, "Integral: %s\n", res.Formatted)
	return err
}

// calculate picks the input: a data file, then --x/--y, then the worked example.
func calculate(c *cli, calc *app.Calculator) (app.Result, error) {
	if c.cfg.DataFile != "" {
		s, err := input.LoadFile(c.cfg.DataFile)
		if err != nil {
			return app.Result{}, err
		}
		return calc.Calculate("file", s)
	}

	xs, ys := c.cfg.X, c.cfg.Y
	if xs == "" && ys == "" {
		c.logger.Info("no input given, using the worked example")
		xs, ys = cliconfig.DefaultX, cliconfig.DefaultY
	}
	return calc.CalculateText("cli", xs, ys)
}
