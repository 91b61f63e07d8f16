package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/midpoint/internal/cliconfig"
	"github.com/bft-labs/midpoint/pkg/log"
)

const helpBanner = `
 __  __ _     _             _       _
|  \/  (_) __| |_ __   ___ (_)_ __ | |_
| |\/| | |/ _' | '_ \ / _ \| | '_ \| __|
| |  | | | (_| | |_) | (_) | | | | | |_
|_|  |_|_|\__,_| .__/ \___/|_|_| |_|\__|
               |_|
`

const helpDescription = `
Approximate the integral of tabulated data with the composite midpoint rule.

Highlights:
  - Each subinterval's height is read off the piecewise-linear interpolant at its midpoint.
  - Reads comma-separated lists, or a TOML/YAML data file; configure via file, env, or flags.
  - Renders the data and the midpoint-rule area as a PNG or SVG chart.
  - Serves a form page and a JSON API, or recomputes whenever a data file changes.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  midpoint --x "1, 1.3, 1.6, 1.9" --y "1.449, 2.06, 2.645, 3.216"
  midpoint --file data.toml --chart area.svg --json
  midpoint serve --addr :8080
  midpoint watch --file data.yaml --chart area.png
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the configuration shared by all commands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  *log.ZerologAdapter
}

// load resolves the configuration: flags win over MIDPOINT_* env vars,
// which win over the config file, which wins over defaults.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	} else if c.cfgPath != "" {
		return fmt.Errorf("config file %s not found", c.cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = c.cfg.Logger()
	c.logger.Debug("configuration", log.Any("config", c.cfg))

	if c.cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("start gops agent: %w", err)
		}
		c.logger.Info("gops agent started")
	}
	return nil
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	c.logger = c.cfg.Logger()

	root := &cobra.Command{
		Use:     "midpoint",
		Short:   "Approximate the integral of tabulated data with the midpoint rule",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(c, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.midpoint/config.toml)")
	pf.StringVar(&c.cfg.X, "x", c.cfg.X, "comma-separated x values, ascending")
	pf.StringVar(&c.cfg.Y, "y", c.cfg.Y, "comma-separated y values")
	pf.StringVar(&c.cfg.DataFile, "file", c.cfg.DataFile, "TOML or YAML data file with x and y")
	pf.StringVar(&c.cfg.ChartPath, "chart", c.cfg.ChartPath, "write a chart to this path (.png or .svg)")
	pf.StringVar(&c.cfg.ChartFormat, "chart-format", c.cfg.ChartFormat, "chart format when the path has no known extension (png, svg)")
	pf.IntVar(&c.cfg.ChartWidth, "chart-width", c.cfg.ChartWidth, "chart width in pixels")
	pf.IntVar(&c.cfg.ChartHeight, "chart-height", c.cfg.ChartHeight, "chart height in pixels")
	pf.IntVar(&c.cfg.Precision, "precision", c.cfg.Precision, "decimals in the printed result")
	pf.BoolVar(&c.cfg.JSON, "json", c.cfg.JSON, "print the result and its segments as JSON")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&c.cfg.Gops, "gops", c.cfg.Gops, "start the gops diagnostics agent")

	root.AddCommand(newServeCmd(c), newWatchCmd(c))

	if err := root.Execute(); err != nil {
		c.logger.Error("midpoint", log.Err(err))
		os.Exit(1)
	}
}
