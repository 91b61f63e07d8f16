package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/internal/plot"
	logpkg "github.com/bft-labs/midpoint/pkg/log"
)

// Defaults for the worked example shown when no data is supplied.
const (
	DefaultX = "1, 1.3, 1.6, 1.9, 2.2, 2.5, 2.8"
	DefaultY = "1.449, 2.06, 2.645, 3.216, 3.779, 4.338, 4.898"

	DefaultAddr = "localhost:8080"
)

// Config holds CLI configuration for midpoint.
type Config struct {
	// Input
	X        string
	Y        string
	DataFile string

	// Output
	Precision   int
	JSON        bool
	ChartPath   string
	ChartFormat string
	ChartWidth  int
	ChartHeight int

	// serve
	Addr            string
	ShutdownTimeout time.Duration
	MaxPoints       int
	MaxBodyBytes    int

	// watch
	Debounce time.Duration

	LogLevel string
	Gops     bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	opts := plot.DefaultOptions()
	return Config{
		Precision:       input.DefaultPrecision,
		ChartFormat:     string(opts.Format),
		ChartWidth:      opts.Width,
		ChartHeight:     opts.Height,
		Addr:            DefaultAddr,
		ShutdownTimeout: 5 * time.Second,
		MaxPoints:       10000,
		MaxBodyBytes:    1 << 20, // 1MB
		Debounce:        100 * time.Millisecond,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > 17 {
		return fmt.Errorf("precision must be between 0 and 17")
	}
	if c.ChartFormat == "" {
		c.ChartFormat = string(plot.PNG)
	}
	if _, err := plot.ParseFormat(c.ChartFormat); err != nil {
		return err
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive")
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if c.MaxPoints < 2 {
		return fmt.Errorf("max points must be at least 2")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	if _, err := logpkg.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// ChartOptions returns the plot options described by the configuration.
func (c Config) ChartOptions() plot.Options {
	opts := plot.DefaultOptions()
	opts.Width = c.ChartWidth
	opts.Height = c.ChartHeight
	if f, err := plot.ParseFormat(c.ChartFormat); err == nil {
		opts.Format = f
	}
	return opts
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value from a pointer, allowing zero.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a non-negative int from an environment variable.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	value = strings.ToLower(value)
	*dst = value == "true" || value == "1"
}
