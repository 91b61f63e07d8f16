package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	X        string `toml:"x"`
	Y        string `toml:"y"`
	DataFile string `toml:"data_file"`

	Precision   *int   `toml:"precision"`
	JSON        *bool  `toml:"json"`
	ChartPath   string `toml:"chart_path"`
	ChartFormat string `toml:"chart_format"`
	ChartWidth  int    `toml:"chart_width"`
	ChartHeight int    `toml:"chart_height"`

	Addr            string `toml:"addr"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	MaxPoints       int    `toml:"max_points"`
	MaxBodyBytes    int    `toml:"max_body_bytes"`

	Debounce string `toml:"debounce"`

	LogLevel string `toml:"log_level"`
	Gops     *bool  `toml:"gops"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.midpoint/config.toml, or "" if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".midpoint", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("x", fc.X, &cfg.X)
	s.setString("y", fc.Y, &cfg.Y)
	s.setString("file", fc.DataFile, &cfg.DataFile)
	s.setString("chart", fc.ChartPath, &cfg.ChartPath)
	s.setString("chart-format", fc.ChartFormat, &cfg.ChartFormat)
	s.setString("addr", fc.Addr, &cfg.Addr)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setIntPtr("precision", fc.Precision, &cfg.Precision)
	s.setInt("chart-width", fc.ChartWidth, &cfg.ChartWidth)
	s.setInt("chart-height", fc.ChartHeight, &cfg.ChartHeight)
	s.setInt("max-points", fc.MaxPoints, &cfg.MaxPoints)
	s.setInt("max-body-bytes", fc.MaxBodyBytes, &cfg.MaxBodyBytes)

	s.setBool("json", fc.JSON, &cfg.JSON)
	s.setBool("gops", fc.Gops, &cfg.Gops)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
