package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (MIDPOINT_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("x", os.Getenv("MIDPOINT_X"), &cfg.X)
	s.setString("y", os.Getenv("MIDPOINT_Y"), &cfg.Y)
	s.setString("file", os.Getenv("MIDPOINT_DATA_FILE"), &cfg.DataFile)
	s.setString("chart", os.Getenv("MIDPOINT_CHART_PATH"), &cfg.ChartPath)
	s.setString("chart-format", os.Getenv("MIDPOINT_CHART_FORMAT"), &cfg.ChartFormat)
	s.setString("addr", os.Getenv("MIDPOINT_ADDR"), &cfg.Addr)
	s.setString("log-level", os.Getenv("MIDPOINT_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("shutdown-timeout", os.Getenv("MIDPOINT_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("MIDPOINT_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	if err := s.setIntFromString("precision", os.Getenv("MIDPOINT_PRECISION"), &cfg.Precision); err != nil {
		return err
	}
	if err := s.setIntFromString("chart-width", os.Getenv("MIDPOINT_CHART_WIDTH"), &cfg.ChartWidth); err != nil {
		return err
	}
	if err := s.setIntFromString("chart-height", os.Getenv("MIDPOINT_CHART_HEIGHT"), &cfg.ChartHeight); err != nil {
		return err
	}
	if err := s.setIntFromString("max-points", os.Getenv("MIDPOINT_MAX_POINTS"), &cfg.MaxPoints); err != nil {
		return err
	}
	if err := s.setIntFromString("max-body-bytes", os.Getenv("MIDPOINT_MAX_BODY_BYTES"), &cfg.MaxBodyBytes); err != nil {
		return err
	}

	s.setBoolFromString("json", os.Getenv("MIDPOINT_JSON"), &cfg.JSON)
	s.setBoolFromString("gops", os.Getenv("MIDPOINT_GOPS"), &cfg.Gops)

	return nil
}
