package cliconfig

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"MIDPOINT_X":                "1, 2",
				"MIDPOINT_Y":                "3, 4",
				"MIDPOINT_ADDR":             ":7000",
				"MIDPOINT_SHUTDOWN_TIMEOUT": "2s",
				"MIDPOINT_PRECISION":        "0",
				"MIDPOINT_MAX_POINTS":       "100",
				"MIDPOINT_JSON":             "true",
			},
			changed: map[string]bool{},
			initial: Config{Precision: 4},
			expected: Config{
				X:               "1, 2",
				Y:               "3, 4",
				Addr:            ":7000",
				ShutdownTimeout: 2 * time.Second,
				Precision:       0,
				MaxPoints:       100,
				JSON:            true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"MIDPOINT_X": "9, 9",
				"MIDPOINT_Y": "8, 8",
			},
			changed:  map[string]bool{"x": true},
			initial:  Config{X: "1, 2"},
			expected: Config{X: "1, 2", Y: "8, 8"},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"MIDPOINT_DEBOUNCE": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"MIDPOINT_CHART_WIDTH": "wide",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"MIDPOINT_GOPS": "1",
			},
			changed:  map[string]bool{},
			expected: Config{Gops: true},
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"MIDPOINT_JSON": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{JSON: true},
			expected: Config{JSON: false},
		},
		{
			name: "chart settings",
			envVars: map[string]string{
				"MIDPOINT_CHART_PATH":   "/tmp/out.svg",
				"MIDPOINT_CHART_FORMAT": "svg",
				"MIDPOINT_CHART_HEIGHT": "480",
				"MIDPOINT_DATA_FILE":    "/data/points.yaml",
				"MIDPOINT_LOG_LEVEL":    "warn",
			},
			changed: map[string]bool{},
			expected: Config{
				ChartPath:   "/tmp/out.svg",
				ChartFormat: "svg",
				ChartHeight: 480,
				DataFile:    "/data/points.yaml",
				LogLevel:    "warn",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	fileConf := FileConfig{
		X:    "10, 20",
		Y:    "1, 2",
		Addr: ":1111",
		JSON: &trueVal,
	}

	os.Setenv("MIDPOINT_Y", "3, 4")
	os.Setenv("MIDPOINT_ADDR", ":2222")
	defer func() {
		os.Unsetenv("MIDPOINT_Y")
		os.Unsetenv("MIDPOINT_ADDR")
	}()

	// Simulate CLI flags
	changed := map[string]bool{
		"addr": true,
	}

	cfg := Config{
		Addr: ":3333", // CLI wins
	}

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Addr != ":3333" {
		t.Errorf("Addr = %v, want :3333 (CLI should win)", cfg.Addr)
	}
	if cfg.Y != "3, 4" {
		t.Errorf("Y = %v, want 3, 4 (env should override file)", cfg.Y)
	}
	if cfg.X != "10, 20" {
		t.Errorf("X = %v, want 10, 20 (file should set)", cfg.X)
	}
	if !cfg.JSON {
		t.Errorf("JSON = %v, want true (file should set)", cfg.JSON)
	}
}
