package cliconfig

import (
	"os"

	logpkg "github.com/bft-labs/midpoint/pkg/log"
)

// Logger returns a console logger on stderr at the configured level.
// An unparsable level falls back to info; Validate reports it separately.
func (c Config) Logger() *logpkg.ZerologAdapter {
	level, err := logpkg.ParseLevel(c.LogLevel)
	if err != nil {
		level, _ = logpkg.ParseLevel("info")
	}
	return logpkg.NewZerologAdapter(os.Stderr, level)
}
