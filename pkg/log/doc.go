// Package log provides the structured logging abstraction used by midpoint.
//
// Components depend on the Logger interface rather than on a concrete logging
// library. A zerolog-backed implementation and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	logger.Info("integral computed", log.Int("points", 7), log.Float64("value", v))
//
// Use the no-op logger in tests:
//
//	logger := log.NewNoopLogger()
//
// Implement Logger to route messages into another logging library.
package log
