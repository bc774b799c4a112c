// Package logging provides a minimal logging interface and adapters for the
// sovereign pipeline.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the engine and its collaborators use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter and ZapAdapter wrapping the two structured loggers in use
//   - StructuredLogger with component/request scoping and stage helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	zl, _ := zap.NewProduction()
//	s := sovereign.New(func(o *sovereign.Options) {
//		o.Logger = logging.NewZapAdapter(zl)
//	})
package logging
