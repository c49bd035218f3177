// Package obs contains observability utilities such as logging.
package obs

import "go.uber.org/zap"

// Logger is the global structured logger used by the service. It defaults to
// a no-op logger so packages can log safely in tests; main replaces it via
// InitLogger.
var Logger = zap.NewNop()

// InitLogger initializes the global Logger with the production JSON config.
func InitLogger() {
	Logger = zap.Must(zap.NewProduction())
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = Logger.Sync()
}
