package qrbyte

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var (
	logger        atomic.Pointer[slog.Logger]
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func init() { logger.Store(discardLogger) }

// SetLogger sets the logger receiving debug records about version and
// mask selection. A nil logger discards them, which is the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}

	logger.Store(l)
}

func log() *slog.Logger {
	return logger.Load()
}
