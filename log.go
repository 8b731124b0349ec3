package csvview

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger. Only error paths log, at debug level.
// This must be called before any tokenizing starts.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func logUnterminatedQuote(line, column int) {
	if ce := Logger().Check(zap.DebugLevel, "unterminated quoted field"); ce != nil {
		ce.Write(zap.Int("line", line), zap.Int("column", column))
	}
}
