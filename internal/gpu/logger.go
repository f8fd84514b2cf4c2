//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/frost"
)

// loggerPtr stores the package logger. It starts as frost's logger, which
// is silent until the host configures one.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(frost.Logger())
}

// slogger returns the current package logger.
func slogger() *slog.Logger { return loggerPtr.Load() }

// setLogger is called from Accelerator.SetLogger when frost.SetLogger
// propagates. nil falls back to frost's current logger.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = frost.Logger()
	}
	loggerPtr.Store(l)
}
