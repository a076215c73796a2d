package render

import (
	"log/slog"

	"github.com/taigrr/softrast/internal/xlog"
)

// SetLogger configures the logger for render and the pixel and models
// packages. By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used:
//   - [slog.LevelDebug]: texture re-encodes, loaded mesh sizes
//   - [slog.LevelWarn]: non-fatal load issues (missing diffuse texture)
//
// Example:
//
//	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	xlog.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return xlog.L()
}
