package spook3d

import (
	"io"
	"log/slog"
)

// SetLogger installs the *slog.Logger World uses for debug-level
// diagnostics: skipped UnsupportedShape pairs. Passing nil installs a
// discarding logger.
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w.Logger = l
}
