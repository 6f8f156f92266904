package logger

import (
	"io"
	"log/slog"
	"os"

	"xapi/internal/platform/config"
)

// New returns the process logger writing to stdout in the configured format.
func New(cfg config.Server) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg.LogFormat)
}

// NewWithWriter builds a structured logger on w. Anything other than "text"
// produces JSON records.
func NewWithWriter(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == config.LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
