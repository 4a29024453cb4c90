package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Text output keeps local runs readable;
// key-value pairs carry the context.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
