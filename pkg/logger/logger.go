package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log defaults to slog's default logger so packages can log before Init runs.
var Log = slog.Default()

func Init(mode string) {
	level := slog.LevelDebug
	if strings.EqualFold(mode, "release") {
		level = slog.LevelInfo
	}
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
