package app

import (
	"io"
	"log/slog"
)

// newLogger creates a new slog.Logger writing to outW. It does not touch the
// global logger, so every App gets an isolated instance. Level names are the
// ones slog itself understands; anything unparseable falls back to info,
// since the CLI layer already rejected bad values with exit code 2.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
