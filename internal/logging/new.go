package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Options selects a Logger implementation.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	Format  string // text or json
}

// New returns a Logger writing to w according to opts.
func New(w io.Writer, opts Options) Logger {
	if strings.EqualFold(opts.Backend, "zap") {
		return NewZapWriterLogger(w, opts.Level, opts.Format)
	}
	return NewSlogHandlerLogger(w, parseSlogLevel(opts.Level), opts.Format)
}

func parseSlogLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Discard returns a Logger that drops everything. Handy for tests.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
