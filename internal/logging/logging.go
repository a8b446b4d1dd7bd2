package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	ErrUnknownLevel  = errors.New("logging: unknown level")
	ErrUnknownFormat = errors.New("logging: unknown format")
)

// Options selects the handler Init installs. Zero values mean info level,
// text format and stderr.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Init installs a slog default built from opts. A bad level or format is
// reported before the current default is replaced.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	ho := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "text", "":
		handler = slog.NewTextHandler(out, ho)
	case "json":
		handler = slog.NewJSONHandler(out, ho)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// New tags the default logger with the package it is used from.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
