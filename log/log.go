// Package log builds the host's structured logger (slog).
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler's output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Option configures the logger.
type Option func(*config)

type config struct {
	level     slog.Level
	format    Format
	addSource bool
	writer    io.Writer
}

func defaultConfig() config {
	return config{
		level:  slog.LevelInfo,
		format: FormatText,
		writer: os.Stderr,
	}
}

// WithLevel sets the minimum level to report.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat selects text or JSON output.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) Option {
	return func(c *config) {
		c.addSource = enabled
	}
}

// WithWriter redirects output away from stderr.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// New creates a configured *slog.Logger.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}
	var h slog.Handler
	if cfg.format == FormatJSON {
		h = slog.NewJSONHandler(cfg.writer, hopts)
	} else {
		h = slog.NewTextHandler(cfg.writer, hopts)
	}
	return slog.New(h)
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// slog.Level.
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
		return 0, fmt.Errorf("log: unknown level %q", s)
	}
}
