// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the level, format and destination of the global logger.
type Config struct {
	// Level is a zerolog level name. Unknown names fall back to info.
	Level string

	// Format is "console" for a human-readable terminal stream or "json".
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Timestamp adds a time field to every entry.
	Timestamp bool

	// Output defaults to os.Stderr so stdout stays free for command results.
	Output io.Writer
}

// DefaultConfig returns info-level console logging to stderr.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	mu     sync.RWMutex
	global zerolog.Logger
)

//nolint:gochecknoinits // packages may log before main calls Init
func init() {
	global = build(DefaultConfig())
}

// Init replaces the global logger. Calling it again reconfigures logging.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	zerolog.SetGlobalLevel(levelOf(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"

	out := cfg.Output
	if cfg.Format == "" || cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// levelOf maps a configured level name to a zerolog level, defaulting to info.
func levelOf(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	if name == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether name is a level Init understands.
func ValidLevel(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		return true
	}
	lvl, err := zerolog.ParseLevel(name)
	return err == nil && lvl != zerolog.NoLevel
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// WithComponent returns the global logger tagged with component=name.
//
//	enc := features.NewEncoder(schema, logging.WithComponent("encoder"))
func WithComponent(name string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", name).Logger()
}

// Info starts an info-level entry on the global logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn-level entry on the global logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error-level entry on the global logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}
