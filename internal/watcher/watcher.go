// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/metrics"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// EventType is the kind of change.
type EventType int

const (
	// EventChanged means the file was written or replaced and has settled.
	EventChanged EventType = iota
	// EventRemoved means the file no longer exists.
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes a settled change to the watched file.
type Event struct {
	Type    EventType
	Path    string
	Size    int64
	ModTime time.Time
}

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
}

// Watcher watches one file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	events   chan Event
}

// New creates a watcher for path. The file itself may be missing, but its
// directory must exist.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(path string, opts Options, logger zerolog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watcher: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory %s is not a directory", filepath.Dir(abs))
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: opts.Debounce,
		logger:   logger.With().Str("component", "watcher").Str("path", abs).Logger(),
		events:   make(chan Event, 1),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns settled changes. The channel is never closed, so the
// watcher can be restarted by its supervisor.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// fileState is the stat snapshot compared across the debounce interval.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (w *Watcher) stat() fileState {
	info, err := os.Stat(w.path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// Serve implements suture.Service. It blocks until ctx is done.
func (w *Watcher) Serve(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() {
		if cerr := fsw.Close(); cerr != nil {
			w.logger.Warn().Err(cerr).Msg("failed to close fsnotify watcher")
		}
	}()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info().Dur("debounce", w.debounce).Msg("watching data file")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var (
		armed   bool
		pending fileState
	)
	arm := func() {
		pending = w.stat()
		timer.Reset(w.debounce)
		armed = true
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("watcher shutting down")
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			metrics.WatchEvents.WithLabelValues(opLabel(ev.Op)).Inc()
			w.logger.Debug().Str("op", ev.Op.String()).Msg("file event")
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				arm()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			w.logger.Warn().Err(err).Msg("fsnotify error")

		case <-timer.C:
			if !armed {
				continue
			}
			current := w.stat()
			if current != pending {
				// Still being written.
				arm()
				continue
			}
			armed = false
			w.emit(current)
		}
	}
}

func (w *Watcher) emit(state fileState) {
	ev := Event{Type: EventRemoved, Path: w.path}
	if state.exists {
		ev = Event{Type: EventChanged, Path: w.path, Size: state.size, ModTime: state.modTime}
	}

	select {
	case w.events <- ev:
	default:
		// Replace the unread event with the newer one.
		select {
		case <-w.events:
		default:
		}
		select {
		case w.events <- ev:
		default:
		}
	}
	w.logger.Info().Str("event", ev.Type.String()).Int64("size", ev.Size).Msg("data file settled")
}

// String returns the service name for logging.
func (w *Watcher) String() string {
	return "data-watcher"
}

func opLabel(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "other"
	}
}
