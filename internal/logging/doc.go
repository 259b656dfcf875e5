// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

// Package logging provides the zerolog-based structured logger shared by every
// cinerate component.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Int("records", n).Msg("dataset loaded")
//	logging.Error().Err(err).Msg("training failed")
//
//	// Per-run correlation
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("pipeline started")
//
// # Configuration
//
// Environment Variables (read by the config package):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: console)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Component Loggers
//
// Packages accept a zerolog.Logger in their constructors instead of reaching
// for the global one, so tests can pass zerolog.Nop():
//
//	enc := features.NewEncoder(features.DefaultSchema(), logging.WithComponent("encoder"))
//
// # slog Bridge
//
// Suture's event hook (sutureslog) requires a *slog.Logger. NewSlogLogger
// returns one whose records are written through zerolog.
//
// Always terminate event chains with Msg() or Send(); an unterminated event is
// never written.
package logging
