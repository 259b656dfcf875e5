// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type runKey struct{}

// NewCorrelationID returns a short run identifier (the first UUID group).
func NewCorrelationID() string {
	return uuid.NewString()[:8]
}

// ContextWithCorrelationID tags ctx with id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runKey{}, id)
}

// ContextWithNewCorrelationID tags ctx with a fresh id. Each pipeline run and
// each watch-mode retrain gets its own.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, NewCorrelationID())
}

// CorrelationIDFromContext returns the id stored in ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runKey{}).(string)
	return id
}

// Ctx returns the global logger with ctx's correlation_id attached.
//
//	logging.Ctx(ctx).Info().Msg("training started")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if id := CorrelationIDFromContext(ctx); id != "" {
		l = l.With().Str("correlation_id", id).Logger()
	}
	return &l
}
