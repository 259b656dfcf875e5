// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/pipeline"
	"github.com/tomtom215/cinerate/internal/watcher"
)

// Trainer runs one full load-to-train cycle.
// *pipeline.Session satisfies it.
type Trainer interface {
	Run(ctx context.Context) (*pipeline.TrainResult, error)
}

// RetrainServiceConfig holds configuration for the retrain service.
type RetrainServiceConfig struct {
	// TrainOnStartup runs a cycle as soon as the service starts.
	TrainOnStartup bool

	// RetrainInterval retrains on a timer as well as on file changes.
	// Zero disables the timer.
	RetrainInterval time.Duration

	// OnResult, if set, is called after every cycle.
	OnResult func(*pipeline.TrainResult, error)
}

// RetrainService wraps a Trainer for suture supervision.
type RetrainService struct {
	trainer Trainer
	changes <-chan watcher.Event
	config  RetrainServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewRetrainService creates a retrain service. changes may be nil when only
// the interval should trigger retraining.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRetrainService(trainer Trainer, changes <-chan watcher.Event, cfg RetrainServiceConfig, logger zerolog.Logger) *RetrainService {
	return &RetrainService{
		trainer: trainer,
		changes: changes,
		config:  cfg,
		logger:  logger.With().Str("service", "retrain").Logger(),
		name:    "retrain-service",
	}
}

// Serve implements the suture.Service interface.
func (s *RetrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("retrain_interval", s.config.RetrainInterval).
		Msg("retrain service starting")

	if s.config.TrainOnStartup {
		s.retrain(ctx, "startup")
	}

	var tick <-chan time.Time
	if s.config.RetrainInterval > 0 {
		ticker := time.NewTicker(s.config.RetrainInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("retrain service shutting down")
			return ctx.Err()

		case ev := <-s.changes:
			if ev.Type == watcher.EventRemoved {
				s.logger.Warn().Str("path", ev.Path).Msg("data file removed, keeping current model")
				continue
			}
			s.retrain(ctx, "file_changed")

		case <-tick:
			s.retrain(ctx, "interval")
		}
	}
}

// retrain runs one cycle. Failures are logged, never returned, so a bad data
// file does not make the supervisor restart the service.
func (s *RetrainService) retrain(ctx context.Context, trigger string) {
	start := time.Now()
	s.logger.Info().Str("trigger", trigger).Msg("retraining")

	result, err := s.trainer.Run(ctx)
	switch {
	case err == nil:
		s.logger.Info().
			Str("trigger", trigger).
			Str("model", result.Model).
			Float64("test_rmse", result.TestRMSE).
			Dur("duration", time.Since(start)).
			Msg("retrain complete")
	case errors.Is(err, dataset.ErrData):
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("retrain skipped: unusable data")
	case ctx.Err() != nil:
		s.logger.Debug().Err(err).Msg("retrain interrupted by shutdown")
		return
	default:
		s.logger.Error().Err(err).Str("trigger", trigger).Msg("retrain failed")
	}

	if s.config.OnResult != nil {
		s.config.OnResult(result, err)
	}
}

// String returns the service name for logging.
func (s *RetrainService) String() string {
	return s.name
}
