// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/metrics"
	"github.com/tomtom215/cinerate/internal/regress"
)

// TrainResult is the outcome of a finished training run.
type TrainResult struct {
	Model  string                  `json:"model"`
	Report *regress.TrainingReport `json:"report"`

	// Evaluated is false when the test split is empty.
	Evaluated  bool               `json:"evaluated"`
	Evaluation regress.Evaluation `json:"evaluation"`
	// TestRMSE is the test split RMSE in rating units (0-10 scale), or 0
	// when not evaluated.
	TestRMSE float64 `json:"test_rmse"`
	TestSize int     `json:"test_size"`
}

// TrainingRun is a training run in progress.
type TrainingRun struct {
	events chan regress.EpochEvent
	done   chan struct{}
	result *TrainResult
	err    error
}

// Events streams per-epoch progress in epoch order. It is closed when the run
// ends and holds every event, so reading it is optional.
func (r *TrainingRun) Events() <-chan regress.EpochEvent {
	return r.events
}

// Wait blocks until the run ends, including test split evaluation.
func (r *TrainingRun) Wait() (*TrainResult, error) {
	<-r.done
	return r.result, r.err
}

// Train fits a fresh model on the training split in the background.
func (s *Session) Train(ctx context.Context) (*TrainingRun, error) {
	s.mu.RLock()
	split := s.split
	s.mu.RUnlock()
	if split == nil {
		return nil, ErrNotLoaded
	}

	cfg := s.opts.Train
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	model, err := regress.New(s.opts.ModelKind, cfg.L2)
	if err != nil {
		return nil, err
	}

	cancel := context.CancelFunc(func() {})
	if s.opts.TrainTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.opts.TrainTimeout)
	}

	log := s.log(ctx)
	log.Info().
		Str("model", model.Name()).
		Int("epochs", cfg.Epochs).
		Int("train", split.Train.Len()).
		Msg("starting model training")

	job := model.Fit(ctx, split.Train.Features, split.Train.Labels, cfg)
	run := &TrainingRun{
		events: make(chan regress.EpochEvent, cfg.Epochs),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(run.done)
		defer cancel()

		progress := progressLimiter()
		for ev := range job.Events() {
			valLoss := -1.0
			if ev.ValLoss != nil {
				valLoss = *ev.ValLoss
			}
			metrics.RecordEpoch(model.Name(), ev.Loss, valLoss)

			last := ev.Epoch == ev.Epochs
			progress.Do(func() { last = true })
			if last {
				log.Info().Int("epoch", ev.Epoch).Int("epochs", ev.Epochs).Float64("loss", ev.Loss).Msg("training progress")
			} else {
				log.Debug().Int("epoch", ev.Epoch).Int("epochs", ev.Epochs).Float64("loss", ev.Loss).Msg("training progress")
			}
			run.events <- ev
		}
		close(run.events)

		report, err := job.Wait()
		if err != nil {
			log.Error().Err(err).Str("model", model.Name()).Msg("training failed")
			run.err = fmt.Errorf("train %s: %w", model.Name(), err)
			return
		}
		metrics.RecordTraining(model.Name(), report.Duration)

		result := &TrainResult{
			Model:    model.Name(),
			Report:   report,
			TestSize: split.Test.Len(),
		}
		if split.Test.Len() > 0 {
			eval, err := model.Evaluate(split.Test.Features, split.Test.Labels)
			if err != nil {
				run.err = fmt.Errorf("evaluate %s: %w", model.Name(), err)
				return
			}
			result.Evaluated = true
			result.Evaluation = eval
			result.TestRMSE = math.Sqrt(eval.Loss) * features.RatingScale
			metrics.RecordEvaluation(model.Name(), result.TestRMSE)
		}

		s.mu.Lock()
		// A reload during training replaced the split this model was fit on.
		if s.split == split {
			s.model = model
			s.result = result
		}
		s.mu.Unlock()

		log.Info().
			Str("model", model.Name()).
			Int("epochs", len(report.Events)).
			Bool("converged", report.Converged).
			Float64("final_loss", report.FinalLoss()).
			Float64("test_rmse", result.TestRMSE).
			Dur("duration", report.Duration).
			Msg("model training complete")
		run.result = result
	}()

	return run, nil
}
