// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package regress

import (
	"context"

	"gonum.org/v1/gonum/stat"
)

// Baseline predicts the mean training label for every input.
type Baseline struct {
	baseModel
	mean float64
}

// NewBaseline creates a mean-label baseline.
func NewBaseline() *Baseline {
	return &Baseline{baseModel: newBaseModel(KindBaseline)}
}

// Mean returns the fitted mean label.
func (m *Baseline) Mean() float64 {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return m.mean
}

// Fit implements Regressor. It always runs a single epoch.
func (m *Baseline) Fit(ctx context.Context, features [][]float64, labels []float64, cfg TrainConfig) *Job {
	if err := cfg.Check(); err != nil {
		return failedJob(err)
	}
	return startJob(ctx, m.name, 1, func(ctx context.Context, report *TrainingReport, emit func(EpochEvent)) error {
		m.acquireTrainLock()
		defer m.releaseTrainLock()

		if contextCancelled(ctx) {
			return ctx.Err()
		}
		width, err := checkShape(features, labels)
		if err != nil {
			return err
		}
		cut := holdout(len(features), cfg.ValidationSplit)
		if cut == 0 {
			return ErrEmptyTrainingSet
		}
		report.TrainSize, report.ValidationSize = cut, len(features)-cut

		mean := stat.Mean(labels[:cut], nil)
		constant := func([]float64) float64 { return mean }

		ev := EpochEvent{Epoch: 1, Epochs: 1, Loss: mse(features[:cut], labels[:cut], constant)}
		if cut < len(features) {
			val := mse(features[cut:], labels[cut:], constant)
			ev.ValLoss = &val
		}
		emit(ev)
		report.Converged = true

		m.mean = mean
		m.markTrained(width)
		return nil
	})
}

// Predict implements Regressor.
func (m *Baseline) Predict(vector []float64) (float64, error) {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if err := m.checkPredictable(len(vector)); err != nil {
		return 0, err
	}
	return m.mean, nil
}

// Evaluate implements Regressor.
func (m *Baseline) Evaluate(features [][]float64, labels []float64) (Evaluation, error) {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if !m.trained {
		return Evaluation{}, ErrNotTrained
	}
	width, err := checkShape(features, labels)
	if err != nil {
		return Evaluation{}, err
	}
	if len(features) == 0 {
		return Evaluation{}, ErrEmptyEvaluationSet
	}
	if width != m.width {
		return Evaluation{}, dimensionError(width, m.width)
	}
	mean := m.mean
	return evaluation(mse(features, labels, func([]float64) float64 { return mean })), nil
}

var (
	_ Regressor = (*Ridge)(nil)
	_ Regressor = (*Baseline)(nil)
)
