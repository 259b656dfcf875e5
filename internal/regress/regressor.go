// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package regress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Model kinds accepted by New.
const (
	KindRidge    = "ridge"
	KindBaseline = "baseline"
)

var (
	// ErrNotTrained is returned by Predict and Evaluate before a successful fit.
	ErrNotTrained = errors.New("model not trained")

	// ErrDimension is returned when a vector width or row count does not match.
	ErrDimension = errors.New("dimension mismatch")

	// ErrEmptyTrainingSet is returned when no rows remain for fitting.
	ErrEmptyTrainingSet = errors.New("empty training set")

	// ErrEmptyEvaluationSet is returned by Evaluate on zero rows.
	ErrEmptyEvaluationSet = errors.New("empty evaluation set")

	// ErrInvalidConfig is returned for out-of-range training parameters.
	ErrInvalidConfig = errors.New("invalid training config")

	// ErrUnknownKind is returned by New for an unrecognized model kind.
	ErrUnknownKind = errors.New("unknown model kind")
)

// Regressor predicts a label-space rating from a feature vector.
type Regressor interface {
	// Name identifies the model in logs and metrics.
	Name() string

	// Fit starts training in the background and returns immediately.
	Fit(ctx context.Context, features [][]float64, labels []float64, cfg TrainConfig) *Job

	// Predict returns the label-space prediction for one vector.
	Predict(vector []float64) (float64, error)

	// Evaluate returns the mean squared error over a labeled set.
	Evaluate(features [][]float64, labels []float64) (Evaluation, error)

	// IsTrained reports whether a fit has completed successfully.
	IsTrained() bool
}

// TrainConfig holds fit parameters.
type TrainConfig struct {
	// Epochs is the maximum number of solver iterations.
	Epochs int `json:"epochs" validate:"min=1,max=10000"`

	// BatchSize is the number of rows accumulated per normal-equation update.
	BatchSize int `json:"batch_size" validate:"min=1,max=100000"`

	// ValidationSplit is the trailing fraction of rows held out for validation loss.
	ValidationSplit float64 `json:"validation_split" validate:"gte=0,lt=1"`

	// L2 is the ridge penalty on weights. The bias is never penalized.
	L2 float64 `json:"l2" validate:"gte=0"`
}

// DefaultTrainConfig returns the stock training parameters.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:          50,
		BatchSize:       16,
		ValidationSplit: 0.2,
		L2:              1e-3,
	}
}

// Check returns ErrInvalidConfig when a parameter is out of range.
func (c TrainConfig) Check() error {
	switch {
	case c.Epochs < 1:
		return fmt.Errorf("%w: epochs must be at least 1, got %d", ErrInvalidConfig, c.Epochs)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size must be at least 1, got %d", ErrInvalidConfig, c.BatchSize)
	case math.IsNaN(c.ValidationSplit) || c.ValidationSplit < 0 || c.ValidationSplit >= 1:
		return fmt.Errorf("%w: validation split must be in [0, 1), got %v", ErrInvalidConfig, c.ValidationSplit)
	case math.IsNaN(c.L2) || c.L2 < 0:
		return fmt.Errorf("%w: l2 must be non-negative, got %v", ErrInvalidConfig, c.L2)
	}
	return nil
}

// EpochEvent reports progress after one epoch.
type EpochEvent struct {
	Epoch   int      `json:"epoch"` // 1-based
	Epochs  int      `json:"epochs"`
	Loss    float64  `json:"loss"`
	ValLoss *float64 `json:"val_loss,omitempty"`
}

// TrainingReport summarizes a finished fit.
type TrainingReport struct {
	Model          string        `json:"model"`
	Events         []EpochEvent  `json:"events"`
	Converged      bool          `json:"converged"`
	TrainSize      int           `json:"train_size"`
	ValidationSize int           `json:"validation_size"`
	Duration       time.Duration `json:"duration"`
}

// Losses returns the per-epoch training loss.
func (r *TrainingReport) Losses() []float64 {
	out := make([]float64, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Loss
	}
	return out
}

// ValLosses returns the per-epoch validation loss, or nil when none was computed.
func (r *TrainingReport) ValLosses() []float64 {
	if len(r.Events) == 0 || r.Events[0].ValLoss == nil {
		return nil
	}
	out := make([]float64, len(r.Events))
	for i, ev := range r.Events {
		if ev.ValLoss != nil {
			out[i] = *ev.ValLoss
		}
	}
	return out
}

// FinalLoss returns the last training loss, or NaN for an empty report.
func (r *TrainingReport) FinalLoss() float64 {
	if len(r.Events) == 0 {
		return math.NaN()
	}
	return r.Events[len(r.Events)-1].Loss
}

// Evaluation holds label-space error metrics.
type Evaluation struct {
	Loss float64 `json:"loss"` // MSE
	RMSE float64 `json:"rmse"`
}

// New returns a fresh model of the given kind.
func New(kind string, l2 float64) (Regressor, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindRidge, "":
		return NewRidge(l2), nil
	case KindBaseline:
		return NewBaseline(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Kinds lists the model kinds accepted by New.
func Kinds() []string {
	return []string{KindRidge, KindBaseline}
}

// checkShape validates a labeled set and returns its width.
func checkShape(features [][]float64, labels []float64) (int, error) {
	if len(features) != len(labels) {
		return 0, fmt.Errorf("%w: %d rows but %d labels", ErrDimension, len(features), len(labels))
	}
	if len(features) == 0 {
		return 0, nil
	}
	width := len(features[0])
	for i, row := range features {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has width %d, want %d", ErrDimension, i, len(row), width)
		}
	}
	return width, nil
}

// holdout splits rows into a fitting prefix and a trailing validation slice.
func holdout(n int, validationSplit float64) int {
	if validationSplit <= 0 {
		return n
	}
	return int(float64(n) * (1 - validationSplit))
}

// mse computes mean squared error of predict over a labeled set.
func mse(features [][]float64, labels []float64, predict func([]float64) float64) float64 {
	if len(features) == 0 {
		return 0
	}
	residuals := make([]float64, len(features))
	for i, row := range features {
		residuals[i] = predict(row) - labels[i]
	}
	return floats.Dot(residuals, residuals) / float64(len(residuals))
}

func evaluation(loss float64) Evaluation {
	return Evaluation{Loss: loss, RMSE: math.Sqrt(loss)}
}

// contextCancelled checks if the context has been cancelled.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func dimensionError(got, want int) error {
	return fmt.Errorf("%w: vector width %d, model expects %d", ErrDimension, got, want)
}
