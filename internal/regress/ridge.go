// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package regress

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultL2 is the ridge penalty used when New is given a negative value.
const DefaultL2 = 1e-3

// ridgeTolerance is the relative residual at which the solver stops early.
const ridgeTolerance = 1e-10

// Ridge is an L2-regularized linear regressor.
//
// It minimizes mean((x·w + b - y)^2) + L2*|w|^2 by forming the normal
// equations G·v = r over the augmented vector v = (w, b) and running one
// conjugate-gradient iteration per epoch.
type Ridge struct {
	baseModel
	l2 float64

	weights []float64
	bias    float64
}

// NewRidge creates a ridge regressor. A negative l2 selects DefaultL2.
func NewRidge(l2 float64) *Ridge {
	if l2 < 0 || math.IsNaN(l2) {
		l2 = DefaultL2
	}
	return &Ridge{baseModel: newBaseModel(KindRidge), l2: l2}
}

// Weights returns a copy of the fitted weights and the bias.
func (m *Ridge) Weights() ([]float64, float64) {
	m.acquirePredictLock()
	defer m.releasePredictLock()
	return append([]float64(nil), m.weights...), m.bias
}

// Fit implements Regressor. cfg.L2, when positive, overrides the constructor penalty.
func (m *Ridge) Fit(ctx context.Context, features [][]float64, labels []float64, cfg TrainConfig) *Job {
	if err := cfg.Check(); err != nil {
		return failedJob(err)
	}
	return startJob(ctx, m.name, cfg.Epochs, func(ctx context.Context, report *TrainingReport, emit func(EpochEvent)) error {
		m.acquireTrainLock()
		defer m.releaseTrainLock()
		return m.fit(ctx, features, labels, cfg, report, emit)
	})
}

//nolint:gocyclo // solver loop with cancellation and early stopping
func (m *Ridge) fit(ctx context.Context, features [][]float64, labels []float64, cfg TrainConfig, report *TrainingReport, emit func(EpochEvent)) error {
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
	trainX, trainY := features[:cut], labels[:cut]
	valX, valY := features[cut:], labels[cut:]
	report.TrainSize, report.ValidationSize = len(trainX), len(valX)

	l2 := m.l2
	if cfg.L2 > 0 {
		l2 = cfg.L2
	}

	gram, rhs, err := normalEquations(ctx, trainX, trainY, width, cfg.BatchSize, l2)
	if err != nil {
		return err
	}

	// Conjugate gradient from v = 0.
	dim := width + 1
	v := mat.NewVecDense(dim, nil)
	r := mat.VecDenseCopyOf(rhs)
	p := mat.VecDenseCopyOf(rhs)
	gp := mat.NewVecDense(dim, nil)
	rsOld := mat.Dot(r, r)
	stop := ridgeTolerance * math.Max(math.Sqrt(rsOld), 1e-300)

	predictor := func(row []float64) float64 {
		return floats.Dot(v.RawVector().Data[:width], row) + v.AtVec(width)
	}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if contextCancelled(ctx) {
			return ctx.Err()
		}

		converged := math.Sqrt(rsOld) <= stop
		if !converged {
			gp.MulVec(gram, p)
			curvature := mat.Dot(p, gp)
			if curvature <= 0 {
				converged = true
			} else {
				alpha := rsOld / curvature
				v.AddScaledVec(v, alpha, p)
				r.AddScaledVec(r, -alpha, gp)
				rsNew := mat.Dot(r, r)
				p.ScaleVec(rsNew/rsOld, p)
				p.AddVec(p, r)
				rsOld = rsNew
				converged = math.Sqrt(rsNew) <= stop
			}
		}

		ev := EpochEvent{Epoch: epoch, Epochs: cfg.Epochs, Loss: mse(trainX, trainY, predictor)}
		if len(valX) > 0 {
			val := mse(valX, valY, predictor)
			ev.ValLoss = &val
		}
		emit(ev)

		if converged {
			report.Converged = true
			break
		}
	}

	m.weights = append(make([]float64, 0, width), v.RawVector().Data[:width]...)
	m.bias = v.AtVec(width)
	m.markTrained(width)
	return nil
}

// normalEquations builds G = A'A/n + l2*I' and r = A'y/n for A = [X 1],
// accumulating batchSize rows at a time. I' leaves the bias unpenalized.
func normalEquations(ctx context.Context, x [][]float64, y []float64, width, batchSize int, l2 float64) (*mat.SymDense, *mat.VecDense, error) {
	dim := width + 1
	n := float64(len(x))
	gram := mat.NewSymDense(dim, nil)
	rhs := mat.NewVecDense(dim, nil)
	part := mat.NewVecDense(dim, nil)

	for start := 0; start < len(x); start += batchSize {
		if contextCancelled(ctx) {
			return nil, nil, ctx.Err()
		}
		end := min(start+batchSize, len(x))

		batch := mat.NewDense(end-start, dim, nil)
		for i, row := range x[start:end] {
			batch.SetRow(i, append(append(make([]float64, 0, dim), row...), 1))
		}
		targets := mat.NewVecDense(end-start, append([]float64(nil), y[start:end]...))

		gram.SymRankK(gram, 1/n, batch.T())
		part.MulVec(batch.T(), targets)
		rhs.AddScaledVec(rhs, 1/n, part)
	}

	for i := 0; i < width; i++ {
		gram.SetSym(i, i, gram.At(i, i)+l2)
	}
	return gram, rhs, nil
}

// Predict implements Regressor.
func (m *Ridge) Predict(vector []float64) (float64, error) {
	m.acquirePredictLock()
	defer m.releasePredictLock()

	if err := m.checkPredictable(len(vector)); err != nil {
		return 0, err
	}
	return floats.Dot(m.weights, vector) + m.bias, nil
}

// Evaluate implements Regressor.
func (m *Ridge) Evaluate(features [][]float64, labels []float64) (Evaluation, error) {
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
	return evaluation(mse(features, labels, func(row []float64) float64 {
		return floats.Dot(m.weights, row) + m.bias
	})), nil
}
