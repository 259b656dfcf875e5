// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package regress

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
)

// linearData returns rows of width dims with y = 0.3 + sum(coef[j] * x[j]).
func linearData(n, dims int, seed uint64) ([][]float64, []float64, []float64) {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	coef := make([]float64, dims)
	for j := range coef {
		coef[j] = rng.Float64()*0.4 - 0.2
	}
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = make([]float64, dims)
		y[i] = 0.3
		for j := range x[i] {
			x[i][j] = rng.Float64()
			y[i] += coef[j] * x[i][j]
		}
	}
	return x, y, coef
}

func drain(job *Job) []EpochEvent {
	var events []EpochEvent
	for ev := range job.Events() {
		events = append(events, ev)
	}
	return events
}

func TestRidge_RecoversLinearTarget(t *testing.T) {
	t.Parallel()

	x, y, coef := linearData(200, 5, 7)
	model := NewRidge(0)
	cfg := TrainConfig{Epochs: 50, BatchSize: 16}

	events := drain(model.Fit(context.Background(), x, y, cfg))
	report, err := model.Fit(context.Background(), x, y, cfg).Wait()
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !report.Converged {
		t.Error("expected convergence on a noiseless target")
	}
	if len(events) == 0 || len(events) > 12 {
		t.Errorf("epochs run = %d, want a handful for 6 unknowns", len(events))
	}
	if report.FinalLoss() > 1e-12 {
		t.Errorf("final loss = %v, want ~0", report.FinalLoss())
	}

	weights, bias := model.Weights()
	for j := range coef {
		if math.Abs(weights[j]-coef[j]) > 1e-5 {
			t.Errorf("weight[%d] = %v, want %v", j, weights[j], coef[j])
		}
	}
	if math.Abs(bias-0.3) > 1e-5 {
		t.Errorf("bias = %v, want 0.3", bias)
	}

	got, err := model.Predict(x[0])
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(got-y[0]) > 1e-5 {
		t.Errorf("Predict() = %v, want %v", got, y[0])
	}

	eval, err := model.Evaluate(x, y)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Loss > 1e-10 || math.Abs(eval.RMSE-math.Sqrt(eval.Loss)) > 1e-15 {
		t.Errorf("Evaluate() = %+v", eval)
	}
	if model.Version() != 2 {
		t.Errorf("Version() = %d, want 2 after two fits", model.Version())
	}
}

func TestRidge_EventsPerEpoch(t *testing.T) {
	t.Parallel()

	x, y, _ := linearData(100, 20, 3)
	for i := range y {
		y[i] += 0.01 * math.Sin(float64(i)) // keep the solver busy past 3 iterations
	}
	cfg := TrainConfig{Epochs: 3, BatchSize: 8, ValidationSplit: 0.2, L2: 1e-4}

	job := NewRidge(0).Fit(context.Background(), x, y, cfg)
	events := drain(job)
	report, err := job.Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Epoch != i+1 || ev.Epochs != 3 {
			t.Errorf("event %d = epoch %d/%d", i, ev.Epoch, ev.Epochs)
		}
		if ev.ValLoss == nil {
			t.Errorf("event %d missing validation loss", i)
		}
	}
	if events[2].Loss >= events[0].Loss {
		t.Errorf("loss did not decrease: %v", report.Losses())
	}
	if report.TrainSize != 80 || report.ValidationSize != 20 {
		t.Errorf("sizes = %d/%d, want 80/20", report.TrainSize, report.ValidationSize)
	}
	if len(report.Events) != 3 || len(report.ValLosses()) != 3 {
		t.Errorf("report events = %d, val losses = %d", len(report.Events), len(report.ValLosses()))
	}
	if _, open := <-job.Events(); open {
		t.Error("events channel should be closed")
	}
}

func TestRidge_Cancellation(t *testing.T) {
	t.Parallel()

	x, y, _ := linearData(50, 4, 11)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := NewRidge(0.1)
	job := model.Fit(ctx, x, y, DefaultTrainConfig())
	if events := drain(job); len(events) != 0 {
		t.Errorf("events after cancel = %d, want 0", len(events))
	}
	if _, err := job.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
	if model.IsTrained() {
		t.Error("cancelled fit must not mark the model trained")
	}
}

func TestRidge_Errors(t *testing.T) {
	t.Parallel()

	model := NewRidge(0.1)
	if _, err := model.Predict([]float64{1, 2}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Predict() before fit error = %v, want ErrNotTrained", err)
	}
	if _, err := model.Evaluate([][]float64{{1, 2}}, []float64{1}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Evaluate() before fit error = %v, want ErrNotTrained", err)
	}

	fitErr := func(x [][]float64, y []float64, cfg TrainConfig) error {
		_, err := model.Fit(context.Background(), x, y, cfg).Wait()
		return err
	}
	cfg := DefaultTrainConfig()

	if err := fitErr(nil, nil, cfg); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("empty fit error = %v, want ErrEmptyTrainingSet", err)
	}
	if err := fitErr([][]float64{{1}}, []float64{0.5}, TrainConfig{Epochs: 5, BatchSize: 1, ValidationSplit: 0.5}); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("all-validation fit error = %v, want ErrEmptyTrainingSet", err)
	}
	if err := fitErr([][]float64{{1, 2}, {3}}, []float64{1, 2}, cfg); !errors.Is(err, ErrDimension) {
		t.Errorf("ragged fit error = %v, want ErrDimension", err)
	}
	if err := fitErr([][]float64{{1, 2}}, []float64{1, 2}, cfg); !errors.Is(err, ErrDimension) {
		t.Errorf("label count fit error = %v, want ErrDimension", err)
	}
	if err := fitErr([][]float64{{1, 2}}, []float64{1}, TrainConfig{Epochs: 0, BatchSize: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero epochs error = %v, want ErrInvalidConfig", err)
	}

	x, y, _ := linearData(20, 2, 5)
	if err := fitErr(x, y, TrainConfig{Epochs: 10, BatchSize: 4}); err != nil {
		t.Fatalf("fit error = %v", err)
	}
	if _, err := model.Predict([]float64{1, 2, 3}); !errors.Is(err, ErrDimension) {
		t.Errorf("wide Predict() error = %v, want ErrDimension", err)
	}
	if _, err := model.Evaluate(nil, nil); !errors.Is(err, ErrEmptyEvaluationSet) {
		t.Errorf("empty Evaluate() error = %v, want ErrEmptyEvaluationSet", err)
	}
}

func TestRidge_ConcurrentPredict(t *testing.T) {
	t.Parallel()

	x, y, _ := linearData(40, 3, 9)
	model := NewRidge(0.01)
	if _, err := model.Fit(context.Background(), x, y, TrainConfig{Epochs: 10, BatchSize: 16}).Wait(); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(row []float64) {
			defer wg.Done()
			if _, err := model.Predict(row); err != nil {
				t.Errorf("Predict() error = %v", err)
			}
		}(x[i])
	}
	// A concurrent refit takes the exclusive lock.
	job := model.Fit(context.Background(), x, y, TrainConfig{Epochs: 10, BatchSize: 16})
	wg.Wait()
	if _, err := job.Wait(); err != nil {
		t.Errorf("refit error = %v", err)
	}
}
