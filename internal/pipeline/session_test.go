// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package pipeline

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/metrics"
	"github.com/tomtom215/cinerate/internal/regress"
	"github.com/tomtom215/cinerate/internal/validation"
)

func newSampleSession(t *testing.T, kind string) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.ModelKind = kind
	return NewSession(opts, zerolog.Nop())
}

func TestSession_StateGuards(t *testing.T) {
	t.Parallel()

	s := newSampleSession(t, regress.KindRidge)
	ctx := context.Background()

	if _, err := s.Train(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Train before load: err = %v, want ErrNotLoaded", err)
	}
	if _, err := s.Predict(ctx, features.DefaultPredictionInput()); !errors.Is(err, ErrNotTrained) {
		t.Fatalf("Predict before load: err = %v, want ErrNotTrained", err)
	}

	if _, err := s.LoadAndProcess(ctx); err != nil {
		t.Fatalf("LoadAndProcess: %v", err)
	}
	if !s.Loaded() || s.Trained() {
		t.Fatalf("after load: Loaded=%v Trained=%v, want true false", s.Loaded(), s.Trained())
	}
	if _, err := s.Predict(ctx, features.DefaultPredictionInput()); !errors.Is(err, ErrNotTrained) {
		t.Fatalf("Predict before train: err = %v, want ErrNotTrained", err)
	}
}

func TestSession_LoadAndProcessSample(t *testing.T) {
	t.Parallel()

	s := newSampleSession(t, regress.KindRidge)
	res, err := s.LoadAndProcess(context.Background())
	if err != nil {
		t.Fatalf("LoadAndProcess: %v", err)
	}

	if res.Source != "built-in sample" {
		t.Errorf("Source = %q", res.Source)
	}
	if res.Stats.WithRatings != 40 {
		t.Errorf("Stats.WithRatings = %d, want 40", res.Stats.WithRatings)
	}
	if res.Width != features.Width {
		t.Errorf("Width = %d, want %d", res.Width, features.Width)
	}
	if res.TrainSize != 32 || res.TestSize != 8 {
		t.Errorf("split = %d/%d, want 32/8", res.TrainSize, res.TestSize)
	}
	if len(s.Records()) != 40 || s.Encoded().Len() != 40 {
		t.Errorf("records = %d, encoded = %d, want 40", len(s.Records()), s.Encoded().Len())
	}
	if len(res.Mismatches) == 0 {
		t.Error("expected the sample's TV-G rows to be reported as schema mismatches")
	}
}

func TestSession_TrainAndPredict(t *testing.T) {
	t.Parallel()

	for _, kind := range regress.Kinds() {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			s := newSampleSession(t, kind)
			ctx := context.Background()
			if _, err := s.LoadAndProcess(ctx); err != nil {
				t.Fatalf("LoadAndProcess: %v", err)
			}

			run, err := s.Train(ctx)
			if err != nil {
				t.Fatalf("Train: %v", err)
			}
			var (
				events int
				prev   int
			)
			for ev := range run.Events() {
				if ev.Epoch <= prev {
					t.Fatalf("epoch %d arrived after %d", ev.Epoch, prev)
				}
				prev = ev.Epoch
				events++
			}
			result, err := run.Wait()
			if err != nil {
				t.Fatalf("Wait: %v", err)
			}
			if events == 0 || events != len(result.Report.Events) {
				t.Errorf("streamed %d events, report has %d", events, len(result.Report.Events))
			}
			if !result.Evaluated || result.TestSize != 8 {
				t.Errorf("Evaluated=%v TestSize=%d, want true 8", result.Evaluated, result.TestSize)
			}
			want := math.Sqrt(result.Evaluation.Loss) * features.RatingScale
			if math.Abs(result.TestRMSE-want) > 1e-12 {
				t.Errorf("TestRMSE = %v, want %v", result.TestRMSE, want)
			}
			if !s.Trained() || s.Result() != result {
				t.Error("session did not keep the training result")
			}

			p, err := s.Predict(ctx, features.DefaultPredictionInput())
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if math.IsNaN(p.Rating) || math.IsInf(p.Rating, 0) {
				t.Fatalf("Rating = %v", p.Rating)
			}
			if p.Rating != features.DenormalizeLabel(p.Label) {
				t.Errorf("Rating %v does not match label %v", p.Rating, p.Label)
			}
			if p.Confidence < 0 || p.Confidence > 100 {
				t.Errorf("Confidence = %v, want within [0, 100]", p.Confidence)
			}
			if p.Model != kind {
				t.Errorf("Model = %q, want %q", p.Model, kind)
			}
		})
	}
}

func TestSession_ReloadDiscardsModel(t *testing.T) {
	t.Parallel()

	s := newSampleSession(t, regress.KindBaseline)
	ctx := context.Background()
	if _, err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !s.Trained() {
		t.Fatal("expected a trained session after Run")
	}

	if _, err := s.LoadAndProcess(ctx); err != nil {
		t.Fatalf("LoadAndProcess: %v", err)
	}
	if s.Trained() {
		t.Error("reload kept a model trained on the previous split")
	}
	if _, err := s.Predict(ctx, features.DefaultPredictionInput()); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Predict after reload: err = %v, want ErrNotTrained", err)
	}
}

func TestSession_PredictValidatesInput(t *testing.T) {
	t.Parallel()

	s := newSampleSession(t, regress.KindBaseline)
	ctx := context.Background()
	if _, err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	in := features.DefaultPredictionInput()
	in.Genre = ""
	in.DurationMinutes = -5

	_, err := s.Predict(ctx, in)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation.Error", err)
	}
	if len(verr.Errors()) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(verr.Errors()), verr)
	}
}

func TestSession_PredictReportsMismatches(t *testing.T) {
	t.Parallel()

	s := newSampleSession(t, regress.KindBaseline)
	ctx := context.Background()
	if _, err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	in := features.DefaultPredictionInput()
	in.Country = "Atlantis"
	p, err := s.Predict(ctx, in)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(p.Mismatches) != 1 || p.Mismatches[0].Value != "Atlantis" || p.Mismatches[0].Row != -1 {
		t.Errorf("Mismatches = %v, want one Atlantis entry at row -1", p.Mismatches)
	}
}

func TestSession_RunOutcomes(t *testing.T) {
	// Shares the global PipelineRuns counter.
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("title,imdb_rating\nA,\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		ctx     func() context.Context
		outcome string
	}{
		{name: "sample", outcome: metrics.OutcomeSuccess, ctx: context.Background},
		{name: "no rated rows", path: empty, outcome: metrics.OutcomeDataError, ctx: context.Background},
		{name: "canceled", outcome: metrics.OutcomeCanceled, ctx: func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.DataPath = tt.path
			s := NewSession(opts, zerolog.Nop())

			counter := metrics.PipelineRuns.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(counter)
			_, err := s.Run(tt.ctx())
			if (err == nil) != (tt.outcome == metrics.OutcomeSuccess) {
				t.Fatalf("Run err = %v, outcome %s", err, tt.outcome)
			}
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("%s runs increased by %v, want 1", tt.outcome, got)
			}
		})
	}
}

func TestSession_LoadFileErrorIsDataError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("title,year\nA,2001\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.DataPath = path
	_, err := NewSession(opts, zerolog.Nop()).LoadAndProcess(context.Background())
	if !errors.Is(err, dataset.ErrData) {
		t.Fatalf("err = %v, want a data error", err)
	}
}

func TestConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating float64
		want   float64
	}{
		{7, 100},
		{8, 90},
		{6.5, 95},
		{0, 30},
		{-10, 0},
		{17, 0},
	}
	for _, tt := range tests {
		if got := Confidence(tt.rating); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Confidence(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestTrain_InvalidConfig(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Train.Epochs = 0
	s := NewSession(opts, zerolog.Nop())
	if _, err := s.LoadAndProcess(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Train(context.Background()); !errors.Is(err, regress.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}
