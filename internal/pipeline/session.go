// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/logging"
	"github.com/tomtom215/cinerate/internal/metrics"
	"github.com/tomtom215/cinerate/internal/regress"
	"github.com/tomtom215/cinerate/internal/validation"
)

var (
	// ErrNotLoaded is returned by Train before data has been loaded.
	ErrNotLoaded = errors.New("load data first")

	// ErrNotTrained is returned by Predict before a model has been trained.
	ErrNotTrained = errors.New("train the model first")
)

// Options configures a Session.
type Options struct {
	// DataPath is the CSV to load. Empty selects the built-in sample.
	DataPath string

	SplitRatio   float64
	ModelKind    string
	Train        regress.TrainConfig
	TrainTimeout time.Duration

	// Schema defaults to features.DefaultSchema when all lists are empty.
	Schema features.Schema
}

// DefaultOptions returns options for the built-in sample and a ridge model.
func DefaultOptions() Options {
	return Options{
		SplitRatio: features.DefaultSplitRatio,
		ModelKind:  regress.KindRidge,
		Train:      regress.DefaultTrainConfig(),
	}
}

// LoadResult summarizes a LoadAndProcess call.
type LoadResult struct {
	Source     string                    `json:"source"`
	Stats      dataset.Stats             `json:"stats"`
	Width      int                       `json:"width"`
	TrainSize  int                       `json:"train_size"`
	TestSize   int                       `json:"test_size"`
	Mismatches []features.SchemaMismatch `json:"mismatches,omitempty"`
}

// Session holds the state of one pipeline: loaded data, its split, and the
// trained model. It is safe for concurrent use.
type Session struct {
	opts    Options
	loader  *dataset.Loader
	encoder *features.Encoder
	logger  zerolog.Logger

	mu      sync.RWMutex
	source  string
	records []dataset.Record
	encoded *features.Encoded
	split   *features.Split
	model   regress.Regressor
	result  *TrainResult
}

// NewSession creates an empty session.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSession(opts Options, logger zerolog.Logger) *Session {
	schema := opts.Schema
	if schema.Width() == features.NumericSlots+features.BooleanSlots {
		schema = features.DefaultSchema()
	}
	return &Session{
		opts:    opts,
		loader:  dataset.NewLoader(logger),
		encoder: features.NewEncoder(schema, logger),
		logger:  logger.With().Str("component", "pipeline").Logger(),
	}
}

// log returns the session logger tagged with the context's correlation ID.
func (s *Session) log(ctx context.Context) *zerolog.Logger {
	l := s.logger
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		l = l.With().Str("correlation_id", id).Logger()
	}
	return &l
}

// LoadAndProcess loads records, encodes them, and splits them. Any trained
// model is discarded.
func (s *Session) LoadAndProcess(ctx context.Context) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := s.log(ctx)
	log.Info().Str("source", s.sourceName()).Msg("loading movie data")

	var (
		records []dataset.Record
		err     error
	)
	if s.opts.DataPath == "" {
		records, err = dataset.SampleWith(s.logger)
	} else {
		records, err = s.loader.LoadFile(s.opts.DataPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	encoded, err := s.encoder.Encode(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	split, err := features.SplitAt(encoded, s.opts.SplitRatio)
	if err != nil {
		return nil, fmt.Errorf("split records: %w", err)
	}

	s.mu.Lock()
	s.source = s.sourceName()
	s.records = records
	s.encoded = encoded
	s.split = split
	s.model = nil
	s.result = nil
	s.mu.Unlock()

	res := &LoadResult{
		Source:     s.sourceName(),
		Stats:      dataset.Summarize(records),
		Width:      s.encoder.Width(),
		TrainSize:  split.Train.Len(),
		TestSize:   split.Test.Len(),
		Mismatches: encoded.Mismatches,
	}
	log.Info().
		Int("records", len(records)).
		Int("train", res.TrainSize).
		Int("test", res.TestSize).
		Int("mismatches", len(res.Mismatches)).
		Msg("data loaded successfully, ready for training")
	return res, nil
}

func (s *Session) sourceName() string {
	if s.opts.DataPath == "" {
		return "built-in sample"
	}
	return s.opts.DataPath
}

// Loaded reports whether data is loaded.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.split != nil
}

// Trained reports whether a model has been trained on the current data.
func (s *Session) Trained() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result != nil
}

// Records returns the loaded records.
func (s *Session) Records() []dataset.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Encoded returns the encoded records, or nil before loading.
func (s *Session) Encoded() *features.Encoded {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encoded
}

// Split returns the current split, or nil before loading.
func (s *Session) Split() *features.Split {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.split
}

// Result returns the last training result, or nil.
func (s *Session) Result() *TrainResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Run loads, trains, and evaluates in one call, tagging the run with a new
// correlation ID. Progress events are drained internally.
func (s *Session) Run(ctx context.Context) (*TrainResult, error) {
	ctx = logging.ContextWithNewCorrelationID(ctx)

	result, err := s.run(ctx)
	metrics.RecordPipelineRun(outcome(err))
	return result, err
}

func (s *Session) run(ctx context.Context) (*TrainResult, error) {
	if _, err := s.LoadAndProcess(ctx); err != nil {
		return nil, err
	}
	tr, err := s.Train(ctx)
	if err != nil {
		return nil, err
	}
	for range tr.Events() { //nolint:revive // drain
	}
	return tr.Wait()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, dataset.ErrData):
		return metrics.OutcomeDataError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailure
	}
}

// Prediction is the result of Predict.
type Prediction struct {
	Rating     float64                   `json:"rating"`
	Label      float64                   `json:"label"`
	Confidence float64                   `json:"confidence"`
	Model      string                    `json:"model"`
	Input      features.PredictionInput  `json:"input"`
	Mismatches []features.SchemaMismatch `json:"mismatches,omitempty"`
}

// Confidence scores how close a rating is to 7.0, from 0 to 100.
func Confidence(rating float64) float64 {
	return math.Max(0, 100-math.Abs(rating-7)*10)
}

// Predict rates a single title with the trained model.
func (s *Session) Predict(ctx context.Context, in features.PredictionInput) (*Prediction, error) {
	s.mu.RLock()
	model, trained := s.model, s.result != nil
	s.mu.RUnlock()
	if !trained {
		return nil, ErrNotTrained
	}
	if err := validation.Validate(&in); err != nil {
		return nil, fmt.Errorf("prediction input: %w", err)
	}

	vector, mismatches := s.encoder.EncodeInput(&in)
	label, err := model.Predict(vector)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	metrics.RecordPrediction(model.Name())

	p := &Prediction{
		Rating:     features.DenormalizeLabel(label),
		Label:      label,
		Model:      model.Name(),
		Input:      in,
		Mismatches: mismatches,
	}
	p.Confidence = Confidence(p.Rating)

	s.log(ctx).Debug().
		Float64("rating", p.Rating).
		Float64("confidence", p.Confidence).
		Msg("prediction served")
	return p, nil
}

// progressLimiter throttles per-epoch info logs; debug logs every epoch.
func progressLimiter() *rate.Sometimes {
	return &rate.Sometimes{First: 1, Interval: 2 * time.Second}
}
