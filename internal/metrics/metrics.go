// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline outcomes used as the "outcome" label of PipelineRuns.
const (
	OutcomeSuccess   = "success"
	OutcomeDataError = "data_error"
	OutcomeCanceled  = "canceled"
	OutcomeFailure   = "failure"
)

var (
	// Dataset Metrics
	RecordsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinerate_records_loaded_total",
			Help: "Total number of records kept by the loader",
		},
	)

	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerate_records_dropped_total",
			Help: "Total number of rows dropped for lacking a usable rating",
		},
		[]string{"reason"}, // "missing_rating", "non_numeric_rating", "non_positive_rating"
	)

	LoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinerate_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	// Encoding Metrics
	EncodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinerate_encode_duration_seconds",
			Help:    "Duration of feature encoding in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	SchemaMismatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerate_schema_mismatches_total",
			Help: "Total number of categorical values not found in the encoding schema",
		},
		[]string{"field"},
	)

	// Training Metrics
	TrainingEpochs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerate_training_epochs_total",
			Help: "Total number of training epochs completed",
		},
		[]string{"model"},
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinerate_training_duration_seconds",
			Help:    "Duration of model fits in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
		},
		[]string{"model"},
	)

	TrainLoss = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinerate_train_loss",
			Help: "Training MSE (label space) after the latest epoch",
		},
		[]string{"model"},
	)

	ValidationLoss = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinerate_validation_loss",
			Help: "Validation MSE (label space) after the latest epoch",
		},
		[]string{"model"},
	)

	TestRMSE = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinerate_test_rmse_rating",
			Help: "Root mean squared error on the test split, in rating units",
		},
		[]string{"model"},
	)

	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerate_predictions_total",
			Help: "Total number of rating predictions served",
		},
		[]string{"model"},
	)

	// Pipeline Metrics
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerate_pipeline_runs_total",
			Help: "Total number of load-to-train pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	PipelineLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinerate_pipeline_last_success_timestamp",
			Help: "Unix timestamp of the last successful pipeline run",
		},
	)

	// Watch Metrics
	WatchEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinerate_watch_events_total",
			Help: "Total number of data file change events by operation",
		},
		[]string{"op"},
	)
)

// RecordEpoch records one completed training epoch.
// A negative valLoss means no validation slice was held out.
func RecordEpoch(model string, loss, valLoss float64) {
	TrainingEpochs.WithLabelValues(model).Inc()
	TrainLoss.WithLabelValues(model).Set(loss)
	if valLoss >= 0 {
		ValidationLoss.WithLabelValues(model).Set(valLoss)
	}
}

// RecordTraining records a finished fit.
func RecordTraining(model string, duration time.Duration) {
	TrainingDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordEvaluation records the test split RMSE in rating units.
func RecordEvaluation(model string, rmseRating float64) {
	TestRMSE.WithLabelValues(model).Set(rmseRating)
}

// RecordPrediction records a served prediction.
func RecordPrediction(model string) {
	Predictions.WithLabelValues(model).Inc()
}

// RecordPipelineRun records a pipeline run outcome.
func RecordPipelineRun(outcome string) {
	PipelineRuns.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		PipelineLastSuccess.Set(float64(time.Now().Unix()))
	}
}
