// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package config

import (
	"time"

	"github.com/tomtom215/cinerate/internal/logging"
	"github.com/tomtom215/cinerate/internal/regress"
)

// Config holds all application configuration.
type Config struct {
	Data       DataConfig       `koanf:"data"`
	Model      ModelConfig      `koanf:"model"`
	Logging    LoggingConfig    `koanf:"logging"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Watch      WatchConfig      `koanf:"watch"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// DataConfig controls where records come from and how they are split.
type DataConfig struct {
	// Path is the CSV file to load. Empty selects the built-in sample.
	Path string `koanf:"path"`

	// SplitRatio is the training fraction, strictly between 0 and 1.
	// Default: 0.8
	SplitRatio float64 `koanf:"split_ratio" validate:"gt=0,lt=1"`
}

// ModelConfig selects and tunes the regressor.
type ModelConfig struct {
	// Kind is ridge or baseline.
	Kind string `koanf:"kind" validate:"oneof=ridge baseline"`

	Epochs          int     `koanf:"epochs" validate:"min=1,max=10000"`
	BatchSize       int     `koanf:"batch_size" validate:"min=1,max=100000"`
	ValidationSplit float64 `koanf:"validation_split" validate:"gte=0,lt=1"`

	// L2 is the ridge penalty on weights.
	L2 float64 `koanf:"l2" validate:"gte=0"`

	// TrainTimeout bounds a single fit. Zero disables the limit.
	TrainTimeout time.Duration `koanf:"train_timeout" validate:"gte=0"`
}

// TrainConfig converts the model settings to fit parameters.
func (m *ModelConfig) TrainConfig() regress.TrainConfig {
	return regress.TrainConfig{
		Epochs:          m.Epochs,
		BatchSize:       m.BatchSize,
		ValidationSplit: m.ValidationSplit,
		L2:              m.L2,
	}
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"loglevel"`

	// Format is the output format: json or console.
	// Default: console
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// LoggingSettings converts to the logging package configuration.
func (l *LoggingConfig) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus text dump after each run.
	Textfile string `koanf:"textfile"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce coalesces bursts of file events into one retrain.
	// Default: 500ms
	Debounce time.Duration `koanf:"debounce" validate:"gte=0,lte=1h"`

	// RetrainInterval retrains on a timer even without file changes.
	// Zero retrains only on change.
	RetrainInterval time.Duration `koanf:"retrain_interval" validate:"gte=0"`
}

// SupervisorConfig tunes the suture tree used in watch mode.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gt=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gt=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff" validate:"gt=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}
