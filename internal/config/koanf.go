// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/regress"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"cinerate.yaml",
	"cinerate.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	train := regress.DefaultTrainConfig()
	return &Config{
		Data: DataConfig{
			Path:       "", // built-in sample
			SplitRatio: features.DefaultSplitRatio,
		},
		Model: ModelConfig{
			Kind:            regress.KindRidge,
			Epochs:          train.Epochs,
			BatchSize:       train.BatchSize,
			ValidationSplit: train.ValidationSplit,
			L2:              train.L2,
			TrainTimeout:    5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
		Watch: WatchConfig{
			Debounce:        500 * time.Millisecond,
			RetrainInterval: 0,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: explicitPath, else CONFIG_PATH, else the first of DefaultConfigPaths
//  3. Environment Variables: Override any setting
//
// An explicitPath that does not exist is an error; the fallbacks are optional.
func Load(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file
	configPath, err := resolveConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// DATA_PATH -> data.path
	// MODEL_EPOCHS -> model.epochs
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// resolveConfigFile returns the config file to read, or "" when none applies.
func resolveConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}
	return findConfigFile(), nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Data
	"data_path":   "data.path",
	"split_ratio": "data.split_ratio",

	// Model
	"model_kind":             "model.kind",
	"model_epochs":           "model.epochs",
	"model_batch_size":       "model.batch_size",
	"model_validation_split": "model.validation_split",
	"model_l2":               "model.l2",
	"model_train_timeout":    "model.train_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics
	"metrics_textfile": "metrics.textfile",

	// Watch mode
	"watch_debounce":         "watch.debounce",
	"watch_retrain_interval": "watch.retrain_interval",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DATA_PATH -> data.path
//   - MODEL_VALIDATION_SPLIT -> model.validation_split
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// EnvVars returns the supported environment variable names, upper-cased.
func EnvVars() []string {
	names := make([]string, 0, len(envMappings)+1)
	for k := range envMappings {
		names = append(names, strings.ToUpper(k))
	}
	return append(names, ConfigPathEnvVar)
}
