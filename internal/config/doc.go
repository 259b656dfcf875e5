// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Package config provides layered configuration for the cinerate pipeline.

# Configuration Sources

Load merges three layers with Koanf v2, later layers winning:
  - Built-in defaults (structs provider)
  - An optional YAML file: the -config flag, else CONFIG_PATH, else the
    first of cinerate.yaml, cinerate.yml, config.yaml, config.yml
  - Environment variables, through an explicit mapping table

Unmapped environment variables are ignored.

# Environment Variables

Data:
  - DATA_PATH: CSV file to load (default: built-in sample)
  - SPLIT_RATIO: training fraction, 0 < r < 1 (default: 0.8)

Model:
  - MODEL_KIND: ridge or baseline (default: ridge)
  - MODEL_EPOCHS: maximum solver iterations (default: 50)
  - MODEL_BATCH_SIZE: rows per normal-equation update (default: 16)
  - MODEL_VALIDATION_SPLIT: trailing holdout fraction (default: 0.2)
  - MODEL_L2: ridge penalty (default: 0.001)
  - MODEL_TRAIN_TIMEOUT: per-fit limit, 0 disables (default: 5m)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: console)
  - LOG_CALLER: include file:line (default: false)

Metrics:
  - METRICS_TEXTFILE: Prometheus textfile destination (default: none)

Watch mode:
  - WATCH_DEBOUNCE: quiet period before retraining (default: 500ms)
  - WATCH_RETRAIN_INTERVAL: periodic retrain, 0 disables (default: 0)
  - SUPERVISOR_FAILURE_THRESHOLD, SUPERVISOR_FAILURE_DECAY,
    SUPERVISOR_FAILURE_BACKOFF, SUPERVISOR_SHUTDOWN_TIMEOUT: suture tuning

# YAML Example

	data:
	  path: ./movies.csv
	  split_ratio: 0.8
	model:
	  kind: ridge
	  epochs: 50
	  batch_size: 16
	  validation_split: 0.2
	logging:
	  level: debug
	  format: json

# Validation

Each section is checked with go-playground/validator struct tags, then
cross-field rules run (data path not a directory, metrics directory exists).
*/
package config
