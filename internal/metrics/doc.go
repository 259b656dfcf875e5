// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Package metrics provides Prometheus instrumentation for the rating pipeline.

Collectors are registered on the default registry through promauto. There is
no HTTP listener; WriteTextfile dumps the registry in text exposition format so
the node-exporter textfile collector can scrape it:

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
	    logging.Warn().Err(err).Msg("metrics textfile not written")
	}

# Available Metrics

Dataset:
  - cinerate_records_loaded_total (counter)
  - cinerate_records_dropped_total (counter) labels: reason
  - cinerate_load_duration_seconds (histogram)

Encoding:
  - cinerate_encode_duration_seconds (histogram)
  - cinerate_schema_mismatches_total (counter) labels: field

Training:
  - cinerate_training_epochs_total (counter) labels: model
  - cinerate_training_duration_seconds (histogram) labels: model
  - cinerate_train_loss, cinerate_validation_loss (gauge) labels: model
  - cinerate_test_rmse_rating (gauge) labels: model
  - cinerate_predictions_total (counter) labels: model

Pipeline:
  - cinerate_pipeline_runs_total (counter) labels: outcome
  - cinerate_pipeline_last_success_timestamp (gauge)
  - cinerate_watch_events_total (counter) labels: op
*/
package metrics
