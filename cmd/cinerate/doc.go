// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Command cinerate predicts IMDB ratings for movie and TV catalog entries.

It loads a CSV catalog, encodes every title into a fixed 54-slot feature
vector, splits the rows into training and test sets, fits a regressor, and
reports test error and predictions.

# Usage

	cinerate [global flags] <command> [command flags]

Global flags:

	-config path   YAML config file (default: $CONFIG_PATH, ./cinerate.yaml, ./config.yaml)
	-data path     CSV catalog (default: built-in 50-title sample)
	-json          write JSON instead of text

Commands:

	stats     dataset summary (count, average, range)
	encode    feature names, vectors, and labels
	train     load, encode, split, fit, and evaluate, with live progress
	predict   train, then rate one title given by flags or -input file.json
	watch     retrain whenever the data file changes, until interrupted

# Configuration

Settings are layered: built-in defaults, then the YAML file, then
environment variables (DATA_PATH, SPLIT_RATIO, MODEL_KIND, MODEL_EPOCHS,
LOG_LEVEL, METRICS_TEXTFILE, ...). Command-line flags win over all of them.
Run "cinerate env" to list every variable.

# Exit Codes

	0  success
	1  runtime or data error
	2  usage error

# Examples

	cinerate stats
	cinerate -data movies.csv train -epochs 100
	cinerate predict -genre Comedy -year 2015 -budget 2e7
	cinerate -json predict -input title.json
	METRICS_TEXTFILE=/var/lib/node_exporter/cinerate.prom cinerate -data movies.csv watch
*/
package main
