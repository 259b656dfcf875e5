// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

// Package dataset loads movie records from CSV and summarizes their ratings.
//
// # Record Loading
//
// The loader reads a header-declared CSV table. Numeric columns are parsed to
// numbers, everything else stays a string, and empty lines are skipped. A row
// survives only if its imdb_rating cell is numeric and strictly positive;
// rows that fail that check are dropped and counted, never reported as errors.
// Input order is preserved.
//
//	records, err := dataset.NewLoader(logger).LoadFile("movies.csv")
//	if errors.Is(err, dataset.ErrData) {
//	    // malformed table
//	}
//
// Structural problems (ragged rows, bare quotes, no header, no imdb_rating
// column) fail the whole load with a *DataError.
//
// # Optional Fields
//
// Cells that may be empty are pointer fields on Record. Defaults for missing
// values are applied by the feature encoder, not here, so a Record always
// reflects exactly what the table contained.
//
// # Sample Data
//
// Sample returns the built-in 50-row synthetic catalogue used when no data
// file is configured.
package dataset
