// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import (
	"bytes"
	_ "embed"

	"github.com/rs/zerolog"
)

//go:embed data/movies.csv
var sampleCSV []byte

// SampleCSV returns a copy of the raw built-in sample table.
func SampleCSV() []byte {
	return bytes.Clone(sampleCSV)
}

// Sample loads the built-in sample catalogue: 50 synthetic titles, 40 of them rated.
func Sample() ([]Record, error) {
	return SampleWith(zerolog.Nop())
}

// SampleWith loads the sample catalogue, logging through logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SampleWith(logger zerolog.Logger) ([]Record, error) {
	return NewLoader(logger).Load(bytes.NewReader(sampleCSV))
}
