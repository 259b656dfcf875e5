// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the ratings of a loaded record set.
// All rating fields are zero when no record has a rating.
type Stats struct {
	Total       int     `json:"total"`
	WithRatings int     `json:"with_ratings"`
	AvgRating   float64 `json:"avg_rating"`
	MinRating   float64 `json:"min_rating"`
	MaxRating   float64 `json:"max_rating"`
	StdDev      float64 `json:"std_dev"`
}

// Summarize computes Stats over records.
func Summarize(records []Record) Stats {
	s := Stats{Total: len(records)}

	ratings := make([]float64, 0, len(records))
	for i := range records {
		if records[i].IMDBRating > 0 {
			ratings = append(ratings, records[i].IMDBRating)
		}
	}
	s.WithRatings = len(ratings)
	if len(ratings) == 0 {
		return s
	}

	s.AvgRating = stat.Mean(ratings, nil)
	s.MinRating = floats.Min(ratings)
	s.MaxRating = floats.Max(ratings)
	if len(ratings) > 1 {
		s.StdDev = stat.StdDev(ratings, nil)
	}
	return s
}
