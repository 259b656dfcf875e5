// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package features

import "github.com/tomtom215/cinerate/internal/dataset"

// PredictionInput describes a title to rate. Categorical fields are matched
// against the schema exactly like CSV cells.
type PredictionInput struct {
	DurationMinutes float64 `json:"duration_minutes" validate:"gte=0,lte=1000"`
	ReleaseYear     int     `json:"release_year" validate:"gte=1888,lte=2100"`
	Budget          float64 `json:"budget" validate:"gte=0"`
	ContentType     string  `json:"content_type" validate:"required"`
	Genre           string  `json:"genre_primary" validate:"required"`
	Language        string  `json:"language" validate:"required"`
	Country         string  `json:"country_of_origin" validate:"required"`
	ContentRating   string  `json:"rating" validate:"required"`
	NetflixOriginal bool    `json:"is_netflix_original"`
	ContentWarning  bool    `json:"content_warning"`
}

// DefaultPredictionInput returns the form defaults used by the CLI.
func DefaultPredictionInput() PredictionInput {
	return PredictionInput{
		DurationMinutes: 120,
		ReleaseYear:     2020,
		Budget:          50_000_000,
		ContentType:     "Movie",
		Genre:           "Drama",
		Language:        "English",
		Country:         "USA",
		ContentRating:   "PG-13",
	}
}

// Record converts the input to a dataset record with every numeric field present.
func (p *PredictionInput) Record() dataset.Record {
	duration, year, budget := p.DurationMinutes, p.ReleaseYear, p.Budget
	return dataset.Record{
		Title:            "prediction",
		ContentType:      p.ContentType,
		GenrePrimary:     p.Genre,
		ReleaseYear:      &year,
		DurationMinutes:  &duration,
		ContentRating:    p.ContentRating,
		Language:         p.Language,
		Country:          p.Country,
		ProductionBudget: &budget,
		NetflixOriginal:  p.NetflixOriginal,
		ContentWarning:   p.ContentWarning,
	}
}
