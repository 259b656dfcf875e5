// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import "time"

// Column names recognized in the CSV header.
const (
	ColumnID               = "movie_id"
	ColumnTitle            = "title"
	ColumnContentType      = "content_type"
	ColumnGenrePrimary     = "genre_primary"
	ColumnGenreSecondary   = "genre_secondary"
	ColumnReleaseYear      = "release_year"
	ColumnDurationMinutes  = "duration_minutes"
	ColumnContentRating    = "rating"
	ColumnLanguage         = "language"
	ColumnCountry          = "country_of_origin"
	ColumnIMDBRating       = "imdb_rating"
	ColumnProductionBudget = "production_budget"
	ColumnBoxOffice        = "box_office_revenue"
	ColumnSeasons          = "number_of_seasons"
	ColumnEpisodes         = "number_of_episodes"
	ColumnNetflixOriginal  = "is_netflix_original"
	ColumnAddedToPlatform  = "added_to_platform"
	ColumnContentWarning   = "content_warning"
)

// TruthyToken is the literal cell value that marks a boolean column as set.
// Any other value, including "true" or "1", reads as false.
const TruthyToken = "True"

// DateLayout is the layout of the added_to_platform column.
const DateLayout = "2006-01-02"

// Record is one movie or series row.
// Pointer fields are nil when the cell was empty or not parseable.
type Record struct {
	// ID is the catalogue identifier (movie_0001).
	ID string `json:"movie_id"`

	// Title is the display title.
	Title string `json:"title"`

	// ContentType is Movie, TV Series, Documentary, and so on.
	ContentType string `json:"content_type"`

	// GenrePrimary is the main genre.
	GenrePrimary string `json:"genre_primary"`

	// GenreSecondary is an optional second genre. Not encoded.
	GenreSecondary string `json:"genre_secondary,omitempty"`

	// ReleaseYear is the release year.
	ReleaseYear *int `json:"release_year,omitempty"`

	// DurationMinutes is the runtime (per episode for series).
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`

	// ContentRating is the MPAA/TV rating (PG, R, TV-MA, ...).
	// The CSV column is named "rating".
	ContentRating string `json:"rating"`

	// Language is the original language.
	Language string `json:"language"`

	// Country is the country of origin.
	Country string `json:"country_of_origin"`

	// IMDBRating is the target rating (0-10). Always > 0 on loaded records.
	IMDBRating float64 `json:"imdb_rating"`

	// ProductionBudget is the budget in dollars.
	ProductionBudget *float64 `json:"production_budget,omitempty"`

	// BoxOfficeRevenue is the gross revenue in dollars. Not encoded.
	BoxOfficeRevenue *float64 `json:"box_office_revenue,omitempty"`

	// NumberOfSeasons applies to series. Not encoded.
	NumberOfSeasons *int `json:"number_of_seasons,omitempty"`

	// NumberOfEpisodes applies to series. Not encoded.
	NumberOfEpisodes *int `json:"number_of_episodes,omitempty"`

	// NetflixOriginal is true when the cell equals TruthyToken.
	NetflixOriginal bool `json:"is_netflix_original"`

	// AddedToPlatform is the catalogue date. Not encoded.
	AddedToPlatform *time.Time `json:"added_to_platform,omitempty"`

	// ContentWarning is true when the cell equals TruthyToken.
	ContentWarning bool `json:"content_warning"`
}

// Label returns a human-readable identifier for log lines.
func (r *Record) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return r.ID
}
