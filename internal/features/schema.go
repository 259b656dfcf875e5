// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package features

import "github.com/tomtom215/cinerate/internal/dataset"

// Normalization constants.
const (
	DurationScale  = 200.0
	YearBase       = 1990.0
	YearSpan       = 30.0
	BudgetLogScale = 10.0
	RatingScale    = 10.0
)

// Defaults applied when a numeric cell is absent.
const (
	DefaultDuration = 90.0
	DefaultYear     = 2000
	DefaultBudget   = 0.0
)

// DefaultSplitRatio is the training fraction used when none is configured.
const DefaultSplitRatio = 0.8

// NumericSlots and BooleanSlots are the fixed, non-categorical parts of a vector.
const (
	NumericSlots = 3
	BooleanSlots = 2
)

// Width is the vector width under DefaultSchema.
const Width = NumericSlots + 5 + 18 + 8 + 8 + 10 + BooleanSlots

// Field names used in slot names and SchemaMismatch reports.
const (
	FieldContentType   = dataset.ColumnContentType
	FieldGenrePrimary  = dataset.ColumnGenrePrimary
	FieldLanguage      = dataset.ColumnLanguage
	FieldCountry       = dataset.ColumnCountry
	FieldContentRating = dataset.ColumnContentRating
)

// Schema holds the ordered category lists for the one-hot blocks.
// Order determines slot positions; a Schema must not be modified after use.
type Schema struct {
	ContentTypes   []string
	Genres         []string
	Languages      []string
	Countries      []string
	ContentRatings []string
}

// DefaultSchema returns the category lists the model was designed around.
func DefaultSchema() Schema {
	return Schema{
		ContentTypes: []string{"Movie", "TV Series", "Documentary", "Stand-up Comedy", "Limited Series"},
		Genres: []string{
			"Action", "Drama", "Comedy", "Sci-Fi", "Horror", "Thriller", "Romance", "Adventure", "Biography",
			"Crime", "Family", "Fantasy", "History", "Music", "Mystery", "Sport", "War", "Western",
		},
		Languages:      []string{"English", "Spanish", "French", "Japanese", "Korean", "Italian", "German", "Hindi"},
		Countries:      []string{"USA", "UK", "Canada", "Japan", "South Korea", "Germany", "France", "India"},
		ContentRatings: []string{"PG", "PG-13", "R", "TV-MA", "TV-14", "TV-Y", "TV-Y7", "TV-PG", "G", "NC-17"},
	}
}

// block is one categorical section of the vector.
type block struct {
	field  string
	values []string
}

func (s *Schema) blocks() []block {
	return []block{
		{field: FieldContentType, values: s.ContentTypes},
		{field: FieldGenrePrimary, values: s.Genres},
		{field: FieldLanguage, values: s.Languages},
		{field: FieldCountry, values: s.Countries},
		{field: FieldContentRating, values: s.ContentRatings},
	}
}

// Width returns the vector width for s.
func (s *Schema) Width() int {
	w := NumericSlots + BooleanSlots
	for _, b := range s.blocks() {
		w += len(b.values)
	}
	return w
}

// Names returns one name per slot, in vector order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Width())
	names = append(names, "duration_norm", "year_norm", "budget_norm")
	for _, b := range s.blocks() {
		for _, v := range b.values {
			names = append(names, b.field+"="+v)
		}
	}
	return append(names, "is_netflix_original", "has_content_warning")
}

// Names returns the slot names of DefaultSchema.
func Names() []string {
	s := DefaultSchema()
	return s.Names()
}
