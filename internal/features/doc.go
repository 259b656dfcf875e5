// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Package features turns dataset records into fixed-width numeric vectors and
splits them into training and test subsets.

# Vector Layout

Every vector has Width (54) slots, in this order:

	[0]      duration_norm        clamp(duration / 200)
	[1]      year_norm            clamp((year - 1990) / 30)
	[2]      budget_norm          clamp(log10(budget + 1) / 10)
	[3:8]    content_type=*       one-hot, 5 values
	[8:26]   genre_primary=*      one-hot, 18 values
	[26:34]  language=*           one-hot, 8 values
	[34:42]  country_of_origin=*  one-hot, 8 values
	[42:52]  rating=*             one-hot, 10 values
	[52]     is_netflix_original  0 or 1
	[53]     has_content_warning  0 or 1

Missing numeric cells take the defaults 90 minutes, year 2000, and budget 0.
Clamping is to [0, 1]. Names returns the slot names for a schema.

Categorical matching is exact and case-sensitive. A value outside its list
encodes as an all-zero block and is reported as a SchemaMismatch; encoding
still succeeds.

# Labels

The label is min(imdb_rating / RatingScale, 1). DenormalizeLabel maps a model
output back to the 0-10 rating scale.

# Splitting

SplitAt keeps the first floor(N * ratio) rows for training and the rest for
testing, without shuffling. The same input always yields the same split.

	enc := features.NewEncoder(features.DefaultSchema(), logger)
	encoded, err := enc.Encode(records)
	if err != nil {
	    return err
	}
	split, err := features.SplitAt(encoded, features.DefaultSplitRatio)
*/
package features
