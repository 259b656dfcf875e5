// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package features

import (
	"fmt"
	"math"

	"github.com/tomtom215/cinerate/internal/dataset"
)

// Subset is one side of a split. Its slices alias the Encoded input.
type Subset struct {
	Features [][]float64 `json:"features"`
	Labels   []float64   `json:"labels"`
}

// Len returns the number of rows.
func (s Subset) Len() int {
	return len(s.Features)
}

// Split partitions encoded rows into a training prefix and a test suffix.
type Split struct {
	Train Subset  `json:"train"`
	Test  Subset  `json:"test"`
	Ratio float64 `json:"ratio"`
}

// SplitAt puts the first floor(N * ratio) rows in Train and the rest in Test.
// ratio must lie strictly between 0 and 1.
func SplitAt(encoded *Encoded, ratio float64) (*Split, error) {
	if encoded == nil {
		return nil, dataset.NewDataError("split", "nothing to split")
	}
	if len(encoded.Features) != len(encoded.Labels) {
		return nil, dataset.NewDataError("split",
			fmt.Sprintf("%d feature rows but %d labels", len(encoded.Features), len(encoded.Labels)))
	}
	n := len(encoded.Features)
	if n == 0 {
		return nil, dataset.NewDataError("split", "no rows to split")
	}
	if math.IsNaN(ratio) || ratio <= 0 || ratio >= 1 {
		return nil, dataset.NewDataError("split", fmt.Sprintf("ratio %v outside (0, 1)", ratio))
	}

	cut := int(math.Floor(float64(n) * ratio))
	return &Split{
		Train: Subset{Features: encoded.Features[:cut:cut], Labels: encoded.Labels[:cut:cut]},
		Test:  Subset{Features: encoded.Features[cut:], Labels: encoded.Labels[cut:]},
		Ratio: ratio,
	}, nil
}
