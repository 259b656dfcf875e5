// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ratings []float64
		want    Stats
	}{
		{name: "empty", ratings: nil, want: Stats{}},
		{name: "single", ratings: []float64{7}, want: Stats{Total: 1, WithRatings: 1, AvgRating: 7, MinRating: 7, MaxRating: 7}},
		{name: "several", ratings: []float64{4, 6, 8}, want: Stats{Total: 3, WithRatings: 3, AvgRating: 6, MinRating: 4, MaxRating: 8, StdDev: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			records := make([]Record, len(tt.ratings))
			for i, r := range tt.ratings {
				records[i].IMDBRating = r
			}
			got := Summarize(records)
			if got.Total != tt.want.Total || got.WithRatings != tt.want.WithRatings {
				t.Errorf("counts = %d/%d, want %d/%d", got.Total, got.WithRatings, tt.want.Total, tt.want.WithRatings)
			}
			for _, c := range []struct {
				field     string
				got, want float64
			}{
				{"AvgRating", got.AvgRating, tt.want.AvgRating},
				{"MinRating", got.MinRating, tt.want.MinRating},
				{"MaxRating", got.MaxRating, tt.want.MaxRating},
				{"StdDev", got.StdDev, tt.want.StdDev},
			} {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestSummarize_Sample(t *testing.T) {
	t.Parallel()

	records, err := Sample()
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	s := Summarize(records)
	if s.Total != 40 || s.WithRatings != 40 {
		t.Errorf("counts = %d/%d, want 40/40", s.Total, s.WithRatings)
	}
	if math.Abs(s.AvgRating-6.75) > 1e-9 {
		t.Errorf("AvgRating = %v, want 6.75", s.AvgRating)
	}
	if s.MinRating != 3.1 || s.MaxRating != 9.9 {
		t.Errorf("range = [%v, %v], want [3.1, 9.9]", s.MinRating, s.MaxRating)
	}
}
