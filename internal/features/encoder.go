// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package features

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/metrics"
)

// SchemaMismatch reports a categorical value that is not in its schema list.
// Row is the record index, or -1 for a prediction input.
type SchemaMismatch struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Row   int    `json:"row"`
}

func (m SchemaMismatch) String() string {
	return fmt.Sprintf("row %d: %s %q not in schema", m.Row, m.Field, m.Value)
}

// Encoded is the output of Encode. It is never modified after Encode returns
// and may be shared with a training goroutine.
type Encoded struct {
	Features   [][]float64      `json:"features"`
	Labels     []float64        `json:"labels"`
	Names      []string         `json:"feature_names"`
	Mismatches []SchemaMismatch `json:"mismatches,omitempty"`
}

// Len returns the number of encoded rows.
func (e *Encoded) Len() int {
	return len(e.Features)
}

// Encoder maps records to vectors under a fixed schema.
type Encoder struct {
	schema Schema
	blocks []block
	index  []map[string]int
	width  int
	logger zerolog.Logger
}

// NewEncoder creates an encoder for schema.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEncoder(schema Schema, logger zerolog.Logger) *Encoder {
	e := &Encoder{
		schema: schema,
		blocks: schema.blocks(),
		width:  schema.Width(),
		logger: logger.With().Str("component", "encoder").Logger(),
	}
	e.index = make([]map[string]int, len(e.blocks))
	for i, b := range e.blocks {
		m := make(map[string]int, len(b.values))
		for j, v := range b.values {
			if _, dup := m[v]; !dup {
				m[v] = j
			}
		}
		e.index[i] = m
	}
	return e
}

// Width returns the vector width.
func (e *Encoder) Width() int {
	return e.width
}

// Schema returns the encoder's schema.
func (e *Encoder) Schema() Schema {
	return e.schema
}

// Encode converts records into feature vectors and labels, one per record,
// in input order.
func (e *Encoder) Encode(records []dataset.Record) (*Encoded, error) {
	if len(records) == 0 {
		return nil, dataset.NewDataError("encode", "no records to encode")
	}
	start := time.Now()

	out := &Encoded{
		Features: make([][]float64, len(records)),
		Labels:   make([]float64, len(records)),
		Names:    e.schema.Names(),
	}
	for i := range records {
		out.Features[i] = e.vector(&records[i], i, &out.Mismatches)
		out.Labels[i] = NormalizeLabel(records[i].IMDBRating)
	}

	e.report(out.Mismatches)
	metrics.EncodeDuration.Observe(time.Since(start).Seconds())

	e.logger.Debug().
		Int("rows", len(records)).
		Int("width", e.width).
		Int("mismatches", len(out.Mismatches)).
		Msg("records encoded")

	return out, nil
}

// EncodeInput encodes a single prediction input through the same path as Encode.
func (e *Encoder) EncodeInput(in *PredictionInput) ([]float64, []SchemaMismatch) {
	rec := in.Record()
	var mismatches []SchemaMismatch
	v := e.vector(&rec, -1, &mismatches)
	e.report(mismatches)
	return v, mismatches
}

func (e *Encoder) vector(r *dataset.Record, row int, mismatches *[]SchemaMismatch) []float64 {
	v := make([]float64, e.width)

	duration := DefaultDuration
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}
	year := DefaultYear
	if r.ReleaseYear != nil {
		year = *r.ReleaseYear
	}
	budget := DefaultBudget
	if r.ProductionBudget != nil {
		budget = *r.ProductionBudget
	}

	v[0] = clamp01(duration / DurationScale)
	v[1] = clamp01((float64(year) - YearBase) / YearSpan)
	v[2] = clamp01(math.Log10(budget+1) / BudgetLogScale)

	pos := NumericSlots
	values := [...]string{r.ContentType, r.GenrePrimary, r.Language, r.Country, r.ContentRating}
	for i, b := range e.blocks {
		if j, ok := e.index[i][values[i]]; ok {
			v[pos+j] = 1
		} else {
			*mismatches = append(*mismatches, SchemaMismatch{Field: b.field, Value: values[i], Row: row})
		}
		pos += len(b.values)
	}

	v[pos] = boolSlot(r.NetflixOriginal)
	v[pos+1] = boolSlot(r.ContentWarning)
	return v
}

// report logs each distinct (field, value) pair once and counts every occurrence.
func (e *Encoder) report(mismatches []SchemaMismatch) {
	if len(mismatches) == 0 {
		return
	}
	type key struct{ field, value string }
	counts := make(map[key]int)
	order := make([]key, 0)
	for _, m := range mismatches {
		k := key{m.Field, m.Value}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
		metrics.SchemaMismatches.WithLabelValues(m.Field).Inc()
	}
	for _, k := range order {
		e.logger.Warn().
			Str("field", k.field).
			Str("value", k.value).
			Int("occurrences", counts[k]).
			Msg("value not in schema, encoded as all-zero block")
	}
}

// NormalizeLabel maps a 0-10 rating into [0, 1].
func NormalizeLabel(rating float64) float64 {
	return clamp01(rating / RatingScale)
}

// DenormalizeLabel maps a model output back to the rating scale.
func DenormalizeLabel(label float64) float64 {
	return label * RatingScale
}

// clamp01 maps NaN and negative values to 0 and values above 1 to 1.
func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func boolSlot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
