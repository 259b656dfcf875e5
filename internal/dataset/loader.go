// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/metrics"
)

// Drop reasons, used as the metrics label and in debug logs.
const (
	DropMissingRating     = "missing_rating"
	DropNonNumericRating  = "non_numeric_rating"
	DropNonPositiveRating = "non_positive_rating"
)

// Loader parses CSV tables into Records.
// A Loader holds no per-load state and is safe for concurrent use.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a loader that logs through logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger.With().Str("component", "loader").Logger()}
}

// Load parses a table with the default (silent) loader.
func Load(r io.Reader) ([]Record, error) {
	return NewLoader(zerolog.Nop()).Load(r)
}

// LoadFile loads a table from path with the default (silent) loader.
func LoadFile(path string) ([]Record, error) {
	return NewLoader(zerolog.Nop()).LoadFile(path)
}

// LoadFile opens path and loads it.
func (l *Loader) LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Warn().Err(cerr).Str("path", path).Msg("failed to close dataset file")
		}
	}()

	records, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

// Load reads a header-declared CSV table from r and returns the rows that
// carry a usable imdb_rating, in input order.
func (l *Loader) Load(r io.Reader) ([]Record, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are checked below so blank lines can be skipped
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false

	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, 64)
	dropped := make(map[string]int)
	rows := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, WrapDataError("load", "malformed table", err)
		}
		if blankRow(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(row) != len(header.names) {
			return nil, NewDataError("load",
				fmt.Sprintf("line %d: expected %d fields, got %d", line, len(header.names), len(row)))
		}
		rows++

		rec, reason := header.decode(row)
		if reason != "" {
			dropped[reason]++
			l.logger.Debug().
				Int("line", line).
				Str("reason", reason).
				Str("title", rec.Label()).
				Msg("dropping row without usable rating")
			continue
		}
		records = append(records, rec)
	}

	totalDropped := 0
	for reason, n := range dropped {
		totalDropped += n
		metrics.RecordsDropped.WithLabelValues(reason).Add(float64(n))
	}
	metrics.RecordsLoaded.Add(float64(len(records)))
	metrics.LoadDuration.Observe(time.Since(start).Seconds())

	l.logger.Info().
		Int("rows", rows).
		Int("loaded", len(records)).
		Int("dropped", totalDropped).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded")

	return records, nil
}

// columns maps header names to their cell index.
type columns struct {
	names []string
	index map[string]int
}

func readHeader(reader *csv.Reader) (*columns, error) {
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, NewDataError("load", "empty input: no header row")
		}
		if err != nil {
			return nil, WrapDataError("load", "malformed header", err)
		}
		if blankRow(row) {
			continue
		}

		cols := &columns{names: make([]string, len(row)), index: make(map[string]int, len(row))}
		for i, name := range row {
			if i == 0 {
				name = strings.TrimPrefix(name, "\ufeff")
			}
			name = strings.TrimSpace(name)
			cols.names[i] = name
			if _, dup := cols.index[name]; !dup {
				cols.index[name] = i
			}
		}
		if _, ok := cols.index[ColumnIMDBRating]; !ok {
			return nil, NewDataError("load", "header has no "+ColumnIMDBRating+" column")
		}
		return cols, nil
	}
}

// cell returns the trimmed value of a named column, or "" when the column is absent.
func (c *columns) cell(row []string, name string) string {
	i, ok := c.index[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// decode builds a Record from row. A non-empty reason means the row is dropped.
func (c *columns) decode(row []string) (Record, string) {
	rec := Record{
		ID:               c.cell(row, ColumnID),
		Title:            c.cell(row, ColumnTitle),
		ContentType:      c.cell(row, ColumnContentType),
		GenrePrimary:     c.cell(row, ColumnGenrePrimary),
		GenreSecondary:   c.cell(row, ColumnGenreSecondary),
		ReleaseYear:      parseInt(c.cell(row, ColumnReleaseYear)),
		DurationMinutes:  parseFloat(c.cell(row, ColumnDurationMinutes)),
		ContentRating:    c.cell(row, ColumnContentRating),
		Language:         c.cell(row, ColumnLanguage),
		Country:          c.cell(row, ColumnCountry),
		ProductionBudget: parseFloat(c.cell(row, ColumnProductionBudget)),
		BoxOfficeRevenue: parseFloat(c.cell(row, ColumnBoxOffice)),
		NumberOfSeasons:  parseInt(c.cell(row, ColumnSeasons)),
		NumberOfEpisodes: parseInt(c.cell(row, ColumnEpisodes)),
		NetflixOriginal:  c.cell(row, ColumnNetflixOriginal) == TruthyToken,
		AddedToPlatform:  parseDate(c.cell(row, ColumnAddedToPlatform)),
		ContentWarning:   c.cell(row, ColumnContentWarning) == TruthyToken,
	}

	raw := c.cell(row, ColumnIMDBRating)
	if raw == "" {
		return rec, DropMissingRating
	}
	rating := parseFloat(raw)
	if rating == nil {
		return rec, DropNonNumericRating
	}
	if *rating <= 0 {
		return rec, DropNonPositiveRating
	}
	rec.IMDBRating = *rating
	return rec, ""
}

func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseFloat returns nil for empty, non-numeric, NaN, or infinite cells.
func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseInt accepts integral numbers written either way ("2014" or "12.0").
func parseInt(s string) *int {
	f := parseFloat(s)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	v := int(*f)
	return &v
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
