// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const header = "movie_id,title,content_type,genre_primary,genre_secondary,release_year,duration_minutes,rating,language,country_of_origin,imdb_rating,production_budget,box_office_revenue,number_of_seasons,number_of_episodes,is_netflix_original,added_to_platform,content_warning\n"

func TestLoad_DropsRowsWithoutUsableRating(t *testing.T) {
	t.Parallel()

	input := header +
		"m1,Zero,Movie,Drama,,2010,100,PG,English,USA,0,,,,,False,2021-01-01,False\n" +
		"m2,Text,Movie,Drama,,2010,100,PG,English,USA,n/a,,,,,False,2021-01-01,False\n" +
		"m3,Good,Movie,Drama,,2010,100,PG,English,USA,7.5,,,,,True,2021-01-01,True\n" +
		"m4,Empty,Movie,Drama,,2010,100,PG,English,USA,,,,,,False,2021-01-01,False\n" +
		"m5,Negative,Movie,Drama,,2010,100,PG,English,USA,-2,,,,,False,2021-01-01,False\n"

	records, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].ID != "m3" || records[0].IMDBRating != 7.5 {
		t.Errorf("kept record = %+v, want m3 rated 7.5", records[0])
	}
	if !records[0].NetflixOriginal || !records[0].ContentWarning {
		t.Error("boolean columns equal to True should read as true")
	}
}

func TestLoad_FieldParsing(t *testing.T) {
	t.Parallel()

	input := header +
		"m1,Zero Budget,Movie,Action,Comedy,2014,0,R,Korean,South Korea,6.1,0,1500.5,,,true,2022-03-04,1\n" +
		"m2,Sparse,TV Series,Crime,,twenty,,,,,8,,,3,24.0,False,not-a-date,False\n" +
		"m3,Fractional Year,Movie,War,,2001.5,95.5,G,German,Germany,5,,,,,False,,False\n"

	records, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	r := records[0]
	if r.ReleaseYear == nil || *r.ReleaseYear != 2014 {
		t.Errorf("ReleaseYear = %v, want 2014", r.ReleaseYear)
	}
	if r.DurationMinutes == nil || *r.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %v, want present zero", r.DurationMinutes)
	}
	if r.ProductionBudget == nil || *r.ProductionBudget != 0 {
		t.Errorf("ProductionBudget = %v, want present zero", r.ProductionBudget)
	}
	if r.BoxOfficeRevenue == nil || *r.BoxOfficeRevenue != 1500.5 {
		t.Errorf("BoxOfficeRevenue = %v, want 1500.5", r.BoxOfficeRevenue)
	}
	if r.NetflixOriginal || r.ContentWarning {
		t.Error("only the exact token True should read as true")
	}
	if r.AddedToPlatform == nil || r.AddedToPlatform.Format(DateLayout) != "2022-03-04" {
		t.Errorf("AddedToPlatform = %v, want 2022-03-04", r.AddedToPlatform)
	}
	if r.GenreSecondary != "Comedy" || r.ContentRating != "R" {
		t.Errorf("string fields = %q/%q", r.GenreSecondary, r.ContentRating)
	}

	r = records[1]
	if r.ReleaseYear != nil || r.DurationMinutes != nil || r.AddedToPlatform != nil {
		t.Errorf("unparseable cells should be absent: %+v", r)
	}
	if r.NumberOfSeasons == nil || *r.NumberOfSeasons != 3 {
		t.Errorf("NumberOfSeasons = %v, want 3", r.NumberOfSeasons)
	}
	if r.NumberOfEpisodes == nil || *r.NumberOfEpisodes != 24 {
		t.Errorf("NumberOfEpisodes = %v, want 24", r.NumberOfEpisodes)
	}

	r = records[2]
	if r.ReleaseYear != nil {
		t.Errorf("non-integral year should be absent, got %d", *r.ReleaseYear)
	}
	if r.DurationMinutes == nil || *r.DurationMinutes != 95.5 {
		t.Errorf("DurationMinutes = %v, want 95.5", r.DurationMinutes)
	}
}

func TestLoad_ToleratesLayoutNoise(t *testing.T) {
	t.Parallel()

	input := "\n" +
		"\ufeff imdb_rating , title ,unknown_column\n" +
		"\n" +
		"7.2,First,x\n" +
		",,\n" +
		"   \n" +
		"6.4,\"Second, Part Two\",y\n"

	records, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Title != "First" || records[1].Title != "Second, Part Two" {
		t.Errorf("titles = %q, %q", records[0].Title, records[1].Title)
	}
	if records[0].ContentType != "" || records[0].ReleaseYear != nil {
		t.Error("columns missing from the header should stay empty")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		parseErr bool
	}{
		{name: "empty input", input: ""},
		{name: "only blank lines", input: "\n\n  \n"},
		{name: "missing rating column", input: "title,year\nA,2000\n"},
		{name: "ragged row", input: "title,imdb_rating\nA,7.0,extra\n"},
		{name: "short row", input: "title,imdb_rating,year\nA,7.0\n"},
		{name: "bare quote", input: "title,imdb_rating\nA \"quoted\" title,7.0\n", parseErr: true},
		{name: "unterminated quote", input: "title,imdb_rating\n\"A,7.0\n", parseErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrData) {
				t.Errorf("error %v does not match ErrData", err)
			}
			var dataErr *DataError
			if !errors.As(err, &dataErr) || dataErr.Op != "load" {
				t.Errorf("expected *DataError with op load, got %T %v", err, err)
			}
			var csvErr *csv.ParseError
			if got := errors.As(err, &csvErr); got != tt.parseErr {
				t.Errorf("wraps csv.ParseError = %v, want %v", got, tt.parseErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	if err := os.WriteFile(path, []byte(header+"m1,A,Movie,Drama,,2010,100,PG,English,USA,8.1,,,,,False,,False\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := NewLoader(zerolog.Nop()).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(records) != 1 || records[0].IMDBRating != 8.1 {
		t.Errorf("records = %+v", records)
	}

	if _, err := LoadFile(filepath.Join(dir, "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	} else if errors.Is(err, ErrData) {
		t.Error("missing file is an I/O error, not a data error")
	}
}

func TestSample(t *testing.T) {
	t.Parallel()

	records, err := Sample()
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(records) != 40 {
		t.Fatalf("len(Sample()) = %d, want 40 rated rows", len(records))
	}
	if records[0].ID != "movie_0002" || records[0].Title != "Storm Warrior" {
		t.Errorf("first rated record = %s %q", records[0].ID, records[0].Title)
	}

	raw := SampleCSV()
	raw[0] = 'X'
	if SampleCSV()[0] == 'X' {
		t.Error("SampleCSV should return a copy")
	}
}

func TestDataError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := WrapDataError("split", "bad ratio", cause)
	if err.Error() != "split: bad ratio: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) || !errors.Is(err, ErrData) {
		t.Error("wrapped DataError should match both its cause and ErrData")
	}
	if got := NewDataError("encode", "no records").Error(); got != "encode: no records" {
		t.Errorf("Error() = %q", got)
	}
}
