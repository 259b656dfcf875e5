// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/pipeline"
	"github.com/tomtom215/cinerate/internal/regress"
)

// Printer writes results as text or JSON.
type Printer struct {
	out  io.Writer
	json bool
}

// NewPrinter creates a printer. With asJSON set, every call writes JSON.
func NewPrinter(out io.Writer, asJSON bool) *Printer {
	return &Printer{out: out, json: asJSON}
}

// JSON reports whether the printer writes JSON.
func (p *Printer) JSON() bool {
	return p.json
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Stats prints a dataset summary.
func (p *Printer) Stats(s dataset.Stats) error {
	if p.json {
		return WriteJSON(p.out, s)
	}
	return WriteStats(p.out, s)
}

// Load prints a LoadAndProcess summary.
func (p *Printer) Load(res *pipeline.LoadResult) error {
	if p.json {
		return WriteJSON(p.out, res)
	}
	return WriteLoad(p.out, res)
}

// Progress prints one epoch. JSON mode writes one compact line per event.
func (p *Printer) Progress(ev regress.EpochEvent) error {
	if p.json {
		if err := json.NewEncoder(p.out).Encode(ev); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintf(p.out, "%s %s\n", ProgressBar(ev, 20), StatusLine(ev))
	return err
}

// Training prints a finished training run.
func (p *Printer) Training(res *pipeline.TrainResult) error {
	if p.json {
		return WriteJSON(p.out, res)
	}
	return WriteTraining(p.out, res)
}

// Prediction prints a prediction card.
func (p *Printer) Prediction(pred *pipeline.Prediction) error {
	if p.json {
		return WriteJSON(p.out, pred)
	}
	return WritePrediction(p.out, pred)
}

// Encoded prints encoded vectors. Text mode prints one line per row with the
// label first.
func (p *Printer) Encoded(enc *features.Encoded) error {
	if p.json {
		return WriteJSON(p.out, enc)
	}
	if _, err := fmt.Fprintf(p.out, "# label %d features\n", len(enc.Names)); err != nil {
		return err
	}
	for i, row := range enc.Features {
		if _, err := fmt.Fprintf(p.out, "%.2f %v\n", enc.Labels[i], row); err != nil {
			return err
		}
	}
	return WriteMismatches(p.out, enc.Mismatches)
}
