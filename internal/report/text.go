// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/features"
	"github.com/tomtom215/cinerate/internal/pipeline"
	"github.com/tomtom215/cinerate/internal/regress"
)

// StatusLine formats one epoch, e.g. "Epoch 3/50 - Loss: 0.0123".
func StatusLine(ev regress.EpochEvent) string {
	line := fmt.Sprintf("Epoch %d/%d - Loss: %.4f", ev.Epoch, ev.Epochs, ev.Loss)
	if ev.ValLoss != nil {
		line += fmt.Sprintf(" - Val Loss: %.4f", *ev.ValLoss)
	}
	return line
}

// ProgressBar renders epoch progress as a fixed-width bar.
func ProgressBar(ev regress.EpochEvent, width int) string {
	if width < 1 || ev.Epochs < 1 {
		return ""
	}
	filled := ev.Epoch * width / ev.Epochs
	filled = max(0, min(filled, width))
	pct := float64(ev.Epoch) / float64(ev.Epochs) * 100
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), pct)
}

// WriteStats writes the dataset summary as a grid.
func WriteStats(w io.Writer, s dataset.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Total Movies\tWith Ratings\tAvg Rating\tRating Range\tStd Dev")
	fmt.Fprintf(tw, "%d\t%d\t%.1f/10\t%s-%s\t%.2f\n",
		s.Total, s.WithRatings, s.AvgRating, formatRating(s.MinRating), formatRating(s.MaxRating), s.StdDev)
	return tw.Flush()
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// WriteLoad writes a LoadAndProcess summary.
func WriteLoad(w io.Writer, res *pipeline.LoadResult) error {
	if err := WriteStats(w, res.Stats); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nSource: %s\nFeatures: %d\nSplit: %d train / %d test\n",
		res.Source, res.Width, res.TrainSize, res.TestSize); err != nil {
		return err
	}
	return WriteMismatches(w, res.Mismatches)
}

// WriteMismatches lists categorical values outside the schema, one line per
// distinct (field, value) with its occurrence count.
func WriteMismatches(w io.Writer, mismatches []features.SchemaMismatch) error {
	if len(mismatches) == 0 {
		return nil
	}
	type key struct{ field, value string }
	counts := make(map[key]int)
	var order []key
	for _, m := range mismatches {
		k := key{m.Field, m.Value}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	if _, err := fmt.Fprintln(w, "\nValues not in the encoding schema (encoded as all-zero):"); err != nil {
		return err
	}
	for _, k := range order {
		if _, err := fmt.Fprintf(w, "  %s=%q x%d\n", k.field, k.value, counts[k]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTraining writes the outcome of a training run and its loss chart.
func WriteTraining(w io.Writer, res *pipeline.TrainResult) error {
	r := res.Report
	status := "stopped at epoch limit"
	if r.Converged {
		status = "converged"
	}
	if _, err := fmt.Fprintf(w, "Model: %s (%d epochs, %s, %s)\n",
		res.Model, len(r.Events), status, r.Duration.Round(time.Millisecond)); err != nil {
		return err
	}

	if res.Evaluated {
		if _, err := fmt.Fprintf(w, "Training completed! Test RMSE: %.2f\n\n", res.TestRMSE); err != nil {
			return err
		}
	} else if _, err := fmt.Fprint(w, "Training completed! No test rows to evaluate.\n\n"); err != nil {
		return err
	}

	return WriteLossChart(w, r.Losses(), r.ValLosses(), DefaultChartWidth, DefaultChartHeight)
}

// WritePrediction writes a prediction card.
func WritePrediction(w io.Writer, p *pipeline.Prediction) error {
	if _, err := fmt.Fprintf(w, "Predicted IMDB Rating: %.1f/10\nConfidence: %.1f%%\n",
		p.Rating, p.Confidence); err != nil {
		return err
	}
	return WriteMismatches(w, p.Mismatches)
}
