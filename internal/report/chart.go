// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package report

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Chart dimensions used by WriteTraining.
const (
	DefaultChartWidth  = 50
	DefaultChartHeight = 10
)

// Chart glyphs. Cells where both series land show chartBoth.
const (
	chartTrain = '*'
	chartVal   = 'o'
	chartBoth  = '#'
)

// WriteLossChart plots per-epoch loss as an ASCII line chart. val may be nil.
// When there are more epochs than columns, each column shows the mean of its
// epochs.
func WriteLossChart(w io.Writer, train, val []float64, width, height int) error {
	if len(train) == 0 {
		_, err := fmt.Fprintln(w, "(no training history)")
		return err
	}
	width = max(1, min(width, len(train)))
	height = max(2, height)

	trainCols := resample(train, width)
	var valCols []float64
	if len(val) == len(train) {
		valCols = resample(val, width)
	}

	lo, hi := bounds(trainCols, valCols)
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	plot := func(cols []float64, glyph rune) {
		for c, v := range cols {
			if math.IsNaN(v) {
				continue
			}
			r := rowFor(v, lo, hi, height)
			switch grid[r][c] {
			case ' ', glyph:
				grid[r][c] = glyph
			default:
				grid[r][c] = chartBoth
			}
		}
	}
	plot(valCols, chartVal)
	plot(trainCols, chartTrain)

	var b strings.Builder
	b.WriteString("Training Loss\n")
	for r, line := range grid {
		label := ""
		switch r {
		case 0:
			label = fmt.Sprintf("%.4f", hi)
		case height - 1:
			label = fmt.Sprintf("%.4f", lo)
		}
		fmt.Fprintf(&b, "%10s |%s\n", label, string(line))
	}
	fmt.Fprintf(&b, "%10s +%s\n", "", strings.Repeat("-", width))

	axis := "1"
	if last := fmt.Sprintf("%d", len(train)); len(train) > 1 {
		axis += strings.Repeat(" ", max(1, width-1-len(last))) + last
	}
	fmt.Fprintf(&b, "%10s  %s  Epoch\n", "", axis)

	legend := fmt.Sprintf("%c train", chartTrain)
	if valCols != nil {
		legend += fmt.Sprintf("   %c validation   %c both", chartVal, chartBoth)
	}
	fmt.Fprintf(&b, "%10s  %s\n", "", legend)

	_, err := io.WriteString(w, b.String())
	return err
}

// resample averages values into n buckets. n must not exceed len(values).
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	for c := range n {
		from := c * len(values) / n
		to := (c + 1) * len(values) / n
		sum, count := 0.0, 0
		for _, v := range values[from:to] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
			count++
		}
		if count == 0 {
			out[c] = math.NaN()
			continue
		}
		out[c] = sum / float64(count)
	}
	return out
}

func bounds(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// rowFor maps v to a grid row, with row 0 at hi.
func rowFor(v, lo, hi float64, height int) int {
	r := int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
	return max(0, min(r, height-1))
}
