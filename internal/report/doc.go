// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Package report renders pipeline results for the terminal.

Every output has a text form and a JSON form. A Printer picks one:

	p := report.NewPrinter(os.Stdout, jsonOutput)
	p.Stats(stats)
	for ev := range run.Events() {
	    p.Progress(ev)
	}
	p.Training(result)

Text output:

	Total Movies   With Ratings   Avg Rating   Rating Range
	50             40             6.8/10       3.1-9.9

	Epoch 3/50 - Loss: 0.0123

	Predicted IMDB Rating: 7.4/10
	Confidence: 96.0%

JSON output writes one document per call (progress events as one line each),
encoded with goccy/go-json.
*/
package report
