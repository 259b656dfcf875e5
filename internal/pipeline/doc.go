// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

// Package pipeline ties loading, encoding, splitting, training, and
// prediction together in an explicit Session.
//
// A Session moves through three states. Train before LoadAndProcess returns
// ErrNotLoaded; Predict before a successful Train returns ErrNotTrained.
// Reloading data discards the trained model, since its test split no longer
// matches.
//
//	s := pipeline.NewSession(opts, logger)
//	if _, err := s.LoadAndProcess(ctx); err != nil {
//	    return err
//	}
//	run, err := s.Train(ctx)
//	if err != nil {
//	    return err
//	}
//	for ev := range run.Events() {
//	    fmt.Println(report.StatusLine(ev))
//	}
//	result, err := run.Wait()
package pipeline
