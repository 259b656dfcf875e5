// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package dataset

import (
	"errors"
	"fmt"
)

// ErrData is the sentinel matched by every DataError.
//
//	if errors.Is(err, dataset.ErrData) { ... }
var ErrData = errors.New("data error")

// DataError reports malformed or empty input to the loader, encoder, or splitter.
type DataError struct {
	// Op is the operation that failed: "load", "encode", "split".
	Op string

	// Reason is a short human-readable description.
	Reason string

	// Err is the underlying cause, if any (e.g. a *csv.ParseError).
	Err error
}

// NewDataError creates a DataError without an underlying cause.
func NewDataError(op, reason string) *DataError {
	return &DataError{Op: op, Reason: reason}
}

// WrapDataError creates a DataError around err.
func WrapDataError(op, reason string, err error) *DataError {
	return &DataError{Op: op, Reason: reason, Err: err}
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *DataError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrData) true for any DataError.
func (e *DataError) Is(target error) bool {
	return target == ErrData
}
