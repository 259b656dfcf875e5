// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package regress

import (
	"context"
	"fmt"
	"time"
)

// Job is a running fit.
type Job struct {
	events chan EpochEvent
	done   chan struct{}
	report *TrainingReport
	err    error
}

// fitFunc runs a fit and calls emit once per epoch.
type fitFunc func(ctx context.Context, report *TrainingReport, emit func(EpochEvent)) error

// startJob runs fn in a new goroutine. The events channel is buffered to
// maxEvents so the fit never blocks on a slow or absent reader.
func startJob(ctx context.Context, model string, maxEvents int, fn fitFunc) *Job {
	if maxEvents < 1 {
		maxEvents = 1
	}
	j := &Job{
		events: make(chan EpochEvent, maxEvents),
		done:   make(chan struct{}),
	}

	go func() {
		start := time.Now()
		report := &TrainingReport{Model: model}
		emit := func(ev EpochEvent) {
			report.Events = append(report.Events, ev)
			select {
			case j.events <- ev:
			default:
			}
		}

		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s fit panicked: %v", model, r)
				}
			}()
			return fn(ctx, report, emit)
		}()

		report.Duration = time.Since(start)
		if err != nil {
			j.err = err
		} else {
			j.report = report
		}
		close(j.events)
		close(j.done)
	}()

	return j
}

// failedJob returns a Job that has already ended with err.
func failedJob(err error) *Job {
	j := &Job{events: make(chan EpochEvent), done: make(chan struct{}), err: err}
	close(j.events)
	close(j.done)
	return j
}

// Events returns the per-epoch progress stream. It is closed when the fit ends.
func (j *Job) Events() <-chan EpochEvent {
	return j.events
}

// Done is closed when the fit ends.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the fit ends and returns its report or error.
func (j *Job) Wait() (*TrainingReport, error) {
	<-j.done
	return j.report, j.err
}
