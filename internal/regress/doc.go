// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

// Package regress implements the rating regressors behind a narrow interface.
//
// Models work in label space: inputs are encoded feature vectors and targets
// are ratings scaled into [0, 1]. Callers rescale predictions themselves.
//
// # Models
//
//   - Ridge: L2-regularized linear least squares. The normal equations are
//     accumulated in batches and solved by conjugate gradient, one iteration
//     per epoch, so the loss curve reflects real solver progress.
//   - Baseline: predicts the mean training label. Useful as a floor.
//
// # Asynchronous Fit
//
// Fit returns immediately with a *Job. Per-epoch progress arrives on
// Job.Events, which is closed when the fit ends; Job.Wait returns the final
// report or error. Cancelling the context stops the fit between batches and
// leaves any previously fitted state untouched.
//
//	job := model.Fit(ctx, split.Train.Features, split.Train.Labels, regress.DefaultTrainConfig())
//	for ev := range job.Events() {
//	    fmt.Printf("Epoch %d/%d - Loss: %.4f\n", ev.Epoch, ev.Epochs, ev.Loss)
//	}
//	report, err := job.Wait()
//
// # Thread Safety
//
// Fitting holds an exclusive lock while prediction and evaluation use a
// shared lock.
package regress
