// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package regress

import (
	"sync"
	"time"
)

// baseModel provides the trained-state bookkeeping shared by all models.
type baseModel struct {
	name          string
	trained       bool
	version       int
	width         int
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

func newBaseModel(name string) baseModel {
	return baseModel{name: name}
}

// Name returns the model identifier.
func (b *baseModel) Name() string {
	return b.name
}

// IsTrained returns whether the model has been fitted.
func (b *baseModel) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Version returns the number of successful fits.
func (b *baseModel) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastTrainedAt returns when the model was last fitted.
func (b *baseModel) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// markTrained must be called while holding the training lock.
func (b *baseModel) markTrained(width int) {
	b.trained = true
	b.width = width
	b.version++
	b.lastTrainedAt = time.Now()
}

// checkPredictable must be called while holding the predict lock.
func (b *baseModel) checkPredictable(width int) error {
	if !b.trained {
		return ErrNotTrained
	}
	if width != b.width {
		return dimensionError(width, b.width)
	}
	return nil
}

func (b *baseModel) acquireTrainLock()   { b.mu.Lock() }
func (b *baseModel) releaseTrainLock()   { b.mu.Unlock() }
func (b *baseModel) acquirePredictLock() { b.mu.RLock() }
func (b *baseModel) releasePredictLock() { b.mu.RUnlock() }
