// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockService is a controllable suture.Service for tree tests.
type MockService struct {
	name     string
	starts   atomic.Int32
	stops    atomic.Int32
	failures atomic.Int32
	maxFails atomic.Int32
	err      atomic.Pointer[error]
}

func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Serve fails until the configured failure count is used up, then returns
// the configured error or blocks until ctx is done.
func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	defer m.stops.Add(1)

	if m.failures.Add(1) <= m.maxFails.Load() {
		return errors.New("simulated failure")
	}
	if err := m.err.Load(); err != nil {
		return *err
	}
	<-ctx.Done()
	return ctx.Err()
}

// SetError makes Serve return err immediately.
func (m *MockService) SetError(err error) {
	m.err.Store(&err)
}

// SetFailCount makes the first n runs fail.
func (m *MockService) SetFailCount(n int) {
	m.maxFails.Store(int32(n)) //nolint:gosec // test counts are small
}

func (m *MockService) StartCount() int32 { return m.starts.Load() }

func (m *MockService) StopCount() int32 { return m.stops.Load() }

func (m *MockService) String() string { return m.name }
