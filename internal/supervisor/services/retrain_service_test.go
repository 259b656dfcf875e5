// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinerate/internal/dataset"
	"github.com/tomtom215/cinerate/internal/pipeline"
	"github.com/tomtom215/cinerate/internal/watcher"
)

// mockTrainer is a mock implementation for testing.
type mockTrainer struct {
	mu    sync.Mutex
	calls int
	err   error
	ran   chan struct{}
}

func newMockTrainer() *mockTrainer {
	return &mockTrainer{ran: make(chan struct{}, 16)}
}

func (m *mockTrainer) Run(ctx context.Context) (*pipeline.TrainResult, error) {
	m.mu.Lock()
	m.calls++
	err := m.err
	m.mu.Unlock()

	defer func() { m.ran <- struct{}{} }()
	if err != nil {
		return nil, err
	}
	return &pipeline.TrainResult{Model: "baseline", TestRMSE: 1.5}, nil
}

func (m *mockTrainer) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockTrainer) waitRuns(t *testing.T, n int) {
	t.Helper()
	for range n {
		select {
		case <-m.ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("trainer ran %d times, want %d", m.getCalls(), n)
		}
	}
}

func serve(t *testing.T, svc *RetrainService) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Serve did not return after cancel")
		}
	})
	return cancel
}

func TestRetrainService_String(t *testing.T) {
	svc := NewRetrainService(newMockTrainer(), nil, RetrainServiceConfig{}, zerolog.Nop())
	if got := svc.String(); got != "retrain-service" {
		t.Errorf("String() = %q, want %q", got, "retrain-service")
	}
}

func TestRetrainService_TrainOnStartup(t *testing.T) {
	trainer := newMockTrainer()
	svc := NewRetrainService(trainer, nil, RetrainServiceConfig{TrainOnStartup: true}, zerolog.Nop())
	serve(t, svc)

	trainer.waitRuns(t, 1)
}

func TestRetrainService_NoStartupTraining(t *testing.T) {
	trainer := newMockTrainer()
	svc := NewRetrainService(trainer, nil, RetrainServiceConfig{}, zerolog.Nop())
	serve(t, svc)

	time.Sleep(100 * time.Millisecond)
	if got := trainer.getCalls(); got != 0 {
		t.Errorf("Run() called %d times, want 0", got)
	}
}

func TestRetrainService_RetrainsOnChange(t *testing.T) {
	trainer := newMockTrainer()
	changes := make(chan watcher.Event)
	svc := NewRetrainService(trainer, changes, RetrainServiceConfig{}, zerolog.Nop())
	serve(t, svc)

	changes <- watcher.Event{Type: watcher.EventChanged, Path: "movies.csv"}
	trainer.waitRuns(t, 1)

	// Removal keeps the current model.
	changes <- watcher.Event{Type: watcher.EventRemoved, Path: "movies.csv"}
	changes <- watcher.Event{Type: watcher.EventChanged, Path: "movies.csv"}
	trainer.waitRuns(t, 1)

	if got := trainer.getCalls(); got != 2 {
		t.Errorf("Run() called %d times, want 2", got)
	}
}

func TestRetrainService_Interval(t *testing.T) {
	trainer := newMockTrainer()
	svc := NewRetrainService(trainer, nil, RetrainServiceConfig{RetrainInterval: 20 * time.Millisecond}, zerolog.Nop())
	serve(t, svc)

	trainer.waitRuns(t, 3)
}

func TestRetrainService_FailuresKeepServing(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "data error", err: dataset.NewDataError("load", "empty input: no header row")},
		{name: "other error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trainer := newMockTrainer()
			trainer.err = tt.err

			var (
				mu     sync.Mutex
				errs   []error
				result = make(chan struct{}, 4)
			)
			cfg := RetrainServiceConfig{
				TrainOnStartup: true,
				OnResult: func(_ *pipeline.TrainResult, err error) {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					result <- struct{}{}
				},
			}
			changes := make(chan watcher.Event, 1)
			svc := NewRetrainService(trainer, changes, cfg, zerolog.Nop())
			serve(t, svc)

			<-result
			changes <- watcher.Event{Type: watcher.EventChanged}
			<-result

			mu.Lock()
			defer mu.Unlock()
			if len(errs) != 2 {
				t.Fatalf("OnResult called %d times, want 2", len(errs))
			}
			for _, err := range errs {
				if !errors.Is(err, tt.err) {
					t.Errorf("OnResult err = %v, want %v", err, tt.err)
				}
			}
		})
	}
}
