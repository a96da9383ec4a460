package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestManagerRunsSweepAndStopsCleanly(t *testing.T) {
	var sweeps, reminders atomic.Int32

	m := NewManager(
		5*time.Millisecond,
		5*time.Millisecond,
		func(ctx context.Context) (int, error) {
			sweeps.Add(1)
			return 0, nil
		},
		func(ctx context.Context) error {
			reminders.Add(1)
			return nil
		},
	)

	m.Start()
	time.Sleep(50 * time.Millisecond)
	m.Stop()

	if sweeps.Load() == 0 {
		t.Fatalf("expected at least one sweep tick")
	}
	if reminders.Load() == 0 {
		t.Fatalf("expected at least one reminder tick")
	}

	// No further ticks after Stop.
	s := sweeps.Load()
	time.Sleep(20 * time.Millisecond)
	if sweeps.Load() != s {
		t.Fatalf("expected sweeps to stop after Stop")
	}
}

func TestManagerStartIsIdempotent(t *testing.T) {
	m := NewManager(time.Hour, time.Hour,
		func(ctx context.Context) (int, error) { return 0, nil },
		func(ctx context.Context) error { return nil },
	)

	m.Start()
	m.Start() // second start is a no-op
	m.Stop()
	m.Stop() // second stop is a no-op
}

func TestManagerCanRestart(t *testing.T) {
	var sweeps atomic.Int32

	m := NewManager(5*time.Millisecond, time.Hour,
		func(ctx context.Context) (int, error) {
			sweeps.Add(1)
			return 0, nil
		},
		func(ctx context.Context) error { return nil },
	)

	m.Start()
	time.Sleep(20 * time.Millisecond)
	m.Stop()

	before := sweeps.Load()
	m.Start()
	time.Sleep(20 * time.Millisecond)
	m.Stop()

	if sweeps.Load() <= before {
		t.Fatalf("expected sweeps to resume after restart")
	}
}
