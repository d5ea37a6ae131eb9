package refresher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNew_Defaults(t *testing.T) {
	r := New(Config{}, func(context.Context) error { return nil }, nil)
	def := DefaultConfig()
	if r.cfg.Interval != def.Interval {
		t.Errorf("Interval = %v, want %v", r.cfg.Interval, def.Interval)
	}
	if r.cfg.Timeout != def.Timeout {
		t.Errorf("Timeout = %v, want %v", r.cfg.Timeout, def.Timeout)
	}
}

func TestRefresher_StartStop(t *testing.T) {
	var calls atomic.Int32
	r := New(Config{Interval: time.Hour}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	ctx := context.Background()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Startup cycle runs without waiting for the ticker.
	waitFor(t, func() bool { return calls.Load() == 1 })

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := r.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if got := r.Cycles(); got != 1 {
		t.Errorf("Cycles() = %d, want 1", got)
	}
}

func TestRefresher_StartTwice(t *testing.T) {
	r := New(Config{Interval: time.Hour}, func(context.Context) error { return nil }, nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Stop(context.Background())

	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start err = %v, want ErrAlreadyStarted", err)
	}
}

func TestRefresher_StopWithoutStart(t *testing.T) {
	r := New(Config{}, func(context.Context) error { return nil }, nil)
	if err := r.Stop(context.Background()); err != nil {
		t.Errorf("Stop err = %v, want nil", err)
	}
}

func TestRefresher_Interval(t *testing.T) {
	var calls atomic.Int32
	r := New(Config{Interval: 20 * time.Millisecond}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, func() bool { return calls.Load() >= 3 })
	r.Stop(context.Background())
}

func TestRefresher_Trigger(t *testing.T) {
	var calls atomic.Int32
	r := New(Config{Interval: time.Hour}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Stop(context.Background())

	waitFor(t, func() bool { return calls.Load() == 1 })
	r.Trigger()
	waitFor(t, func() bool { return calls.Load() == 2 })
}

func TestRefresher_TriggerCoalesces(t *testing.T) {
	r := New(Config{Interval: time.Hour}, func(context.Context) error { return nil }, nil)

	// Not started: the first trigger fills the buffer, the rest are dropped.
	if !r.Trigger() {
		t.Error("first Trigger() = false, want true")
	}
	if r.Trigger() {
		t.Error("second Trigger() = true, want false")
	}
}

func TestRefresher_NoOverlap(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	var calls atomic.Int32

	r := New(Config{Interval: 5 * time.Millisecond}, func(context.Context) error {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := maxInFlight.Load()
			if current <= old || maxInFlight.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		calls.Add(1)
		return nil
	}, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		r.Trigger()
	}
	waitFor(t, func() bool { return calls.Load() >= 4 })
	r.Stop(context.Background())

	if got := maxInFlight.Load(); got != 1 {
		t.Errorf("maxInFlight = %d, want 1", got)
	}
}

func TestRefresher_FailureCounted(t *testing.T) {
	r := New(Config{Interval: time.Hour}, func(context.Context) error {
		return errors.New("upstream down")
	}, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, func() bool { return r.Cycles() == 1 })
	r.Stop(context.Background())

	if got := r.Failures(); got != 1 {
		t.Errorf("Failures() = %d, want 1", got)
	}
}

func TestRefresher_CycleTimeout(t *testing.T) {
	var sawDeadline atomic.Bool
	r := New(Config{Interval: time.Hour, Timeout: 10 * time.Millisecond}, func(ctx context.Context) error {
		<-ctx.Done()
		sawDeadline.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
		return ctx.Err()
	}, nil)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, func() bool { return r.Cycles() == 1 })
	r.Stop(context.Background())

	if !sawDeadline.Load() {
		t.Error("cycle context was not bounded by Timeout")
	}
}
