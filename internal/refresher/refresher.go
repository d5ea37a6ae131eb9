package refresher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Func performs one refresh cycle.
type Func func(ctx context.Context) error

// Config holds refresher configuration.
type Config struct {
	Interval time.Duration // Refresh interval (default: 5m)
	Timeout  time.Duration // Per-cycle timeout (default: 2m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Minute,
		Timeout:  2 * time.Minute,
	}
}

// ErrAlreadyStarted is returned by Start on a running Refresher.
var ErrAlreadyStarted = errors.New("refresher already started")

// Refresher periodically invokes a refresh Func.
type Refresher struct {
	cfg     Config
	fn      Func
	logger  *slog.Logger
	trigger chan struct{}

	cycles   atomic.Int64
	failures atomic.Int64
	started  atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Refresher. Zero config fields take their defaults.
func New(cfg Config, fn Func, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Refresher{
		cfg:     cfg,
		fn:      fn,
		logger:  logger,
		trigger: make(chan struct{}, 1),
	}
}

// Start begins the refresh loop.
func (r *Refresher) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("refresher started", "interval", r.cfg.Interval)
	return nil
}

// Stop gracefully shuts down the refresher, waiting for an in-flight cycle.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("refresher stopped", "cycles", r.cycles.Load())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger requests an out-of-band cycle. It never blocks; a trigger
// arriving while one is already pending is dropped.
func (r *Refresher) Trigger() bool {
	select {
	case r.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Cycles returns the number of completed cycles.
func (r *Refresher) Cycles() int64 {
	return r.cycles.Load()
}

// Failures returns the number of cycles that returned an error.
func (r *Refresher) Failures() int64 {
	return r.failures.Load()
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.refresh("startup")

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.refresh("interval")
		case <-r.trigger:
			r.refresh("manual")
			ticker.Reset(r.cfg.Interval)
		}
	}
}

func (r *Refresher) refresh(reason string) {
	ctx, cancel := context.WithTimeout(r.ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	err := r.fn(ctx)
	r.cycles.Add(1)

	if err != nil {
		r.failures.Add(1)
		r.logger.Warn("refresh cycle failed",
			"reason", reason,
			"duration", time.Since(start),
			"error", err,
		)
		return
	}
	r.logger.Debug("refresh cycle complete",
		"reason", reason,
		"duration", time.Since(start),
	)
}
