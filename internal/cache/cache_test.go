package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type countingObserver struct {
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{hits: map[string]int{}, misses: map[string]int{}}
}

func (o *countingObserver) CacheHit(op string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hits[op]++
}

func (o *countingObserver) CacheMiss(op string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.misses[op]++
}

type point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestKey(t *testing.T) {
	assert.Equal(t, "polls", Key("polls"))
	assert.Equal(t, "candles:CONTROLH:CONTROLH-2026-D:90", Key("candles", "CONTROLH", "CONTROLH-2026-D", 90))
}

func TestFetch_HitAfterMiss(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	obs := newCountingObserver()
	c := New(NewMemoryStore(WithClock(clock.Now)), WithObserver(obs))
	ctx := context.Background()

	var calls int
	load := func(context.Context) (point, error) {
		calls++
		return point{Name: "house", Value: 61.5}, nil
	}

	first, err := Fetch(ctx, c, "price", time.Minute, load, "CONTROLH-2026-D")
	require.NoError(t, err)
	second, err := Fetch(ctx, c, "price", time.Minute, load, "CONTROLH-2026-D")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, obs.hits["price"])
	assert.Equal(t, 1, obs.misses["price"])

	// Distinct params are distinct entries.
	_, err = Fetch(ctx, c, "price", time.Minute, load, "CONTROLS-2026-R")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New(NewMemoryStore(WithClock(clock.Now)))
	ctx := context.Background()

	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, _ := Fetch(ctx, c, "polls", 10*time.Minute, load)
	assert.Equal(t, 1, v)

	clock.Advance(9 * time.Minute)
	v, _ = Fetch(ctx, c, "polls", 10*time.Minute, load)
	assert.Equal(t, 1, v)

	clock.Advance(time.Minute)
	v, _ = Fetch(ctx, c, "polls", 10*time.Minute, load)
	assert.Equal(t, 2, v)
}

func TestFetch_ErrorsNotCached(t *testing.T) {
	c := New(NewMemoryStore())
	ctx := context.Background()
	boom := errors.New("unreachable")

	var calls int
	failing := func(context.Context) ([]point, error) {
		calls++
		return nil, boom
	}

	_, err := Fetch(ctx, c, "markets", time.Minute, failing, "CONTROLH")
	assert.ErrorIs(t, err, boom)
	_, err = Fetch(ctx, c, "markets", time.Minute, failing, "CONTROLH")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestFetch_ZeroTTLBypasses(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)

	var calls int
	load := func(context.Context) (string, error) {
		calls++
		return "x", nil
	}
	for range 3 {
		_, err := Fetch(context.Background(), c, "op", 0, load)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, store.Len())
}

func TestFetch_NilCache(t *testing.T) {
	v, err := Fetch(context.Background(), nil, "op", time.Minute, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFetch_ConcurrentMissesShareLoad(t *testing.T) {
	c := New(NewMemoryStore())
	release := make(chan struct{})
	var calls atomic.Int32

	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, "candles", time.Minute, load)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	// Give goroutines time to pile up on the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(n))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestFetch_HitAndMissDecodeIdentically(t *testing.T) {
	c := New(NewMemoryStore())
	ctx := context.Background()
	load := func(context.Context) (map[string]float64, error) {
		return map[string]float64{"RR": 30, "RD": 20, "DR": 15, "DD": 35}, nil
	}

	miss, err := Fetch(ctx, c, "combo", time.Minute, load)
	require.NoError(t, err)
	hit, err := Fetch(ctx, c, "combo", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, miss, hit)
}

func TestCache_Clear(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()

	var calls int
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _ = Fetch(ctx, c, "portfolio", time.Minute, load)
	require.Equal(t, 1, store.Len())

	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, store.Len())

	v, _ := Fetch(ctx, c, "portfolio", time.Minute, load)
	assert.Equal(t, 2, v)
}

func TestMemoryStore_Miss(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}
