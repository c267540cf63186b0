package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type rec struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// countingFetcher returns the current items and counts calls.
type countingFetcher struct {
	mu    sync.Mutex
	items []*rec
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (f *countingFetcher) fetch(ctx context.Context) ([]*rec, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*rec, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *countingFetcher) set(items []*rec, err error) {
	f.mu.Lock()
	f.items, f.err = items, err
	f.mu.Unlock()
}

func newStore(t *testing.T, opts Options, f *countingFetcher) (*Registry, *Store[*rec]) {
	t.Helper()
	reg := NewRegistry(opts)
	t.Cleanup(func() { _ = reg.Close() })
	s, err := Register(reg, "jobs", f.fetch)
	require.NoError(t, err)
	return reg, s
}

func TestStore_GetCachesUntilInvalidated(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	_, s := newStore(t, Options{}, f)
	ctx := context.Background()

	snap := s.Get(ctx)
	require.NoError(t, snap.Err)
	assert.Len(t, snap.Data, 1)
	assert.False(t, snap.IsLoading)
	assert.True(t, snap.HasData())

	again := s.Get(ctx)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Same(t, snap.Data[0], again.Data[0], "readers share the cached slice")

	f.set([]*rec{{ID: "1"}, {ID: "2"}}, nil)
	s.Invalidate(ctx)
	assert.True(t, s.Peek().Stale)

	snap = s.Get(ctx)
	assert.Len(t, snap.Data, 2)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.False(t, snap.Stale)
}

func TestStore_ConcurrentGetsShareOneFetch(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}, gate: make(chan struct{})}
	_, s := newStore(t, Options{}, f)

	var wg sync.WaitGroup
	results := make([]Snapshot[*rec], 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Get(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return s.Peek().IsLoading }, time.Second, time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	for _, r := range results {
		require.Len(t, r.Data, 1)
		assert.Same(t, results[0].Data[0], r.Data[0])
	}
}

func TestStore_StaleWhileError(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	_, s := newStore(t, Options{}, f)
	ctx := context.Background()

	require.NoError(t, s.Get(ctx).Err)

	boom := errors.New("backend down")
	f.set(nil, boom)
	s.Invalidate(ctx)

	snap := s.Get(ctx)
	assert.ErrorIs(t, snap.Err, boom)
	require.Len(t, snap.Data, 1, "previous data is kept")
	assert.Equal(t, "1", snap.Data[0].ID)

	// One attempt per call: the next call tries again and recovers.
	f.set([]*rec{{ID: "1"}, {ID: "3"}}, nil)
	snap = s.Get(ctx)
	assert.NoError(t, snap.Err)
	assert.Len(t, snap.Data, 2)
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestStore_FirstFetchFailure(t *testing.T) {
	f := &countingFetcher{err: errors.New("nope")}
	_, s := newStore(t, Options{}, f)

	snap := s.Get(context.Background())
	assert.Error(t, snap.Err)
	assert.Nil(t, snap.Data)
	assert.False(t, snap.HasData())
}

func TestStore_CanceledWaiterDoesNotAbortFetch(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}, gate: make(chan struct{})}
	_, s := newStore(t, Options{}, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Snapshot[*rec])
	go func() { done <- s.Get(ctx) }()

	require.Eventually(t, func() bool { return s.Peek().IsLoading }, time.Second, time.Millisecond)
	cancel()
	snap := <-done
	assert.ErrorIs(t, snap.Err, context.Canceled)
	assert.True(t, snap.IsLoading)

	close(f.gate)
	require.Eventually(t, func() bool { return s.Peek().HasData() }, time.Second, time.Millisecond)
	assert.Len(t, s.Peek().Data, 1)
}

func TestStore_InvalidateDuringFetchKeepsStale(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "old"}}, gate: make(chan struct{})}
	_, s := newStore(t, Options{}, f)
	ctx := context.Background()

	done := make(chan Snapshot[*rec])
	go func() { done <- s.Get(ctx) }()
	require.Eventually(t, func() bool { return s.Peek().IsLoading }, time.Second, time.Millisecond)

	s.Invalidate(ctx)
	close(f.gate)
	<-done
	assert.True(t, s.Peek().Stale)

	f.set([]*rec{{ID: "new"}}, nil)
	snap := s.Get(ctx)
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "new", snap.Data[0].ID)
}

// memCache is a goroutine-safe shared tier backed by a map.
type memCache struct {
	mu   sync.Mutex
	vals map[string][]byte
}

func newMemCache() *memCache { return &memCache{vals: map[string][]byte{}} }

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals[key] = value
	return nil
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vals[key], nil
}

func (c *memCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.vals[key]
	delete(c.vals, key)
	return ok, nil
}

func (c *memCache) Health(context.Context) error { return nil }

func TestStore_InvalidateDuringFetchSkipsSharedTier(t *testing.T) {
	cache := newMemCache()
	opts := Options{Cache: cache, CacheTTL: time.Minute}
	ctx := context.Background()

	backend := &countingFetcher{items: []*rec{{ID: "old"}}}
	gate := make(chan struct{})
	reg := NewRegistry(opts)
	t.Cleanup(func() { _ = reg.Close() })
	// The fetch reads the backend before the create lands and returns after it.
	s, err := Register(reg, "jobs", func(ctx context.Context) ([]*rec, error) {
		items, err := backend.fetch(ctx)
		<-gate
		return items, err
	})
	require.NoError(t, err)

	done := make(chan Snapshot[*rec])
	go func() { done <- s.Get(ctx) }()
	require.Eventually(t, func() bool { return backend.calls.Load() == 1 }, time.Second, time.Millisecond)

	backend.set([]*rec{{ID: "old"}, {ID: "new"}}, nil)
	s.Invalidate(ctx)
	close(gate)
	<-done

	raw, err := cache.Get(ctx, core.CollectionCacheKey("jobs"))
	require.NoError(t, err)
	assert.Nil(t, raw, "an outdated fetch must not repopulate the shared tier")

	// Another replica sharing the tier sees the created record.
	_, other := newStore(t, opts, backend)
	snap := other.Get(ctx)
	require.NoError(t, snap.Err)
	assert.Len(t, snap.Data, 2)
	assert.Equal(t, int32(2), backend.calls.Load())
}

func TestStore_StaleAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time { mu.Lock(); defer mu.Unlock(); return now }
	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	_, s := newStore(t, Options{StaleAfter: time.Minute, Now: clock}, f)
	ctx := context.Background()

	s.Get(ctx)
	s.Get(ctx)
	assert.Equal(t, int32(1), f.calls.Load())

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()
	s.Get(ctx)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestRegister_DuplicateKey(t *testing.T) {
	reg := NewRegistry(Options{})
	_, err := Register(reg, "jobs", (&countingFetcher{}).fetch)
	require.NoError(t, err)

	_, err = Register(reg, "jobs", (&countingFetcher{}).fetch)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, []string{"jobs"}, reg.Keys())

	reg.Reset()
	assert.Empty(t, reg.Keys())
	_, err = Register(reg, "jobs", (&countingFetcher{}).fetch)
	assert.NoError(t, err)

	require.NoError(t, reg.Close())
	_, err = Register(reg, "invoices", (&countingFetcher{}).fetch)
	assert.ErrorIs(t, err, ErrRegistryClosed)
}

func TestRegistry_ResetClearsData(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	reg, s := newStore(t, Options{}, f)
	s.Get(context.Background())

	reg.Reset()
	assert.False(t, s.Peek().HasData())
}

func TestSubscribe_FirstSubscriberFetches(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	_, s := newStore(t, Options{}, f)

	sub := s.Subscribe(context.Background())
	select {
	case snap := <-sub.Updates():
		assert.Len(t, snap.Data, 1)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	second := s.Subscribe(context.Background())
	got, err := second.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, int32(1), f.calls.Load(), "second subscriber reuses the entry")

	sub.Close()
	assert.False(t, s.Peek().Stale)
	second.Close()
	second.Close()
	assert.True(t, s.Peek().Stale, "last release marks stale")
	assert.True(t, s.Peek().HasData(), "data is retained")

	_, ok := <-second.Updates()
	assert.False(t, ok)
}

func TestSubscription_ClosedBeforeResultDiscards(t *testing.T) {
	f := &countingFetcher{items: []*rec{{ID: "1"}}, gate: make(chan struct{})}
	_, s := newStore(t, Options{}, f)

	sub := s.Subscribe(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := sub.Get(context.Background())
		errc <- err
	}()
	require.Eventually(t, func() bool { return s.Peek().IsLoading }, time.Second, time.Millisecond)

	sub.Close()
	assert.ErrorIs(t, <-errc, ErrSubscriptionClosed)

	close(f.gate)
	require.Eventually(t, func() bool { return s.Peek().HasData() }, time.Second, time.Millisecond)

	_, err := sub.Get(context.Background())
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
}

func TestStore_GraceExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time { mu.Lock(); defer mu.Unlock(); return now }
	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	_, s := newStore(t, Options{Grace: time.Minute, Now: clock}, f)

	sub := s.Subscribe(context.Background())
	<-sub.Updates()
	sub.Close()

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	f.set(nil, errors.New("down"))
	snap := s.Get(context.Background())
	assert.Error(t, snap.Err)
	assert.Nil(t, snap.Data, "data past the grace period is dropped")
}

func TestStore_SharedTierHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)

	raw, err := json.Marshal([]*rec{{ID: "remote"}})
	require.NoError(t, err)
	cache.EXPECT().Get(gomock.Any(), core.CollectionCacheKey("jobs")).Return(raw, nil)

	f := &countingFetcher{items: []*rec{{ID: "backend"}}}
	_, s := newStore(t, Options{Cache: cache, CacheTTL: time.Minute}, f)

	snap := s.Get(context.Background())
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "remote", snap.Data[0].ID)
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestStore_SharedTierMissWritesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)
	key := core.CollectionCacheKey("jobs")

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, nil),
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Minute).
			DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
				assert.JSONEq(t, `[{"id":"backend","status":""}]`, string(value))
				return nil
			}),
		cache.EXPECT().Delete(gomock.Any(), key).Return(true, nil),
		// After an invalidation the tier is bypassed and rewritten.
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Minute).Return(nil),
	)

	f := &countingFetcher{items: []*rec{{ID: "backend"}}}
	_, s := newStore(t, Options{Cache: cache, CacheTTL: time.Minute}, f)
	ctx := context.Background()

	s.Get(ctx)
	s.Invalidate(ctx)
	s.Get(ctx)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestStore_SharedTierErrorsDegradeToBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	_, s := newStore(t, Options{Cache: cache}, f)

	snap := s.Get(context.Background())
	assert.NoError(t, snap.Err)
	assert.Len(t, snap.Data, 1)
}

func TestRegistry_InvalidationBus(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := mocks.NewMockInvalidationBus(ctrl)

	var handler func(string)
	subscribed := make(chan struct{})
	bus.EXPECT().SubscribeInvalidations(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(string)) error {
			handler = fn
			close(subscribed)
			<-ctx.Done()
			return nil
		})

	f := &countingFetcher{items: []*rec{{ID: "1"}}}
	reg, s := newStore(t, Options{Bus: bus}, f)
	ctx := context.Background()

	bus.EXPECT().PublishInvalidation(gomock.Any(), "jobs|"+reg.origin).Return(nil)

	reg.Listen(ctx)
	<-subscribed

	s.Get(ctx)
	handler("jobs|" + reg.origin)
	assert.False(t, s.Peek().Stale, "own announcements are ignored")

	handler("jobs|other-replica")
	assert.True(t, s.Peek().Stale)

	handler("unknown|other-replica")

	s.Get(ctx)
	s.Invalidate(ctx)
	require.NoError(t, reg.Close())
}
