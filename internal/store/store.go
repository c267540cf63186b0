package store

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/observability/metrics"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the whole collection for a key from the backend.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Snapshot is what a reader observes. Data is shared between readers and must be treated as
// read-only. Err is set when the latest fetch failed; Data then holds the previous collection.
type Snapshot[T any] struct {
	Data      []T
	IsLoading bool
	Err       error
	FetchedAt time.Time
	Stale     bool
}

// HasData reports whether a collection has ever been loaded.
func (s Snapshot[T]) HasData() bool { return !s.FetchedAt.IsZero() }

// Store caches the collection of one resource key.
type Store[T any] struct {
	key   string
	reg   *Registry
	fetch Fetcher[T]
	group singleflight.Group

	mu         sync.Mutex
	data       []T
	fetchedAt  time.Time
	stale      bool
	skipTier   bool
	err        error
	gen        uint64
	loading    int
	refs       int
	releasedAt time.Time
	subs       map[*Subscription[T]]struct{}
}

// Register creates the store for key. Registering a key twice fails with ErrDuplicateKey.
func Register[T any](r *Registry, key string, fetch Fetcher[T]) (*Store[T], error) {
	s := &Store[T]{key: key, reg: r, fetch: fetch, subs: make(map[*Subscription[T]]struct{})}
	if err := r.add(key, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Key returns the resource key.
func (s *Store[T]) Key() string { return s.key }

// Peek returns the current snapshot without fetching.
func (s *Store[T]) Peek() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Data:      s.data,
		IsLoading: s.loading > 0,
		Err:       s.err,
		FetchedAt: s.fetchedAt,
		Stale:     s.stale,
	}
}

// freshLocked reports whether cached data can be served without a fetch.
func (s *Store[T]) freshLocked(now time.Time) bool {
	if s.fetchedAt.IsZero() || s.stale {
		return false
	}
	if limit := s.reg.opts.StaleAfter; limit > 0 && now.Sub(s.fetchedAt) > limit {
		return false
	}
	return true
}

// expireLocked drops retained data once the grace period after the last subscriber passed.
func (s *Store[T]) expireLocked(now time.Time) {
	grace := s.reg.opts.Grace
	if grace <= 0 || s.refs > 0 || s.releasedAt.IsZero() || now.Sub(s.releasedAt) <= grace {
		return
	}
	s.data, s.fetchedAt, s.err = nil, time.Time{}, nil
	s.releasedAt = time.Time{}
}

// Get serves fresh cached data or fetches. Callers arriving while a fetch is in flight share
// it. A canceled ctx abandons the wait but not the fetch; the snapshot then carries ctx.Err().
func (s *Store[T]) Get(ctx context.Context) Snapshot[T] {
	ch, snap, ok := s.start()
	if ok {
		return snap
	}
	select {
	case <-ctx.Done():
		s.mu.Lock()
		snap := s.snapshotLocked()
		s.mu.Unlock()
		snap.Err = ctx.Err()
		return snap
	case res := <-ch:
		if res.Shared {
			metrics.Lookup(s.reg.opts.Metrics, s.key, metrics.ResultShared)
		}
		return res.Val.(Snapshot[T])
	}
}

// start returns the cached snapshot when fresh, or the channel of the in-flight fetch.
func (s *Store[T]) start() (<-chan singleflight.Result, Snapshot[T], bool) {
	now := s.reg.opts.Now()
	s.mu.Lock()
	s.expireLocked(now)
	if s.freshLocked(now) {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		metrics.Lookup(s.reg.opts.Metrics, s.key, metrics.ResultHit)
		return nil, snap, true
	}
	gen := s.gen
	s.mu.Unlock()

	metrics.Lookup(s.reg.opts.Metrics, s.key, metrics.ResultMiss)
	// Flights are keyed by generation so a read after Invalidate never joins a fetch that
	// started before it.
	ch := s.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return s.load(gen), nil
	})
	return ch, Snapshot[T]{}, false
}

// load runs one fetch detached from any caller's cancellation and commits the result.
func (s *Store[T]) load(gen uint64) Snapshot[T] {
	s.mu.Lock()
	s.loading++
	skipTier := s.skipTier
	s.mu.Unlock()

	ctx := context.Background()
	if t := s.reg.opts.FetchTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	var (
		items  []T
		err    error
		remote bool
	)
	if !skipTier {
		items, remote = s.readTier(ctx)
	}
	if remote {
		metrics.Lookup(s.reg.opts.Metrics, s.key, metrics.ResultRemote)
	} else {
		started := time.Now()
		items, err = s.fetch(ctx)
		metrics.Fetch(s.reg.opts.Metrics, metrics.FetchMetric{
			Resource: s.key, Duration: time.Since(started), Items: len(items), Err: err,
		})
		if err == nil && s.current(gen) {
			s.writeTier(ctx, items)
			// Invalidate may have deleted the key while the write was in flight.
			if !s.current(gen) {
				s.dropTier(ctx)
			}
		}
	}
	if err == nil && items == nil {
		items = []T{}
	}
	return s.commit(gen, items, err)
}

// current reports whether no invalidation happened since the flight for gen started.
func (s *Store[T]) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func (s *Store[T]) commit(gen uint64, items []T, err error) Snapshot[T] {
	s.mu.Lock()
	s.loading--
	if err != nil {
		s.err = err
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.reg.opts.Logger.Warn("resource fetch failed", "resource", s.key, "error", err,
			"serving_stale", !snap.FetchedAt.IsZero())
		return snap
	}

	s.data = slices.Clip(items)
	s.fetchedAt = s.reg.opts.Now()
	s.err = nil
	// An invalidation that landed mid-flight keeps the entry stale for the next read.
	s.stale = s.gen != gen
	if !s.stale {
		s.skipTier = false
	}
	snap := s.snapshotLocked()
	subs := make([]*Subscription[T], 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(snap)
	}
	return snap
}

func (s *Store[T]) readTier(ctx context.Context) ([]T, bool) {
	cache := s.reg.opts.Cache
	if cache == nil {
		return nil, false
	}
	raw, err := cache.Get(ctx, core.CollectionCacheKey(s.key))
	if err != nil {
		s.reg.opts.Logger.Warn("shared cache read failed", "resource", s.key, "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.reg.opts.Logger.Warn("shared cache entry undecodable", "resource", s.key, "error", err)
		return nil, false
	}
	return items, true
}

func (s *Store[T]) writeTier(ctx context.Context, items []T) {
	cache := s.reg.opts.Cache
	if cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.reg.opts.Logger.Warn("shared cache encode failed", "resource", s.key, "error", err)
		return
	}
	if err := cache.Set(ctx, core.CollectionCacheKey(s.key), raw, s.reg.opts.CacheTTL); err != nil {
		s.reg.opts.Logger.Warn("shared cache write failed", "resource", s.key, "error", err)
	}
}

// Invalidate marks the entry stale so the next read refetches, drops the shared copy and
// tells other replicas.
func (s *Store[T]) Invalidate(ctx context.Context) {
	s.invalidateLocal()
	s.dropTier(ctx)
	s.reg.announce(ctx, s.key)
}

func (s *Store[T]) dropTier(ctx context.Context) {
	cache := s.reg.opts.Cache
	if cache == nil {
		return
	}
	if _, err := cache.Delete(ctx, core.CollectionCacheKey(s.key)); err != nil {
		s.reg.opts.Logger.Warn("shared cache delete failed", "resource", s.key, "error", err)
	}
}

func (s *Store[T]) invalidateLocal() {
	s.mu.Lock()
	s.stale = true
	s.skipTier = true
	s.gen++
	s.mu.Unlock()
}

func (s *Store[T]) reset() {
	s.mu.Lock()
	s.data, s.fetchedAt, s.err = nil, time.Time{}, nil
	s.stale, s.skipTier = false, false
	s.gen++
	s.refs = 0
	s.releasedAt = time.Time{}
	subs := s.subs
	s.subs = make(map[*Subscription[T]]struct{})
	s.mu.Unlock()

	for sub := range subs {
		sub.detach()
	}
}
